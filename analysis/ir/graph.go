// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ir

import (
	"fmt"
	"strings"

	"github.com/awslabs/ar-go-symobf/internal/funcutil"
)

// userRecorder is implemented by the values of the in-memory graph; it lets the builder maintain use-def edges.
type userRecorder interface {
	addUser(Instruction)
}

type userList struct {
	users []Instruction
}

func (u *userList) addUser(i Instruction) {
	u.users = append(u.users, i)
}

// Users returns a copy of the users, in the order the uses were created.
func (u *userList) Users() []Instruction {
	res := make([]Instruction, len(u.users))
	copy(res, u.users)
	return res
}

// A Function is an in-memory function made of parameters and basic blocks.
type Function struct {
	name   string
	Params []*Param
	Blocks []*Block
}

// NewFunction returns a function with one parameter per name in params and no blocks.
func NewFunction(name string, params ...string) *Function {
	f := &Function{name: name}
	for _, p := range params {
		f.Params = append(f.Params, &Param{name: "%" + p, parent: f})
	}
	return f
}

// Name returns the name of the function
func (f *Function) Name() string { return f.name }

// Param returns the parameter named name (without the % prefix), or nil.
func (f *Function) Param(name string) *Param {
	for _, p := range f.Params {
		if p.name == "%"+name {
			return p
		}
	}
	return nil
}

// ParamValues returns the parameters of f as values.
func (f *Function) ParamValues() []Value {
	return funcutil.Map(f.Params, func(p *Param) Value { return p })
}

// NewBlock appends a new empty basic block to f.
func (f *Function) NewBlock() *Block {
	b := &Block{Index: len(f.Blocks), parent: f}
	f.Blocks = append(f.Blocks, b)
	return b
}

// Instrs returns all the instructions of f, in block order.
func (f *Function) Instrs() []*Instr {
	var res []*Instr
	for _, b := range f.Blocks {
		res = append(res, b.Instrs...)
	}
	return res
}

func (f *Function) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "define %s(%s) {\n", f.name,
		strings.Join(funcutil.Map(f.Params, func(p *Param) string { return p.name }), ", "))
	for _, b := range f.Blocks {
		fmt.Fprintf(&sb, "%d:\n", b.Index)
		for _, i := range b.Instrs {
			fmt.Fprintf(&sb, "  %s\n", i)
		}
	}
	sb.WriteString("}\n")
	return sb.String()
}

// A Block is a basic block: a sequence of instructions belonging to one function.
type Block struct {
	Index  int
	Instrs []*Instr
	parent *Function
}

// Parent returns the function of the block
func (b *Block) Parent() *Function { return b.parent }

// Emit appends a value-producing instruction to the block. The result is named "%"+name.
func (b *Block) Emit(kind Kind, name string, operands ...Value) *Instr {
	return b.emit(&Instr{name: "%" + name, kind: kind}, operands)
}

// EmitVoid appends an instruction that does not produce a value, such as a store or a branch.
func (b *Block) EmitVoid(kind Kind, operands ...Value) *Instr {
	return b.emit(&Instr{kind: kind, void: true}, operands)
}

func (b *Block) emit(i *Instr, operands []Value) *Instr {
	i.block = b
	for _, op := range operands {
		i.AddOperand(op)
	}
	b.Instrs = append(b.Instrs, i)
	return i
}

// A Param is a formal parameter of a Function.
type Param struct {
	userList
	name   string
	parent *Function
}

func (p *Param) Name() string   { return p.name }
func (p *Param) String() string { return p.name }

// Parent returns the function declaring the parameter
func (p *Param) Parent() *Function { return p.parent }

// A Const is a constant or global value. It has no parent.
type Const struct {
	userList
	name string
}

// NewConst returns a constant with the given name, e.g. "null" or "42".
func NewConst(name string) *Const {
	return &Const{name: name}
}

func (c *Const) Name() string   { return c.name }
func (c *Const) String() string { return c.name }

// An Instr is an instruction of the in-memory graph. It implements both Value and Instruction.
type Instr struct {
	userList
	name     string
	kind     Kind
	operands []Value
	block    *Block
	void     bool
}

// AddOperand appends v to the operands of i and records i as a user of v. This is how phi nodes receive their
// loop-carried incoming values after the defining instruction has been emitted.
func (i *Instr) AddOperand(v Value) {
	if v == nil {
		panic("ir: nil operand")
	}
	i.operands = append(i.operands, v)
	if r, ok := v.(userRecorder); ok {
		r.addUser(i)
	}
}

func (i *Instr) Kind() Kind { return i.kind }

func (i *Instr) Operands() []Value {
	res := make([]Value, len(i.operands))
	copy(res, i.operands)
	return res
}

func (i *Instr) Result() Value {
	if i.void {
		return nil
	}
	return i
}

// Block returns the basic block containing the instruction
func (i *Instr) Block() *Block { return i.block }

// Name returns the name of the result, or the kind name when the instruction does not produce a value.
func (i *Instr) Name() string {
	if i.void {
		return i.kind.String()
	}
	return i.name
}

func (i *Instr) String() string {
	ops := strings.Join(funcutil.Map(i.operands, func(v Value) string { return v.Name() }), ", ")
	if i.void {
		return fmt.Sprintf("%s %s", i.kind, ops)
	}
	return fmt.Sprintf("%s = %s %s", i.name, i.kind, ops)
}
