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

package lang

import (
	"fmt"
	"go/token"

	"github.com/awslabs/ar-go-symobf/analysis/ir"
	"github.com/awslabs/ar-go-symobf/internal/funcutil"
	"golang.org/x/tools/go/ssa"
)

// Value is an ssa.Value seen as an ir.Value. Two Values wrapping the same SSA value are equal.
type Value struct {
	v ssa.Value
}

// NewValue wraps v.
func NewValue(v ssa.Value) Value {
	return Value{v: v}
}

// SSA returns the wrapped value
func (v Value) SSA() ssa.Value { return v.v }

func (v Value) Name() string { return v.v.Name() }

func (v Value) String() string {
	if _, isInstr := v.v.(ssa.Instruction); isInstr {
		return fmt.Sprintf("%s = %s", v.v.Name(), v.v.String())
	}
	return v.v.String()
}

// Users returns the referrers of the value. Constants, globals and functions have no referrers.
func (v Value) Users() []ir.Instruction {
	refs := v.v.Referrers()
	if refs == nil {
		return nil
	}
	return funcutil.Map(*refs, func(i ssa.Instruction) ir.Instruction { return NewInstr(i) })
}

// Pos returns the position of the value in the source
func (v Value) Pos() token.Pos { return v.v.Pos() }

// Instr is an ssa.Instruction seen as an ir.Instruction. Two Instrs wrapping the same SSA instruction are equal.
type Instr struct {
	i ssa.Instruction
}

// NewInstr wraps i.
func NewInstr(i ssa.Instruction) Instr {
	return Instr{i: i}
}

// SSA returns the wrapped instruction
func (i Instr) SSA() ssa.Instruction { return i.i }

// Parent returns the function containing the instruction
func (i Instr) Parent() *ssa.Function { return i.i.Parent() }

// Pos returns the position of the instruction in the source. Some instructions have no position.
func (i Instr) Pos() token.Pos { return i.i.Pos() }

func (i Instr) Name() string {
	if v, ok := i.i.(ssa.Value); ok {
		return v.Name()
	}
	return KindOf(i.i).String()
}

func (i Instr) String() string {
	if v, ok := i.i.(ssa.Value); ok {
		return fmt.Sprintf("%s = %s", v.Name(), v.String())
	}
	return i.i.String()
}

func (i Instr) Users() []ir.Instruction {
	if v, ok := i.i.(ssa.Value); ok {
		return NewValue(v).Users()
	}
	return nil
}

func (i Instr) Kind() ir.Kind { return KindOf(i.i) }

func (i Instr) Operands() []ir.Value {
	return funcutil.Map(operands(i.i), func(v ssa.Value) ir.Value { return NewValue(v) })
}

func (i Instr) Result() ir.Value {
	if v, ok := i.i.(ssa.Value); ok {
		return NewValue(v)
	}
	return nil
}

// Params returns the parameters of fn, including the receiver of methods, as values.
func Params(fn *ssa.Function) []ir.Value {
	return funcutil.Map(fn.Params, func(p *ssa.Parameter) ir.Value { return NewValue(p) })
}

// FreeVars returns the free variables of fn as values. Only closures have free variables.
func FreeVars(fn *ssa.Function) []ir.Value {
	return funcutil.Map(fn.FreeVars, func(fv *ssa.FreeVar) ir.Value { return NewValue(fv) })
}
