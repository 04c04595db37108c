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

// Package ir defines the narrow view of a host intermediate representation that the taint engine reads: values,
// instructions with a kind tag and ordered operands, and use-def edges from values to the instructions using them.
//
// Host adapters (see the lang package for go/ssa) implement Value and Instruction. The package also contains a small
// in-memory graph with a builder, used to describe synthetic functions.
//
// Values are compared by identity: implementations must be comparable, and two Values denoting the same host
// entity must be equal.
package ir

// A Value is anything that can be an operand or the result of an instruction: arguments, instruction results,
// constants, globals.
type Value interface {
	// Name returns a short name for the value, e.g. "%p" or "t0"
	Name() string

	// String returns a human-readable representation of the value
	String() string

	// Users returns the instructions that use the value as an operand, in a deterministic order
	Users() []Instruction
}

// An Instruction is a Value that has a kind and an ordered list of operands.
type Instruction interface {
	Value

	// Kind returns the kind tag of the instruction
	Kind() Kind

	// Operands returns the ordered operands of the instruction. Store-like instructions list the stored value first
	// and the location written second.
	Operands() []Value

	// Result returns the value produced by the instruction, or nil if it does not produce one.
	Result() Value
}

// Operand returns the i-th operand of instr, or nil if instr has fewer operands.
func Operand(instr Instruction, i int) Value {
	ops := instr.Operands()
	if i < 0 || i >= len(ops) {
		return nil
	}
	return ops[i]
}
