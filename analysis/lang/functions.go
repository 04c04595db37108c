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
	"go/ast"
	"go/token"

	"golang.org/x/tools/go/ssa"
)

// IsExternal returns true if function is external (in ssa, when Blocks is nil)
func IsExternal(function *ssa.Function) bool {
	// This is indicated in the ssa documentation
	return function.Blocks == nil
}

// IterateInstructions iterates through all the instructions in the function, in block order.
func IterateInstructions(function *ssa.Function, f func(index int, instruction ssa.Instruction)) {
	// If this is an external function, return.
	if function.Blocks == nil {
		return
	}

	for _, block := range function.Blocks {
		for index, instruction := range block.Instrs {
			f(index, instruction)
		}
	}
}

// InstrPos returns the position of instr in the source. Instructions without a position of their own (e.g.
// implicit comparisons in range loops) take the position of the closest preceding instruction of their block
// that has one, and finally the position of their function.
func InstrPos(instr ssa.Instruction) token.Pos {
	pos := instr.Pos()
	if !pos.IsValid() && instr.Block() != nil {
		after := false
		instrs := instr.Block().Instrs
		for i := len(instrs) - 1; i >= 0; i-- {
			if instrs[i] == instr {
				after = true
			} else if after && instrs[i].Pos().IsValid() {
				pos = instrs[i].Pos()
				break
			}
		}
	}
	if !pos.IsValid() && instr.Parent() != nil {
		pos = instr.Parent().Pos()
	}
	return pos
}

// InstrPosition returns the position of InstrPos(instr), resolved in the file set of the program
func InstrPosition(instr ssa.Instruction) token.Position {
	fn := instr.Parent()
	if fn == nil || fn.Prog == nil || fn.Prog.Fset == nil {
		return token.Position{}
	}
	return fn.Prog.Fset.Position(InstrPos(instr))
}

// MapComments applies fmap to every comment of the files
func MapComments(files []*ast.File, fmap func(*ast.Comment)) {
	for _, f := range files {
		for _, c := range f.Comments {
			for _, c1 := range c.List {
				fmap(c1)
			}
		}
	}
}
