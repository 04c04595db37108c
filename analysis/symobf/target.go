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

package symobf

import (
	"fmt"
	"go/token"

	"github.com/awslabs/ar-go-symobf/analysis/ir"
	"github.com/awslabs/ar-go-symobf/analysis/lang"
	"github.com/awslabs/ar-go-symobf/analysis/taint"
	"github.com/awslabs/ar-go-symobf/internal/funcutil"
	"golang.org/x/tools/go/ssa"
)

// A Target is a tainted instruction that a rewrite would replace by a call to Helper.
type Target struct {
	// Function is the name of the function containing the instruction
	Function string `yaml:"function"`
	// Position is the position of the instruction in the source, as file:line:column
	Position string `yaml:"position"`
	// Instruction is the instruction in SSA form
	Instruction string `yaml:"instruction"`
	// Kind is the kind of the instruction
	Kind ir.Kind `yaml:"kind"`
	// Helper is the function that would replace the instruction
	Helper string `yaml:"helper"`

	// Pos is the position of the instruction
	Pos token.Position `yaml:"-"`
	// Instr is the SSA instruction
	Instr ssa.Instruction `yaml:"-"`
}

func newTarget(fn *ssa.Function, instr lang.Instr, helper string) Target {
	pos := lang.InstrPosition(instr.SSA())
	return Target{
		Function:    fn.String(),
		Position:    pos.String(),
		Instruction: instr.String(),
		Kind:        instr.Kind(),
		Helper:      helper,
		Pos:         pos,
		Instr:       instr.SSA(),
	}
}

// Message is the diagnostic reported for the target
func (t Target) Message() string {
	if t.Kind == ir.KindCompare {
		return fmt.Sprintf("comparison depends on function arguments; candidate for rewrite with %s", t.Helper)
	}
	return fmt.Sprintf("%s depends on function arguments; candidate for rewrite with %s", t.Kind, t.Helper)
}

func (t Target) String() string {
	return fmt.Sprintf("%s: %s in %s", t.Position, t.Instruction, t.Function)
}

// Stats are statistics about the taint of one or several functions
type Stats struct {
	// Functions is the number of functions analysed
	Functions int `yaml:"functions"`
	// TaintedValues is the number of tainted values, seeds included
	TaintedValues int `yaml:"tainted-values"`
	// TaintedInstructions is the number of tainted instructions
	TaintedInstructions int `yaml:"tainted-instructions"`
	// Targets is the number of targets
	Targets int `yaml:"targets"`
	// Cycles is the number of cycles of taint through memory
	Cycles int `yaml:"cycles"`
	// Kinds counts the tainted instructions per kind name
	Kinds map[string]int `yaml:"kinds"`
}

func newStats(store *taint.Store, targets int, cycles int) Stats {
	s := Stats{
		Functions:           1,
		TaintedValues:       len(store.Values()),
		TaintedInstructions: len(store.Instructions()),
		Targets:             targets,
		Cycles:              cycles,
		Kinds:               map[string]int{},
	}
	for _, instr := range store.Instructions() {
		s.Kinds[instr.Kind().String()]++
	}
	return s
}

// Add adds the counts of o to s
func (s *Stats) Add(o Stats) {
	s.Functions += o.Functions
	s.TaintedValues += o.TaintedValues
	s.TaintedInstructions += o.TaintedInstructions
	s.Targets += o.Targets
	s.Cycles += o.Cycles
	if s.Kinds == nil {
		s.Kinds = map[string]int{}
	}
	funcutil.Merge(s.Kinds, o.Kinds, func(x int, y int) int { return x + y })
}
