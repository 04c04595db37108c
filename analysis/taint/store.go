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

package taint

import (
	"github.com/awslabs/ar-go-symobf/analysis/ir"
)

// An Edge records that the instruction Instr was marked because it uses the tainted value From. To is the value
// the policy of Instr tainted, nil when the instruction produced nothing to propagate.
type Edge struct {
	From  ir.Value
	Instr ir.Instruction
	To    ir.Value
}

// Store holds the taint state of one analysis run: the tainted values, the tainted instructions, and the values
// waiting to be propagated. Sets keep their insertion order. A Store only grows.
type Store struct {
	values   []ir.Value
	valueSet map[ir.Value]bool
	instrs   []ir.Instruction
	instrSet map[ir.Instruction]bool
	edges    []Edge
	seeds    []ir.Value
	worklist []ir.Value
	head     int // index of the next value to pop in worklist
}

// NewStore returns an empty store
func NewStore() *Store {
	return &Store{
		valueSet: map[ir.Value]bool{},
		instrSet: map[ir.Instruction]bool{},
	}
}

// addValue inserts v in the tainted values and pushes it on the worklist. Returns false if v was already tainted,
// in which case nothing changes.
func (s *Store) addValue(v ir.Value) bool {
	if s.valueSet[v] {
		return false
	}
	s.valueSet[v] = true
	s.values = append(s.values, v)
	s.worklist = append(s.worklist, v)
	return true
}

// addInstr inserts i in the tainted instructions. Returns false if i was already tainted.
func (s *Store) addInstr(i ir.Instruction) bool {
	if s.instrSet[i] {
		return false
	}
	s.instrSet[i] = true
	s.instrs = append(s.instrs, i)
	return true
}

// pop removes the oldest value of the worklist. The second result is false if the worklist is empty.
func (s *Store) pop() (ir.Value, bool) {
	if s.head >= len(s.worklist) {
		return nil, false
	}
	v := s.worklist[s.head]
	s.worklist[s.head] = nil
	s.head++
	if s.head == len(s.worklist) {
		s.worklist = s.worklist[:0]
		s.head = 0
	}
	return v, true
}

// Pending returns the number of values waiting to be propagated
func (s *Store) Pending() int {
	return len(s.worklist) - s.head
}

// IsTainted returns true if v is a tainted value
func (s *Store) IsTainted(v ir.Value) bool {
	return s.valueSet[v]
}

// IsMarked returns true if i is a tainted instruction
func (s *Store) IsMarked(i ir.Instruction) bool {
	return s.instrSet[i]
}

// Values returns the tainted values in the order they were tainted.
func (s *Store) Values() []ir.Value {
	res := make([]ir.Value, len(s.values))
	copy(res, s.values)
	return res
}

// Instructions returns the tainted instructions in discovery order.
func (s *Store) Instructions() []ir.Instruction {
	res := make([]ir.Instruction, len(s.instrs))
	copy(res, s.instrs)
	return res
}

// Seeds returns the values that were tainted by seeding, in seeding order
func (s *Store) Seeds() []ir.Value {
	res := make([]ir.Value, len(s.seeds))
	copy(res, s.seeds)
	return res
}

// Edges returns the flow edges, one per tainted instruction, in discovery order
func (s *Store) Edges() []Edge {
	res := make([]Edge, len(s.edges))
	copy(res, s.edges)
	return res
}
