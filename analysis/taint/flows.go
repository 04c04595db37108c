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

import "github.com/awslabs/ar-go-symobf/analysis/ir"

// Flows returns every flow between tainted values once the store is complete: for each tainted instruction whose
// policy designates a target, one edge from each tainted operand to that target. Edges() only keeps the use that
// first marked each instruction; Flows also has the uses found afterwards, which is what closes loops.
// Flows from the target to itself are omitted, as are instructions without a target.
func (s *Store) Flows() []Edge {
	var res []Edge
	for _, instr := range s.instrs {
		to := Classify(instr.Kind()).TargetValue(instr)
		if to == nil {
			continue
		}
		seen := map[ir.Value]bool{}
		for _, op := range instr.Operands() {
			if op == to || seen[op] || !s.valueSet[op] {
				continue
			}
			seen[op] = true
			res = append(res, Edge{From: op, Instr: instr, To: to})
		}
	}
	return res
}
