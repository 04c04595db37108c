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

package graphutil

import (
	"sort"

	"github.com/awslabs/ar-go-symobf/internal/funcutil"
	"github.com/yourbasic/graph"
)

// CyclicComponents returns the strongly connected components of g that contain a cycle: the components with at
// least two nodes, and the single nodes with an edge to themselves.
// Each component is returned as a list of labels ordered by node id, and the components are ordered by their first
// node id.
func CyclicComponents[T comparable](g *LGraph[T]) [][]T {
	var cyclic [][]int
	for _, component := range graph.StrongComponents(g) {
		if len(component) >= 2 || (len(component) == 1 && g.Edges[int64(component[0])][int64(component[0])]) {
			sort.Ints(component)
			cyclic = append(cyclic, component)
		}
	}
	sort.Slice(cyclic, func(i, j int) bool { return cyclic[i][0] < cyclic[j][0] })
	return funcutil.Map(cyclic, func(c []int) []T {
		return funcutil.Map(c, func(id int) T { return g.Labels[id] })
	})
}

// Stats returns the statistics of g computed by graph.Check
func Stats[T comparable](g *LGraph[T]) graph.Stats {
	return graph.Check(g)
}
