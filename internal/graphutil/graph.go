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

// Package graphutil contains a small labelled directed graph that works with the algorithms of
// github.com/yourbasic/graph.
package graphutil

import (
	"sort"
)

// LGraph is a directed graph whose nodes are labelled by values of type T. Node ids are assigned in order of
// insertion, starting at 0. It implements the graph.Iterator interface of github.com/yourbasic/graph.
type LGraph[T comparable] struct {
	// Labels maps node ids to labels
	Labels []T

	// ids maps labels to node ids
	ids map[T]int64

	// Edges is an adjacency matrix: Edges[x][y] means there is a directed edge between Labels[x] and Labels[y]
	Edges map[int64]map[int64]bool
}

// NewLGraph returns an empty graph
func NewLGraph[T comparable]() *LGraph[T] {
	return &LGraph[T]{
		ids:   map[T]int64{},
		Edges: map[int64]map[int64]bool{},
	}
}

// AddNode adds a node labelled x if there is none, and returns its id.
func (g *LGraph[T]) AddNode(x T) int64 {
	if id, ok := g.ids[x]; ok {
		return id
	}
	id := int64(len(g.Labels))
	g.Labels = append(g.Labels, x)
	g.ids[x] = id
	g.Edges[id] = map[int64]bool{}
	return id
}

// AddEdge adds an edge from x to y, adding the nodes if needed.
func (g *LGraph[T]) AddEdge(x, y T) {
	from := g.AddNode(x)
	to := g.AddNode(y)
	g.Edges[from][to] = true
}

// ID returns the id of the node labelled x, and false if there is no such node.
func (g *LGraph[T]) ID(x T) (int64, bool) {
	id, ok := g.ids[x]
	return id, ok
}

// Successors returns the ids of the successors of node v in increasing order.
func (g *LGraph[T]) Successors(v int64) []int64 {
	var succs []int64
	for w := range g.Edges[v] {
		succs = append(succs, w)
	}
	sort.Slice(succs, func(i, j int) bool { return succs[i] < succs[j] })
	return succs
}

// Order implements the order of the graph.Iterator interface for the LGraph
func (g *LGraph[T]) Order() int {
	return len(g.Labels)
}

// Visit implements the graph.Iterator interface for the LGraph
func (g *LGraph[T]) Visit(v int, do func(w int, c int64) (skip bool)) (aborted bool) {
	for _, w := range g.Successors(int64(v)) {
		if do(int(w), 1) {
			return true
		}
	}
	return false
}
