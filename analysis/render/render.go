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

// Package render writes the taint flow graph of an analysed function in the graphviz format.
package render

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/awslabs/ar-go-symobf/analysis/ir"
	"github.com/awslabs/ar-go-symobf/analysis/lang"
	"github.com/awslabs/ar-go-symobf/analysis/symobf"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"
)

// A Node of the flow graph is a tainted value, or a tainted instruction that produces no value.
type Node struct {
	id    int64
	value ir.Value
	attrs []encoding.Attribute
}

// ID returns the graph ID of the node
func (n *Node) ID() int64 { return n.id }

// DOTID returns the identifier of the node in the dot output
func (n *Node) DOTID() string { return fmt.Sprintf("n%d", n.id) }

// Value returns the tainted value or instruction represented by the node
func (n *Node) Value() ir.Value { return n.value }

// Attributes returns the graphviz attributes of the node
func (n *Node) Attributes() []encoding.Attribute { return n.attrs }

// An Edge is a flow from a tainted value through an instruction of kind Kind
type Edge struct {
	F, T graph.Node
	Kind ir.Kind
}

func (e Edge) From() graph.Node { return e.F }

func (e Edge) To() graph.Node { return e.T }

func (e Edge) ReversedEdge() graph.Edge { return Edge{F: e.T, T: e.F, Kind: e.Kind} }

// Attributes labels the edge with the kind of the instruction
func (e Edge) Attributes() []encoding.Attribute {
	return []encoding.Attribute{{Key: "label", Value: e.Kind.String()}}
}

// FlowGraph is the taint flow graph of one function. Seeds are drawn as boxes, the results of targets in red.
type FlowGraph struct {
	*simple.DirectedGraph
	name  string
	nodes map[ir.Value]*Node
}

// NewFlowGraph builds the flow graph of the function analysed in res. The edges are all the flows between tainted
// values, plus an edge to each tainted instruction that produced no value. Flows from a value to itself are dropped.
func NewFlowGraph(res symobf.FunctionResult) *FlowGraph {
	g := &FlowGraph{
		DirectedGraph: simple.NewDirectedGraph(),
		name:          res.Function.String(),
		nodes:         map[ir.Value]*Node{},
	}
	store := res.Store
	targets := map[ir.Value]bool{}
	for _, t := range res.Targets {
		targets[lang.NewInstr(t.Instr).Result()] = true
	}
	seeds := map[ir.Value]bool{}
	for _, s := range store.Seeds() {
		seeds[s] = true
	}

	for _, v := range store.Values() {
		n := g.addNode(v, v.String())
		if seeds[v] {
			n.attrs = append(n.attrs, encoding.Attribute{Key: "shape", Value: "box"})
		}
		if targets[v] {
			n.attrs = append(n.attrs, encoding.Attribute{Key: "color", Value: "red"})
		}
	}
	for _, e := range store.Flows() {
		g.addEdge(e.From, e.To, e.Instr.Kind())
	}
	for _, e := range store.Edges() {
		if e.To != nil {
			continue
		}
		if _, ok := g.nodes[e.Instr]; !ok {
			n := g.addNode(e.Instr, e.Instr.String())
			n.attrs = append(n.attrs, encoding.Attribute{Key: "shape", Value: "diamond"})
		}
		g.addEdge(e.From, e.Instr, e.Instr.Kind())
	}
	return g
}

func (g *FlowGraph) addNode(v ir.Value, label string) *Node {
	n := &Node{
		id:    int64(len(g.nodes)),
		value: v,
		attrs: []encoding.Attribute{{Key: "label", Value: label}},
	}
	g.nodes[v] = n
	g.AddNode(n)
	return n
}

func (g *FlowGraph) addEdge(from ir.Value, to ir.Value, kind ir.Kind) {
	f, okFrom := g.nodes[from]
	t, okTo := g.nodes[to]
	if !okFrom || !okTo || f == t {
		return
	}
	g.SetEdge(Edge{F: f, T: t, Kind: kind})
}

// DOTID returns the name of the graph in the dot output
func (g *FlowGraph) DOTID() string { return g.name }

// NodeOf returns the node of value v, if v is in the graph
func (g *FlowGraph) NodeOf(v ir.Value) (*Node, bool) {
	n, ok := g.nodes[v]
	return n, ok
}

// WriteGraphviz writes a graphviz representation of the flow graph of res to w
func WriteGraphviz(res symobf.FunctionResult, w io.Writer) error {
	b, err := dot.Marshal(NewFlowGraph(res), "", "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal flow graph of %s: %w", res.Function, err)
	}
	if _, err := w.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("error while writing graph: %w", err)
	}
	return nil
}

// GraphvizToFile writes the flow graphs of all the results in filename, one graph per function
func GraphvizToFile(results []symobf.FunctionResult, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not create file: %w", err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	for _, res := range results {
		if err := WriteGraphviz(res, w); err != nil {
			return err
		}
	}
	return w.Flush()
}

// SelectFunctions returns the results of res for the functions named name. A name matches either the full name of
// a function, e.g. "(*example.com/p.T).Check", or its short name, e.g. "Check".
func SelectFunctions(res symobf.Result, name string) []symobf.FunctionResult {
	var selected []symobf.FunctionResult
	for _, r := range res.Functions {
		if r.Function.String() == name || r.Function.Name() == name {
			selected = append(selected, r)
		}
	}
	return selected
}
