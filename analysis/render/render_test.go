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

package render

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/awslabs/ar-go-symobf/analysis/config"
	"github.com/awslabs/ar-go-symobf/analysis/lang"
	"github.com/awslabs/ar-go-symobf/analysis/symobf"
	"github.com/awslabs/ar-go-symobf/internal/analysistest"
	"golang.org/x/tools/go/ssa"
	"gonum.org/v1/gonum/graph/encoding"
)

const source = `package main

func sink(x int) {}

func flow(p *int, k int) bool {
	*p = *p + k
	go sink(k)
	return *p > k
}

func main() {
	n := 0
	println(flow(&n, 1))
}
`

func analyzeFunction(t *testing.T, name string) symobf.FunctionResult {
	l := analysistest.BuildSource(t, source)
	logger := config.NewLogGroup(config.NewDefault())
	logger.SetAllOutput(io.Discard)
	return symobf.AnalyzeFunction(logger, l.Func(t, name), symobf.OptionsFromConfig(config.NewDefault()))
}

func hasAttribute(n *Node, key, value string) bool {
	for _, a := range n.Attributes() {
		if a == (encoding.Attribute{Key: key, Value: value}) {
			return true
		}
	}
	return false
}

func TestFlowGraphNodes(t *testing.T) {
	res := analyzeFunction(t, "flow")
	g := NewFlowGraph(res)

	// every tainted value, and the go instruction which produces no value
	if g.Nodes().Len() != len(res.Store.Values())+1 {
		t.Errorf("expected %d nodes, got %d", len(res.Store.Values())+1, g.Nodes().Len())
	}
	for _, seed := range res.Store.Seeds() {
		n, ok := g.NodeOf(seed)
		if !ok || !hasAttribute(n, "shape", "box") {
			t.Errorf("seed %s should be drawn as a box", seed)
		}
	}
	if len(res.Targets) != 1 {
		t.Fatalf("expected one target in flow, got %v", res.Targets)
	}
	n, ok := g.NodeOf(lang.NewInstr(res.Targets[0].Instr).Result())
	if !ok || !hasAttribute(n, "color", "red") {
		t.Errorf("the result of the comparison should be red")
	}
}

func TestFlowGraphEdges(t *testing.T) {
	res := analyzeFunction(t, "flow")
	g := NewFlowGraph(res)
	fn := res.Function
	p, _ := g.NodeOf(lang.NewValue(fn.Params[0]))
	k, _ := g.NodeOf(lang.NewValue(fn.Params[1]))
	if p == nil || k == nil {
		t.Fatalf("parameters should be nodes of the graph")
	}

	var spawn *Node
	for _, b := range fn.Blocks {
		for _, instr := range b.Instrs {
			if _, isGo := instr.(*ssa.Go); isGo {
				spawn, _ = g.NodeOf(lang.NewInstr(instr))
			}
		}
	}
	if spawn == nil || !hasAttribute(spawn, "shape", "diamond") {
		t.Fatalf("the go instruction should be a diamond node")
	}
	if e, ok := g.Edge(k.ID(), spawn.ID()).(Edge); !ok || e.Kind.String() != "invoke" {
		t.Errorf("k should flow to the go instruction")
	}

	// the increment stores back in p
	if g.To(p.ID()).Len() == 0 {
		t.Errorf("p should have an incoming flow from the store")
	}
	for _, n := range []*Node{p, k, spawn} {
		if g.HasEdgeFromTo(n.ID(), n.ID()) {
			t.Errorf("node %s has a self edge", n.DOTID())
		}
	}
}

func TestWriteGraphviz(t *testing.T) {
	res := analyzeFunction(t, "flow")
	var buf bytes.Buffer
	if err := WriteGraphviz(res, &buf); err != nil {
		t.Fatalf("failed to write graph: %v", err)
	}
	out := buf.String()
	for _, s := range []string{`strict digraph "example.com/main.flow" {`, "shape=box", "shape=diamond",
		"[label=invoke]", "[label=store]", "color=red", " -> "} {
		if !strings.Contains(out, s) {
			t.Errorf("output should contain %q:\n%s", s, out)
		}
	}
}

func TestGraphvizToFile(t *testing.T) {
	res := analyzeFunction(t, "flow")
	filename := filepath.Join(t.TempDir(), "flow.dot")
	if err := GraphvizToFile([]symobf.FunctionResult{res, res}, filename); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	b, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}
	if c := strings.Count(string(b), "strict digraph"); c != 2 {
		t.Errorf("expected 2 graphs in the file, got %d", c)
	}
}

func TestSelectFunctions(t *testing.T) {
	flow := analyzeFunction(t, "flow")
	main := analyzeFunction(t, "main")
	res := symobf.Result{Functions: []symobf.FunctionResult{flow, main}}
	if s := SelectFunctions(res, "flow"); len(s) != 1 || s[0].Function != flow.Function {
		t.Errorf("short name should select flow, got %v", s)
	}
	if s := SelectFunctions(res, "example.com/main.main"); len(s) != 1 || s[0].Function != main.Function {
		t.Errorf("full name should select main, got %v", s)
	}
	if s := SelectFunctions(res, "other"); len(s) != 0 {
		t.Errorf("no function should be selected, got %v", s)
	}
}
