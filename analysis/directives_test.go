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

package analysis

import (
	"go/ast"
	"go/token"
	"testing"

	"github.com/awslabs/ar-go-symobf/analysis/lang"
	"github.com/awslabs/ar-go-symobf/internal/analysistest"
	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"
)

const directivesSource = `package main

func check(a, b int) bool {
	//symobf:ignore
	if a == b {
		return true
	}
	return a < b //symobf:ignore
}

// symobf:unknown is not a directive
func other(a int) bool {
	return a > 0
}

func main() {}
`

func TestFindDirectives(t *testing.T) {
	l := analysistest.BuildSource(t, directivesSource)
	d := FindDirectives(l.Fset, []*ast.File{l.File})
	if len(d) != 2 {
		t.Fatalf("expected 2 directives, got %v", d)
	}
	for _, line := range []int{4, 8} {
		if dir, ok := d[DirectivePos{Filename: "main.go", Line: line}]; !ok || dir.Kind != DirectiveIgnore {
			t.Errorf("expected an ignore directive on line %d", line)
		}
	}

	ignored := map[int]bool{5: true, 8: true, 4: true, 6: false, 13: false, 12: false}
	for line, expected := range ignored {
		if got := d.IsIgnored(token.Position{Filename: "main.go", Line: line, Column: 1}); got != expected {
			t.Errorf("line %d: expected ignored = %v, got %v", line, expected, got)
		}
	}
	if d.IsIgnored(token.Position{}) {
		t.Errorf("invalid positions are never ignored")
	}
	if d.IsIgnored(token.Position{Filename: "other.go", Line: 5, Column: 1}) {
		t.Errorf("directives only apply to their own file")
	}
}

func TestComparisonPositions(t *testing.T) {
	l := analysistest.BuildSource(t, directivesSource)
	d := FindDirectives(l.Fset, []*ast.File{l.File})
	ignored := map[string][]bool{}
	for _, name := range []string{"check", "other"} {
		lang.IterateInstructions(l.Func(t, name), func(_ int, instr ssa.Instruction) {
			if _, ok := instr.(*ssa.BinOp); ok {
				ignored[name] = append(ignored[name], d.IsIgnored(lang.InstrPosition(instr)))
			}
		})
	}
	if c := ignored["check"]; len(c) != 2 || !c[0] || !c[1] {
		t.Errorf("both comparisons of check should be ignored, got %v", c)
	}
	if o := ignored["other"]; len(o) != 1 || o[0] {
		t.Errorf("the comparison of other should not be ignored, got %v", o)
	}
}

func TestSSAStatistics(t *testing.T) {
	l := analysistest.BuildSource(t, directivesSource)
	stats := SSAStatistics(ssautil.AllFunctions(l.Prog))
	if stats.NumberOfNonemptyFunctions < 3 || stats.NumberOfFunctions < stats.NumberOfNonemptyFunctions {
		t.Errorf("expected at least the 3 functions of the source, got %+v", stats)
	}
	if stats.NumberOfBlocks < 5 || stats.NumberOfInstructions < stats.NumberOfBlocks {
		t.Errorf("unexpected block and instruction counts %+v", stats)
	}
}
