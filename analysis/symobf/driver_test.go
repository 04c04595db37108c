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
	"go/ast"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/awslabs/ar-go-symobf/analysis"
	"github.com/awslabs/ar-go-symobf/analysis/config"
	"github.com/awslabs/ar-go-symobf/analysis/ir"
	"github.com/awslabs/ar-go-symobf/internal/analysistest"
	"golang.org/x/tools/go/ssa"
)

const source = `package main

type buffer struct {
	data []byte
	n    int
}

func check(b *buffer, k int) bool {
	if b.n > k { // @Target
		return false
	}
	return b.data[0] == 'x' // @Target
}

func count(p *int, limit int) {
	for *p < limit { // @Target
		*p = *p + 1
	}
}

func free() bool {
	x := 4
	return x > 3
}

func main() {
	b := &buffer{}
	println(check(b, 3), free())
	n := 0
	count(&n, 10)
}
`

func silentLogger() *config.LogGroup {
	logger := config.NewLogGroup(config.NewDefault())
	logger.SetAllOutput(io.Discard)
	return logger
}

func defaultOptions() Options {
	return OptionsFromConfig(config.NewDefault())
}

func TestAnalyzeFunctionTargets(t *testing.T) {
	l := analysistest.BuildSource(t, source)
	expected := l.ExpectedTargets()
	found := map[analysistest.LPos]bool{}
	for _, name := range []string{"check", "count", "free", "main"} {
		res := AnalyzeFunction(silentLogger(), l.Func(t, name), defaultOptions())
		for _, target := range res.Targets {
			pos := analysistest.RemoveColumn(target.Pos)
			if !expected[pos] {
				t.Errorf("unexpected target at %s: %s", pos, target.Instruction)
			}
			if target.Kind != ir.KindCompare || target.Helper != config.DefaultHelperFunction {
				t.Errorf("unexpected target %+v", target)
			}
			if target.Function != l.Func(t, name).String() {
				t.Errorf("target %s should be in %s", target, name)
			}
			found[pos] = true
		}
	}
	for pos := range expected {
		if !found[pos] {
			t.Errorf("expected a target at %s", pos)
		}
	}
}

func TestAnalyzeFunctionCycles(t *testing.T) {
	l := analysistest.BuildSource(t, source)
	res := AnalyzeFunction(silentLogger(), l.Func(t, "count"), defaultOptions())
	if len(res.Cycles) != 1 || res.Stats.Cycles != 1 {
		t.Fatalf("the increment of *p should close one cycle, got %v", res.Cycles)
	}
	p := l.Func(t, "count").Params[0]
	if res.Cycles[0][0].Name() != p.Name() {
		t.Errorf("the cycle should start at the parameter p, got %v", res.Cycles[0])
	}
	res = AnalyzeFunction(silentLogger(), l.Func(t, "check"), defaultOptions())
	if len(res.Cycles) != 0 {
		t.Errorf("check has no cycle, got %v", res.Cycles)
	}
}

func TestAnalyzeFunctionWithoutParameters(t *testing.T) {
	l := analysistest.BuildSource(t, source)
	res := AnalyzeFunction(silentLogger(), l.Func(t, "free"), defaultOptions())
	if len(res.Store.Values()) != 0 || len(res.Store.Instructions()) != 0 || len(res.Targets) != 0 {
		t.Errorf("nothing should be tainted in a function without parameters")
	}
}

const closureSource = `package main

func adder(n int) func() bool {
	return func() bool {
		return n > 0
	}
}

func main() {
	println(adder(1)())
}
`

func TestSeedFreeVars(t *testing.T) {
	l := analysistest.BuildSource(t, closureSource)
	anon := l.Func(t, "adder").AnonFuncs[0]
	opts := defaultOptions()
	if res := AnalyzeFunction(silentLogger(), anon, opts); len(res.Targets) != 0 {
		t.Errorf("free variables are not seeded by default, got %v", res.Targets)
	}
	opts.SeedFreeVars = true
	if res := AnalyzeFunction(silentLogger(), anon, opts); len(res.Targets) != 1 {
		t.Errorf("comparison on a seeded free variable should be a target, got %v", res.Targets)
	}
}

func TestTargetKinds(t *testing.T) {
	l := analysistest.BuildSource(t, source)
	opts := defaultOptions()
	opts.TargetKinds = []ir.Kind{ir.KindStore}
	res := AnalyzeFunction(silentLogger(), l.Func(t, "count"), opts)
	if len(res.Targets) != 1 || res.Targets[0].Kind != ir.KindStore {
		t.Fatalf("expected the store to *p as only target, got %v", res.Targets)
	}
	if _, ok := res.Targets[0].Instr.(*ssa.Store); !ok {
		t.Errorf("expected a store, got %s", res.Targets[0].Instr)
	}
	if !strings.HasPrefix(res.Targets[0].Message(), "store depends on function arguments") {
		t.Errorf("unexpected message %q", res.Targets[0].Message())
	}
}

func directivesOf(l analysistest.LoadedSource) analysis.Directives {
	return analysis.FindDirectives(l.Fset, []*ast.File{l.File})
}

func TestAnalyze(t *testing.T) {
	l := analysistest.BuildSource(t, source)
	cfg := config.NewDefault()
	cfg.LogLevel = int(config.ErrLevel)
	res, err := Analyze(cfg, l.Prog, directivesOf(l))
	if err != nil {
		t.Fatalf("analysis failed: %v", err)
	}
	var names []string
	for _, r := range res.Functions {
		names = append(names, r.Function.Name())
	}
	if strings.Join(names, ",") != "check,count,free,main" {
		t.Errorf("functions should be analysed and sorted by name, got %v", names)
	}
	if len(res.Targets) != 3 || res.Stats.Targets != 3 || res.Ignored != 0 {
		t.Errorf("expected 3 targets, got %v", res.Targets)
	}
	if res.Stats.Functions != 4 || res.Stats.Kinds["compare"] != 3 || res.Stats.Cycles != 1 {
		t.Errorf("unexpected statistics %+v", res.Stats)
	}
	if res.ReportFile != "" {
		t.Errorf("no report should be written unless required")
	}
}

func TestAnalyzePackageFilter(t *testing.T) {
	l := analysistest.BuildSource(t, source)
	cfg, err := config.Parse([]byte("options:\n  pkg-filter: example.com/other\n  log-level: 1\n"))
	if err != nil {
		t.Fatalf("could not parse config: %v", err)
	}
	res, err := Analyze(cfg, l.Prog, directivesOf(l))
	if err != nil {
		t.Fatalf("analysis failed: %v", err)
	}
	if len(res.Functions) != 0 || len(res.Targets) != 0 {
		t.Errorf("the filter should exclude every function, got %d", len(res.Functions))
	}
}

const ignoreSource = `package main

func check(a, b int) bool {
	if a < b { //symobf:ignore
		return true
	}
	return a == b
}

func main() {}
`

func TestAnalyzeIgnoreAndReport(t *testing.T) {
	l := analysistest.BuildSource(t, ignoreSource)
	cfg := config.NewDefault()
	cfg.LogLevel = int(config.ErrLevel)
	cfg.ReportTargets = true
	cfg.ReportsDir = t.TempDir()
	res, err := Analyze(cfg, l.Prog, directivesOf(l))
	if err != nil {
		t.Fatalf("analysis failed: %v", err)
	}
	if res.Ignored != 1 || len(res.Targets) != 1 {
		t.Fatalf("expected one ignored target and one target, got %d and %v", res.Ignored, res.Targets)
	}
	if filepath.Dir(res.ReportFile) != cfg.ReportsDir {
		t.Fatalf("report %q should be in %s", res.ReportFile, cfg.ReportsDir)
	}
	if _, err := os.Stat(res.ReportFile); err != nil {
		t.Fatalf("report was not written: %v", err)
	}
	report, err := ReadReport(res.ReportFile)
	if err != nil {
		t.Fatalf("could not read report: %v", err)
	}
	if len(report.Targets) != 1 || report.Ignored != 1 {
		t.Fatalf("unexpected report %+v", report)
	}
	target := report.Targets[0]
	if target.Kind != ir.KindCompare || target.Helper != "MatrixMult" || target.Function != "example.com/main.check" {
		t.Errorf("unexpected target in report %+v", target)
	}
	if !strings.HasPrefix(target.Position, "main.go:7:") {
		t.Errorf("target should be on line 7, got %s", target.Position)
	}
}

func TestParseKinds(t *testing.T) {
	kinds, err := ParseKinds("compare, binary-op,")
	if err != nil || len(kinds) != 2 || kinds[0] != ir.KindCompare || kinds[1] != ir.KindBinaryOp {
		t.Errorf("unexpected kinds %v, %v", kinds, err)
	}
	if _, err := ParseKinds("compare,teleport"); err == nil {
		t.Errorf("unknown kinds should be rejected")
	}
	if _, err := ParseKinds(" , "); err == nil {
		t.Errorf("an empty list should be rejected")
	}
}
