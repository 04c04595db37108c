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
	"runtime"
	"sort"
	"time"

	"github.com/awslabs/ar-go-symobf/analysis"
	"github.com/awslabs/ar-go-symobf/analysis/config"
	"github.com/awslabs/ar-go-symobf/analysis/ir"
	"github.com/awslabs/ar-go-symobf/analysis/lang"
	"github.com/awslabs/ar-go-symobf/analysis/taint"
	"github.com/awslabs/ar-go-symobf/internal/analysisutil"
	"github.com/awslabs/ar-go-symobf/internal/funcutil"
	"github.com/awslabs/ar-go-symobf/internal/graphutil"
	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"
)

// Options control the analysis of a function
type Options struct {
	// TargetKinds are the kinds of the tainted instructions that are targets
	TargetKinds []ir.Kind
	// Helper is the function that would replace the targets
	Helper string
	// SeedFreeVars seeds the free variables of closures in addition to their parameters
	SeedFreeVars bool
}

// OptionsFromConfig returns the options set by cfg
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		TargetKinds:  cfg.TargetKinds,
		Helper:       cfg.HelperFunction,
		SeedFreeVars: cfg.SeedFreeVars,
	}
}

// FunctionResult is the result of the analysis of one function
type FunctionResult struct {
	// Function is the function analysed
	Function *ssa.Function
	// Store is the taint store at fixpoint
	Store *taint.Store
	// Targets are the tainted instructions of a target kind, in the order they were tainted
	Targets []Target
	// Cycles are the cycles of the flow graph between tainted values
	Cycles [][]ir.Value
	// Stats are the statistics of the function
	Stats Stats
}

// AnalyzeFunction seeds the parameters of fn, propagates taint to a fixpoint and selects the targets among the
// tainted instructions. fn must have a body.
func AnalyzeFunction(logger *config.LogGroup, fn *ssa.Function, opts Options) FunctionResult {
	engine := taint.NewEngine(logger)
	engine.SeedAll(lang.Params(fn))
	if opts.SeedFreeVars {
		engine.SeedAll(lang.FreeVars(fn))
	}
	engine.Propagate()

	// the store is complete: targets are only selected after the fixpoint
	store := engine.Store()
	res := FunctionResult{Function: fn, Store: store}
	for _, instr := range store.Instructions() {
		if !funcutil.Contains(opts.TargetKinds, instr.Kind()) {
			continue
		}
		if li, ok := instr.(lang.Instr); ok {
			res.Targets = append(res.Targets, newTarget(fn, li, opts.Helper))
		}
	}
	g := flowGraph(store)
	res.Cycles = graphutil.CyclicComponents(g)
	res.Stats = newStats(store, len(res.Targets), len(res.Cycles))
	if logger != nil {
		logger.Debugf("%s: %d tainted instructions, %d targets", fn.String(), res.Stats.TaintedInstructions,
			res.Stats.Targets)
		if logger.Level() >= config.TraceLevel {
			logger.Tracef("%s: flow graph %+v", fn.String(), graphutil.Stats(g))
		}
	}
	return res
}

// FlowCycles returns the strongly connected components of the flows between the tainted values of store that
// contain a cycle. In SSA form, taint can only come back to a value through memory.
func FlowCycles(store *taint.Store) [][]ir.Value {
	return graphutil.CyclicComponents(flowGraph(store))
}

func flowGraph(store *taint.Store) *graphutil.LGraph[ir.Value] {
	g := graphutil.NewLGraph[ir.Value]()
	for _, v := range store.Values() {
		g.AddNode(v)
	}
	for _, e := range store.Flows() {
		g.AddEdge(e.From, e.To)
	}
	return g
}

// Result is the result of the analysis of a program
type Result struct {
	// Functions are the results per function, sorted by function name
	Functions []FunctionResult
	// Targets are the targets of all functions, without the ignored ones
	Targets []Target
	// Ignored is the number of targets dropped because of an ignore directive
	Ignored int
	// Stats sums the statistics of all functions
	Stats Stats
	// ReportFile is the file the targets have been written to, if any
	ReportFile string
}

// Analyze runs the analysis on every function of prog that has a body, whose package matches the package filter
// of cfg and whose file is not excluded. Targets on lines with an ignore directive are dropped. If cfg requires it,
// the targets are written to a report in the reports directory.
func Analyze(cfg *config.Config, prog *ssa.Program, directives analysis.Directives) (Result, error) {
	logger := config.NewLogGroup(cfg)
	numRoutines := runtime.NumCPU() - 1
	if numRoutines <= 0 {
		numRoutines = 1
	}

	exclude := analysisutil.MakeAbsolute(cfg.ExcludePaths)
	functions := funcutil.Filter(sortedFunctions(prog), func(fn *ssa.Function) bool {
		return shouldAnalyze(cfg, fn) && !analysisutil.IsExcluded(prog.Fset, fn, exclude)
	})
	if len(functions) == 0 {
		logger.Warnf("No function to analyse, check the package filter %q", cfg.PkgFilter)
	}
	logger.Infof("Analysing %d functions ...", len(functions))
	start := time.Now()
	opts := OptionsFromConfig(cfg)
	results := funcutil.MapParallel(functions, func(fn *ssa.Function) FunctionResult {
		return AnalyzeFunction(logger, fn, opts)
	}, numRoutines)
	logger.Infof("Analysis done (%.2f s).", time.Since(start).Seconds())

	res := Result{Functions: results, Stats: Stats{Kinds: map[string]int{}}}
	for _, r := range results {
		res.Stats.Add(r.Stats)
		for _, t := range r.Targets {
			if directives.IsIgnored(t.Pos) {
				logger.Debugf("Ignoring target %s", t)
				res.Ignored++
				continue
			}
			res.Targets = append(res.Targets, t)
		}
	}
	res.Stats.Targets = len(res.Targets)

	if cfg.ReportTargets {
		filename, err := WriteReport(cfg.ReportsDir, res)
		if err != nil {
			return res, fmt.Errorf("failed to write targets report: %w", err)
		}
		logger.Infof("Targets written to %s", filename)
		res.ReportFile = filename
	}
	return res, nil
}

func sortedFunctions(prog *ssa.Program) []*ssa.Function {
	var functions []*ssa.Function
	for fn := range ssautil.AllFunctions(prog) {
		functions = append(functions, fn)
	}
	sort.Slice(functions, func(i, j int) bool { return functions[i].String() < functions[j].String() })
	return functions
}

// shouldAnalyze returns true if fn has a body, is not synthesized by the SSA builder, and belongs to a package
// matched by the package filter. Instances of generic functions take the package of their origin.
func shouldAnalyze(cfg *config.Config, fn *ssa.Function) bool {
	if lang.IsExternal(fn) || fn.Synthetic != "" {
		return false
	}
	pkg := fn.Pkg
	if pkg == nil && fn.Origin() != nil {
		pkg = fn.Origin().Pkg
	}
	if pkg == nil {
		return false
	}
	return cfg.MatchPkgFilter(pkg.Pkg.Path())
}
