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
	"strings"

	symanalysis "github.com/awslabs/ar-go-symobf/analysis"
	"github.com/awslabs/ar-go-symobf/analysis/config"
	"github.com/awslabs/ar-go-symobf/analysis/ir"
	"github.com/awslabs/ar-go-symobf/analysis/lang"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/buildssa"
)

// Analyzer reports the comparisons that depend on the arguments of their function.
var Analyzer = &analysis.Analyzer{
	Name:     "symobf",
	Doc:      "reports comparisons whose outcome depends on function arguments, candidates for obfuscation",
	Requires: []*analysis.Analyzer{buildssa.Analyzer},
	Run:      run,
}

var (
	helperFlag       = config.DefaultHelperFunction
	targetKindsFlag  = ir.KindCompare.String()
	seedFreeVarsFlag = false
)

func init() {
	Analyzer.Flags.StringVar(&helperFlag, "helper", helperFlag,
		"name of the function that would replace the targets")
	Analyzer.Flags.StringVar(&targetKindsFlag, "target-kinds", targetKindsFlag,
		"comma-separated list of the instruction kinds that are targets")
	Analyzer.Flags.BoolVar(&seedFreeVarsFlag, "seed-free-vars", seedFreeVarsFlag,
		"taint the free variables of closures in addition to their parameters")
}

func run(pass *analysis.Pass) (any, error) {
	ssaInfo := pass.ResultOf[buildssa.Analyzer].(*buildssa.SSA)

	kinds, err := ParseKinds(targetKindsFlag)
	if err != nil {
		return nil, err
	}
	opts := Options{TargetKinds: kinds, Helper: helperFlag, SeedFreeVars: seedFreeVarsFlag}

	// diagnostics are the output of the analyzer: only errors are logged
	cfg := config.NewDefault()
	cfg.LogLevel = int(config.ErrLevel)
	logger := config.NewLogGroup(cfg)

	directives := symanalysis.FindDirectives(pass.Fset, pass.Files)
	for _, fn := range ssaInfo.SrcFuncs {
		if lang.IsExternal(fn) {
			continue
		}
		res := AnalyzeFunction(logger, fn, opts)
		for _, target := range res.Targets {
			if directives.IsIgnored(target.Pos) {
				continue
			}
			pass.Reportf(lang.InstrPos(target.Instr), "%s", target.Message())
		}
	}
	return nil, nil
}

// ParseKinds parses a comma-separated list of kind names
func ParseKinds(s string) ([]ir.Kind, error) {
	var kinds []ir.Kind
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		k, err := ir.ParseKind(name)
		if err != nil {
			return nil, fmt.Errorf("invalid -target-kinds: %w", err)
		}
		kinds = append(kinds, k)
	}
	if len(kinds) == 0 {
		return nil, fmt.Errorf("invalid -target-kinds: no kind in %q", s)
	}
	return kinds, nil
}
