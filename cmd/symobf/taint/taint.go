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

// Package taint implements the taint sub-command: it lists the instructions that depend on function arguments.
package taint

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/awslabs/ar-go-symobf/analysis"
	"github.com/awslabs/ar-go-symobf/analysis/symobf"
	"github.com/awslabs/ar-go-symobf/cmd/symobf/tools"
	"github.com/awslabs/ar-go-symobf/internal/formatutil"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"
)

const usage = ` Find the instructions whose outcome depends on function arguments.
Usage:
  symobf taint [options] <package path(s)>
Examples:
  % symobf taint -config config.yaml package...
  % symobf taint -target-kinds compare,store -report ./...
`

// Flags represents the parsed flags for the taint sub-command.
type Flags struct {
	tools.CommonFlags
	helper      string
	targetKinds string
	report      bool
}

// NewFlags returns the parsed flags for the taint sub-command with args.
func NewFlags(args []string) (Flags, error) {
	flags := tools.NewUnparsedCommonFlags("taint")
	helper := flags.FlagSet.String("helper", "", "override the helper function of the config")
	targetKinds := flags.FlagSet.String("target-kinds", "", "override the target kinds of the config (comma-separated)")
	report := flags.FlagSet.Bool("report", false, "write the targets to a report in the reports directory")
	tools.SetUsage(flags.FlagSet, usage)
	common, err := flags.Parse(args)
	if err != nil {
		return Flags{}, err
	}

	return Flags{
		CommonFlags: common,
		helper:      *helper,
		targetKinds: *targetKinds,
		report:      *report,
	}, nil
}

// Run runs the taint analysis with flags.
func Run(flags Flags) error {
	logger := log.New(os.Stdout, "", log.Flags())

	cfg, err := tools.LoadConfig(flags.CommonFlags)
	if err != nil {
		return err
	}

	// Override config parameters with command-line parameters
	if flags.helper != "" {
		cfg.HelperFunction = flags.helper
	}
	if flags.targetKinds != "" {
		kinds, err := symobf.ParseKinds(flags.targetKinds)
		if err != nil {
			return err
		}
		cfg.TargetKinds = kinds
	}
	if flags.report && !cfg.ReportTargets {
		if cfg.ReportsDir == "" {
			return fmt.Errorf("-report requires reports-dir to be set in the config")
		}
		if err := os.MkdirAll(cfg.ReportsDir, 0750); err != nil {
			return fmt.Errorf("could not create directory %s: %w", cfg.ReportsDir, err)
		}
		cfg.ReportTargets = true
	}

	logger.Print(formatutil.Faint("symobf taint - " + analysis.Version))
	logger.Print(formatutil.Faint("Reading sources"))

	loaded, err := analysis.LoadProgram(tools.PackagesConfig(flags.WithTest), "", ssa.InstantiateGenerics,
		flags.FlagSet.Args())
	if err != nil {
		return fmt.Errorf("could not load program: %w", err)
	}
	if flags.Verbose {
		stats := analysis.SSAStatistics(ssautil.AllFunctions(loaded.Program))
		logger.Printf("Program has %d functions (%d with a body), %d blocks and %d instructions",
			stats.NumberOfFunctions, stats.NumberOfNonemptyFunctions, stats.NumberOfBlocks,
			stats.NumberOfInstructions)
	}

	start := time.Now()
	result, err := symobf.Analyze(cfg, loaded.Program, loaded.Directives)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	logger.Printf("Analysis took %3.4f s", time.Since(start).Seconds())

	Report(os.Stdout, result)
	return nil
}

// Report writes the targets of result and a summary of its statistics to w
func Report(w io.Writer, result symobf.Result) {
	fmt.Fprintln(w, strings.Repeat("*", 80))
	if len(result.Targets) == 0 {
		fmt.Fprintf(w, "%s\n\t\t%s\n", formatutil.Bold("RESULT:"),
			formatutil.Green("No instruction depends on function arguments"))
	} else {
		fmt.Fprintf(w, "%s\n\t\t%s\n", formatutil.Bold("RESULT:"),
			formatutil.Red(fmt.Sprintf("%d instructions depend on function arguments", len(result.Targets))))
	}
	for _, t := range result.Targets {
		fmt.Fprintf(w, "%s in %s:\n\t[SSA] %s\n\t[POSITION] %s\n\t[REWRITE] %s\n",
			formatutil.Yellow(t.Kind),
			formatutil.Cyan(formatutil.Sanitize(t.Function)),
			formatutil.Sanitize(t.Instruction),
			t.Position, // safe %s (position string)
			t.Helper)
	}
	if result.Ignored > 0 {
		fmt.Fprintf(w, "%s\n", formatutil.Faint(fmt.Sprintf("%d targets ignored by directives", result.Ignored)))
	}

	s := result.Stats
	fmt.Fprintf(w, "Functions: %d, tainted values: %d, tainted instructions: %d, cycles: %d\n",
		s.Functions, s.TaintedValues, s.TaintedInstructions, s.Cycles)
	kinds := maps.Keys(s.Kinds)
	slices.Sort(kinds)
	for _, kind := range kinds {
		fmt.Fprintf(w, "  %-24s %d\n", kind, s.Kinds[kind])
	}
	if result.ReportFile != "" {
		fmt.Fprintf(w, "Targets written to %s\n", result.ReportFile)
	}
}
