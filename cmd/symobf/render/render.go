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

// Package render implements the render sub-command: it writes the taint flow graph of functions in graphviz format.
package render

import (
	"fmt"
	"log"
	"os"

	"github.com/awslabs/ar-go-symobf/analysis"
	"github.com/awslabs/ar-go-symobf/analysis/render"
	"github.com/awslabs/ar-go-symobf/analysis/symobf"
	"github.com/awslabs/ar-go-symobf/cmd/symobf/tools"
	"github.com/awslabs/ar-go-symobf/internal/formatutil"
	"golang.org/x/tools/go/ssa"
)

const usage = ` Render the taint flow graph of a function in graphviz format.
Usage:
  symobf render [options] -fn <function> <package path(s)>
Examples:
  % symobf render -fn check -o check.dot package...
  % dot -Tsvg check.dot -o check.svg
`

// Flags represents the parsed render sub-command flags.
type Flags struct {
	tools.CommonFlags
	fnName  string
	outFile string
}

// NewFlags returns the parsed render sub-command flags from args.
func NewFlags(args []string) (Flags, error) {
	flags := tools.NewUnparsedCommonFlags("render")
	fnName := flags.FlagSet.String("fn", "", "name of the function to render, short or fully qualified")
	outFile := flags.FlagSet.String("o", "", "output file for the graph (defaults to <function>.dot)")
	tools.SetUsage(flags.FlagSet, usage)
	common, err := flags.Parse(args)
	if err != nil {
		return Flags{}, err
	}
	if *fnName == "" {
		return Flags{}, fmt.Errorf("missing -fn flag, the function to render")
	}

	return Flags{
		CommonFlags: common,
		fnName:      *fnName,
		outFile:     *outFile,
	}, nil
}

// Run runs the analysis and renders the selected functions with flags.
func Run(flags Flags) error {
	logger := log.New(os.Stdout, "", log.Flags())

	cfg, err := tools.LoadConfig(flags.CommonFlags)
	if err != nil {
		return err
	}
	// the render command does not write reports
	cfg.ReportTargets = false

	logger.Print(formatutil.Faint("Reading sources"))
	loaded, err := analysis.LoadProgram(tools.PackagesConfig(flags.WithTest), "", ssa.InstantiateGenerics,
		flags.FlagSet.Args())
	if err != nil {
		return fmt.Errorf("could not load program: %w", err)
	}

	result, err := symobf.Analyze(cfg, loaded.Program, loaded.Directives)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	selected := render.SelectFunctions(result, flags.fnName)
	if len(selected) == 0 {
		return fmt.Errorf("no function named %s in the analysed functions", flags.fnName)
	}

	filename := OutputFile(flags.fnName, flags.outFile)
	logger.Printf("Writing %d flow graphs to %s", len(selected), filename)
	if err := render.GraphvizToFile(selected, filename); err != nil {
		return fmt.Errorf("could not render %s: %w", flags.fnName, err)
	}
	return nil
}

// OutputFile returns the file the graphs of fnName are written to: outFile if set, otherwise a file named after the
// function in the current directory.
func OutputFile(fnName string, outFile string) string {
	if outFile != "" {
		return outFile
	}
	return formatutil.SafeFilename(fnName) + ".dot"
}
