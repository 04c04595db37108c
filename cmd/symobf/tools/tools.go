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

// Package tools contains utility types and functions for the symobf tool frontends.
package tools

import (
	"flag"
	"fmt"
	"go/build"
	"go/token"
	"os"
	"strings"

	"github.com/awslabs/ar-go-symobf/analysis"
	"github.com/awslabs/ar-go-symobf/analysis/config"
	"github.com/awslabs/ar-go-symobf/internal/formatutil"
	"golang.org/x/tools/go/buildutil"
	"golang.org/x/tools/go/packages"
)

// UnparsedCommonFlags represents an unparsed CLI sub-command flags.
type UnparsedCommonFlags struct {
	FlagSet    *flag.FlagSet
	ConfigPath *string
	Verbose    *bool
	WithTest   *bool
	NoColor    *bool
	Exclude    *ExcludePaths
}

// NewUnparsedCommonFlags returns an unparsed flag set with a given name.
// This is useful for creating sub-commands that have the flags -config,
// -verbose, -with-test, -no-color, -exclude and -build-tags but need other flags in addition.
func NewUnparsedCommonFlags(name string) UnparsedCommonFlags {
	cmd := flag.NewFlagSet(name, flag.ContinueOnError)
	configPath := cmd.String("config", "", "config file path for analysis (defaults are used if empty)")
	verbose := cmd.Bool("verbose", false, "verbose printing on standard output")
	withTest := cmd.Bool("with-test", false, "load tests during analysis")
	noColor := cmd.Bool("no-color", false, "do not color the output")
	exclude := &ExcludePaths{}
	cmd.Var(exclude, "exclude", "file or directory whose functions are not analysed (can be repeated)")
	cmd.Var((*buildutil.TagsFlag)(&build.Default.BuildTags), "build-tags", buildutil.TagsFlagDoc)
	return UnparsedCommonFlags{
		FlagSet:    cmd,
		ConfigPath: configPath,
		Verbose:    verbose,
		WithTest:   withTest,
		NoColor:    noColor,
		Exclude:    exclude,
	}
}

// Parse parses args and returns the common flags.
func (u UnparsedCommonFlags) Parse(args []string) (CommonFlags, error) {
	if err := u.FlagSet.Parse(args); err != nil {
		return CommonFlags{}, fmt.Errorf("failed to parse command %s with args %v: %w", u.FlagSet.Name(), args, err)
	}
	if *u.NoColor {
		formatutil.SetColors(false)
	}
	return CommonFlags{
		FlagSet:    u.FlagSet,
		ConfigPath: *u.ConfigPath,
		Verbose:    *u.Verbose,
		WithTest:   *u.WithTest,
		Exclude:    *u.Exclude,
	}, nil
}

// CommonFlags represents a parsed CLI sub-command flags.
// E.g., for the command `symobf taint ...`, "taint" is the sub-command.
type CommonFlags struct {
	FlagSet    *flag.FlagSet
	ConfigPath string
	Verbose    bool
	WithTest   bool
	Exclude    []string
}

// NewCommonFlags returns a parsed flag set with a given name.
// Returns an error if args are invalid.
// Prints cmdUsage along with flag docs as the --help message.
func NewCommonFlags(name string, args []string, cmdUsage string) (CommonFlags, error) {
	flags := NewUnparsedCommonFlags(name)
	SetUsage(flags.FlagSet, cmdUsage)
	return flags.Parse(args)
}

// SetUsage sets cmd's usage (for --help flag) to output the string cmdUsage
// followed by each flag's documentation.
func SetUsage(cmd *flag.FlagSet, cmdUsage string) {
	cmd.Usage = func() {
		fmt.Fprintf(cmd.Output(), "%s\n", cmdUsage)
		fmt.Fprintf(cmd.Output(), "Options:\n")
		cmd.VisitAll(func(f *flag.Flag) {
			fmt.Fprintf(cmd.Output(), "  %s: %s (default: %q)\n", f.Name, f.Usage, f.DefValue)
		})
	}
}

// ExcludePaths represents filepaths to exclude.
type ExcludePaths []string

func (e *ExcludePaths) String() string {
	if e == nil {
		return "[]"
	}
	return fmt.Sprintf("%v", []string(*e))
}

// Set adds value to e.
// This method satisfies the flag.Value interface.
func (e *ExcludePaths) Set(value string) error {
	*e = append(*e, value)
	return nil
}

// LoadConfig loads the config file given by the -config flag. If the flag is empty, the default config is returned.
// The -verbose flag raises the log level to debug, and the -exclude paths are added to the exclude paths of the
// config.
func LoadConfig(flags CommonFlags) (*config.Config, error) {
	cfg := config.NewDefault()
	if flags.ConfigPath != "" {
		config.SetGlobalConfig(flags.ConfigPath)
		loaded, err := config.LoadGlobal()
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", flags.ConfigPath, err)
		}
		cfg = loaded
	}
	if flags.Verbose {
		cfg.LogLevel = int(config.DebugLevel)
	}
	cfg.ExcludePaths = append(cfg.ExcludePaths, flags.Exclude...)
	return cfg, nil
}

// PackagesConfig returns the configuration to load the packages with, honoring the -with-test and -build-tags
// flags.
func PackagesConfig(withTest bool) *packages.Config {
	cfg := &packages.Config{
		Mode:  analysis.PkgLoadMode,
		Tests: withTest,
		Fset:  token.NewFileSet(),
	}
	if len(build.Default.BuildTags) > 0 {
		cfg.BuildFlags = []string{"-tags=" + strings.Join(build.Default.BuildTags, ",")}
	}
	return cfg
}

// Exit prints err with a hint, if there is one, and exits with status 2.
func Exit(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	hint := HintForErrorMessage(err.Error())
	if hint != "" {
		fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
	}
	os.Exit(2)
}
