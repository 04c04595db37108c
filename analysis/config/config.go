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

package config

import (
	"fmt"
	"os"
	"path"
	"regexp"
	"strings"

	"github.com/awslabs/ar-go-symobf/analysis/ir"
	"github.com/awslabs/ar-go-symobf/internal/funcutil"
	"gopkg.in/yaml.v3"
)

var (
	// The global config file
	configFile string
)

// SetGlobalConfig sets the global config filename
func SetGlobalConfig(filename string) {
	configFile = filename
}

// LoadGlobal loads the config file that has been set by SetGlobalConfig
func LoadGlobal() (*Config, error) {
	return Load(configFile)
}

// Config contains the options of the analysis and the description of the rewrite targets.
// If some field is not defined in the config file, it will have its default value from NewDefault.
// private fields are not populated from a yaml file, but computed after initialization
type Config struct {
	Options `yaml:"options"`

	sourceFile string

	// if the PkgFilter is specified
	pkgFilterRegex *regexp.Regexp

	// TargetKinds lists the kinds of tainted instructions that are reported as rewrite targets. Defaults to
	// comparisons.
	TargetKinds []ir.Kind `yaml:"target-kinds"`

	// HelperFunction is the name of the external function a rewrite of the targets would call
	HelperFunction string `yaml:"helper-function"`

	// SeedFreeVars specifies whether the free variables of closures are taint sources, in addition to the
	// parameters.
	SeedFreeVars bool `yaml:"seed-free-vars"`
}

// Options are the general options of the tool
type Options struct {
	// ReportsDir is the directory where the reports will be stored. If the config file does not specify it but sets
	// ReportTargets, a temporary directory is created next to the config file.
	ReportsDir string `yaml:"reports-dir"`

	// PkgFilter restricts the analysis to the functions whose package path matches the filter. The filter is a
	// regex if it compiles, a prefix otherwise.
	PkgFilter string `yaml:"pkg-filter"`

	// ReportTargets specifies whether the rewrite targets should be written to a targets-*.yaml file in ReportsDir
	ReportTargets bool `yaml:"report-targets"`

	// LogLevel controls the verbosity of the tool
	LogLevel int `yaml:"log-level"`

	// SilenceWarn suppresses warnings
	SilenceWarn bool `yaml:"silence-warn"`

	// ExcludePaths are the files (ending in .go) and directories whose functions are not analysed. Relative paths
	// are relative to the config file.
	ExcludePaths []string `yaml:"exclude-paths"`
}

// NewDefault returns a default config: comparisons are targets, they would be replaced by calls to MatrixMult.
func NewDefault() *Config {
	return &Config{
		sourceFile:     "",
		TargetKinds:    []ir.Kind{ir.KindCompare},
		HelperFunction: DefaultHelperFunction,
		SeedFreeVars:   false,
		Options: Options{
			ReportsDir:    "",
			PkgFilter:     "",
			ReportTargets: false,
			LogLevel:      int(InfoLevel),
			SilenceWarn:   false,
		},
	}
}

// Load reads a configuration from a file
func Load(filename string) (*Config, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}
	cfg, err := Parse(b)
	if err != nil {
		return nil, err
	}
	cfg.sourceFile = filename
	for i, p := range cfg.ExcludePaths {
		if !path.IsAbs(p) {
			cfg.ExcludePaths[i] = cfg.RelPath(p)
		}
	}

	if cfg.ReportTargets {
		if err := setReportsDir(cfg, filename); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// Parse reads a configuration from the yaml contents b. No report directory is created.
func Parse(b []byte) (*Config, error) {
	cfg := NewDefault()
	// a config file that lists target kinds replaces the default list
	cfg.TargetKinds = nil
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal config file: %w", err)
	}

	// If logLevel has not been specified (i.e. it is 0) set the default to Info
	if cfg.LogLevel == 0 {
		cfg.LogLevel = int(InfoLevel)
	}
	if cfg.LogLevel < int(ErrLevel) || cfg.LogLevel > int(TraceLevel) {
		return nil, fmt.Errorf("invalid log-level %d, must be between %d and %d", cfg.LogLevel, ErrLevel, TraceLevel)
	}

	if len(cfg.TargetKinds) == 0 {
		cfg.TargetKinds = []ir.Kind{ir.KindCompare}
	}

	if cfg.HelperFunction == "" {
		cfg.HelperFunction = DefaultHelperFunction
	}

	if cfg.PkgFilter != "" {
		r, err := regexp.Compile(cfg.PkgFilter)
		if err == nil {
			cfg.pkgFilterRegex = r
		}
	}
	return cfg, nil
}

func setReportsDir(c *Config, filename string) error {
	if c.ReportsDir == "" {
		tmpdir, err := os.MkdirTemp(path.Dir(filename), "*-report")
		if err != nil {
			return fmt.Errorf("could not create temp dir for reports: %w", err)
		}
		c.ReportsDir = tmpdir
	} else {
		err := os.MkdirAll(c.ReportsDir, 0750)
		if err != nil {
			return fmt.Errorf("could not create directory %s: %w", c.ReportsDir, err)
		}
	}
	return nil
}

// RelPath returns filename path relative to the config source file
func (c Config) RelPath(filename string) string {
	return path.Join(path.Dir(c.sourceFile), filename)
}

// MatchPkgFilter returns true if the package name pkgname matches the package filter set in the config file. If no
// package filter has been set in the config file, the regex will match anything and return true. This function safely
// considers the case where a filter has been specified by the user, but it could not be compiled to a regex. The safe
// case is to check whether the package filter string is a prefix of the pkgname
func (c Config) MatchPkgFilter(pkgname string) bool {
	if c.pkgFilterRegex != nil {
		return c.pkgFilterRegex.MatchString(pkgname)
	} else if c.PkgFilter != "" {
		return strings.HasPrefix(pkgname, c.PkgFilter)
	} else {
		return true
	}
}

// IsTargetKind returns true if tainted instructions of kind k are rewrite targets
func (c Config) IsTargetKind(k ir.Kind) bool {
	return funcutil.Contains(c.TargetKinds, k)
}

// Verbose returns true is the configuration verbosity setting is larger than Info (i.e. Debug or Trace)
func (c Config) Verbose() bool {
	return c.LogLevel >= int(DebugLevel)
}
