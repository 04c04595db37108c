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

package tools

import (
	"errors"
	"flag"
	"go/build"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/awslabs/ar-go-symobf/analysis/config"
	"github.com/awslabs/ar-go-symobf/analysis/ir"
)

func TestNewCommonFlags(t *testing.T) {
	flags, err := NewCommonFlags("taint",
		[]string{"-config", "c.yaml", "-verbose", "-exclude", "gen", "-exclude", "x.go", "./..."}, "usage")
	if err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}
	if flags.ConfigPath != "c.yaml" || !flags.Verbose || flags.WithTest {
		t.Errorf("unexpected flags %+v", flags)
	}
	if len(flags.Exclude) != 2 || flags.Exclude[0] != "gen" || flags.Exclude[1] != "x.go" {
		t.Errorf("unexpected exclude paths %v", flags.Exclude)
	}
	if args := flags.FlagSet.Args(); len(args) != 1 || args[0] != "./..." {
		t.Errorf("unexpected positional arguments %v", args)
	}
}

func TestHelpFlag(t *testing.T) {
	u := NewUnparsedCommonFlags("render")
	u.FlagSet.SetOutput(io.Discard)
	SetUsage(u.FlagSet, "usage")
	if _, err := u.Parse([]string{"-help"}); !errors.Is(err, flag.ErrHelp) {
		t.Errorf("expected the help error, got %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(CommonFlags{Exclude: []string{"gen"}})
	if err != nil || cfg.HelperFunction != config.DefaultHelperFunction {
		t.Fatalf("an empty path should give the default config, got %v, %v", cfg, err)
	}
	if len(cfg.ExcludePaths) != 1 || cfg.ExcludePaths[0] != "gen" {
		t.Errorf("the -exclude paths should be added to the config, got %v", cfg.ExcludePaths)
	}

	filename := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(filename, []byte("target-kinds: [store]\n"), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadConfig(CommonFlags{ConfigPath: filename, Verbose: true})
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if len(cfg.TargetKinds) != 1 || cfg.TargetKinds[0] != ir.KindStore {
		t.Errorf("unexpected target kinds %v", cfg.TargetKinds)
	}
	if cfg.LogLevel != int(config.DebugLevel) {
		t.Errorf("verbose should raise the log level to debug, got %d", cfg.LogLevel)
	}

	if _, err := LoadConfig(CommonFlags{ConfigPath: filepath.Join(t.TempDir(), "missing.yaml")}); err == nil {
		t.Errorf("loading a missing file should fail")
	}
}

func TestPackagesConfig(t *testing.T) {
	tags := build.Default.BuildTags
	t.Cleanup(func() { build.Default.BuildTags = tags })

	build.Default.BuildTags = nil
	cfg := PackagesConfig(true)
	if !cfg.Tests || len(cfg.BuildFlags) != 0 || cfg.Fset == nil {
		t.Errorf("unexpected packages config %+v", cfg)
	}
	build.Default.BuildTags = []string{"linux", "obf"}
	cfg = PackagesConfig(false)
	if cfg.Tests || len(cfg.BuildFlags) != 1 || cfg.BuildFlags[0] != "-tags=linux,obf" {
		t.Errorf("build tags should be passed to the build system, got %v", cfg.BuildFlags)
	}
}
