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

package taint

import (
	"bytes"
	"strings"
	"testing"

	"github.com/awslabs/ar-go-symobf/analysis"
	"github.com/awslabs/ar-go-symobf/analysis/config"
	"github.com/awslabs/ar-go-symobf/analysis/symobf"
	"github.com/awslabs/ar-go-symobf/internal/analysistest"
	"github.com/awslabs/ar-go-symobf/internal/formatutil"
)

const source = `package main

func check(a, b int) bool {
	return a < b
}

func main() {
	println(check(1, 2))
}
`

func TestNewFlags(t *testing.T) {
	flags, err := NewFlags([]string{"-helper", "ObfLt", "-target-kinds", "compare,store", "-report", "./..."})
	if err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}
	if flags.helper != "ObfLt" || flags.targetKinds != "compare,store" || !flags.report {
		t.Errorf("unexpected flags %+v", flags)
	}
	if _, err := NewFlags([]string{"-unknown"}); err == nil {
		t.Errorf("unknown flags should be rejected")
	}
}

func TestReport(t *testing.T) {
	formatutil.SetColors(false)
	t.Cleanup(func() { formatutil.SetColors(true) })

	l := analysistest.BuildSource(t, source)
	cfg := config.NewDefault()
	cfg.LogLevel = int(config.ErrLevel)
	res, err := symobf.Analyze(cfg, l.Prog, analysis.Directives{})
	if err != nil {
		t.Fatalf("analysis failed: %v", err)
	}
	var buf bytes.Buffer
	Report(&buf, res)
	out := buf.String()
	for _, s := range []string{
		"1 instructions depend on function arguments",
		"compare in example.com/main.check",
		"[POSITION] main.go:4:11",
		"[REWRITE] MatrixMult",
		"Functions: 2,",
		"  compare ",
	} {
		if !strings.Contains(out, s) {
			t.Errorf("report should contain %q:\n%s", s, out)
		}
	}

	buf.Reset()
	Report(&buf, symobf.Result{})
	if !strings.Contains(buf.String(), "No instruction depends on function arguments") {
		t.Errorf("empty result should be reported:\n%s", buf.String())
	}
}
