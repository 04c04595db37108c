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

package symobf_test

import (
	"testing"

	"github.com/awslabs/ar-go-symobf/analysis/symobf"
	"golang.org/x/tools/go/analysis/analysistest"
)

func TestAnalyzer(t *testing.T) {
	testdata := analysistest.TestData()
	analysistest.Run(t, testdata, symobf.Analyzer, "a")
}

func TestAnalyzerFlags(t *testing.T) {
	setFlag(t, "helper", "ObfEq")
	setFlag(t, "target-kinds", "compare, binary-op")
	testdata := analysistest.TestData()
	analysistest.Run(t, testdata, symobf.Analyzer, "b")
}

func setFlag(t *testing.T, name string, value string) {
	t.Helper()
	f := symobf.Analyzer.Flags.Lookup(name)
	if f == nil {
		t.Fatalf("analyzer has no flag %s", name)
	}
	old := f.Value.String()
	if err := f.Value.Set(value); err != nil {
		t.Fatalf("could not set flag %s: %v", name, err)
	}
	t.Cleanup(func() { _ = f.Value.Set(old) })
}
