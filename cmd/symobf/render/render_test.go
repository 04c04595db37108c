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

package render

import (
	"testing"
)

func TestNewFlags(t *testing.T) {
	flags, err := NewFlags([]string{"-fn", "check", "-o", "out.dot", "./..."})
	if err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}
	if flags.fnName != "check" || flags.outFile != "out.dot" || len(flags.FlagSet.Args()) != 1 {
		t.Errorf("unexpected flags %+v", flags)
	}
	if _, err := NewFlags([]string{"./..."}); err == nil {
		t.Errorf("the function name is required")
	}
}

func TestOutputFile(t *testing.T) {
	if f := OutputFile("check", "out.dot"); f != "out.dot" {
		t.Errorf("the output flag should be used, got %s", f)
	}
	if f := OutputFile("(*example.com/p.T).Check", ""); f != "_example.com_p.T_.Check.dot" {
		t.Errorf("unexpected default output file %s", f)
	}
}
