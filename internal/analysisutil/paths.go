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

// Package analysisutil decides which functions of a program are left out of the analysis by path.
package analysisutil

import (
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/ssa"
)

// MakeAbsolute takes a slice of file paths and converts the relative ones to absolute paths, relative to the
// current working directory. Absolute paths are passed through unchanged.
func MakeAbsolute(paths []string) []string {
	result := make([]string, 0, len(paths))
	cwd, _ := os.Getwd()
	for _, s := range paths {
		if filepath.IsAbs(s) {
			result = append(result, s)
		} else {
			result = append(result, filepath.Join(cwd, s))
		}
	}
	return result
}

func isExcludedOne(filename string, exclude string) bool {
	if strings.HasSuffix(exclude, ".go") {
		return filename == exclude // full match required
	} else if strings.HasSuffix(exclude, "/") {
		return strings.HasPrefix(filename, exclude) // prefix match required
	} else {
		return strings.HasPrefix(filename, exclude+"/") // prefix match plus / required
	}
}

// IsExcluded returns true if the file declaring f is one of the exclude paths, or is in one of the excluded
// directories. A path ending in ".go" is a file, any other path is a directory.
func IsExcluded(fset *token.FileSet, f *ssa.Function, exclude []string) bool {
	if len(exclude) == 0 {
		return false
	}
	filename := fset.Position(f.Pos()).Filename
	if filename == "" {
		return false
	}
	for _, e := range exclude {
		if isExcludedOne(filename, e) {
			return true
		}
	}
	return false
}
