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

// Package analysistest contains helpers to build SSA programs from Go sources in tests.
package analysistest

import (
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"regexp"
	"testing"

	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"
)

// TargetRegex matches annotations of the form "// @Target" marking the lines where a rewrite target is expected
var TargetRegex = regexp.MustCompile(`//.*@Target\b`)

// LPos is a position without column
type LPos struct {
	Filename string
	Line     int
}

func (p LPos) String() string {
	return fmt.Sprintf("%s:%d", p.Filename, p.Line)
}

// RemoveColumn drops the column of pos
func RemoveColumn(pos token.Position) LPos {
	return LPos{Line: pos.Line, Filename: pos.Filename}
}

// LoadedSource is a single-file package built from source in memory.
type LoadedSource struct {
	Prog *ssa.Program
	Pkg  *ssa.Package
	Fset *token.FileSet
	File *ast.File
}

// BuildSource parses, type-checks and builds the SSA form of src, which must be a complete Go file. The file is
// named main.go. Imports are resolved with the default importer.
func BuildSource(t *testing.T, src string) LoadedSource {
	t.Helper()
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "main.go", src, parser.ParseComments)
	if err != nil {
		t.Fatalf("failed to parse source: %v", err)
	}
	pkg := types.NewPackage("example.com/"+f.Name.Name, f.Name.Name)
	ssaPkg, _, err := ssautil.BuildPackage(&types.Config{Importer: importer.Default()}, fset, pkg,
		[]*ast.File{f}, ssa.SanityCheckFunctions)
	if err != nil {
		t.Fatalf("failed to build SSA: %v", err)
	}
	return LoadedSource{Prog: ssaPkg.Prog, Pkg: ssaPkg, Fset: fset, File: f}
}

// Func returns the package-level function named name, and fails the test if there is none.
func (l LoadedSource) Func(t *testing.T, name string) *ssa.Function {
	t.Helper()
	fn := l.Pkg.Func(name)
	if fn == nil {
		t.Fatalf("no function %s in package %s", name, l.Pkg.Pkg.Path())
	}
	return fn
}

// ExpectedTargets returns the positions of the lines annotated with @Target.
func (l LoadedSource) ExpectedTargets() map[LPos]bool {
	res := map[LPos]bool{}
	for _, c := range l.File.Comments {
		for _, c1 := range c.List {
			if TargetRegex.MatchString(c1.Text) {
				res[RemoveColumn(l.Fset.Position(c1.Pos()))] = true
			}
		}
	}
	return res
}
