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

package analysis

import (
	"go/ast"
	"go/token"
	"strings"

	"github.com/awslabs/ar-go-symobf/analysis/lang"
)

// Directives represents a map of directive position to directive.
type Directives map[DirectivePos]Directive

// Directive represents an instruction to symobf in the source code being analyzed.
// It is a comment in the form: `//symobf:x`, where x is a valid DirectiveKind.
type Directive struct {
	Kind    DirectiveKind
	Comment *ast.Comment
}

// DirectivePos represents the position of a directive within a program.
type DirectivePos struct {
	Filename string
	Line     int
}

// NewDirectivePos creates a DirectivePos from a token.Position.
func NewDirectivePos(pos token.Position) DirectivePos {
	return DirectivePos{
		Filename: pos.Filename,
		Line:     pos.Line,
	}
}

// DirectiveKind represents the kind of directive.
type DirectiveKind string

const (
	// DirectiveIgnore represents a directive for symobf to leave the comparisons of a line as they are.
	DirectiveIgnore DirectiveKind = "ignore"
)

// NewDirective returns the directive for c and true if c is a valid
// directive comment.
func NewDirective(c *ast.Comment) (Directive, bool) {
	_, after, found := strings.Cut(c.Text, "symobf:")
	if !found {
		return Directive{}, false
	}

	// the kind may be followed by a reason
	fields := strings.Fields(after)
	if len(fields) == 0 {
		return Directive{}, false
	}

	switch k := DirectiveKind(fields[0]); k {
	case DirectiveIgnore:
		return Directive{Kind: k, Comment: c}, true
	default:
		return Directive{}, false
	}
}

// FindDirectives returns all the directives in the comments of files.
func FindDirectives(fset *token.FileSet, files []*ast.File) Directives {
	res := make(Directives)
	lang.MapComments(files, func(c *ast.Comment) {
		pos := fset.Position(c.Pos())
		if !pos.IsValid() {
			return
		}

		d, ok := NewDirective(c)
		if !ok {
			return
		}

		res[NewDirectivePos(pos)] = d
	})

	return res
}

// IsIgnored returns true if an ignore directive applies to pos: the directive is either at the end of the line
// of pos, or alone on the line above.
func (d Directives) IsIgnored(pos token.Position) bool {
	if !pos.IsValid() {
		return false
	}
	for _, line := range []int{pos.Line, pos.Line - 1} {
		if dir, ok := d[DirectivePos{Filename: pos.Filename, Line: line}]; ok && dir.Kind == DirectiveIgnore {
			return true
		}
	}
	return false
}
