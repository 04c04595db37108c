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

// Package formatutil manipulates string colors and other formatting operations for the command line tools.
package formatutil

import (
	"fmt"
	"os"
	"sync/atomic"

	"golang.org/x/term"
)

var (
	Bold   = Color("\033[1m%s\033[0m")
	Faint  = Color("\033[2m%s\033[0m")
	Red    = Color("\033[1;31m%s\033[0m")
	Green  = Color("\033[1;32m%s\033[0m")
	Yellow = Color("\033[1;33m%s\033[0m")
	Cyan   = Color("\033[1;36m%s\033[0m")
)

// colors is 1 when escape sequences are written, 0 when they are not, and -1 when it depends on stdout being a
// terminal
var colors atomic.Int32

func init() {
	colors.Store(-1)
}

// SetColors forces colors on or off, regardless of whether stdout is a terminal
func SetColors(on bool) {
	if on {
		colors.Store(1)
	} else {
		colors.Store(0)
	}
}

func colorsEnabled() bool {
	switch colors.Load() {
	case 0:
		return false
	case 1:
		return true
	default:
		return term.IsTerminal(int(os.Stdout.Fd()))
	}
}

// Color returns a function that formats its arguments like fmt.Sprint and wraps the result in colorString when
// colors are enabled.
func Color(colorString string) func(...any) string {
	return func(args ...any) string {
		if colorsEnabled() {
			return fmt.Sprintf(colorString, fmt.Sprint(args...))
		}
		return fmt.Sprint(args...)
	}
}

// Sanitize is a simple sanitizer that removes all escape sequences
func Sanitize(s string) string {
	r := fmt.Sprintf("%q", s)
	if len(r) >= 2 {
		return r[1 : len(r)-1]
	}
	return r
}
