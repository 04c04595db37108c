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

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/awslabs/ar-go-symobf/analysis"
	"github.com/awslabs/ar-go-symobf/cmd/symobf/render"
	"github.com/awslabs/ar-go-symobf/cmd/symobf/taint"
	"github.com/awslabs/ar-go-symobf/cmd/symobf/tools"
)

const usage = `symobf: argument taint for symbolic-execution obfuscation
Usage:
  symobf [tool] [options] <package path(s)>
Tools:
  - taint: lists the instructions whose outcome depends on function arguments
  - render: writes the taint flow graph of a function in graphviz format
Examples:
  Run the taint analysis: symobf taint -config config.yaml ./...
  Render a function: symobf render -fn check -o check.dot ./...`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "error: expected subcommand\n%s\n", usage)
		os.Exit(2)
	}

	// hardcode help flag
	if snd := os.Args[1]; snd == "-help" || snd == "--help" {
		fmt.Println(usage)
		return
	}

	// hardcode version flag
	if snd := os.Args[1]; snd == "-version" || snd == "--version" {
		fmt.Println(analysis.Version)
		return
	}

	args := os.Args[2:]
	switch cmd := os.Args[1]; cmd {
	case "render":
		flags, err := render.NewFlags(args)
		if err != nil {
			errExit(err)
		}
		if err := render.Run(flags); err != nil {
			errExit(err)
		}
	case "taint":
		flags, err := taint.NewFlags(args)
		if err != nil {
			errExit(err)
		}
		if err := taint.Run(flags); err != nil {
			errExit(err)
		}
	default:
		fmt.Fprintf(os.Stderr, "error: unexpected command: %v\n", cmd)
		fmt.Fprintf(os.Stderr, "usage:\n%s\n", usage)
		os.Exit(2)
	}
}

func errExit(err error) {
	// the usage has already been printed
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	tools.Exit(err)
}
