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

// Package lang adapts the SSA representation of golang.org/x/tools/go/ssa to the instruction graph read by the
// taint engine (package ir).
package lang

import (
	"go/token"

	"github.com/awslabs/ar-go-symobf/analysis/ir"
	"golang.org/x/tools/go/ssa"
)

// KindOf maps every SSA instruction to its kind.
// Instructions that write a value into a location (Store, Send, MapUpdate) are stores; instructions that read from a
// location (dereference, receive, select) are loads.
//
//gocyclo:ignore
func KindOf(instr ssa.Instruction) ir.Kind {
	switch instr := instr.(type) {
	case *ssa.Store, *ssa.Send, *ssa.MapUpdate:
		return ir.KindStore
	case *ssa.UnOp:
		if instr.Op == token.MUL || instr.Op == token.ARROW {
			return ir.KindLoad
		}
		return ir.KindBinaryOp
	case *ssa.Select:
		return ir.KindLoad
	case *ssa.BinOp:
		if isComparison(instr.Op) {
			return ir.KindCompare
		}
		return ir.KindBinaryOp
	case *ssa.Convert, *ssa.ChangeType, *ssa.ChangeInterface, *ssa.MakeInterface, *ssa.SliceToArrayPointer,
		*ssa.MultiConvert, *ssa.TypeAssert, *ssa.Range:
		return ir.KindCast
	case *ssa.Index, *ssa.Lookup:
		return ir.KindExtractElement
	case *ssa.Field, *ssa.Extract, *ssa.Next:
		return ir.KindExtractValue
	case *ssa.MakeClosure:
		return ir.KindInsertValue
	case *ssa.FieldAddr, *ssa.IndexAddr, *ssa.Slice:
		return ir.KindGetElementPtr
	case *ssa.Call:
		return ir.KindCall
	case *ssa.Go, *ssa.Defer:
		return ir.KindInvoke
	case *ssa.Phi:
		return ir.KindPhi
	case *ssa.Return:
		return ir.KindReturn
	case *ssa.If, *ssa.Jump:
		return ir.KindBranch
	case *ssa.Panic:
		return ir.KindUnreachable
	case *ssa.RunDefers:
		return ir.KindResume
	case *ssa.Alloc, *ssa.MakeChan, *ssa.MakeMap, *ssa.MakeSlice:
		return ir.KindAlloca
	case *ssa.DebugRef:
		return ir.KindFence
	default:
		return ir.KindUnknown
	}
}

func isComparison(op token.Token) bool {
	switch op {
	case token.EQL, token.NEQ, token.LSS, token.LEQ, token.GTR, token.GEQ:
		return true
	default:
		return false
	}
}

// operands returns the operands of instr in the order of the ir package: for store-like instructions, the value
// written first, then the location written, then any key.
func operands(instr ssa.Instruction) []ssa.Value {
	switch instr := instr.(type) {
	case *ssa.Store:
		return []ssa.Value{instr.Val, instr.Addr}
	case *ssa.Send:
		return []ssa.Value{instr.X, instr.Chan}
	case *ssa.MapUpdate:
		return []ssa.Value{instr.Value, instr.Map, instr.Key}
	}
	var res []ssa.Value
	for _, op := range instr.Operands(nil) {
		if op != nil && *op != nil {
			res = append(res, *op)
		}
	}
	return res
}
