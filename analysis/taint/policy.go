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
	"fmt"

	"github.com/awslabs/ar-go-symobf/analysis/ir"
)

// Action is what the engine does when an instruction uses a tainted value.
type Action int

const (
	// Propagate marks the instruction and taints the value designated by the policy's Target
	Propagate Action = iota + 1
	// Ignore inspects the instruction without marking it
	Ignore
	// OpaqueSink stops the propagation at the instruction
	OpaqueSink
	// Unhandled is returned for kinds outside the enumeration. The engine reports a diagnostic and ignores it.
	Unhandled
)

func (a Action) String() string {
	switch a {
	case Propagate:
		return "propagate"
	case Ignore:
		return "ignore"
	case OpaqueSink:
		return "opaque-sink"
	case Unhandled:
		return "unhandled"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Target designates which value becomes tainted when a Propagate policy applies.
type Target int

const (
	// NoTarget is the target of policies that do not propagate
	NoTarget Target = iota
	// ResultTarget taints the result of the instruction
	ResultTarget
	// OperandTarget taints the operand at position Policy.Operand
	OperandTarget
)

// A Policy describes how taint flows through one instruction kind.
type Policy struct {
	Action Action
	Target Target

	// Operand is the operand position used when Target is OperandTarget
	Operand int

	// Deferred is true for kinds whose propagation is known to be incomplete: they are ignored for now, but
	// ignoring them is not a statement that taint cannot flow through them.
	Deferred bool
}

func (p Policy) String() string {
	switch {
	case p.Action == Propagate && p.Target == OperandTarget:
		return fmt.Sprintf("propagate(operand %d)", p.Operand)
	case p.Action == Propagate:
		return "propagate(result)"
	case p.Deferred:
		return p.Action.String() + " (deferred)"
	default:
		return p.Action.String()
	}
}

// TargetValue returns the value of instr designated by the policy, or nil if there is none.
func (p Policy) TargetValue(instr ir.Instruction) ir.Value {
	switch p.Target {
	case ResultTarget:
		return instr.Result()
	case OperandTarget:
		return ir.Operand(instr, p.Operand)
	default:
		return nil
	}
}

var (
	propagateResult = Policy{Action: Propagate, Target: ResultTarget}
	ignore          = Policy{Action: Ignore}
	deferred        = Policy{Action: Ignore, Deferred: true}
	sink            = Policy{Action: OpaqueSink}
)

// policies is the classification table. Every kind of the enumeration except KindUnknown has an entry.
var policies = map[ir.Kind]Policy{
	// the memory location written is tainted, not the stored value
	ir.KindStore: {Action: Propagate, Target: OperandTarget, Operand: 1},

	ir.KindLoad:           propagateResult,
	ir.KindCast:           propagateResult,
	ir.KindBinaryOp:       propagateResult,
	ir.KindCompare:        propagateResult,
	ir.KindExtractElement: propagateResult,
	ir.KindGetElementPtr:  propagateResult,
	ir.KindCall:           propagateResult,

	ir.KindPhi:    ignore,
	ir.KindReturn: ignore,
	ir.KindBranch: ignore,

	ir.KindInsertElement: deferred,
	ir.KindShuffleVector: deferred,
	ir.KindExtractValue:  deferred,
	ir.KindInsertValue:   deferred,
	ir.KindSelect:        deferred,

	ir.KindLandingPad:    sink,
	ir.KindFuncletPad:    sink,
	ir.KindCatchSwitch:   sink,
	ir.KindResume:        sink,
	ir.KindUnreachable:   sink,
	ir.KindFence:         sink,
	ir.KindAtomicCmpXchg: sink,
	ir.KindAtomicRMW:     sink,
	ir.KindAlloca:        sink,
	ir.KindVAArg:         sink,
}

// Classify returns the taint policy of instructions of the given kind. It is total: kinds without an entry in the
// table, including KindUnknown and values outside the enumeration, are Unhandled.
func Classify(kind ir.Kind) Policy {
	if kind == ir.KindInvoke {
		// an invoke is a call that transfers control
		return Classify(ir.KindCall)
	}
	if p, ok := policies[kind]; ok {
		return p
	}
	return Policy{Action: Unhandled}
}
