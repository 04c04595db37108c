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

package ir

import "fmt"

// Kind is the instruction kind tag. The set of kinds is closed; KindUnknown is the catch-all for anything a host
// IR produces that has no better classification.
type Kind int

const (
	KindUnknown Kind = iota
	KindLoad
	KindStore
	KindPhi
	KindReturn
	KindBranch
	KindCast
	KindSelect
	KindBinaryOp
	KindCompare
	KindExtractElement
	KindInsertElement
	KindShuffleVector
	KindExtractValue
	KindInsertValue
	KindGetElementPtr
	KindCall
	KindInvoke
	KindLandingPad
	KindFuncletPad
	KindCatchSwitch
	KindResume
	KindUnreachable
	KindFence
	KindAtomicCmpXchg
	KindAtomicRMW
	KindAlloca
	KindVAArg

	numKinds
)

var kindNames = [numKinds]string{
	KindUnknown:        "unknown",
	KindLoad:           "load",
	KindStore:          "store",
	KindPhi:            "phi",
	KindReturn:         "return",
	KindBranch:         "branch",
	KindCast:           "cast",
	KindSelect:         "select",
	KindBinaryOp:       "binary-op",
	KindCompare:        "compare",
	KindExtractElement: "extract-element",
	KindInsertElement:  "insert-element",
	KindShuffleVector:  "shuffle-vector",
	KindExtractValue:   "extract-value",
	KindInsertValue:    "insert-value",
	KindGetElementPtr:  "get-element-pointer",
	KindCall:           "call",
	KindInvoke:         "invoke",
	KindLandingPad:     "landing-pad",
	KindFuncletPad:     "funclet-pad",
	KindCatchSwitch:    "catch-switch",
	KindResume:         "resume",
	KindUnreachable:    "unreachable",
	KindFence:          "fence",
	KindAtomicCmpXchg:  "atomic-compare-exchange",
	KindAtomicRMW:      "atomic-read-modify-write",
	KindAlloca:         "alloca",
	KindVAArg:          "variable-argument-access",
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Valid returns true if k is a member of the closed kind enumeration.
func (k Kind) Valid() bool {
	return k >= 0 && k < numKinds
}

// Kinds returns all the kinds of the enumeration, in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, numKinds)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// ParseKind returns the kind whose name is s.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return KindUnknown, fmt.Errorf("unknown instruction kind %q", s)
}

// MarshalText implements encoding.TextMarshaler; kinds are written by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so that kinds can be read by name from config files.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
