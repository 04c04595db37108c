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
	"reflect"

	"github.com/awslabs/ar-go-symobf/analysis/config"
	"github.com/awslabs/ar-go-symobf/analysis/ir"
)

// Engine propagates taint from seeded values to the instructions that use them, until a fixpoint is reached.
// An Engine owns its Store and must not be shared between goroutines; use one engine per analysed function.
type Engine struct {
	logger *config.LogGroup
	store  *Store
}

// NewEngine returns an engine with an empty store. Diagnostics are written to logger; if logger is nil, a logger
// with the default configuration is used.
func NewEngine(logger *config.LogGroup) *Engine {
	if logger == nil {
		logger = config.NewLogGroup(config.NewDefault())
	}
	return &Engine{logger: logger, store: NewStore()}
}

// Store returns the taint store of the engine. The store is complete once Propagate has returned.
func (e *Engine) Store() *Store {
	return e.store
}

// Seed marks v as a taint source. Seeding a value that is already tainted has no effect.
// Seed panics if v is nil: seeding nothing is a bug in the caller.
func (e *Engine) Seed(v ir.Value) {
	if isNil(v) {
		panic("taint: cannot seed a nil value")
	}
	if e.store.addValue(v) {
		e.store.seeds = append(e.store.seeds, v)
		e.logger.Tracef("Seed %s", v.Name())
	}
}

// SeedAll seeds every value in vs.
func (e *Engine) SeedAll(vs []ir.Value) {
	for _, v := range vs {
		e.Seed(v)
	}
}

// Propagate drains the worklist. When it returns, every user of every tainted value has been visited.
// Calling Propagate on a store that is already at a fixpoint does nothing.
func (e *Engine) Propagate() {
	for e.Step() {
	}
}

// Step pops one value from the worklist and visits all its users. It returns false if the worklist was empty.
func (e *Engine) Step() bool {
	v, ok := e.store.pop()
	if !ok {
		return false
	}
	for _, user := range v.Users() {
		e.visit(v, user)
	}
	return true
}

// visit applies the policy of user, which uses the tainted value v.
func (e *Engine) visit(v ir.Value, user ir.Instruction) {
	kind := user.Kind()
	policy := Classify(kind)
	switch policy.Action {
	case Propagate:
		e.mark(v, user, policy.TargetValue(user))
	case Ignore:
		if policy.Deferred {
			e.logger.Debugf("No propagation implemented for %s instructions, ignoring %s", kind, user)
		}
	case OpaqueSink:
		// stops here
	default:
		e.logger.Warnf("Don't know how to handle %s instruction: %s", kind, user)
	}
}

// mark adds instr to the tainted instructions, and taints out if it is not nil.
// An instruction is marked at most once.
func (e *Engine) mark(in ir.Value, instr ir.Instruction, out ir.Value) {
	if !e.store.addInstr(instr) {
		e.logger.Debugf("Instruction already tainted: %s", instr)
		return
	}
	e.logger.Tracef("Taint new instruction: %s", instr)
	e.store.edges = append(e.store.edges, Edge{From: in, Instr: instr, To: out})
	if isNil(out) {
		return
	}
	if e.store.addValue(out) {
		e.logger.Tracef("Taint new value: %s", out.Name())
	}
}

// isNil returns true if v is nil or holds a nil pointer.
func isNil(v ir.Value) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func:
		return rv.IsNil()
	}
	return false
}
