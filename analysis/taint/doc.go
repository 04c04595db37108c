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

/*
Package taint implements the intra-procedural taint propagation engine. Given a set of source values (usually the
parameters of a function), the [Engine] computes every instruction and value reachable from the sources through
use-def edges of an [ir] graph.

The engine is a worklist algorithm. Each tainted value is popped once, and each of its users is classified by
[Classify], which maps an instruction kind to a [Policy]:

  - Propagate: the instruction is marked and the value designated by the policy (the result, or for stores the
    location written) becomes tainted and is pushed on the worklist.
  - Ignore: control-flow instructions and merges (phi, return, branch), as well as the kinds whose policy is deferred
    (select, insert/extract value, insert element, shuffle vector).
  - OpaqueSink: kinds that stop propagation (allocations, fences, atomics, exception pads, terminators without
    successors).
  - Unhandled: a warning is logged and the instruction is ignored.

The analysis is monotone: values and instructions are only ever added to the [Store]. Calls are opaque: a call
with a tainted argument produces a tainted result, but the callee is not analysed.

The engine never modifies the graph. Consumers such as the symobf driver read the store once [Engine.Propagate]
has returned.
*/
package taint
