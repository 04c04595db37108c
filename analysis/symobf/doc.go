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
Package symobf finds the comparisons of a program whose outcome depends on the arguments of their function.

For every function with a body, a taint engine is seeded with the parameters of the function and propagates to a
fixpoint. The tainted instructions whose kind is a target kind (comparisons by default) are the rewrite targets:
a downstream pass would replace each of them by a call to the helper function (MatrixMult by default) so that the
comparison is hidden from symbolic execution. This package only plans the rewrite; the program is never modified.

Functions are independent: Analyze runs one engine per function, in parallel.

The package also provides Analyzer, a go/analysis analyzer that reports every target as a diagnostic.
*/
package symobf
