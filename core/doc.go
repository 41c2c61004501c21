/* Copyright 2018-2019 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package core provides the algorithmic engine of an SCXML state-chart
// interpreter: the document model, the validator/optimizer, and the
// microstep/macrostep interpreter that drives a Configuration through
// a stream of Events.
//
// The primary types are Document (the raw, parsed state-chart tree),
// OptimizedDocument (the validated, indexed form a StateChart actually
// runs against), and StateChart (the mutable runtime value: an
// OptimizedDocument reference plus a Configuration and internal event
// queue).
//
// A Document is built by a parser (out of scope for this package) and
// handed to Validate, which returns Diagnostics and, when they hold no
// errors, an OptimizedDocument. InitializeOptimized turns an
// OptimizedDocument into a running StateChart (Initialize validates a
// Document and does both steps); SendEvent drives it forward one
// event at a time.
//
// Condition evaluation (the `cond` attribute on a Transition) is
// delegated to a pluggable ConditionOracle so that this package stays
// agnostic to any particular expression language.
package core
