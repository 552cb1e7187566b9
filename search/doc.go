// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package search provides deterministic lexical retrieval over resources.
//
// The Retriever type ranks resources against a query using four additive
// signals computed over a per-resource corpus string:
//   - Exact token overlap (weight 2)
//   - Stemmed token overlap (weight 1)
//   - Tag substring matches (weight 1, once per query token)
//   - Full-phrase containment (flat 1)
//
// Scoring is a pure function of its inputs: no caches, no shared state, no
// randomness. The corpus is rebuilt on every scoring pass so edited resources
// are never scored against stale text.
package search
