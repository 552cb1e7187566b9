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

// Package rag grounds chat replies in retrieved library resources.
//
// A Responder handles one chat turn: it snapshots recent resources, ranks
// them against the query with the search package, briefs the shortlist to the
// language model, and returns the reply together with the shortlist. An
// Annotator separately asks the model for a one-line usage note per
// shortlisted resource; note failures never fail the chat.
package rag
