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

package rag

import "errors"

var (
	// ErrEmptyQuery indicates a blank or whitespace-only chat query.
	ErrEmptyQuery = errors.New("query must not be empty")

	// ErrResourceRepositoryRequired indicates a missing resource repository.
	ErrResourceRepositoryRequired = errors.New("resource repository is required")

	// ErrGeneratorRequired indicates a missing text generator.
	ErrGeneratorRequired = errors.New("text generator is required")

	// ErrReplyGeneration indicates the model failed to produce a reply.
	// Callers can detect it with errors.Is and fall back to FallbackReply.
	ErrReplyGeneration = errors.New("reply generation failed")
)
