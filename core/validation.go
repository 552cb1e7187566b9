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

package core

import (
	"fmt"
	"time"
)

// ValidateResource validates a Resource according to domain rules.
//
// Validation rules:
//   - Title must not be empty
//   - Description must not be empty
//   - InsertedAt must not be in the future (zero is valid before persistence)
//
// NOT validated (populated by the ingestion pipeline):
//   - ExtractedText (can be empty until extraction runs)
//   - Tags (letter tags are unioned in by the pipeline)
//   - ID (0 is valid from database sequences)
func ValidateResource(resource *Resource) error {
	if resource == nil {
		return fmt.Errorf("%w: resource is nil", ErrInvalidResource)
	}

	if resource.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidResource, ErrEmptyTitle)
	}

	if resource.Description == "" {
		return fmt.Errorf("%w: %w", ErrInvalidResource, ErrEmptyDescription)
	}

	if !resource.InsertedAt.IsZero() && !IsValidTimestamp(resource.InsertedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidResource, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateSpeakerType validates that a SpeakerType has a valid value.
func ValidateSpeakerType(speaker SpeakerType) error {
	if speaker != SpeakerTypeHuman && speaker != SpeakerTypeAI {
		return fmt.Errorf("%w: value %d", ErrInvalidSpeakerType, speaker)
	}
	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
