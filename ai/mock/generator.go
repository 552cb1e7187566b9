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

package mock

import (
	"context"
	"sync"

	"github.com/poiesic/soundshelf/ai"
)

// MockGenerator is a test double for ai.TextGenerator.
// Inject GenerateTextFunc to control behavior; without it, a canned reply is
// returned. Safe for concurrent use.
type MockGenerator struct {
	// GenerateTextFunc, when set, handles every GenerateText call.
	GenerateTextFunc func(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	mu        sync.Mutex
	callCount int
}

var _ ai.TextGenerator = (*MockGenerator)(nil)

// NewMockGenerator creates a mock generator with default canned behavior.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// GenerateText records the call and delegates to GenerateTextFunc if set.
func (m *MockGenerator) GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()

	if m.GenerateTextFunc != nil {
		return m.GenerateTextFunc(ctx, systemPrompt, userPrompt)
	}
	return "mock reply", nil
}

// CallCount returns how many times GenerateText has been called.
func (m *MockGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockGenerator) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.GenerateTextFunc = nil
}
