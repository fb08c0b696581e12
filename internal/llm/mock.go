package llm

import (
	"context"
	"sync"
)

// mockReplies are the canned coaching replies of mock mode. The reply for
// a given input is chosen by a byte-sum hash of the last user message, so
// runs are repeatable yet varied.
var mockReplies = []string{
	"Intéressant. Peux-tu me dire un peu plus sur ce qui t'a marqué dans cette expérience ?",
	"Je comprends. Et comment as-tu réagi face à cette situation ?",
	"C'est une perspective intéressante. Qu'est-ce que cela révèle sur ta façon de travailler ?",
	"Merci pour cette réponse. Peux-tu approfondir un peu ?",
	"Je vois. Et qu'est-ce que cela t'a appris sur toi-même ?",
	"D'accord. Comment cette expérience a-t-elle influencé tes choix professionnels ?",
	"Intéressant. Y a-t-il d'autres aspects que tu aimerais partager ?",
}

// MockProvider is a deterministic Provider for development and tests.
// Queued responses, when present, are returned FIFO; otherwise the reply
// is hash-selected from the canned set. All requests are recorded.
type MockProvider struct {
	mu     sync.Mutex
	queued []string
	errs   []error
	Calls  [][]Message
}

// NewMockProvider creates a MockProvider with optional queued responses.
func NewMockProvider(responses ...string) *MockProvider {
	return &MockProvider{queued: responses}
}

// Complete returns the next queued response, a queued error, or a
// hash-selected canned reply.
func (m *MockProvider) Complete(_ context.Context, messages []Message) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, messages)

	if len(m.errs) > 0 {
		err := m.errs[0]
		m.errs = m.errs[1:]
		return "", err
	}

	if len(m.queued) > 0 {
		resp := m.queued[0]
		m.queued = m.queued[1:]
		return resp, nil
	}

	return mockReplies[hashText(lastUserContent(messages))%len(mockReplies)], nil
}

// QueueError makes the next Complete call fail with err.
func (m *MockProvider) QueueError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs = append(m.errs, err)
}

// CallCount returns the number of Complete calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LastCall returns the message list of the most recent Complete call,
// or nil when none was made.
func (m *MockProvider) LastCall() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return nil
	}
	return m.Calls[len(m.Calls)-1]
}

func lastUserContent(messages []Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == RoleUser {
			return messages[i].Content
		}
	}
	return ""
}

func hashText(text string) int {
	sum := 0
	for _, b := range []byte(text) {
		sum += int(b)
	}
	return sum
}
