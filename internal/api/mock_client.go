package api

import (
	"context"
	"sync"

	"github.com/diogo/dtvchat/internal/models"
)

// MockReplyClient is a mock implementation of ReplyClientInterface for testing
type MockReplyClient struct {
	// Mock return values
	Reply     *models.ReplyResponse
	ReplyErr  error
	HealthVal models.HealthStatus
	HealthErr error
	URL       string

	// Call recorders
	mu           sync.Mutex
	Calls        int
	LastSequence string
	LastHistory  []models.Message
	HealthCalled bool
	CloseCalled  bool
}

var _ ReplyClientInterface = (*MockReplyClient)(nil)

func (m *MockReplyClient) GenerateReply(ctx context.Context, clientSequence string, history []models.Message) (*models.ReplyResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls++
	m.LastSequence = clientSequence
	m.LastHistory = models.CloneMessages(history)

	if m.ReplyErr != nil {
		return nil, m.ReplyErr
	}
	if m.Reply == nil {
		return &models.ReplyResponse{}, nil
	}
	return m.Reply, nil
}

func (m *MockReplyClient) Health(ctx context.Context) (models.HealthStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.HealthCalled = true
	return m.HealthVal, m.HealthErr
}

func (m *MockReplyClient) BaseURL() string {
	return m.URL
}

func (m *MockReplyClient) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalled = true
}

// CallCount returns how many GenerateReply calls were made
func (m *MockReplyClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls
}
