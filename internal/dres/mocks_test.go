package dres

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"
)

type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) Login(ctx context.Context) (*LoginResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*LoginResponse), args.Error(1)
}

func (m *MockAPI) FindEvaluation(ctx context.Context, sessionID, name string) (*EvaluationInfo, error) {
	args := m.Called(ctx, sessionID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*EvaluationInfo), args.Error(1)
}

func (m *MockAPI) Submit(ctx context.Context, sessionID, evaluationID, taskName, mediaItemName, collection string, timestampSec float64) (*SubmissionResult, error) {
	args := m.Called(ctx, sessionID, evaluationID, taskName, mediaItemName, collection, timestampSec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SubmissionResult), args.Error(1)
}

type recordedNotification struct {
	Title   string
	Message string
	Color   string
}

type MockNotifier struct {
	mu            sync.Mutex
	notifications []recordedNotification
}

func (m *MockNotifier) Notify(title, message, color string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications = append(m.notifications, recordedNotification{title, message, color})
}

func (m *MockNotifier) All() []recordedNotification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]recordedNotification(nil), m.notifications...)
}

type MockHistory struct {
	mu      sync.Mutex
	records []SubmissionRecord
}

func (m *MockHistory) Record(ctx context.Context, rec SubmissionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	return nil
}

func (m *MockHistory) All() []SubmissionRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SubmissionRecord(nil), m.records...)
}
