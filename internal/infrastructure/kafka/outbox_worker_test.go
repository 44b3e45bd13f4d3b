package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ezstore-dev/go-backend/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockOutboxRepo struct {
	m       sync.Mutex
	pending []*usecase.OutboxEvent
	marked  []int64
}

func (m *mockOutboxRepo) Create(_ context.Context, event *usecase.OutboxEvent) (*usecase.OutboxEvent, error) {
	return event, nil
}

func (m *mockOutboxRepo) GetAndMarkAsProcessing(_ context.Context, limit int) ([]*usecase.OutboxEvent, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if len(m.pending) == 0 {
		return nil, nil
	}
	n := limit
	if n > len(m.pending) {
		n = len(m.pending)
	}
	batch := m.pending[:n]
	m.pending = m.pending[n:]
	return batch, nil
}

func (m *mockOutboxRepo) MarkAsProcessed(_ context.Context, id int64) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.marked = append(m.marked, id)
	return nil
}

type mockProducer struct {
	m        sync.Mutex
	messages []*usecase.WriteRawMessageReq
	err      error
}

func (m *mockProducer) WriteRawMessage(_ context.Context, req *usecase.WriteRawMessageReq) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.messages = append(m.messages, req)
	return nil
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)        {}
func (nopLogger) Infof(string, ...any)         {}
func (nopLogger) Warnf(string, ...any)         {}
func (nopLogger) Errorf(error, string, ...any) {}

func TestProcessBatch_DeliversAndMarks(t *testing.T) {
	repo := &mockOutboxRepo{
		pending: []*usecase.OutboxEvent{
			{ID: 1, EventID: "e1", Customer: "alice", Payload: []byte(`{"cart_id":1}`)},
			{ID: 2, EventID: "e2", Customer: "bob", Payload: []byte(`{"cart_id":2}`)},
		},
	}
	producer := &mockProducer{}
	worker := NewOutboxWorker(repo, nopLogger{}, producer, "")

	hasMore, err := worker.processBatch(context.Background())
	require.NoError(t, err)
	assert.True(t, hasMore)

	require.Len(t, producer.messages, 2)
	assert.Equal(t, "alice", producer.messages[0].Customer)
	assert.Equal(t, []int64{1, 2}, repo.marked)

	// Очередь выгребли, следующий вызов пустой
	hasMore, err = worker.processBatch(context.Background())
	require.NoError(t, err)
	assert.False(t, hasMore)
}

func TestProcessBatch_FailedDeliveryNotMarked(t *testing.T) {
	repo := &mockOutboxRepo{
		pending: []*usecase.OutboxEvent{
			{ID: 1, EventID: "e1", Customer: "alice", Payload: []byte(`{}`)},
		},
	}
	producer := &mockProducer{err: errors.New("broker not available")}
	worker := NewOutboxWorker(repo, nopLogger{}, producer, "")

	hasMore, err := worker.processBatch(context.Background())
	require.NoError(t, err)
	assert.True(t, hasMore)
	assert.Empty(t, repo.marked)
}

func TestIsRetryableError(t *testing.T) {
	assert.True(t, isRetryableError(errors.New("dial tcp: connection refused")))
	assert.True(t, isRetryableError(errors.New("read: i/o timeout")))
	assert.True(t, isRetryableError(errors.New("Broker Not Available")))
	assert.False(t, isRetryableError(errors.New("message too large")))
	assert.False(t, isRetryableError(nil))
}
