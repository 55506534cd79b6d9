package event

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	mu    sync.Mutex
	calls []Event
	keys  []string
	err   error
}

func (s *recordingSender) Publish(_ context.Context, routingKey string, message interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys = append(s.keys, routingKey)
	if ev, ok := message.(Event); ok {
		s.calls = append(s.calls, ev)
	}
	return s.err
}

func TestBrokerPublisher_Publish(t *testing.T) {
	sender := &recordingSender{}
	p := NewBrokerPublisher(sender, nil)

	p.Publish(context.Background(), BookCreated, "b1", map[string]string{"title": "T"})
	p.Publish(context.Background(), BookUpdated, "b1", nil)
	p.Close()

	require.Len(t, sender.calls, 2)
	assert.Equal(t, []string{BookCreated, BookUpdated}, sender.keys, "按发布顺序投递")
	assert.Equal(t, BookCreated, sender.calls[0].Type)
	assert.Equal(t, "b1", sender.calls[0].AggregateID)
	assert.False(t, sender.calls[0].OccurredAt.IsZero())
}

func TestBrokerPublisher_OpensAfterFailures(t *testing.T) {
	sender := &recordingSender{err: errors.New("connection closed")}
	p := NewBrokerPublisher(sender, nil)

	// 熔断后不再调用下游
	for i := 0; i < 6; i++ {
		p.Publish(context.Background(), ReviewCreated, "r1", nil)
	}
	p.Close()
	assert.Len(t, sender.keys, 5)
}

func TestBrokerPublisher_CanceledRequestStillDelivers(t *testing.T) {
	sender := &recordingSender{}
	p := NewBrokerPublisher(sender, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p.Publish(ctx, BookDeleted, "b1", nil)
	p.Close()

	assert.Len(t, sender.keys, 1)
}

// blockingSender 在release关闭前阻塞
type blockingSender struct {
	recordingSender
	release chan struct{}
}

func (s *blockingSender) Publish(ctx context.Context, routingKey string, message interface{}) error {
	<-s.release
	return s.recordingSender.Publish(ctx, routingKey, message)
}

func TestBrokerPublisher_DoesNotWaitForBroker(t *testing.T) {
	sender := &blockingSender{release: make(chan struct{})}
	p := NewBrokerPublisher(sender, nil)

	returned := make(chan struct{})
	go func() {
		p.Publish(context.Background(), BookCreated, "b1", nil)
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Publish等待了Broker")
	}

	close(sender.release)
	p.Close()
	assert.Len(t, sender.keys, 1)
}

func TestBrokerPublisher_DropsAfterClose(t *testing.T) {
	sender := &recordingSender{}
	p := NewBrokerPublisher(sender, nil)
	p.Close()

	assert.NotPanics(t, func() {
		p.Publish(context.Background(), BookCreated, "b1", nil)
	})
	assert.Empty(t, sender.keys)
}

func TestNopPublisher(t *testing.T) {
	assert.NotPanics(t, func() {
		NopPublisher{}.Publish(context.Background(), BookCreated, "b1", nil)
	})
}
