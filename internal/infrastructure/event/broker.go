package event

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/pkg/circuitbreaker"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// Sender 底层消息发送（*mq.Publisher实现）
type Sender interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// queueSize 待投递事件上限，队列满时新事件被丢弃
const queueSize = 256

type delivery struct {
	ctx   context.Context
	event Event
}

// BrokerPublisher 经熔断器投递到消息队列
// Publish只入队，由单个后台goroutine按顺序投递，请求不等待Broker
type BrokerPublisher struct {
	sender  Sender
	breaker *circuitbreaker.CircuitBreaker
	timeout time.Duration
	log     *zap.Logger
	now     func() time.Time

	queue  chan delivery
	done   chan struct{}
	mu     sync.RWMutex
	closed bool
}

// NewBrokerPublisher 创建发布者并启动投递goroutine，退出前需调用Close
// 连续失败5次后熔断30秒，期间事件直接丢弃
func NewBrokerPublisher(sender Sender, log *zap.Logger) *BrokerPublisher {
	if log == nil {
		log = zap.NewNop()
	}
	breaker := circuitbreaker.NewCircuitBreaker("event-broker", circuitbreaker.Config{
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": name}, float64(to))
			log.Warn("熔断器状态变化",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	p := &BrokerPublisher{
		sender:  sender,
		breaker: breaker,
		timeout: 3 * time.Second,
		log:     log,
		now:     time.Now,
		queue:   make(chan delivery, queueSize),
		done:    make(chan struct{}),
	}
	go p.run()
	return p
}

// Publish 事件入队后立即返回，失败只记录日志
// 保留请求Context中的值（如trace），但请求结束不会取消投递
func (p *BrokerPublisher) Publish(ctx context.Context, routingKey, aggregateID string, payload interface{}) {
	d := delivery{
		ctx: context.WithoutCancel(ctx),
		event: Event{
			Type:        routingKey,
			AggregateID: aggregateID,
			OccurredAt:  p.now().UTC(),
			Payload:     payload,
		},
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		p.record(routingKey, "dropped")
		return
	}
	select {
	case p.queue <- d:
	default:
		p.record(routingKey, "dropped")
		p.log.Warn("事件队列已满，丢弃事件",
			zap.String("routing_key", routingKey),
			zap.String("aggregate_id", aggregateID),
		)
	}
}

// Close 停止接收新事件，等待队列中的事件投递完毕
func (p *BrokerPublisher) Close() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()
	<-p.done
}

func (p *BrokerPublisher) run() {
	defer close(p.done)
	for d := range p.queue {
		p.deliver(d)
	}
}

func (p *BrokerPublisher) deliver(d delivery) {
	routingKey := d.event.Type
	ctx, cancel := context.WithTimeout(d.ctx, p.timeout)
	defer cancel()

	err := p.breaker.Execute(func() error {
		return p.sender.Publish(ctx, routingKey, d.event)
	})

	result := "success"
	switch {
	case errors.Is(err, circuitbreaker.ErrOpenState):
		result = "rejected"
		p.log.Debug("熔断中，丢弃事件", zap.String("routing_key", routingKey))
	case err != nil:
		result = "failure"
		p.log.Error("事件发布失败",
			zap.String("routing_key", routingKey),
			zap.String("aggregate_id", d.event.AggregateID),
			zap.Error(err),
		)
	}
	p.record(routingKey, result)
}

func (p *BrokerPublisher) record(routingKey, result string) {
	metrics.IncCounterVec(metrics.EventsPublishedTotal, map[string]string{
		"routing_key": routingKey,
		"result":      result,
	})
}
