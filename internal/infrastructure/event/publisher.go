// Package event 领域事件发布
//
// 事件在业务写入成功之后发布，发布失败只记录日志，不影响HTTP响应。
package event

import (
	"context"
	"time"
)

// 路由键
const (
	UserRegistered = "user.registered"
	BookCreated    = "book.created"
	BookUpdated    = "book.updated"
	BookDeleted    = "book.deleted"
	ReviewCreated  = "review.created"
	ReviewDeleted  = "review.deleted"
)

// Event 事件消息体
type Event struct {
	Type        string      `json:"type"`
	AggregateID string      `json:"aggregateId"`
	OccurredAt  time.Time   `json:"occurredAt"`
	Payload     interface{} `json:"payload,omitempty"`
}

// Publisher 事件发布端口
type Publisher interface {
	Publish(ctx context.Context, routingKey, aggregateID string, payload interface{})
}

// NopPublisher 未启用消息队列时使用
type NopPublisher struct{}

// Publish 丢弃事件
func (NopPublisher) Publish(context.Context, string, string, interface{}) {}
