package event

import (
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/pkg/mq"
)

// NewPublisher 按配置创建事件发布者，mq.enabled=false时事件被丢弃
func NewPublisher(cfg *config.Config, log *zap.Logger) (Publisher, func(), error) {
	if !cfg.MQ.Enabled {
		return NopPublisher{}, func() {}, nil
	}

	sender, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType, log)
	if err != nil {
		return nil, nil, err
	}
	publisher := NewBrokerPublisher(sender, log)
	return publisher, func() {
		publisher.Close()
		if err := sender.Close(); err != nil {
			log.Warn("关闭消息发布者失败", zap.Error(err))
		}
	}, nil
}
