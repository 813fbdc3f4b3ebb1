// Package mq 提供推送事件的消息代理抽象
// 本文件实现 Kafka 代理，用于多实例部署时跨节点转发推送事件
package mq

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"devconnect_server/internal/config"
	"devconnect_server/pkg/constants"
)

// KafkaBroker Kafka 消息代理
// Producer 将推送事件写入 pushTopic，后台消费循环读回并投递到本地事件通道
type KafkaBroker struct {
	producer *kafka.Writer
	consumer *kafka.Reader
	events   chan PushEvent
	done     chan struct{}
}

// NewKafkaBroker 创建 KafkaBroker 实例
func NewKafkaBroker() *KafkaBroker {
	kafkaConfig := config.GetConfig().KafkaConfig

	producer := &kafka.Writer{
		Addr:                   kafka.TCP(kafkaConfig.HostPort),
		Topic:                  kafkaConfig.PushTopic,
		Balancer:               &kafka.Hash{},
		WriteTimeout:           kafkaConfig.Timeout * time.Second,
		RequiredAcks:           kafka.RequireNone,
		AllowAutoTopicCreation: false,
	}
	consumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        []string{kafkaConfig.HostPort},
		Topic:          kafkaConfig.PushTopic,
		CommitInterval: kafkaConfig.Timeout * time.Second,
		GroupID:        "devconnect_push",
		StartOffset:    kafka.LastOffset,
	})

	return &KafkaBroker{
		producer: producer,
		consumer: consumer,
		events:   make(chan PushEvent, constants.CHANNEL_SIZE),
		done:     make(chan struct{}),
	}
}

// Publish 发布推送事件到 Kafka
// 按 UserId 作为分区键，保证同一用户的事件有序
func (b *KafkaBroker) Publish(ctx context.Context, event PushEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return b.producer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.UserId),
		Value: value,
	})
}

// Events 返回事件消费通道
func (b *KafkaBroker) Events() <-chan PushEvent {
	return b.events
}

// Start 启动后台消费循环
// 从 Kafka 读取事件并转入本地通道，供 websocket 网关投递
func (b *KafkaBroker) Start() {
	go func() {
		for {
			select {
			case <-b.done:
				return
			default:
			}

			msg, err := b.consumer.ReadMessage(context.Background())
			if err != nil {
				zap.L().Error("kafka read message failed", zap.Error(err))
				continue
			}

			var event PushEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				zap.L().Error("kafka event unmarshal failed", zap.Error(err))
				continue
			}

			select {
			case b.events <- event:
			default:
				zap.L().Warn("push event channel full, event dropped",
					zap.String("user_id", event.UserId),
					zap.String("event", event.Event),
				)
			}
		}
	}()
}

// Close 关闭 Kafka 资源和事件通道
func (b *KafkaBroker) Close() {
	close(b.done)
	if err := b.producer.Close(); err != nil {
		zap.L().Error(err.Error())
	}
	if err := b.consumer.Close(); err != nil {
		zap.L().Error(err.Error())
	}
	close(b.events)
}
