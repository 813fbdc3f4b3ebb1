// Package mq 提供推送事件的消息代理抽象
// 本文件实现单机模式的进程内 Channel 代理，不依赖外部消息队列
package mq

import (
	"context"

	"go.uber.org/zap"

	"devconnect_server/pkg/constants"
)

// ChannelBroker 进程内通道代理
// Publish 和 Events 共用同一条带缓冲的 channel
type ChannelBroker struct {
	events chan PushEvent
}

// NewChannelBroker 创建 ChannelBroker 实例
func NewChannelBroker() *ChannelBroker {
	return &ChannelBroker{
		events: make(chan PushEvent, constants.CHANNEL_SIZE),
	}
}

// Publish 发布推送事件
// 通道满时丢弃事件并记录日志，推送是尽力而为的，不阻塞业务主流程
func (b *ChannelBroker) Publish(ctx context.Context, event PushEvent) error {
	select {
	case b.events <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		zap.L().Warn("push event channel full, event dropped",
			zap.String("user_id", event.UserId),
			zap.String("event", event.Event),
		)
		return nil
	}
}

// Events 返回事件消费通道
func (b *ChannelBroker) Events() <-chan PushEvent {
	return b.events
}

// Start 单机模式无需启动消费循环
func (b *ChannelBroker) Start() {}

// Close 关闭事件通道
func (b *ChannelBroker) Close() {
	close(b.events)
}
