// Package mq 提供推送事件的消息代理抽象
// 支持两种实现：进程内 Channel（单机）和 Kafka（分布式），由配置 messageMode 选择
package mq

import (
	"context"
	"encoding/json"
)

// PushEvent 推送事件
// UserId 为空表示广播给所有在线连接
type PushEvent struct {
	UserId  string          `json:"userId"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// Broker 消息代理接口
// 生产方（业务服务）调用 Publish，消费方（websocket 网关）从 Events 读取
type Broker interface {
	// Publish 发布推送事件
	Publish(ctx context.Context, event PushEvent) error
	// Events 返回事件消费通道
	Events() <-chan PushEvent
	// Start 启动消费循环（如有）
	Start()
	// Close 关闭代理资源
	Close()
}
