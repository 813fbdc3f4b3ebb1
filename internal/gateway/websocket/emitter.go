package websocket

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"devconnect_server/internal/infrastructure/mq"
)

// Emitter 通过 Broker 发布推送事件，实现业务层的 Notifier 端口
// 推送是尽力而为的，任何失败只记录日志
type Emitter struct {
	broker mq.Broker
}

// NewEmitter 创建 Emitter 实例
func NewEmitter(broker mq.Broker) *Emitter {
	return &Emitter{broker: broker}
}

// Publish 向指定用户的连接推送事件
func (e *Emitter) Publish(userId, event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		zap.L().Error("marshal push payload failed",
			zap.String("event", event),
			zap.Error(err),
		)
		return
	}
	err = e.broker.Publish(context.Background(), mq.PushEvent{
		UserId:  userId,
		Event:   event,
		Payload: data,
	})
	if err != nil {
		zap.L().Error("publish push event failed",
			zap.String("user_id", userId),
			zap.String("event", event),
			zap.Error(err),
		)
	}
}
