// Package websocket 实现实时推送网关
// 每个在线用户持有一条连接，服务端只向下推送事件，业务请求走 REST 接口
package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"devconnect_server/internal/infrastructure/mq"
	"devconnect_server/pkg/constants"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	// 跨域由网关外层统一控制，这里放行所有 Origin
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// wsFrame 推送给前端的消息帧
type wsFrame struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// Client 单个用户的 websocket 连接
type Client struct {
	Conn     *websocket.Conn
	Uuid     string
	SendBack chan []byte // 推送队列，写泵从中取帧下发

	manager *ConnManager
	once    sync.Once
}

// ConnManager 在线连接管理器
// 消费 Broker 事件并投递到对应用户的连接
type ConnManager struct {
	// clients Key 为用户 UUID，Value 为 *Client
	// sync.Map 并发安全，无需手动加锁
	clients sync.Map
	broker  mq.Broker
}

// NewConnManager 创建连接管理器
func NewConnManager(broker mq.Broker) *ConnManager {
	return &ConnManager{broker: broker}
}

// Start 启动事件投递循环
// UserId 为空的事件广播给所有在线连接，否则只投递给目标用户
func (m *ConnManager) Start() {
	go func() {
		for event := range m.broker.Events() {
			frame, err := json.Marshal(wsFrame{Event: event.Event, Payload: event.Payload})
			if err != nil {
				zap.L().Error("marshal ws frame failed", zap.Error(err))
				continue
			}
			if event.UserId == "" {
				m.broadcast(frame)
				continue
			}
			m.deliver(event.UserId, frame)
		}
	}()
}

// Register 注册新上线的客户端
// 同一用户重复连接时旧连接被替换关闭，并广播 userOnline 事件
func (m *ConnManager) Register(client *Client) {
	if old, loaded := m.clients.LoadAndDelete(client.Uuid); loaded {
		old.(*Client).close()
	}
	m.clients.Store(client.Uuid, client)
	zap.L().Info("ws client online", zap.String("user_id", client.Uuid))

	payload, _ := json.Marshal(gin.H{"userId": client.Uuid})
	err := m.broker.Publish(context.Background(), mq.PushEvent{
		Event:   "userOnline",
		Payload: payload,
	})
	if err != nil {
		zap.L().Error("publish userOnline failed", zap.Error(err))
	}
}

// Unregister 注销客户端
func (m *ConnManager) Unregister(client *Client) {
	if cur, ok := m.clients.Load(client.Uuid); ok && cur == client {
		m.clients.Delete(client.Uuid)
	}
	client.close()
	zap.L().Info("ws client offline", zap.String("user_id", client.Uuid))
}

// IsOnline 判断用户是否在线
func (m *ConnManager) IsOnline(userId string) bool {
	_, ok := m.clients.Load(userId)
	return ok
}

// deliver 投递帧给单个用户，不在线或队列满时丢弃
func (m *ConnManager) deliver(userId string, frame []byte) {
	value, ok := m.clients.Load(userId)
	if !ok {
		return
	}
	client := value.(*Client)
	select {
	case client.SendBack <- frame:
	default:
		zap.L().Warn("ws send queue full, frame dropped", zap.String("user_id", userId))
	}
}

// broadcast 向所有在线连接投递帧
func (m *ConnManager) broadcast(frame []byte) {
	m.clients.Range(func(_, value any) bool {
		client := value.(*Client)
		select {
		case client.SendBack <- frame:
		default:
			zap.L().Warn("ws send queue full, frame dropped", zap.String("user_id", client.Uuid))
		}
		return true
	})
}

// NewClientInit 升级 HTTP 连接为 websocket 并注册客户端
func NewClientInit(c *gin.Context, clientId string, manager *ConnManager) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Error(err.Error())
		return
	}
	client := &Client{
		Conn:     conn,
		Uuid:     clientId,
		SendBack: make(chan []byte, constants.CHANNEL_SIZE),
		manager:  manager,
	}
	manager.Register(client)
	go client.readLoop()
	go client.writeLoop()
	zap.L().Info("ws连接成功", zap.String("user_id", clientId))
}

// readLoop 读泵
// 推送网关不处理上行业务消息，读取仅用于感知连接关闭
func (c *Client) readLoop() {
	defer c.manager.Unregister(c)
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writeLoop 写泵，从推送队列取帧下发
func (c *Client) writeLoop() {
	for frame := range c.SendBack {
		if err := c.Conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			zap.L().Error(err.Error())
			c.manager.Unregister(c)
			return
		}
	}
}

// close 关闭连接和推送队列，幂等
func (c *Client) close() {
	c.once.Do(func() {
		close(c.SendBack)
		if err := c.Conn.Close(); err != nil {
			zap.L().Error(err.Error())
		}
	})
}
