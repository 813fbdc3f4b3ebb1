package respond

// ConnectionRespond 连接记录响应
// 使用位置:
//   - internal/service/connection/service.go: Request, Respond
type ConnectionRespond struct {
	ConnectionId string             `json:"connectionId"`
	Requester    UserSummaryRespond `json:"requester"`
	Recipient    UserSummaryRespond `json:"recipient"`
	Status       string             `json:"status"`
	CreatedAt    string             `json:"createdAt"`
	UpdatedAt    string             `json:"updatedAt"`
}
