package constants

const (
	CHANNEL_SIZE           = 100 // 推送通道缓冲大小
	REDIS_TIMEOUT          = 1   // redis 缓存过期时间（分钟）
	DEFAULT_MESSAGE_LIMIT  = 50  // 消息分页默认每页条数
	MAX_MESSAGE_LIMIT      = 200 // 消息分页每页上限
	CACHE_WORKER_NUM       = 15  // 缓存异步 Worker 数量
	CACHE_WORKER_BUF_SIZE  = 3000
	MAX_CONTENT_LENGTH     = 5000 // 消息内容最大长度
	REFRESH_TOKEN_EXP_HOUR = 168  // Refresh Token 有效期（小时），168小时 = 7天
)
