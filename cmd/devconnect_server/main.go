package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"devconnect_server/internal/config"
	dao "devconnect_server/internal/dao/mysql"
	myredis "devconnect_server/internal/dao/redis"
	gatewayws "devconnect_server/internal/gateway/websocket"
	"devconnect_server/internal/handler"
	"devconnect_server/internal/http_server"
	"devconnect_server/internal/infrastructure/logger"
	"devconnect_server/internal/infrastructure/mq"
	"devconnect_server/internal/service"
	"devconnect_server/pkg/util/jwt"
	"devconnect_server/pkg/util/snowflake"

	"go.uber.org/zap"
)

func main() {
	// 1. 加载配置
	conf := config.GetConfig()

	// 2. 初始化日志
	if err := logger.Init(&conf.LogConfig, conf.MainConfig.Mode); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	zap.L().Info("日志初始化成功")

	// 3. 初始化数据库
	repos := dao.Init()
	zap.L().Info("数据库初始化成功")

	// 4. 初始化 Redis
	myredis.Init()
	zap.L().Info("Redis 初始化成功")

	// 5. 初始化 JWT 和雪花算法
	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry, conf.JWTConfig.RefreshTokenExpiry)
	snowflake.Init()
	zap.L().Info("JWT 和雪花算法初始化成功")

	// 6. 初始化消息代理
	// channel 模式走进程内通道，kafka 模式走消息队列（多实例部署时使用）
	var broker mq.Broker
	if conf.KafkaConfig.MessageMode == "kafka" {
		broker = mq.NewKafkaBroker()
	} else {
		broker = mq.NewChannelBroker()
	}
	broker.Start()
	zap.L().Info("消息代理初始化成功", zap.String("mode", conf.KafkaConfig.MessageMode))

	// 7. 初始化推送网关
	// 连接管理器消费代理事件并投递到在线连接
	connManager := gatewayws.NewConnManager(broker)
	connManager.Start()
	emitter := gatewayws.NewEmitter(broker)
	zap.L().Info("推送网关初始化成功")

	// 8. 初始化 Service 层 (依赖注入)
	services := service.NewServices(repos, myredis.GetCacheService(), emitter)
	zap.L().Info("Service 层初始化成功")

	// 9. 初始化参数校验翻译器
	if err := handler.InitTrans("zh"); err != nil {
		zap.L().Fatal("翻译器初始化失败", zap.Error(err))
	}

	// 10. 初始化 HTTP 服务器
	handlers := handler.NewHandlers(services)
	wsHandler := handler.NewWsHandler(connManager)
	engine := http_server.Init(handlers, wsHandler, repos)
	zap.L().Info("HTTP 服务器初始化成功")

	// 11. 启动服务
	host := conf.MainConfig.Host
	port := conf.MainConfig.Port
	go func() {
		if err := engine.Run(fmt.Sprintf("%s:%d", host, port)); err != nil {
			zap.L().Fatal("server running fault", zap.Error(err))
		}
	}()

	// 设置信号监听
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// 等待信号
	<-quit
	zap.L().Info("关闭服务器...")

	broker.Close()

	zap.L().Info("服务器已关闭")
}
