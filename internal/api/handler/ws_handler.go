package handler

import (
	"Birrapp/internal/pkg/consts"
	"Birrapp/internal/pkg/redis"
	"Birrapp/internal/pkg/response"
	"Birrapp/internal/service"
	"context"
	log "log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WsHandler struct {
	sessionSvc service.SessionService
}

func NewWsHandler(sessionSvc service.SessionService) *WsHandler {
	return &WsHandler{sessionSvc: sessionSvc}
}

// Connect 通知推送长连接：桥接 Redis 通知频道，跳过 exclude 指向本人的消息
func (s *WsHandler) Connect(c *gin.Context) {
	// 鉴权
	token := c.Query("token")
	if token == "" {
		response.Error(c, service.ErrUnauthorized)
		return
	}
	identity, err := s.sessionSvc.Resolve(c.Request.Context(), token)
	if err != nil {
		response.Error(c, service.UnExpectedError)
		return
	}
	if identity == nil {
		log.Warn("WS 鉴权失败", "err", service.ErrUnauthorized)
		response.Error(c, service.ErrUnauthorized)
		return
	}
	userID := identity.UserID

	// 升级 Websocket
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("WS 协议升级失败", "err", err)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	// 订阅 Redis 通知频道
	pubsub := redis.Subscribe(context.Background(), consts.NotifyChannel)
	defer func() {
		_ = pubsub.Close()
	}()

	log.Info("用户 WS 连接已建立", "userID", userID)

	stopChan := make(chan struct{})

	// 读循环：监听客户端主动断开
	go func() {
		for {
			_, _, err := conn.ReadMessage()
			if err != nil {
				close(stopChan)
				return
			}
		}
	}()

	// 写循环：监听 Redis 并推送至客户端
	redisCh := pubsub.Channel()
	for {
		select {
		case msg := <-redisCh:
			var payload service.NotifyPayload
			if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
				log.Warn("WS 非法通知消息", "err", err)
				continue
			}
			if payload.Exclude == userID {
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				log.Error("WS 推送失败", "userID", userID, "err", err)
				return
			}
		case <-stopChan:
			log.Info("用户 WS 连接已断开", "userID", userID)
			return
		}
	}
}
