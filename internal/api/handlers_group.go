package api

import "Birrapp/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	BeerHandler         *handler.BeerHandler
	StatsHandler        *handler.StatsHandler
	NotificationHandler *handler.NotificationHandler
	WsHandler           *handler.WsHandler
}
