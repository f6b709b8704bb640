package api

import (
	"Birrapp/internal/api/middleware"
	"Birrapp/internal/pkg/logger"
	"Birrapp/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup, sessionSvc service.SessionService) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		beerGroup := apiGroup.Group("/beers")
		{
			beerGroup.Use(middleware.AuthMiddleware(sessionSvc))
			{
				beerGroup.POST("", group.BeerHandler.Record)
				beerGroup.PUT("/:beer_id", group.BeerHandler.Update)
				beerGroup.DELETE("/:beer_id", group.BeerHandler.Remove)
				beerGroup.GET("/total", group.BeerHandler.GetTotal)
				beerGroup.GET("/month", group.BeerHandler.GetByMonth)
				beerGroup.GET("/month/detail", group.BeerHandler.GetDetailedByMonth)
			}
		}

		rankingGroup := apiGroup.Group("/rankings")
		{
			rankingGroup.Use(middleware.AuthMiddleware(sessionSvc))
			{
				rankingGroup.GET("", group.BeerHandler.GetRankings)
			}
		}

		statsGroup := apiGroup.Group("/stats")
		{
			statsGroup.Use(middleware.AuthMiddleware(sessionSvc))
			{
				statsGroup.GET("", group.StatsHandler.GetStats)
			}
		}

		notifyGroup := apiGroup.Group("/notifications")
		{
			// 长连接在 query 里带 token 自行鉴权
			notifyGroup.GET("/stream", group.WsHandler.Connect)

			authGroup := notifyGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware(sessionSvc))
			{
				authGroup.POST("/subscribe", group.NotificationHandler.Subscribe)
				authGroup.DELETE("/subscribe", group.NotificationHandler.Unsubscribe)
				authGroup.POST("/send", group.NotificationHandler.Send)
			}
		}
	}

	return r
}
