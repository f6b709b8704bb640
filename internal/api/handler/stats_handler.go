package handler

import (
	"Birrapp/internal/api/middleware"
	"Birrapp/internal/pkg/response"
	"Birrapp/internal/service"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	statsSvc service.StatsService
}

func NewStatsHandler(statsSvc service.StatsService) *StatsHandler {
	return &StatsHandler{statsSvc: statsSvc}
}

func (s *StatsHandler) GetStats(c *gin.Context) {
	userId := c.GetString(middleware.UserIDKey)

	stats, err := s.statsSvc.GetStats(c, userId)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}
