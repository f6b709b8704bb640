package handler

import (
	"Birrapp/internal/api/dto"
	"Birrapp/internal/api/middleware"
	"Birrapp/internal/pkg/response"
	"Birrapp/internal/pkg/util"
	"Birrapp/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notifySvc service.NotificationService
}

func NewNotificationHandler(notifySvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifySvc: notifySvc}
}

func (s *NotificationHandler) Subscribe(c *gin.Context) {
	userId := c.GetString(middleware.UserIDKey)

	var req dto.SubscribeDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req.Subscription); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	err := s.notifySvc.Subscribe(c, userId,
		req.Subscription.Endpoint,
		req.Subscription.Keys.P256dh,
		req.Subscription.Keys.Auth,
	)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *NotificationHandler) Unsubscribe(c *gin.Context) {
	userId := c.GetString(middleware.UserIDKey)

	if err := s.notifySvc.Unsubscribe(c, userId); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *NotificationHandler) Send(c *gin.Context) {
	var req dto.SendNotificationDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	sentTo, err := s.notifySvc.Broadcast(c, req.Message, req.ExcludeUserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.SendResultDTO{SentTo: sentTo})
}
