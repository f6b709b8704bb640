package service

import (
	"Birrapp/internal/model"
	"Birrapp/internal/pkg/consts"
	"Birrapp/internal/pkg/redis"
	"Birrapp/internal/repository"
	"context"

	"github.com/goccy/go-json"
)

const (
	notifyTitle = "Birrapp 🍺"
	notifyIcon  = "/icon-192.png"
)

// NotifyPayload 广播到通知频道的消息体，Exclude 用于跳过触发者本人
type NotifyPayload struct {
	Title   string `json:"title"`
	Body    string `json:"body"`
	Icon    string `json:"icon"`
	Badge   string `json:"badge"`
	Exclude string `json:"exclude,omitempty"`
}

type NotificationService interface {
	Subscribe(ctx context.Context, userID, endpoint, p256dh, auth string) error
	Unsubscribe(ctx context.Context, userID string) error
	Broadcast(ctx context.Context, message, excludeUserID string) (int64, error)
}

type notificationServiceImpl struct {
	subRepo repository.SubscriptionRepo
}

func NewNotificationService(subRepo repository.SubscriptionRepo) NotificationService {
	return &notificationServiceImpl{subRepo: subRepo}
}

func (s *notificationServiceImpl) Subscribe(ctx context.Context, userID, endpoint, p256dh, auth string) error {
	if endpoint == "" || p256dh == "" || auth == "" {
		return ErrParamInvalid
	}
	return s.subRepo.Upsert(ctx, &model.PushSubscription{
		UserID:   userID,
		Endpoint: endpoint,
		P256dh:   p256dh,
		Auth:     auth,
	})
}

// Unsubscribe 删除本人的推送订阅；没有订阅时也视为成功
func (s *notificationServiceImpl) Unsubscribe(ctx context.Context, userID string) error {
	return s.subRepo.DeleteForUser(ctx, userID)
}

// Broadcast 发布到 Redis 通知频道，返回理论接收人数（订阅数，触发者除外）
func (s *notificationServiceImpl) Broadcast(ctx context.Context, message, excludeUserID string) (int64, error) {
	if message == "" {
		return 0, ErrParamInvalid
	}

	payload, err := json.Marshal(&NotifyPayload{
		Title:   notifyTitle,
		Body:    message,
		Icon:    notifyIcon,
		Badge:   notifyIcon,
		Exclude: excludeUserID,
	})
	if err != nil {
		return 0, err
	}
	if err = redis.Publish(ctx, consts.NotifyChannel, payload); err != nil {
		return 0, err
	}

	count, err := s.subRepo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if excludeUserID != "" {
		subscribed, err := s.subRepo.ExistsForUser(ctx, excludeUserID)
		if err != nil {
			return 0, err
		}
		if subscribed {
			count--
		}
	}
	return count, nil
}
