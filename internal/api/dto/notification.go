package dto

// SubscriptionKeysDTO Web Push 订阅密钥对
type SubscriptionKeysDTO struct {
	P256dh string `json:"p256dh" validate:"required"`
	Auth   string `json:"auth" validate:"required"`
}

// PushSubscriptionDTO 浏览器端的 PushSubscription 对象
type PushSubscriptionDTO struct {
	Endpoint string              `json:"endpoint" validate:"required"`
	Keys     SubscriptionKeysDTO `json:"keys"`
}

type SubscribeDTO struct {
	Subscription PushSubscriptionDTO `json:"subscription"`
}

// SendNotificationDTO 广播一条通知，exclude_user_id 跳过触发者
type SendNotificationDTO struct {
	Message       string `json:"message" binding:"required"`
	ExcludeUserID string `json:"exclude_user_id"`
}

type SendResultDTO struct {
	SentTo int64 `json:"sent_to"`
}
