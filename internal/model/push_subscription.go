package model

import "time"

// PushSubscription 每用户一条推送订阅，重复订阅覆盖旧记录
type PushSubscription struct {
	ID        uint64    `gorm:"primaryKey"`
	UserID    string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_push_user"`
	Endpoint  string    `gorm:"type:varchar(1024);not null"`
	P256dh    string    `gorm:"type:varchar(255);not null"`
	Auth      string    `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time
}

func (PushSubscription) TableName() string {
	return "push_subscriptions"
}
