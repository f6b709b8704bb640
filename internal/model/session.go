package model

import "time"

// Session 外部认证服务签发的会话，本服务只读（签发/续期/注销均不在此处）
type Session struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	Token     string    `gorm:"type:varchar(255);uniqueIndex:idx_session_token"`
	UserID    string    `gorm:"type:varchar(36);not null"`
	ExpiresAt time.Time `gorm:"not null"`
}

func (Session) TableName() string {
	return "session"
}
