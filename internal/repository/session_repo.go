package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// SessionIdentity 会话解析结果：外部认证服务 session 表与 user 表联查
type SessionIdentity struct {
	UserID    string    `gorm:"column:user_id" json:"user_id"`
	Name      string    `gorm:"column:name" json:"name"`
	ExpiresAt time.Time `gorm:"column:expires_at" json:"expires_at"`
}

type SessionRepo interface {
	GetByToken(ctx context.Context, token string) (*SessionIdentity, error)
}

type sessionRepoImpl struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepo {
	return &sessionRepoImpl{db: db}
}

// GetByToken 未命中或已过期返回 (nil, nil)
func (r *sessionRepoImpl) GetByToken(ctx context.Context, token string) (*SessionIdentity, error) {
	var identity SessionIdentity
	err := r.db.WithContext(ctx).Table("session s").
		Select("s.user_id, u.name, s.expires_at").
		Joins("JOIN `user` u ON u.id = s.user_id").
		Where("s.token = ? AND s.expires_at > ?", token, time.Now()).
		First(&identity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &identity, nil
}
