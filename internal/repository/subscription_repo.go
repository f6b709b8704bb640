package repository

import (
	"Birrapp/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriptionRepo interface {
	Upsert(ctx context.Context, sub *model.PushSubscription) error
	Count(ctx context.Context) (int64, error)
	ExistsForUser(ctx context.Context, userID string) (bool, error)
	DeleteForUser(ctx context.Context, userID string) error
}

type subscriptionRepoImpl struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepo {
	return &subscriptionRepoImpl{db: db}
}

// Upsert 每用户仅保留一条订阅，重复订阅覆盖端点与密钥
func (r *subscriptionRepoImpl) Upsert(ctx context.Context, sub *model.PushSubscription) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"endpoint", "p256dh", "auth"}),
	}).Create(sub).Error
}

func (r *subscriptionRepoImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.PushSubscription{}).Count(&count).Error
	return count, err
}

func (r *subscriptionRepoImpl) ExistsForUser(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.PushSubscription{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count > 0, err
}

// DeleteForUser 删除用户的订阅，用于退订
func (r *subscriptionRepoImpl) DeleteForUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).
		Delete(&model.PushSubscription{}).Error
}
