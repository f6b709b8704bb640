package repository

import (
	"Birrapp/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RankingRow 排行榜一行，name 来自外部认证服务的 user 表
type RankingRow struct {
	UserID   string  `gorm:"column:user_id"`
	Name     string  `gorm:"column:name"`
	Quantity float64 `gorm:"column:quantity"`
}

type BeerRepo interface {
	RecordBeer(ctx context.Context, beer *model.Beer) error
	DeleteBeer(ctx context.Context, id uint64, userID string) (*model.Beer, error)
	UpdateBeer(ctx context.Context, id uint64, userID string, quantity float64, drankAt time.Time) (*model.Beer, error)
	GetTotal(ctx context.Context, userID string) (float64, error)
	GetRankings(ctx context.Context, limit int) ([]*RankingRow, error)
	GetBeersBetween(ctx context.Context, userID string, from, to time.Time) ([]*model.Beer, error)
	ReconcileTotals(ctx context.Context) error
}

type beerRepoImpl struct {
	db *gorm.DB
}

func NewBeerRepository(db *gorm.DB) BeerRepo {
	return &beerRepoImpl{db: db}
}

// RecordBeer 写入记录并在同一事务内对 beer_totals 做增量 Upsert
func (r *beerRepoImpl) RecordBeer(ctx context.Context, beer *model.Beer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(beer).Error; err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity": gorm.Expr("quantity + ?", beer.BeerQuantity),
			}),
		}).Create(&model.BeerTotal{
			UserID:   beer.UserID,
			Quantity: beer.BeerQuantity,
		}).Error
	})
}

// DeleteBeer 只允许删除本人的记录；记录不存在或属他人时返回 (nil, nil)
func (r *beerRepoImpl) DeleteBeer(ctx context.Context, id uint64, userID string) (*model.Beer, error) {
	var beer model.Beer
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 行锁防止并发删除同一条记录时重复扣减总量
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND user_id = ?", id, userID).First(&beer).Error; err != nil {
			return err
		}
		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Beer{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		// 扣减总量，单条相对更新，避免读改写竞态
		return tx.Model(&model.BeerTotal{}).
			Where("user_id = ?", userID).
			Update("quantity", gorm.Expr("quantity - ?", beer.BeerQuantity)).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &beer, nil
}

// UpdateBeer 覆盖数量与时间，总量按 delta 调整而非重算
func (r *beerRepoImpl) UpdateBeer(ctx context.Context, id uint64, userID string, quantity float64, drankAt time.Time) (*model.Beer, error) {
	var beer model.Beer
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 行锁保证并发修改串行化，delta 基于锁定后的最新值
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND user_id = ?", id, userID).First(&beer).Error; err != nil {
			return err
		}
		delta := quantity - beer.BeerQuantity
		if err := tx.Model(&model.Beer{}).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(map[string]interface{}{
				"beer_quantity": quantity,
				"date_drinked":  drankAt,
			}).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.BeerTotal{}).
			Where("user_id = ?", userID).
			Update("quantity", gorm.Expr("quantity + ?", delta)).Error; err != nil {
			return err
		}
		beer.BeerQuantity = quantity
		beer.DateDrinked = drankAt
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &beer, nil
}

// GetTotal 用户从未记录过时返回 0 而不是错误
func (r *beerRepoImpl) GetTotal(ctx context.Context, userID string) (float64, error) {
	var total model.BeerTotal
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&total).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return total.Quantity, nil
}

// GetRankings 按总量降序，同分按 user_id 升序保证顺序稳定
func (r *beerRepoImpl) GetRankings(ctx context.Context, limit int) ([]*RankingRow, error) {
	rows := make([]*RankingRow, 0, limit)
	err := r.db.WithContext(ctx).Table("beer_totals bt").
		Select("bt.user_id, u.name, bt.quantity").
		Joins("JOIN `user` u ON u.id = bt.user_id").
		Order("bt.quantity DESC, bt.user_id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetBeersBetween 时间区间 [from, to)，按饮酒时间升序
func (r *beerRepoImpl) GetBeersBetween(ctx context.Context, userID string, from, to time.Time) ([]*model.Beer, error) {
	beers := make([]*model.Beer, 0)
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND date_drinked >= ? AND date_drinked < ?", userID, from, to).
		Order("date_drinked ASC").
		Find(&beers)
	if result.Error != nil {
		return nil, result.Error
	}
	return beers, nil
}

// ReconcileTotals 按 beers 表重算所有总量，用于修复漂移
func (r *beerRepoImpl) ReconcileTotals(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Exec(
			"INSERT INTO beer_totals (user_id, quantity) " +
				"SELECT user_id, SUM(beer_quantity) FROM beers GROUP BY user_id " +
				"ON DUPLICATE KEY UPDATE quantity = VALUES(quantity)").Error
		if err != nil {
			return err
		}
		return tx.Exec(
			"DELETE FROM beer_totals WHERE user_id NOT IN (SELECT DISTINCT user_id FROM beers)").Error
	})
}
