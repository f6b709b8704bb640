package model

import "time"

// Beer 一条喝酒记录
type Beer struct {
	ID           uint64    `gorm:"primaryKey"`
	UserID       string    `gorm:"type:varchar(36);not null;index:idx_beers_user"`
	BeerQuantity float64   `gorm:"type:double;not null"`
	DateDrinked  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Beer) TableName() string {
	return "beers"
}
