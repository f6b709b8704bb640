package model

// BeerTotal 每用户的累计饮酒量，由 beers 表的增量写入同事务维护
type BeerTotal struct {
	UserID   string  `gorm:"primaryKey;type:varchar(36)"`
	Quantity float64 `gorm:"type:double;not null;default:0"`
}

func (BeerTotal) TableName() string {
	return "beer_totals"
}
