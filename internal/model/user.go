package model

// User 由外部认证服务 (better-auth) 维护，本服务只读
type User struct {
	ID   string `gorm:"primaryKey;type:varchar(36)"`
	Name string `gorm:"type:varchar(255)"`
}

func (User) TableName() string {
	return "user"
}
