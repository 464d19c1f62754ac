package model

import "time"

// 配送先住所
type Address struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"not null;index" json:"user_id"`

	//宛名
	FullName string `gorm:"type:varchar(255);not null" json:"full_name"`

	//電話番号
	Phone string `gorm:"type:varchar(30)" json:"phone"`

	AddressLine1 string `gorm:"type:varchar(255);not null" json:"address_line1"`
	AddressLine2 string `gorm:"type:varchar(255)" json:"address_line2"`
	City         string `gorm:"type:varchar(100);not null" json:"city"`
	State        string `gorm:"type:varchar(100)" json:"state"`
	Country      string `gorm:"type:varchar(100);not null" json:"country"`
	PostalCode   string `gorm:"type:varchar(20)" json:"postal_code"`

	//このユーザーのデフォルト住所か
	IsDefault bool `gorm:"not null;default:false" json:"is_default"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
