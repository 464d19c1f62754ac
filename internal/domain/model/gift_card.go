package model

import "time"

// ギフトカード。コードは一意で、残高は手動照合で消し込む。
type GiftCard struct {
	ID       int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Code     string  `gorm:"type:varchar(64);uniqueIndex;not null" json:"code"`
	Amount   float64 `gorm:"not null" json:"amount"`
	Balance  float64 `gorm:"not null" json:"balance"`
	Currency string  `gorm:"type:varchar(10);default:'USD'" json:"currency"`

	PurchaserName  string `gorm:"type:varchar(255)" json:"purchaser_name"`
	PurchaserEmail string `gorm:"type:varchar(255)" json:"purchaser_email"`
	RecipientName  string `gorm:"type:varchar(255)" json:"recipient_name"`
	RecipientEmail string `gorm:"type:varchar(255)" json:"recipient_email"`
	Message        string `gorm:"type:varchar(500)" json:"message,omitempty"`

	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
