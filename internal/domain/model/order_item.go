package model

import "time"

// 注文明細。作成時点の商品名・単価を凍結して保存する。
// 後から商品価格が変わっても注文側は変わらない。
type OrderItem struct {
	ID                  int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID             int64         `gorm:"not null;index" json:"order_id"`
	ProductID           int64         `gorm:"not null;index" json:"product_id"`
	ProductNameSnapshot string        `gorm:"type:varchar(255);not null" json:"name"`
	UnitPriceSnapshot   float64       `gorm:"not null" json:"price"`
	Quantity            int64         `gorm:"not null" json:"quantity"`
	Customization       Customization `gorm:"embedded;embeddedPrefix:custom_" json:"customization"`
	CreatedAt           time.Time     `gorm:"not null;autoCreateTime" json:"created_at"`
}
