package model

import "time"

// 明細ごとのカスタマイズ（刻印など）。構造で等価比較する。
type Customization struct {
	Engraving string `gorm:"type:varchar(100)" json:"engraving,omitempty"`
	MetalType string `gorm:"type:varchar(50)" json:"metal_type,omitempty"`
	StoneType string `gorm:"type:varchar(50)" json:"stone_type,omitempty"`
}

// 空（未指定）かどうか
func (c Customization) IsZero() bool {
	return c == Customization{}
}

// カートの明細。
// 追加時点の価格（PriceAtAdd）を必ず保存。
// 同じ（商品, カスタマイズ）の組は1行にまとめて数量加算する。
type CartItem struct {
	ID            int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID        int64         `gorm:"not null;index" json:"cart_id"`
	ProductID     int64         `gorm:"not null;index" json:"product_id"`
	Quantity      int64         `gorm:"not null" json:"quantity"`
	Customization Customization `gorm:"embedded;embeddedPrefix:custom_" json:"customization"`
	PriceAtAdd    float64       `gorm:"not null" json:"price_at_add"`
	CreatedAt     time.Time     `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
