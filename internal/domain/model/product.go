package model

import "time"

// 割引種別
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFlat       DiscountType = "flat"
)

// 商品に埋め込む割引設定。
// isActiveがtrueかつ期間内のときだけ有効。
type Discount struct {
	IsActive bool         `gorm:"not null;default:false" json:"is_active"`
	Type     DiscountType `gorm:"type:varchar(20);default:'percentage'" json:"type"`
	Value    float64      `gorm:"not null;default:0" json:"value"`
	StartsAt *time.Time   `json:"starts_at,omitempty"`
	EndsAt   *time.Time   `json:"ends_at,omitempty"`
}

// ジュエリー商品。管理側プロセスが作成・編集し、この系からは読み取り専用。
type Product struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Slug        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	SKU         string `gorm:"type:varchar(100);uniqueIndex" json:"sku"`
	Description string `gorm:"type:text" json:"description"`

	//カテゴリ系フィルター
	Category    string `gorm:"type:varchar(50);index" json:"category"`
	Subcategory string `gorm:"type:varchar(100);index" json:"subcategory"`

	//素材系フィルター
	MetalType  string `gorm:"type:varchar(50);index" json:"metal_type"`
	Karat      int    `gorm:"index" json:"karat"`
	MetalColor string `gorm:"type:varchar(50);index" json:"metal_color"`
	StoneType  string `gorm:"type:varchar(50);index" json:"stone_type"`
	StoneColor string `gorm:"type:varchar(50)" json:"stone_color"`
	Gender     string `gorm:"type:varchar(20);default:'unisex';index" json:"gender"`

	//価格（基準価格、割引前）
	Price    float64  `gorm:"not null" json:"price"`
	Currency string   `gorm:"type:varchar(10);default:'USD'" json:"currency"`
	Discount Discount `gorm:"embedded;embeddedPrefix:discount_" json:"discount"`

	Stock      int64 `gorm:"not null;default:0" json:"stock"`
	IsActive   bool  `gorm:"not null;default:true;index" json:"is_active"`
	IsFeatured bool  `gorm:"not null;default:false;index" json:"is_featured"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
