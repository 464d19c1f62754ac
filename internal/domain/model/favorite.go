package model

import "time"

// お気に入り。（ユーザー, 商品）の組は1つだけ。
type Favorite struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:idx_fav_user_product" json:"user_id"`
	ProductID int64     `gorm:"not null;uniqueIndex:idx_fav_user_product" json:"product_id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
