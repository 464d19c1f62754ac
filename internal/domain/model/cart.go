package model

import (
	"strconv"
	"time"
)

// カートの所有者種別。ユーザーか匿名セッションのどちらか一方だけ。
type CartOwnerType string

const (
	CartOwnerUser    CartOwnerType = "user"
	CartOwnerSession CartOwnerType = "session"
)

// カートの所有キー（タグ付き）。両方nullableなカラムにはしない。
type CartOwner struct {
	Type CartOwnerType
	Ref  string
}

func UserOwner(userID int64) CartOwner {
	return CartOwner{Type: CartOwnerUser, Ref: strconv.FormatInt(userID, 10)}
}

func SessionOwner(sessionID string) CartOwner {
	return CartOwner{Type: CartOwnerSession, Ref: sessionID}
}

// 1所有者につきカートは1つ
type Cart struct {
	ID        int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerType CartOwnerType `gorm:"type:varchar(20);not null;uniqueIndex:idx_cart_owner" json:"owner_type"`
	OwnerRef  string        `gorm:"type:varchar(255);not null;uniqueIndex:idx_cart_owner" json:"owner_ref"`
	CreatedAt time.Time     `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time     `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
