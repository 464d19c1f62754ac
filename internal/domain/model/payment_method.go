package model

// 支払方法の設定レコード。決済ゲートウェイ連携はしない（手動照合用の案内だけ）。
type PaymentMethod struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Method       string `gorm:"type:varchar(50);uniqueIndex;not null" json:"method"`
	DisplayName  string `gorm:"type:varchar(255)" json:"display_name"`
	Instructions string `gorm:"type:text" json:"instructions"`
	IsActive     bool   `gorm:"not null;default:true" json:"is_active"`
}
