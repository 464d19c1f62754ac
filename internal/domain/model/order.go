package model

import "time"

// 配送状況。チェックアウトはpendingのまま作るだけで、以降は管理側の操作でしか進まない。
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// 支払状況。注文ステータスとは独立。
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// 注文の配送先（作成時点のスナップショット）
type ShippingAddress struct {
	FullName     string `gorm:"type:varchar(255)" json:"full_name"`
	Phone        string `gorm:"type:varchar(30)" json:"phone"`
	AddressLine1 string `gorm:"type:varchar(255)" json:"address_line1"`
	AddressLine2 string `gorm:"type:varchar(255)" json:"address_line2"`
	City         string `gorm:"type:varchar(100)" json:"city"`
	State        string `gorm:"type:varchar(100)" json:"state"`
	Country      string `gorm:"type:varchar(100)" json:"country"`
	PostalCode   string `gorm:"type:varchar(20)" json:"postal_code"`
}

// 確定済み注文。作成後は明細価格も合計も変わらない。
// 購入者はUserIDかGuestEmailのどちらか一方のみ。
type Order struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNumber string `gorm:"type:varchar(64);uniqueIndex;not null" json:"order_number"`

	UserID     int64  `gorm:"index" json:"user_id,omitempty"`
	GuestEmail string `gorm:"type:varchar(255);index" json:"guest_email,omitempty"`

	Subtotal     float64 `gorm:"not null" json:"subtotal"`
	ShippingCost float64 `gorm:"not null" json:"shipping_cost"`
	Tax          float64 `gorm:"not null" json:"tax"`
	Total        float64 `gorm:"not null" json:"total"`
	Currency     string  `gorm:"type:varchar(10);default:'USD'" json:"currency"`

	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:ship_" json:"shipping_address"`
	PaymentMethod   string          `gorm:"type:varchar(50)" json:"payment_method"`

	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"`
	OrderStatus   OrderStatus   `gorm:"type:varchar(20);not null;default:'pending';index" json:"order_status"`

	TrackingNumber string `gorm:"type:varchar(100)" json:"tracking_number,omitempty"`

	//返品リクエスト（1回だけ立てられる）
	ReturnRequested   bool       `gorm:"not null;default:false" json:"return_requested"`
	ReturnReason      string     `gorm:"type:varchar(500)" json:"return_reason,omitempty"`
	ReturnRequestedAt *time.Time `json:"return_requested_at,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
