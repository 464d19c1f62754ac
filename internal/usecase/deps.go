package usecase

import (
	"context"

	"app/internal/domain/model"
)

// usecaseが利用する外部依存。実装はinfra側。

// 通知メール。本文の組み立ても実装側の仕事。
type Notifier interface {
	OrderConfirmation(ctx context.Context, to string, order model.Order, items []model.OrderItem) error
	PasswordResetCode(ctx context.Context, to string, code string) error
	GiftCardDelivery(ctx context.Context, card model.GiftCard) error
	ReturnRequested(ctx context.Context, to string, orderNumber string, reason string) error
	AppointmentConfirmation(ctx context.Context, appt model.Appointment) error
	AppointmentRequested(ctx context.Context, to string, appt model.Appointment) error
}

// パスワードリセットコードの保管（TTL付き）
type ResetCodeStore interface {
	Set(ctx context.Context, email string, code string) error
	Get(ctx context.Context, email string) (string, bool, error)
	Delete(ctx context.Context, email string) error
}

// JWT発行。実装はcmd/api側で組み立てる。
type TokenIssuer interface {
	Issue(userID int64) (string, error)
}

// 為替レートの取得元（上流API）
type RateSource interface {
	FetchRates(ctx context.Context, base string) (map[string]float64, error)
}

// 為替レートのキャッシュ
type RateCache interface {
	Get(ctx context.Context, base string) (map[string]float64, bool, error)
	Set(ctx context.Context, base string, rates map[string]float64) error
}
