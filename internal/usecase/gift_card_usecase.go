package usecase

import (
	"context"
	"crypto/rand"
	"time"

	"go.uber.org/zap"

	"app/internal/apperr"
	"app/internal/domain/model"
	repo "app/internal/repository"
)

// コード衝突時のリトライ上限
const giftCardCodeMaxAttempts = 3

// GiftCardUsecase はギフトカードの購入と照会。
type GiftCardUsecase struct {
	giftCardRepo repo.GiftCardRepository
	notifier     Notifier
	log          *zap.Logger
	validity     time.Duration
	now          func() time.Time
}

func NewGiftCardUsecase(giftCardRepo repo.GiftCardRepository, notifier Notifier, log *zap.Logger) *GiftCardUsecase {
	return &GiftCardUsecase{
		giftCardRepo: giftCardRepo,
		notifier:     notifier,
		log:          log,
		//購入から1年有効
		validity: 365 * 24 * time.Hour,
		now:      time.Now,
	}
}

type PurchaseGiftCardInput struct {
	Amount         float64 `json:"amount"`
	Currency       string  `json:"currency"`
	PurchaserName  string  `json:"purchaser_name"`
	PurchaserEmail string  `json:"purchaser_email"`
	RecipientName  string  `json:"recipient_name"`
	RecipientEmail string  `json:"recipient_email"`
	Message        string  `json:"message"`
}

type GiftCardResponse struct {
	Code           string    `json:"code"`
	Amount         float64   `json:"amount"`
	Balance        float64   `json:"balance"`
	Currency       string    `json:"currency"`
	RecipientName  string    `json:"recipient_name"`
	RecipientEmail string    `json:"recipient_email"`
	Message        string    `json:"message,omitempty"`
	ExpiresAt      time.Time `json:"expires_at"`
}

// Purchase はギフトカード発行。コードはunique制約で守り、衝突したら作り直す。
func (u *GiftCardUsecase) Purchase(ctx context.Context, in PurchaseGiftCardInput) (GiftCardResponse, error) {
	if in.Amount < 10 || in.Amount > 10000 {
		return GiftCardResponse{}, apperr.Validation("amount must be between 10 and 10000")
	}
	if in.PurchaserName == "" || in.PurchaserEmail == "" {
		return GiftCardResponse{}, apperr.Validation("purchaser name and email are required")
	}
	if in.RecipientEmail == "" {
		return GiftCardResponse{}, apperr.Validation("recipient email is required")
	}
	if in.Currency == "" {
		in.Currency = "USD"
	}

	card := model.GiftCard{
		Amount:         in.Amount,
		Balance:        in.Amount,
		Currency:       in.Currency,
		PurchaserName:  in.PurchaserName,
		PurchaserEmail: in.PurchaserEmail,
		RecipientName:  in.RecipientName,
		RecipientEmail: in.RecipientEmail,
		Message:        in.Message,
		IsActive:       true,
		ExpiresAt:      u.now().Add(u.validity),
	}

	var created model.GiftCard
	var err error
	for attempt := 0; attempt < giftCardCodeMaxAttempts; attempt++ {
		card.Code, err = newGiftCardCode()
		if err != nil {
			return GiftCardResponse{}, apperr.Dependency("failed to generate gift card code", err)
		}
		created, err = u.giftCardRepo.Create(ctx, card)
		if err == repo.ErrDuplicateGiftCardCode {
			continue
		}
		break
	}
	if err == repo.ErrDuplicateGiftCardCode {
		return GiftCardResponse{}, apperr.Dependency("failed to allocate gift card code", err)
	}
	if err != nil {
		return GiftCardResponse{}, apperr.Dependency("failed to create gift card", err)
	}

	//受取人への配信。失敗しても購入は成立（コードはレスポンスにも入る）。
	if err := u.notifier.GiftCardDelivery(ctx, created); err != nil {
		u.log.Warn("failed to deliver gift card mail",
			zap.String("code", created.Code), zap.Error(err))
	}

	return toGiftCardResponse(created), nil
}

// Lookup はコードでカードを照会する。無効・期限切れは404。
func (u *GiftCardUsecase) Lookup(ctx context.Context, code string) (GiftCardResponse, error) {
	if code == "" {
		return GiftCardResponse{}, apperr.Validation("code is required")
	}

	card, err := u.giftCardRepo.FindActiveByCode(ctx, code)
	if err == repo.ErrNotFound {
		return GiftCardResponse{}, apperr.NotFound("gift card not found")
	}
	if err != nil {
		return GiftCardResponse{}, apperr.Dependency("failed to find gift card", err)
	}
	if card.ExpiresAt.Before(u.now()) {
		return GiftCardResponse{}, apperr.NotFound("gift card not found")
	}

	return toGiftCardResponse(card), nil
}

func toGiftCardResponse(c model.GiftCard) GiftCardResponse {
	return GiftCardResponse{
		Code:           c.Code,
		Amount:         c.Amount,
		Balance:        c.Balance,
		Currency:       c.Currency,
		RecipientName:  c.RecipientName,
		RecipientEmail: c.RecipientEmail,
		Message:        c.Message,
		ExpiresAt:      c.ExpiresAt,
	}
}

// VG-XXXX-XXXX-XXXX 形式（紛らわしい文字は使わない）
func newGiftCardCode() (string, error) {
	const alphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	code := make([]byte, 0, 17)
	code = append(code, 'V', 'G')
	for i, b := range buf {
		if i%4 == 0 {
			code = append(code, '-')
		}
		code = append(code, alphabet[int(b)%len(alphabet)])
	}
	return string(code), nil
}
