package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
)

// コードが衝突した（作り直して再試行）
var ErrDuplicateGiftCardCode = errors.New("duplicate gift card code")

type GiftCardRepository interface {
	Create(ctx context.Context, gc model.GiftCard) (model.GiftCard, error)
	//有効かつ期限内のカードだけ返す
	FindActiveByCode(ctx context.Context, code string) (model.GiftCard, error)
}
