package pricing

import (
	"time"

	"app/internal/domain/model"
)

// EffectivePrice は割引適用後の単価を返す純粋関数。
// 割引が無効・期間外・値が不正なときは基準価格をそのまま返す
// （価格提示で落ちてはいけないので、迷ったら割引なし扱い）。
func EffectivePrice(p model.Product, now time.Time) float64 {
	d := p.Discount

	if !d.IsActive || d.Value <= 0 {
		return p.Price
	}

	//期間チェック（片側だけの指定も可）
	if d.StartsAt != nil && now.Before(*d.StartsAt) {
		return p.Price
	}
	if d.EndsAt != nil && now.After(*d.EndsAt) {
		return p.Price
	}

	switch d.Type {
	case model.DiscountTypePercentage:
		discounted := p.Price - p.Price*d.Value/100
		if discounted < 0 {
			return 0
		}
		return discounted
	case model.DiscountTypeFlat:
		discounted := p.Price - d.Value
		if discounted < 0 {
			return 0
		}
		return discounted
	default:
		//未知の種別は割引なし扱い
		return p.Price
	}
}
