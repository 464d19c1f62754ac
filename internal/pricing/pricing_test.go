package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"app/internal/domain/model"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestEffectivePrice(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	tests := []struct {
		name    string
		product model.Product
		want    float64
	}{
		{
			name:    "割引なし",
			product: model.Product{Price: 100},
			want:    100,
		},
		{
			name: "割引が無効",
			product: model.Product{Price: 100, Discount: model.Discount{
				IsActive: false, Type: model.DiscountTypePercentage, Value: 50,
			}},
			want: 100,
		},
		{
			name: "パーセント割引",
			product: model.Product{Price: 200, Discount: model.Discount{
				IsActive: true, Type: model.DiscountTypePercentage, Value: 25,
			}},
			want: 150,
		},
		{
			name: "定額割引",
			product: model.Product{Price: 200, Discount: model.Discount{
				IsActive: true, Type: model.DiscountTypeFlat, Value: 30,
			}},
			want: 170,
		},
		{
			name: "定額割引が価格を超えたら0",
			product: model.Product{Price: 20, Discount: model.Discount{
				IsActive: true, Type: model.DiscountTypeFlat, Value: 50,
			}},
			want: 0,
		},
		{
			name: "開始前は割引なし",
			product: model.Product{Price: 100, Discount: model.Discount{
				IsActive: true, Type: model.DiscountTypePercentage, Value: 10,
				StartsAt: timePtr(future),
			}},
			want: 100,
		},
		{
			name: "終了後は割引なし",
			product: model.Product{Price: 100, Discount: model.Discount{
				IsActive: true, Type: model.DiscountTypePercentage, Value: 10,
				EndsAt: timePtr(past),
			}},
			want: 100,
		},
		{
			name: "期間内は割引あり",
			product: model.Product{Price: 100, Discount: model.Discount{
				IsActive: true, Type: model.DiscountTypePercentage, Value: 10,
				StartsAt: timePtr(past), EndsAt: timePtr(future),
			}},
			want: 90,
		},
		{
			name: "開始だけ指定（過ぎていれば有効）",
			product: model.Product{Price: 100, Discount: model.Discount{
				IsActive: true, Type: model.DiscountTypeFlat, Value: 5,
				StartsAt: timePtr(past),
			}},
			want: 95,
		},
		{
			name: "値が0なら割引なし",
			product: model.Product{Price: 100, Discount: model.Discount{
				IsActive: true, Type: model.DiscountTypePercentage, Value: 0,
			}},
			want: 100,
		},
		{
			name: "値が負なら割引なし",
			product: model.Product{Price: 100, Discount: model.Discount{
				IsActive: true, Type: model.DiscountTypeFlat, Value: -10,
			}},
			want: 100,
		},
		{
			name: "未知の割引種別は割引なし",
			product: model.Product{Price: 100, Discount: model.Discount{
				IsActive: true, Type: "bogo", Value: 50,
			}},
			want: 100,
		},
		{
			name: "100%割引で0",
			product: model.Product{Price: 100, Discount: model.Discount{
				IsActive: true, Type: model.DiscountTypePercentage, Value: 100,
			}},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectivePrice(tt.product, now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEffectivePriceBoundary(t *testing.T) {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	p := model.Product{Price: 100, Discount: model.Discount{
		IsActive: true, Type: model.DiscountTypePercentage, Value: 10,
		StartsAt: &start, EndsAt: &end,
	}}

	//境界ちょうどは期間内
	assert.Equal(t, 90.0, EffectivePrice(p, start))
	assert.Equal(t, 90.0, EffectivePrice(p, end))
	assert.Equal(t, 100.0, EffectivePrice(p, start.Add(-time.Second)))
	assert.Equal(t, 100.0, EffectivePrice(p, end.Add(time.Second)))
}
