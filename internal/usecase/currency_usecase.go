package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"app/internal/apperr"
)

// CurrencyUsecase は為替レートの提供と金額換算。
// 上流APIの結果をキャッシュし、取れないときは換算なし（レート1.0）で返す。
type CurrencyUsecase struct {
	source RateSource
	cache  RateCache
	log    *zap.Logger

	defaultBase string
}

func NewCurrencyUsecase(source RateSource, cache RateCache, log *zap.Logger, defaultBase string) *CurrencyUsecase {
	return &CurrencyUsecase{
		source:      source,
		cache:       cache,
		log:         log,
		defaultBase: defaultBase,
	}
}

type RatesResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

type ConvertInput struct {
	Amount float64 `json:"amount"`
	From   string  `json:"from"`
	To     string  `json:"to"`
}

type ConvertResponse struct {
	Amount    float64 `json:"amount"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	Rate      float64 `json:"rate"`
	Converted float64 `json:"converted"`
}

// Rates はbase通貨に対するレート一覧。キャッシュ優先。
func (u *CurrencyUsecase) Rates(ctx context.Context, base string) (RatesResponse, error) {
	base = normalizeCurrency(base, u.defaultBase)

	rates, err := u.loadRates(ctx, base)
	if err != nil {
		return RatesResponse{}, err
	}
	return RatesResponse{Base: base, Rates: rates}, nil
}

// Convert は金額換算。
// 同一通貨、またはレートが見つからないときはレート1.0でそのまま返す。
func (u *CurrencyUsecase) Convert(ctx context.Context, in ConvertInput) (ConvertResponse, error) {
	if in.Amount < 0 {
		return ConvertResponse{}, apperr.Validation("amount must not be negative")
	}
	from := normalizeCurrency(in.From, u.defaultBase)
	to := normalizeCurrency(in.To, u.defaultBase)

	out := ConvertResponse{Amount: in.Amount, From: from, To: to, Rate: 1, Converted: in.Amount}
	if from == to {
		return out, nil
	}

	rates, err := u.loadRates(ctx, from)
	if err != nil {
		//換算できなくても価格表示は止めない
		u.log.Warn("falling back to identity rate", zap.String("from", from), zap.String("to", to), zap.Error(err))
		return out, nil
	}

	rate, ok := rates[to]
	if !ok || rate <= 0 {
		u.log.Warn("unknown currency, falling back to identity rate", zap.String("to", to))
		return out, nil
	}

	out.Rate = rate
	out.Converted = in.Amount * rate
	return out, nil
}

func (u *CurrencyUsecase) loadRates(ctx context.Context, base string) (map[string]float64, error) {
	if rates, ok, err := u.cache.Get(ctx, base); err == nil && ok {
		return rates, nil
	} else if err != nil {
		u.log.Warn("rate cache read failed", zap.String("base", base), zap.Error(err))
	}

	rates, err := u.source.FetchRates(ctx, base)
	if err != nil {
		return nil, apperr.Dependency("failed to fetch exchange rates", err)
	}

	if err := u.cache.Set(ctx, base, rates); err != nil {
		u.log.Warn("rate cache write failed", zap.String("base", base), zap.Error(err))
	}
	return rates, nil
}

func normalizeCurrency(code string, def string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return def
	}
	return code
}
