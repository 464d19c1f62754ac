package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeRateSource struct {
	rates map[string]map[string]float64
	err   error
	calls int
}

func (s *fakeRateSource) FetchRates(ctx context.Context, base string) (map[string]float64, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	r, ok := s.rates[base]
	if !ok {
		return nil, errors.New("unknown base")
	}
	return r, nil
}

type fakeRateCache struct {
	mu    sync.Mutex
	rates map[string]map[string]float64
}

func newFakeRateCache() *fakeRateCache {
	return &fakeRateCache{rates: make(map[string]map[string]float64)}
}

func (c *fakeRateCache) Get(ctx context.Context, base string) (map[string]float64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.rates[base]
	return r, ok, nil
}

func (c *fakeRateCache) Set(ctx context.Context, base string, rates map[string]float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rates[base] = rates
	return nil
}

func TestCurrencyRatesUsesCache(t *testing.T) {
	source := &fakeRateSource{rates: map[string]map[string]float64{
		"USD": {"EUR": 0.9, "JPY": 150},
	}}
	cache := newFakeRateCache()
	uc := NewCurrencyUsecase(source, cache, zap.NewNop(), "USD")

	out, err := uc.Rates(context.Background(), "usd")
	assert.NoError(t, err)
	assert.Equal(t, "USD", out.Base)
	assert.Equal(t, 0.9, out.Rates["EUR"])
	assert.Equal(t, 1, source.calls)

	//2回目はキャッシュから
	_, err = uc.Rates(context.Background(), "USD")
	assert.NoError(t, err)
	assert.Equal(t, 1, source.calls)
}

func TestCurrencyConvert(t *testing.T) {
	source := &fakeRateSource{rates: map[string]map[string]float64{
		"USD": {"EUR": 0.8},
	}}
	uc := NewCurrencyUsecase(source, newFakeRateCache(), zap.NewNop(), "USD")

	out, err := uc.Convert(context.Background(), ConvertInput{Amount: 100, From: "USD", To: "EUR"})
	assert.NoError(t, err)
	assert.Equal(t, 0.8, out.Rate)
	assert.Equal(t, 80.0, out.Converted)

	//同一通貨はレート1.0
	out, err = uc.Convert(context.Background(), ConvertInput{Amount: 100, From: "USD", To: "usd"})
	assert.NoError(t, err)
	assert.Equal(t, 1.0, out.Rate)
	assert.Equal(t, 100.0, out.Converted)

	_, err = uc.Convert(context.Background(), ConvertInput{Amount: -1, From: "USD", To: "EUR"})
	assert.Error(t, err)
}

func TestCurrencyConvertFallsBackToIdentity(t *testing.T) {
	//上流が落ちていても換算なしで返す
	source := &fakeRateSource{err: errors.New("upstream down")}
	uc := NewCurrencyUsecase(source, newFakeRateCache(), zap.NewNop(), "USD")

	out, err := uc.Convert(context.Background(), ConvertInput{Amount: 100, From: "USD", To: "EUR"})
	assert.NoError(t, err)
	assert.Equal(t, 1.0, out.Rate)
	assert.Equal(t, 100.0, out.Converted)

	//未知の通貨も同様
	source2 := &fakeRateSource{rates: map[string]map[string]float64{"USD": {"EUR": 0.8}}}
	uc2 := NewCurrencyUsecase(source2, newFakeRateCache(), zap.NewNop(), "USD")
	out, err = uc2.Convert(context.Background(), ConvertInput{Amount: 100, From: "USD", To: "XXX"})
	assert.NoError(t, err)
	assert.Equal(t, 100.0, out.Converted)

	//レート一覧はエラーを隠さない
	_, err = uc.Rates(context.Background(), "USD")
	assert.Error(t, err)
}
