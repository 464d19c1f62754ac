package rates

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// 為替レートAPIクライアント
type Client struct {
	http    *resty.Client
	baseURL string
}

func NewClient(baseURL string) *Client {
	return &Client{
		http:    resty.New(),
		baseURL: baseURL,
	}
}

type ratesResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// FetchRatesはbase通貨に対するレート一覧を取得する
func (c *Client) FetchRates(ctx context.Context, base string) (map[string]float64, error) {
	var out ratesResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get(c.baseURL + "/" + base)
	if err != nil {
		return nil, fmt.Errorf("fetch rates: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch rates: upstream returned %d", resp.StatusCode())
	}
	if len(out.Rates) == 0 {
		return nil, fmt.Errorf("fetch rates: empty rates for %s", base)
	}
	return out.Rates, nil
}
