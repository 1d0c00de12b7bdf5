package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

type Fetcher struct {
	client *resty.Client
	url    string
	logger *logrus.Entry
}

func NewFetcher(tickerURL string, logger *logrus.Entry) *Fetcher {
	client := resty.New()
	client.SetTimeout(30 * time.Second)

	// At most two attempts total: retry once, only on 429, after 500ms plus
	// random jitter up to another 500ms. Any other failure is terminal.
	client.SetRetryCount(1)
	client.SetRetryWaitTime(500 * time.Millisecond)
	client.SetRetryMaxWaitTime(1 * time.Second)
	client.AddRetryCondition(func(resp *resty.Response, err error) bool {
		return err == nil && resp.StatusCode() == http.StatusTooManyRequests
	})

	return &Fetcher{
		client: client,
		url:    tickerURL,
		logger: logger,
	}
}

type tickerResponse struct {
	Price interface{} `json:"price"`
}

// FetchPrice returns the latest ticker price as a positive finite number.
func (f *Fetcher) FetchPrice(ctx context.Context) (float64, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(f.url)
	if err != nil {
		f.logger.WithError(err).Error("Failed to fetch ticker")
		return 0, fmt.Errorf("failed to fetch ticker: %w", err)
	}

	if resp.IsError() {
		return 0, fmt.Errorf("ticker returned status %d", resp.StatusCode())
	}

	var ticker tickerResponse
	if err := json.Unmarshal(resp.Body(), &ticker); err != nil {
		return 0, fmt.Errorf("failed to unmarshal ticker response: %w", err)
	}

	price, err := coercePrice(ticker.Price)
	if err != nil {
		return 0, err
	}

	f.logger.WithFields(logrus.Fields{
		"price":    price,
		"attempts": resp.Request.Attempt,
	}).Info("Successfully fetched ticker price")

	return price, nil
}

// The exchange serves price as a JSON string; accept a plain number too.
func coercePrice(value interface{}) (float64, error) {
	var price float64

	switch v := value.(type) {
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("failed to parse ticker price %q: %w", v, err)
		}
		price = parsed
	case float64:
		price = v
	default:
		return 0, fmt.Errorf("ticker response has no usable price field")
	}

	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return 0, fmt.Errorf("ticker price %v is not a positive finite number", price)
	}

	return price, nil
}
