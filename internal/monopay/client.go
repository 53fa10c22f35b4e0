package monopay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lavka-be/internal/logger"
	"lavka-be/internal/metrics"

	"go.uber.org/zap"
)

const defaultBaseURL = "https://api.monobank.ua/api"

// Client wraps the three Monobank merchant endpoints behind X-Token
// authentication. It performs no retries and no error classification;
// transport failures surface to the caller as-is.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

func NewClient(token, baseURL string) *Client {
	if token == "" {
		logger.Channel("mono").Warn("MonoPay token is empty")
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		token:   token,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Create posts an invoice-creation request. redirectUrl and paymentType are
// required; a missing field fails with *ValidationError before the wire is
// touched.
func (c *Client) Create(ctx context.Context, inv InvoiceRequest) (*Response, error) {
	if inv.RedirectURL == "" {
		return nil, &ValidationError{Field: "redirectUrl"}
	}
	if inv.PaymentType == "" {
		return nil, &ValidationError{Field: "paymentType"}
	}

	return c.post(ctx, "/merchant/invoice/create", inv)
}

// GetStatus fetches the current gateway status of one invoice.
func (c *Client) GetStatus(ctx context.Context, invoiceID string) (*Response, error) {
	endpoint := c.baseURL + "/merchant/invoice/status?invoiceId=" + url.QueryEscape(invoiceID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	return c.do(req)
}

// Finalize captures a previously held amount.
func (c *Client) Finalize(ctx context.Context, fin FinalizeRequest) (*Response, error) {
	return c.post(ctx, "/merchant/invoice/finalize", fin)
}

func (c *Client) post(ctx context.Context, path string, body interface{}) (*Response, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

func (c *Client) do(req *http.Request) (*Response, error) {
	req.Header.Set("X-Token", c.token)

	metrics.Gateway.Requests.Inc()
	timer := metrics.StartTimer()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.Gateway.Failures.Inc()
		return nil, err
	}
	defer resp.Body.Close()

	logger.Channel("mono").Debug("gateway round trip",
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", timer.Duration()),
	)

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read monopay response: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       bodyBytes,
	}, nil
}
