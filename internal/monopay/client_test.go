package monopay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockRoundTripper allows us to mock the HTTP response
type MockRoundTripper func(req *http.Request) *http.Response

func (f MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

type MockRoundTripperWithError func(req *http.Request) (*http.Response, error)

func (f MockRoundTripperWithError) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func validInvoice() InvoiceRequest {
	return InvoiceRequest{
		Amount:      5000,
		RedirectURL: "https://shop.example/thanks",
		Validity:    3600,
		PaymentType: "hold",
		MerchantPaymInfo: MerchantPaymInfo{
			Destination: "Product purchase, order 7",
			Comment:     "Product purchase, order 7",
			BasketOrder: []BasketItem{
				{Name: "Widget", Qty: 2, Sum: 2500, Icon: "https://cdn.example/img.png", Unit: "шт."},
			},
		},
	}
}

func TestClient_Create(t *testing.T) {
	token := "test-token"
	c := NewClient(token, "")

	t.Run("Success", func(t *testing.T) {
		respBody := `{"invoiceId": "inv-1", "pageUrl": "https://pay.mbnk.biz/inv-1"}`

		c.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			assert.Equal(t, "POST", req.Method)
			assert.Equal(t, "https://api.monobank.ua/api/merchant/invoice/create", req.URL.String())
			assert.Equal(t, token, req.Header.Get("X-Token"))
			assert.Equal(t, "application/json", req.Header.Get("Content-Type"))

			var sent InvoiceRequest
			body, _ := io.ReadAll(req.Body)
			require.NoError(t, json.Unmarshal(body, &sent))
			assert.Equal(t, int64(5000), sent.Amount)
			assert.Equal(t, "hold", sent.PaymentType)
			assert.Len(t, sent.MerchantPaymInfo.BasketOrder, 1)

			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewBufferString(respBody)),
				Header:     make(http.Header),
			}
		})

		resp, err := c.Create(context.Background(), validInvoice())
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, respBody, string(resp.Body))
	})

	t.Run("MissingRedirectURL", func(t *testing.T) {
		calls := 0
		c.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			calls++
			return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(bytes.NewBufferString(`{}`))}
		})

		inv := validInvoice()
		inv.RedirectURL = ""

		_, err := c.Create(context.Background(), inv)
		assert.Error(t, err)

		var vErr *ValidationError
		assert.True(t, errors.As(err, &vErr))
		assert.Equal(t, "redirectUrl", vErr.Field)
		assert.Equal(t, 0, calls, "validation must fail before any network call")
	})

	t.Run("MissingPaymentType", func(t *testing.T) {
		calls := 0
		c.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			calls++
			return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(bytes.NewBufferString(`{}`))}
		})

		inv := validInvoice()
		inv.PaymentType = ""

		_, err := c.Create(context.Background(), inv)
		assert.Error(t, err)

		var vErr *ValidationError
		assert.True(t, errors.As(err, &vErr))
		assert.Equal(t, "paymentType", vErr.Field)
		assert.Equal(t, 0, calls)
	})

	t.Run("NonSuccessStatusPassesThrough", func(t *testing.T) {
		c.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			return &http.Response{
				StatusCode: http.StatusForbidden,
				Body:       io.NopCloser(bytes.NewBufferString(`{"errCode": "FORBIDDEN", "errText": "invalid token"}`)),
				Header:     make(http.Header),
			}
		})

		resp, err := c.Create(context.Background(), validInvoice())
		assert.NoError(t, err, "client does not classify gateway errors")
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		var apiErr APIError
		require.NoError(t, json.Unmarshal(resp.Body, &apiErr))
		assert.Equal(t, "invalid token", apiErr.ErrText)
	})

	t.Run("NetworkError", func(t *testing.T) {
		c.httpClient.Transport = MockRoundTripperWithError(func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		})

		_, err := c.Create(context.Background(), validInvoice())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})
}

func TestClient_GetStatus(t *testing.T) {
	c := NewClient("test-token", "")

	t.Run("Success", func(t *testing.T) {
		respBody := `{"invoiceId": "inv-1", "status": "success", "amount": 29600}`

		c.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			assert.Equal(t, "GET", req.Method)
			assert.Equal(t, "https://api.monobank.ua/api/merchant/invoice/status?invoiceId=inv-1", req.URL.String())
			assert.Equal(t, "test-token", req.Header.Get("X-Token"))

			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewBufferString(respBody)),
				Header:     make(http.Header),
			}
		})

		resp, err := c.GetStatus(context.Background(), "inv-1")
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, respBody, string(resp.Body))
	})

	t.Run("InvoiceIDEscaped", func(t *testing.T) {
		c.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			assert.Equal(t, "inv 1&x=y", req.URL.Query().Get("invoiceId"))
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewBufferString(`{}`)),
				Header:     make(http.Header),
			}
		})

		_, err := c.GetStatus(context.Background(), "inv 1&x=y")
		assert.NoError(t, err)
	})

	t.Run("NetworkError", func(t *testing.T) {
		c.httpClient.Transport = MockRoundTripperWithError(func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("network error")
		})

		_, err := c.GetStatus(context.Background(), "inv-1")
		assert.Error(t, err)
	})
}

func TestClient_Finalize(t *testing.T) {
	c := NewClient("test-token", "")

	t.Run("Success", func(t *testing.T) {
		c.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			assert.Equal(t, "POST", req.Method)
			assert.Equal(t, "https://api.monobank.ua/api/merchant/invoice/finalize", req.URL.String())

			var sent FinalizeRequest
			body, _ := io.ReadAll(req.Body)
			require.NoError(t, json.Unmarshal(body, &sent))
			assert.Equal(t, "inv-1", sent.InvoiceID)
			assert.Equal(t, int64(29600), sent.Amount)

			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewBufferString(`{"status": "success"}`)),
				Header:     make(http.Header),
			}
		})

		resp, err := c.Finalize(context.Background(), FinalizeRequest{
			InvoiceID: "inv-1",
			Amount:    29600,
			Items:     []FinalizeItem{{Name: "Widget", Qty: 2, Sum: 2500}},
		})
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("BadRequestPassesThrough", func(t *testing.T) {
		c.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			return &http.Response{
				StatusCode: http.StatusBadRequest,
				Body:       io.NopCloser(bytes.NewBufferString(`{"errText": "order on hold not found"}`)),
				Header:     make(http.Header),
			}
		})

		resp, err := c.Finalize(context.Background(), FinalizeRequest{InvoiceID: "inv-404", Amount: 100})
		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestNewClient(t *testing.T) {
	t.Run("EmptyToken", func(t *testing.T) {
		c := NewClient("", "")
		assert.NotNil(t, c)
	})

	t.Run("CustomBaseURL", func(t *testing.T) {
		c := NewClient("tok", "https://sandbox.example/api/")
		assert.Equal(t, "https://sandbox.example/api", c.baseURL)
	})
}
