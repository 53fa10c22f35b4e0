package monopay

import "encoding/json"

// Wire shapes of the Monobank merchant acquiring API.

type InvoiceRequest struct {
	Amount           int64            `json:"amount"`
	RedirectURL      string           `json:"redirectUrl"`
	WebHookURL       string           `json:"webHookUrl,omitempty"`
	Validity         int              `json:"validity"`
	PaymentType      string           `json:"paymentType"`
	MerchantPaymInfo MerchantPaymInfo `json:"merchantPaymInfo"`
}

type MerchantPaymInfo struct {
	Destination string       `json:"destination"`
	Comment     string       `json:"comment"`
	BasketOrder []BasketItem `json:"basketOrder"`
}

type BasketItem struct {
	Name string  `json:"name"`
	Qty  float64 `json:"qty"`
	Sum  int64   `json:"sum"`
	Icon string  `json:"icon"`
	Unit string  `json:"unit"`
}

type FinalizeRequest struct {
	InvoiceID string         `json:"invoiceId"`
	Amount    int64          `json:"amount"`
	Items     []FinalizeItem `json:"items"`
}

// FinalizeItem carries no icon or unit; the finalize schema differs
// from the create one.
type FinalizeItem struct {
	Name string  `json:"name"`
	Qty  float64 `json:"qty"`
	Sum  int64   `json:"sum"`
}

// Response is the raw outcome of one gateway call: HTTP status code plus
// the undecoded body. The client never interprets either.
type Response struct {
	StatusCode int
	Body       json.RawMessage
}

type CreateResponse struct {
	InvoiceID string `json:"invoiceId"`
	PageURL   string `json:"pageUrl"`
}

// InvoiceStatus is the gateway-native status body, returned by the status
// endpoint and delivered verbatim to the webhook.
type InvoiceStatus struct {
	InvoiceID     string       `json:"invoiceId"`
	Status        string       `json:"status"`
	Amount        *int64       `json:"amount,omitempty"`
	Ccy           int          `json:"ccy,omitempty"`
	FailureReason string       `json:"failureReason,omitempty"`
	ErrCode       string       `json:"errCode,omitempty"`
	PaymentInfo   *PaymentInfo `json:"paymentInfo,omitempty"`
	CreatedDate   string       `json:"createdDate,omitempty"`
	ModifiedDate  string       `json:"modifiedDate,omitempty"`

	Raw json.RawMessage `json:"-"`
}

type PaymentInfo struct {
	RRN    string `json:"rrn"`
	TranID string `json:"tranId"`
}

type APIError struct {
	ErrCode string `json:"errCode"`
	ErrText string `json:"errText"`
}
