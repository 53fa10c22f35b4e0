package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"lavka-be/internal/logger"
	"lavka-be/internal/monopay"
	"lavka-be/internal/storage"

	"go.uber.org/zap"
)

const (
	paymentTypeHold = "hold"
	basketUnit      = "шт."

	// Flat courier-to-door fee, UAH.
	doorDeliverySurcharge = 75
)

// monoAdapter implements Gateway over the Monobank merchant API. It is the
// only component with business rules: basket shaping, minor-unit rounding,
// the door-delivery surcharge and the promotion of known finalize errors.
type monoAdapter struct {
	client        *monopay.Client
	images        storage.ImageResolver
	webhookSecret string
	log           *zap.Logger
}

func NewMonoAdapter(client *monopay.Client, images storage.ImageResolver, webhookSecret string) Gateway {
	return &monoAdapter{
		client:        client,
		images:        images,
		webhookSecret: webhookSecret,
		log:           logger.Channel("mono"),
	}
}

func (a *monoAdapter) CreateInvoice(ctx context.Context, params CreateParams) (*CreateResult, error) {
	basket := make([]monopay.BasketItem, 0, len(params.Basket))
	for _, item := range params.Basket {
		basket = append(basket, monopay.BasketItem{
			Name: item.ProductName,
			Qty:  item.Quantity,
			Sum:  ToMinorUnits(item.ProductPrice),
			Icon: a.images.Resolve(item.ProductImage, item.Category, item.ProductID),
			Unit: basketUnit,
		})
	}

	destination := fmt.Sprintf("Product purchase, order %d", params.OrderID)

	req := monopay.InvoiceRequest{
		Amount:      params.Amount,
		RedirectURL: params.RedirectURL,
		WebHookURL:  params.WebHookURL,
		Validity:    params.Validity,
		PaymentType: paymentTypeHold,
		MerchantPaymInfo: monopay.MerchantPaymInfo{
			Destination: destination,
			Comment:     destination,
			BasketOrder: basket,
		},
	}

	resp, err := a.client.Create(ctx, req)
	if err != nil {
		a.log.Error("invoice create failed",
			zap.Uint("order_id", params.OrderID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("create invoice: %w", ErrPaymentFailed)
	}

	if resp.StatusCode != http.StatusOK {
		a.logGatewayError("invoice create", resp)
		return nil, fmt.Errorf("create invoice: %w", ErrPaymentFailed)
	}

	var created monopay.CreateResponse
	if err := json.Unmarshal(resp.Body, &created); err != nil {
		a.log.Error("invoice create: malformed response body",
			zap.Uint("order_id", params.OrderID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("create invoice: %w", ErrPaymentFailed)
	}

	return &CreateResult{
		URL:       created.PageURL,
		InvoiceID: created.InvoiceID,
	}, nil
}

func (a *monoAdapter) GetStatus(ctx context.Context, invoiceID string) (*monopay.InvoiceStatus, error) {
	resp, err := a.client.GetStatus(ctx, invoiceID)
	if err != nil {
		a.log.Error("invoice status failed",
			zap.String("invoice_id", invoiceID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get status: %w", ErrPaymentFailed)
	}

	if resp.StatusCode != http.StatusOK {
		a.logGatewayError("invoice status", resp)
		return nil, fmt.Errorf("get status: %w", ErrPaymentFailed)
	}

	// Pass-through: the gateway's native status schema, not remapped.
	var st monopay.InvoiceStatus
	if err := json.Unmarshal(resp.Body, &st); err != nil {
		a.log.Error("invoice status: malformed response body",
			zap.String("invoice_id", invoiceID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get status: %w", ErrPaymentFailed)
	}
	st.Raw = resp.Body

	return &st, nil
}

func (a *monoAdapter) FinalizeInvoice(ctx context.Context, ord FinalizeOrder) (*monopay.InvoiceStatus, error) {
	items := make([]monopay.FinalizeItem, 0, len(ord.Cart))
	for _, item := range ord.Cart {
		items = append(items, monopay.FinalizeItem{
			Name: item.ProductName,
			Qty:  item.Quantity,
			Sum:  ToMinorUnits(item.ProductPrice),
		})
	}

	finalPrice := OrderTotal(ord.Cart, ord.ToDoor, ord.DeliveryPrice)

	req := monopay.FinalizeRequest{
		InvoiceID: ord.InvoiceID,
		Amount:    ToMinorUnits(finalPrice),
		Items:     items,
	}

	resp, err := a.client.Finalize(ctx, req)
	if err != nil {
		a.log.Error("invoice finalize failed",
			zap.String("invoice_id", ord.InvoiceID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("finalize invoice: %w", ErrPaymentFailed)
	}

	if resp.StatusCode == http.StatusOK {
		var st monopay.InvoiceStatus
		if err := json.Unmarshal(resp.Body, &st); err != nil {
			a.log.Error("invoice finalize: malformed response body",
				zap.String("invoice_id", ord.InvoiceID),
				zap.Error(err),
			)
			return nil, fmt.Errorf("finalize invoice: %w", ErrPaymentFailed)
		}
		st.Raw = resp.Body
		return &st, nil
	}

	apiErr := a.logGatewayError("invoice finalize", resp)

	if resp.StatusCode == http.StatusBadRequest {
		switch apiErr.ErrText {
		case "finalization amount exceeds hold amount":
			return nil, ErrFinalizeExceedsHold
		case "order on hold not found":
			return nil, ErrHoldNotFound
		}
	}

	return nil, fmt.Errorf("finalize invoice: %w", ErrPaymentFailed)
}

// VerifySignature authenticates a status callback against the X-Sign
// header the gateway attaches to every delivery.
func (a *monoAdapter) VerifySignature(r *http.Request) error {
	sig := r.Header.Get("X-Sign")
	expected := a.webhookSecret

	if expected == "" {
		return nil // skip in dev
	}

	if sig != expected {
		return errors.New("invalid webhook signature")
	}
	return nil
}

// logGatewayError records a non-200 gateway reply. errCode/errText stay
// empty when the body carries none.
func (a *monoAdapter) logGatewayError(op string, resp *monopay.Response) monopay.APIError {
	var apiErr monopay.APIError
	_ = json.Unmarshal(resp.Body, &apiErr)

	a.log.Error(op+" rejected by gateway",
		zap.Int("status", resp.StatusCode),
		zap.String("err_code", apiErr.ErrCode),
		zap.String("err_text", apiErr.ErrText),
	)
	return apiErr
}
