package main

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lavka-be/internal/config"
	"lavka-be/internal/monopay"
	"lavka-be/internal/order"
	"lavka-be/internal/payment"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testSecret = "test-secret"

func bearerToken(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": float64(1),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return "Bearer " + signed
}

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Checkout(ctx context.Context, orderID uint) (*payment.CreateResult, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.CreateResult), args.Error(1)
}

func (m *MockOrderService) FinalizeOrder(ctx context.Context, orderID uint) (*monopay.InvoiceStatus, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*monopay.InvoiceStatus), args.Error(1)
}

func (m *MockOrderService) RefreshPaymentStatus(ctx context.Context, invoiceID string) (*monopay.InvoiceStatus, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*monopay.InvoiceStatus), args.Error(1)
}

func (m *MockOrderService) MarkAsPaid(ctx context.Context, invoiceID string) error {
	return m.Called(ctx, invoiceID).Error(0)
}

func (m *MockOrderService) MarkAsFailed(ctx context.Context, invoiceID string) error {
	return m.Called(ctx, invoiceID).Error(0)
}

var _ order.Service = (*MockOrderService)(nil)

func TestSetupRouter(t *testing.T) {
	orders := new(MockOrderService)
	h := &orderHandler{orders: orders}

	mockWebhookHandler := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("webhook received"))
	}

	router := setupRouter(h, mockWebhookHandler, testSecret)

	t.Run("Health Check", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "OK")
	})

	t.Run("Webhook Wiring", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/webhook/monopay", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "webhook received", rr.Body.String())
	})

	t.Run("Status Requires Auth", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/payments/status?invoiceId=inv-1", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Status With Token", func(t *testing.T) {
		orders.On("RefreshPaymentStatus", mock.Anything, "inv-1").
			Return(&monopay.InvoiceStatus{InvoiceID: "inv-1", Status: "hold"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/payments/status?invoiceId=inv-1", nil)
		req.Header.Set("Authorization", bearerToken(t))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "inv-1")
	})

	t.Run("Checkout With Token", func(t *testing.T) {
		orders.On("Checkout", mock.Anything, uint(7)).
			Return(&payment.CreateResult{URL: "https://pay.mbnk.biz/x", InvoiceID: "inv-7"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/orders/checkout", strings.NewReader(`{"orderId": 7}`))
		req.Header.Set("Authorization", bearerToken(t))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "inv-7")
	})
}

func TestNewServer(t *testing.T) {
	db, err := sql.Open("mock_driver_main", "")
	assert.NoError(t, err)

	cfg := &config.Config{
		AppPort:   "8080",
		AppEnv:    "test",
		MonoToken: "dummy_token",
		SecretKey: testSecret,
	}

	router := newServer(cfg, db)

	assert.NotNil(t, router)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

// --- Mock Driver for Testing ---
type mockDriver struct{}

func (m *mockDriver) Open(name string) (driver.Conn, error)         { return &mockConn{}, nil }
func (c *mockConn) Prepare(query string) (driver.Stmt, error)       { return &mockStmt{}, nil }
func (c *mockConn) Close() error                                    { return nil }
func (c *mockConn) Begin() (driver.Tx, error)                       { return nil, nil }
func (s *mockStmt) Close() error                                    { return nil }
func (s *mockStmt) NumInput() int                                   { return 0 }
func (s *mockStmt) Exec(args []driver.Value) (driver.Result, error) { return nil, nil }
func (s *mockStmt) Query(args []driver.Value) (driver.Rows, error)  { return nil, nil }

type mockConn struct{}
type mockStmt struct{}

func init() {
	sql.Register("mock_driver_main", &mockDriver{})
}

func TestRun(t *testing.T) {
	origInitDB := initDBFunc
	defer func() { initDBFunc = origInitDB }()
	initDBFunc = func(cfg *config.Config) *sql.DB {
		db, _ := sql.Open("mock_driver_main", "")
		return db
	}

	origStartServer := startServerFunc
	defer func() { startServerFunc = origStartServer }()
	startServerFunc = func(addr string, handler http.Handler) error {
		return nil
	}

	t.Setenv("APP_PORT", "8080")
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "user")
	t.Setenv("DB_PASSWORD", "pass")
	t.Setenv("DB_NAME", "db")
	t.Setenv("MONOPAY_TOKEN", "dummy_token")
	t.Setenv("SECRET_KEY", "dummy_secret")

	assert.NoError(t, run())
}
