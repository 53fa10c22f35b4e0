package payment

import (
	"context"
	"database/sql"

	"lavka-be/internal/monopay"

	"github.com/shopspring/decimal"
)

// Repository owns the payments table. Nothing else mutates payment rows.
// All operations are single-row, last-write-wins; the database's row-level
// write atomicity is the only guard against concurrent updates.
//
// UpdateStatus and TouchPayment are entry points for the surrounding order
// subsystem (admin corrections, keepalive on long-held invoices); the
// payment flow itself writes through StoreNew and Update.
type Repository interface {
	StoreNew(ctx context.Context, orderID, userID uint, st *monopay.InvoiceStatus) (int64, error)
	Update(ctx context.Context, st *monopay.InvoiceStatus) error
	UpdateStatus(ctx context.Context, invoiceID, status, reasonErr string) error
	TouchPayment(ctx context.Context, id int64) error
	GetByInvoiceID(ctx context.Context, invoiceID string) (*Payment, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// StoreNew inserts the record for a freshly created invoice. Status
// defaults to "created" when the gateway response carries none. The insert
// succeeded iff a generated id is returned.
func (r *repository) StoreNew(ctx context.Context, orderID, userID uint, st *monopay.InvoiceStatus) (int64, error) {
	status := st.Status
	if status == "" {
		status = StatusCreated
	}

	var rrn, tranID string
	if st.PaymentInfo != nil {
		rrn = st.PaymentInfo.RRN
		tranID = st.PaymentInfo.TranID
	}

	const q = `
		INSERT INTO payments (rrn, payment_id, order_id, user_id, amount,
		response_status, failure_reason, err_code, invoice_id, time, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, q,
		rrn, tranID, orderID, userID, amountMajor(st.Amount),
		status, st.FailureReason, st.ErrCode, st.InvoiceID,
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

// Update applies a full gateway status payload to the record matching its
// invoice id. The wire amount is minor units and is stored in major units.
func (r *repository) Update(ctx context.Context, st *monopay.InvoiceStatus) error {
	var rrn, tranID string
	if st.PaymentInfo != nil {
		rrn = st.PaymentInfo.RRN
		tranID = st.PaymentInfo.TranID
	}

	const q = `
		UPDATE payments
		SET rrn = $1, payment_id = $2, amount = $3, response_status = $4,
		failure_reason = $5, err_code = $6, updated_at = now()
		WHERE invoice_id = $7
	`

	_, err := r.db.ExecContext(ctx, q,
		rrn, tranID, amountMajor(st.Amount), st.Status,
		st.FailureReason, st.ErrCode, st.InvoiceID,
	)
	return err
}

// UpdateStatus is a partial update: status always, failure reason only when
// the status is "error".
func (r *repository) UpdateStatus(ctx context.Context, invoiceID, status, reasonErr string) error {
	if status == StatusError {
		const q = `
			UPDATE payments SET response_status = $1, failure_reason = $2 WHERE invoice_id = $3
		`
		_, err := r.db.ExecContext(ctx, q, status, reasonErr, invoiceID)
		return err
	}

	const q = `
		UPDATE payments SET response_status = $1 WHERE invoice_id = $2
	`
	_, err := r.db.ExecContext(ctx, q, status, invoiceID)
	return err
}

func (r *repository) TouchPayment(ctx context.Context, id int64) error {
	const q = `
		UPDATE payments SET updated_at = now() WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

func (r *repository) GetByInvoiceID(ctx context.Context, invoiceID string) (*Payment, error) {
	const q = `
		SELECT id, rrn, payment_id, order_id, user_id, amount, response_status,
		failure_reason, err_code, invoice_id, time, updated_at
		FROM payments WHERE invoice_id = $1
	`

	row := r.db.QueryRowContext(ctx, q, invoiceID)

	var p Payment
	var amount decimal.NullDecimal
	err := row.Scan(
		&p.ID, &p.RRN, &p.PaymentID, &p.OrderID, &p.UserID, &amount,
		&p.ResponseStatus, &p.FailureReason, &p.ErrCode, &p.InvoiceID,
		&p.Time, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if amount.Valid {
		p.Amount = amount.Decimal
	}

	return &p, nil
}

// amountMajor converts an optional wire amount to the stored major-unit
// value, keeping NULL when the gateway sent none.
func amountMajor(minor *int64) interface{} {
	if minor == nil {
		return nil
	}
	return FromMinorUnits(*minor)
}
