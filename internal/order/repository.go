package order

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"
)

type Repository interface {
	GetOrderDetail(ctx context.Context, orderID uint) (*Order, error)
	GetOrderByInvoiceID(ctx context.Context, invoiceID string) (*Order, error)
	SetTransaction(ctx context.Context, orderID uint, invoiceID string) error
	UpdateOrderStatus(ctx context.Context, orderID uint, status Status) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetOrderDetail(ctx context.Context, orderID uint) (*Order, error) {
	const q = `
		SELECT id, customer_id, status, to_door, delivery_price, created_at, updated_at
		FROM orders WHERE id = $1
	`

	o, err := r.scanOrder(r.db.QueryRowContext(ctx, q, orderID))
	if err != nil {
		return nil, err
	}

	if err := r.loadCart(ctx, o); err != nil {
		return nil, err
	}
	if err := r.loadTransaction(ctx, o); err != nil {
		return nil, err
	}

	return o, nil
}

func (r *repository) GetOrderByInvoiceID(ctx context.Context, invoiceID string) (*Order, error) {
	const q = `
		SELECT o.id, o.customer_id, o.status, o.to_door, o.delivery_price, o.created_at, o.updated_at
		FROM orders o
		JOIN transactions t ON t.order_id = o.id
		WHERE t.invoice_id = $1
	`

	o, err := r.scanOrder(r.db.QueryRowContext(ctx, q, invoiceID))
	if err != nil {
		return nil, err
	}

	if err := r.loadCart(ctx, o); err != nil {
		return nil, err
	}
	if err := r.loadTransaction(ctx, o); err != nil {
		return nil, err
	}

	return o, nil
}

func (r *repository) SetTransaction(ctx context.Context, orderID uint, invoiceID string) error {
	const q = `
		INSERT INTO transactions (order_id, invoice_id)
		VALUES ($1, $2)
		ON CONFLICT (order_id) DO UPDATE SET invoice_id = EXCLUDED.invoice_id
	`

	_, err := r.db.ExecContext(ctx, q, orderID, invoiceID)
	return err
}

func (r *repository) UpdateOrderStatus(ctx context.Context, orderID uint, status Status) error {
	const q = `
		UPDATE orders SET status = $1, updated_at = now() WHERE id = $2
	`

	_, err := r.db.ExecContext(ctx, q, status, orderID)
	return err
}

func (r *repository) scanOrder(row *sql.Row) (*Order, error) {
	var o Order
	var deliveryPrice decimal.NullDecimal

	err := row.Scan(
		&o.ID, &o.CustomerID, &o.Status, &o.ToDoor, &deliveryPrice,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if deliveryPrice.Valid {
		o.DeliveryPrice = deliveryPrice.Decimal
	}

	return &o, nil
}

func (r *repository) loadCart(ctx context.Context, o *Order) error {
	const q = `
		SELECT id, order_id, product_id, product_name, product_price, quantity,
		final_cost, product_image, category
		FROM order_carts WHERE order_id = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, q, o.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item CartItem
		var finalCost decimal.NullDecimal

		err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.ProductPrice, &item.Quantity, &finalCost,
			&item.ProductImage, &item.Category,
		)
		if err != nil {
			return err
		}

		if finalCost.Valid {
			item.FinalCost = &finalCost.Decimal
		}

		o.Cart = append(o.Cart, item)
	}

	return rows.Err()
}

func (r *repository) loadTransaction(ctx context.Context, o *Order) error {
	const q = `
		SELECT id, order_id, invoice_id FROM transactions WHERE order_id = $1
	`

	var tx Transaction
	err := r.db.QueryRowContext(ctx, q, o.ID).Scan(&tx.ID, &tx.OrderID, &tx.InvoiceID)
	if err != nil {
		// An order without an invoice is a valid state.
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return err
	}

	o.Transaction = &tx
	return nil
}
