package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type ItemInput struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
}

type Repo struct{ DB *pgxpool.Pool }

// CreateOrderTx inserts the order and its items as one unit. Unit prices are
// read from menu_items inside the transaction, never trusted from the client.
// No status log is written at creation time.
func (r *Repo) CreateOrderTx(ctx context.Context, userID string, typ OrderType, phone string, items []ItemInput) (*Order, []OrderItem, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrTransactionAborted, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ids := make([]any, 0, len(items))
	params := ""
	for i, it := range items {
		if i > 0 {
			params += ","
		}
		params += fmt.Sprintf("$%d", i+1)
		ids = append(ids, it.MenuItemID)
	}
	rows, err := tx.Query(ctx, `SELECT id, name, price::text, available FROM menu_items WHERE id IN (`+params+`)`, ids...)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrTransactionAborted, err)
	}
	type priced struct {
		name      string
		price     decimal.Decimal
		available bool
	}
	prices := map[string]priced{}
	for rows.Next() {
		var (
			id, name, raw string
			available     bool
		)
		if err := rows.Scan(&id, &name, &raw, &available); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrTransactionAborted, err)
		}
		p, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrTransactionAborted, err)
		}
		prices[id] = priced{name: name, price: p, available: available}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrTransactionAborted, err)
	}

	total := decimal.Zero
	orderItems := make([]OrderItem, 0, len(items))
	for _, it := range items {
		p, ok := prices[it.MenuItemID]
		if !ok {
			return nil, nil, fmt.Errorf("menu item %s: %w", it.MenuItemID, ErrNotFound)
		}
		if it.Quantity <= 0 {
			return nil, nil, &ValidationError{Field: "quantity", Reason: fmt.Sprintf("must be positive for item %s", it.MenuItemID)}
		}
		if !p.available {
			return nil, nil, &ValidationError{Field: "menu_item_id", Reason: fmt.Sprintf("item %s is not available", it.MenuItemID)}
		}
		sub := p.price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		total = total.Add(sub)
		orderItems = append(orderItems, OrderItem{
			ID:         uuid.NewString(),
			MenuItemID: it.MenuItemID,
			Name:       p.name,
			Quantity:   it.Quantity,
			UnitPrice:  p.price,
			Subtotal:   sub,
		})
	}

	o := &Order{
		ID:            uuid.NewString(),
		UserID:        userID,
		Status:        StatusCreated,
		PaymentStatus: PaymentPending,
		Type:          typ,
		Total:         total,
		PhoneNumber:   phone,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO orders(id, user_id, status, payment_status, type, total, phone_number)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at, updated_at
	`, o.ID, o.UserID, o.Status, o.PaymentStatus, o.Type, o.Total.String(), o.PhoneNumber).
		Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrTransactionAborted, err)
	}

	for i := range orderItems {
		it := &orderItems[i]
		it.OrderID = o.ID
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items(id, order_id, menu_item_id, quantity, unit_price, subtotal)
			VALUES ($1,$2,$3,$4,$5,$6)
		`, it.ID, it.OrderID, it.MenuItemID, it.Quantity, it.UnitPrice.String(), it.Subtotal.String()); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrTransactionAborted, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrTransactionAborted, err)
	}
	return o, orderItems, nil
}

// GetStatusOwner is the engine's precondition lookup.
func (r *Repo) GetStatusOwner(ctx context.Context, orderID string) (Status, string, error) {
	var (
		s     string
		owner string
	)
	err := r.DB.QueryRow(ctx, `SELECT status, user_id FROM orders WHERE id=$1`, orderID).Scan(&s, &owner)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", "", ErrNotFound
	}
	if err != nil {
		return "", "", err
	}
	return Status(s), owner, nil
}

// ApplyTransitionTx commits the status column update and the log insert as one
// unit; on any failure nothing is visible.
func (r *Repo) ApplyTransitionTx(ctx context.Context, orderID string, target Status, message, actor string, eta *time.Time) (*Order, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransactionAborted, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	o := &Order{ID: orderID}
	var totalRaw string
	err = tx.QueryRow(ctx, `
		UPDATE orders
		SET status = $2,
		    estimated_delivery_time = COALESCE($3, estimated_delivery_time),
		    updated_at = now()
		WHERE id = $1
		RETURNING user_id, status, payment_status, type, total::text, payment_intent,
		          estimated_delivery_time, created_at, updated_at
	`, orderID, target, eta).Scan(
		&o.UserID, &o.Status, &o.PaymentStatus, &o.Type, &totalRaw, &o.PaymentIntent,
		&o.EstimatedDeliveryTime, &o.CreatedAt, &o.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransactionAborted, err)
	}
	if o.Total, err = decimal.NewFromString(totalRaw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransactionAborted, err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO order_status_logs(id, order_id, status, message, created_by)
		VALUES ($1,$2,$3,$4,$5)
	`, uuid.NewString(), orderID, target, message, actor); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransactionAborted, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransactionAborted, err)
	}
	return o, nil
}

// MarkPaymentPaid flips paymentStatus PENDING -> PAID for the order matching
// (payment session, owner). The three-part predicate is the idempotency guard:
// a duplicate confirmation matches zero rows and changes nothing.
func (r *Repo) MarkPaymentPaid(ctx context.Context, sessionRef, userID string) (string, int64, error) {
	rows, err := r.DB.Query(ctx, `
		UPDATE orders SET payment_status = $3, updated_at = now()
		WHERE payment_intent = $1 AND user_id = $2 AND payment_status = $4
		RETURNING id
	`, sessionRef, userID, PaymentPaid, PaymentPending)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrTransactionAborted, err)
	}
	defer rows.Close()

	var (
		orderID string
		n       int64
	)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", 0, fmt.Errorf("%w: %v", ErrTransactionAborted, err)
		}
		if n == 0 {
			orderID = id
		}
		n++
	}
	if err := rows.Err(); err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrTransactionAborted, err)
	}
	return orderID, n, nil
}

func (r *Repo) SetPaymentIntent(ctx context.Context, orderID, sessionID string) error {
	ct, err := r.DB.Exec(ctx, `UPDATE orders SET payment_intent=$2, updated_at=now() WHERE id=$1`, orderID, sessionID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetOrder loads the tracking view: order, items, and the audit trail
// most-recent-first.
func (r *Repo) GetOrder(ctx context.Context, orderID string) (*OrderDetail, error) {
	var (
		d        OrderDetail
		totalRaw string
	)
	err := r.DB.QueryRow(ctx, `
		SELECT id, user_id, status, payment_status, type, total::text, phone_number,
		       payment_intent, estimated_delivery_time, created_at, updated_at
		FROM orders WHERE id=$1
	`, orderID).Scan(
		&d.ID, &d.UserID, &d.Status, &d.PaymentStatus, &d.Type, &totalRaw, &d.PhoneNumber,
		&d.PaymentIntent, &d.EstimatedDeliveryTime, &d.CreatedAt, &d.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if d.Total, err = decimal.NewFromString(totalRaw); err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx, `
		SELECT oi.id, oi.order_id, oi.menu_item_id, mi.name, oi.quantity,
		       oi.unit_price::text, oi.subtotal::text
		FROM order_items oi
		JOIN menu_items mi ON mi.id = oi.menu_item_id
		WHERE oi.order_id=$1
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			it              OrderItem
			unitRaw, subRaw string
		)
		if err := rows.Scan(&it.ID, &it.OrderID, &it.MenuItemID, &it.Name, &it.Quantity, &unitRaw, &subRaw); err != nil {
			return nil, err
		}
		if it.UnitPrice, err = decimal.NewFromString(unitRaw); err != nil {
			return nil, err
		}
		if it.Subtotal, err = decimal.NewFromString(subRaw); err != nil {
			return nil, err
		}
		d.Items = append(d.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	logRows, err := r.DB.Query(ctx, `
		SELECT id, order_id, status, message, created_by, created_at
		FROM order_status_logs
		WHERE order_id=$1
		ORDER BY created_at DESC
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer logRows.Close()
	for logRows.Next() {
		var l OrderStatusLog
		if err := logRows.Scan(&l.ID, &l.OrderID, &l.Status, &l.Message, &l.CreatedBy, &l.CreatedAt); err != nil {
			return nil, err
		}
		d.StatusLogs = append(d.StatusLogs, l)
	}
	return &d, logRows.Err()
}

func (r *Repo) ListByUser(ctx context.Context, userID string) ([]OrderSummary, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, created_at, status, type, payment_status, total::text
		FROM orders WHERE user_id=$1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OrderSummary
	for rows.Next() {
		var (
			s        OrderSummary
			totalRaw string
		)
		if err := rows.Scan(&s.ID, &s.CreatedAt, &s.Status, &s.Type, &s.PaymentStatus, &totalRaw); err != nil {
			return nil, err
		}
		if s.Total, err = decimal.NewFromString(totalRaw); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
