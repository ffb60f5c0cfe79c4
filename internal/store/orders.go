package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"aurelia_back_end/internal/database"
	"aurelia_back_end/internal/order"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// ScyllaOrders implémente order.Repository sur le keyspace orders.
// Trois tables : orders (par id), orders_by_user (listing utilisateur),
// orders_by_intent (résolution du webhook Stripe). Les écritures d'une
// commande partent dans un seul batch logged : tout ou rien.
type ScyllaOrders struct{}

func NewScyllaOrders() *ScyllaOrders {
	return &ScyllaOrders{}
}

func (s *ScyllaOrders) InsertPending(ctx context.Context, o *order.Order) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}

	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return err
	}

	batch := session.NewBatch(gocql.LoggedBatch).WithContext(ctx)
	batch.Query(
		`INSERT INTO orders (order_id, user_id, address_id, payment_intent_id, items, subtotal, tax_amount, shipping_amount, total, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.UserID, o.AddressID, o.PaymentIntentID, string(itemsJSON),
		o.Subtotal, o.TaxAmount, o.ShippingAmount, o.Total, string(o.Status), o.CreatedAt,
	)
	batch.Query(
		`INSERT INTO orders_by_user (user_id, order_id, total, status, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		o.UserID, o.ID, o.Total, string(o.Status), o.CreatedAt,
	)
	batch.Query(
		`INSERT INTO orders_by_intent (payment_intent_id, order_id) VALUES (?, ?)`,
		o.PaymentIntentID, o.ID,
	)
	return session.ExecuteBatch(batch)
}

func (s *ScyllaOrders) OrderByID(ctx context.Context, orderID string) (*order.Order, error) {
	orderUUID, err := uuid.Parse(orderID)
	if err != nil {
		return nil, order.ErrOrderNotFound
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}
	return scanOrder(ctx, session, gocql.UUID(orderUUID))
}

func (s *ScyllaOrders) OrderByPaymentIntent(ctx context.Context, intentID string) (*order.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	var orderID gocql.UUID
	err = session.Query(
		`SELECT order_id FROM orders_by_intent WHERE payment_intent_id = ?`, intentID,
	).WithContext(ctx).Scan(&orderID)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, order.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return scanOrder(ctx, session, orderID)
}

func (s *ScyllaOrders) UpdateStatus(ctx context.Context, o *order.Order, to order.Status) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}

	now := time.Now()
	batch := session.NewBatch(gocql.LoggedBatch).WithContext(ctx)
	batch.Query(
		`UPDATE orders SET status = ?, updated_at = ? WHERE order_id = ?`,
		string(to), now, o.ID,
	)
	batch.Query(
		`UPDATE orders_by_user SET status = ? WHERE user_id = ? AND order_id = ?`,
		string(to), o.UserID, o.ID,
	)
	return session.ExecuteBatch(batch)
}

func scanOrder(ctx context.Context, session *gocql.Session, orderID gocql.UUID) (*order.Order, error) {
	var (
		o         order.Order
		itemsJSON string
		status    string
	)

	err := session.Query(
		`SELECT order_id, user_id, address_id, payment_intent_id, items, subtotal, tax_amount, shipping_amount, total, status, created_at, updated_at
		 FROM orders WHERE order_id = ?`, orderID,
	).WithContext(ctx).Scan(
		&o.ID, &o.UserID, &o.AddressID, &o.PaymentIntentID, &itemsJSON,
		&o.Subtotal, &o.TaxAmount, &o.ShippingAmount, &o.Total, &status, &o.CreatedAt, &o.UpdatedAt,
	)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, order.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(itemsJSON), &o.Items); err != nil {
		return nil, err
	}
	o.Status = order.Status(status)
	return &o, nil
}
