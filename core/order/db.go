package order

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

func Create(ctx context.Context, db sqlx.ExtContext, ord Order) error {
	const q = `
	INSERT INTO orders (order_id, user_id, remote_id, total_amount, currency, status, created_at)
	VALUES (:order_id, :user_id, :remote_id, :total_amount, :currency, :status, :created_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, ord); err != nil {
		return fmt.Errorf("inserting order: %w", err)
	}
	return nil
}

func FetchByUser(ctx context.Context, db sqlx.ExtContext, userID string) ([]Order, error) {
	const q = `
	SELECT order_id, user_id, remote_id, total_amount, currency, status, created_at
	FROM orders
	WHERE user_id = $1
	ORDER BY created_at DESC`

	orders := []Order{}
	if err := sqlx.SelectContext(ctx, db, &orders, q, userID); err != nil {
		return nil, fmt.Errorf("selecting orders: %w", err)
	}
	return orders, nil
}

func FetchByRemoteID(ctx context.Context, db sqlx.ExtContext, remoteID string) (Order, error) {
	const q = `
	SELECT order_id, user_id, remote_id, total_amount, currency, status, created_at
	FROM orders
	WHERE remote_id = $1`

	var ord Order
	if err := sqlx.GetContext(ctx, db, &ord, q, remoteID); err != nil {
		return Order{}, fmt.Errorf("selecting order: %w", err)
	}
	return ord, nil
}
