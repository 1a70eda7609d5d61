package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rogerio-castellano/shop-insights/internal/models"
)

type PostgresOrderRepository struct {
	db *sql.DB
}

func NewPostgresOrderRepository(db *sql.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

func (r *PostgresOrderRepository) OrdersSince(ctx context.Context, shop string, since time.Time) ([]models.Order, error) {
	query := `
		SELECT o.id, o.shop, o.created_at,
		       COALESCE(li.id, 0), COALESCE(li.product_id, ''), COALESCE(li.product_title, ''), COALESCE(li.quantity, 0)
		FROM orders o
		LEFT JOIN line_items li ON li.order_id = o.id
		WHERE o.shop = $1 AND o.created_at >= $2
		ORDER BY o.created_at, o.id, li.id
	`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, shop, since)
	if err != nil {
		return nil, fmt.Errorf("querying orders for shop %s: %w", shop, err)
	}
	defer rows.Close()

	var orders []models.Order
	index := map[string]int{}
	for rows.Next() {
		var (
			o  models.Order
			li models.LineItem
		)
		if err := rows.Scan(&o.ID, &o.Shop, &o.CreatedAt, &li.ID, &li.ProductID, &li.ProductTitle, &li.Quantity); err != nil {
			return nil, fmt.Errorf("scanning order row for shop %s: %w", shop, err)
		}

		i, seen := index[o.ID]
		if !seen {
			orders = append(orders, o)
			i = len(orders) - 1
			index[o.ID] = i
		}
		// li.ID is zero when the LEFT JOIN found no line items.
		if li.ID != 0 {
			li.OrderID = orders[i].ID
			orders[i].LineItems = append(orders[i].LineItems, li)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading order rows for shop %s: %w", shop, err)
	}
	return orders, nil
}

func (r *PostgresOrderRepository) Create(ctx context.Context, order models.Order) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO orders (id, shop, created_at) VALUES ($1, $2, $3)`,
		order.ID, order.Shop, order.CreatedAt,
	); err != nil {
		return fmt.Errorf("inserting order %s: %w", order.ID, err)
	}
	for _, li := range order.LineItems {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO line_items (order_id, product_id, product_title, quantity) VALUES ($1, $2, $3, $4)`,
			order.ID, li.ProductID, li.ProductTitle, li.Quantity,
		); err != nil {
			return fmt.Errorf("inserting line item for order %s: %w", order.ID, err)
		}
	}
	return tx.Commit()
}

func (r *PostgresOrderRepository) Count(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&n)
	return n, err
}
