package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rogerio-castellano/shop-insights/internal/models"
)

type PostgresInventoryRepository struct {
	db *sql.DB
}

func NewPostgresInventoryRepository(db *sql.DB) *PostgresInventoryRepository {
	return &PostgresInventoryRepository{db: db}
}

func (r *PostgresInventoryRepository) ProductByID(ctx context.Context, id string) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var p models.Product
	err := r.db.QueryRowContext(ctx, `SELECT id, title FROM products WHERE id = $1`, id).Scan(&p.ID, &p.Title)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("querying product %s: %w", id, err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, title, COALESCE(sku, ''), inventory_item_id
		FROM variants
		WHERE product_id = $1
		ORDER BY id
	`, id)
	if err != nil {
		return models.Product{}, fmt.Errorf("querying variants of product %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var v models.Variant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Title, &v.SKU, &v.InventoryItemID); err != nil {
			return models.Product{}, fmt.Errorf("scanning variant of product %s: %w", id, err)
		}
		p.Variants = append(p.Variants, v)
	}
	if err := rows.Err(); err != nil {
		return models.Product{}, fmt.Errorf("reading variants of product %s: %w", id, err)
	}
	return p, nil
}

func (r *PostgresInventoryRepository) LevelsForProduct(ctx context.Context, productID string) ([]models.InventoryLevel, error) {
	query := `
		SELECT il.id, il.inventory_item_id, il.location_id, il.available, il.updated_at
		FROM inventory_levels il
		JOIN inventory_items ii ON il.inventory_item_id = ii.id
		JOIN variants v ON ii.variant_id = v.id
		WHERE v.product_id = $1
		ORDER BY il.id
	`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("querying inventory levels of product %s: %w", productID, err)
	}
	defer rows.Close()

	var levels []models.InventoryLevel
	for rows.Next() {
		var l models.InventoryLevel
		if err := rows.Scan(&l.ID, &l.InventoryItemID, &l.LocationID, &l.Available, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning inventory level of product %s: %w", productID, err)
		}
		levels = append(levels, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading inventory levels of product %s: %w", productID, err)
	}
	return levels, nil
}

func (r *PostgresInventoryRepository) LevelsBelow(ctx context.Context, threshold int) ([]LowStockRow, error) {
	// DISTINCT ON keeps exactly one variant per level, lowest variant id
	// first, so malformed item-to-variant fan-out cannot flap the result.
	query := `
		SELECT DISTINCT ON (il.id) v.id, v.title, il.available
		FROM inventory_levels il
		JOIN inventory_items ii ON il.inventory_item_id = ii.id
		JOIN variants v ON ii.variant_id = v.id
		WHERE il.available < $1
		ORDER BY il.id, v.id
	`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, threshold)
	if err != nil {
		return nil, fmt.Errorf("querying low stock below %d: %w", threshold, err)
	}
	defer rows.Close()

	var out []LowStockRow
	for rows.Next() {
		var row LowStockRow
		if err := rows.Scan(&row.VariantID, &row.VariantTitle, &row.Available); err != nil {
			return nil, fmt.Errorf("scanning low stock row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading low stock rows: %w", err)
	}
	return out, nil
}

func (r *PostgresInventoryRepository) CreateProduct(ctx context.Context, p models.Product, items []models.InventoryItem, levels []models.InventoryLevel) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `INSERT INTO products (id, title) VALUES ($1, $2)`, p.ID, p.Title); err != nil {
		return fmt.Errorf("inserting product %s: %w", p.ID, err)
	}
	for _, v := range p.Variants {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO variants (id, product_id, title, sku, inventory_item_id) VALUES ($1, $2, $3, $4, $5)`,
			v.ID, v.ProductID, v.Title, v.SKU, v.InventoryItemID,
		); err != nil {
			return fmt.Errorf("inserting variant %s: %w", v.ID, err)
		}
	}
	for _, it := range items {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO inventory_items (id, variant_id, tracked) VALUES ($1, $2, $3)`,
			it.ID, it.VariantID, it.Tracked,
		); err != nil {
			return fmt.Errorf("inserting inventory item %s: %w", it.ID, err)
		}
	}
	for _, l := range levels {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO inventory_levels (inventory_item_id, location_id, available, updated_at) VALUES ($1, $2, $3, $4)`,
			l.InventoryItemID, l.LocationID, l.Available, l.UpdatedAt,
		); err != nil {
			return fmt.Errorf("inserting inventory level for item %s: %w", l.InventoryItemID, err)
		}
	}
	return tx.Commit()
}

func (r *PostgresInventoryRepository) CountProducts(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	return n, err
}
