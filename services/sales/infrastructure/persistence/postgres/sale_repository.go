package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/salesapi/pkg/database"
	salesdomain "github.com/ghuser/salesapi/services/sales/domain"
	"github.com/ghuser/salesapi/services/sales/domain/models"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// SaleRepository implements repositories.SaleRepository against PostgreSQL.
// The aggregate is written atomically: sale row and item rows always change
// inside one transaction.
type SaleRepository struct {
	db *database.Database
}

// NewSaleRepository returns a SaleRepository backed by the given connection pool.
func NewSaleRepository(db *database.Database) *SaleRepository {
	return &SaleRepository{db: db}
}

// Create persists a new sale and all its items in one transaction.
// Returns ErrSaleNumberTaken when the sale number unique index is violated.
func (r *SaleRepository) Create(ctx context.Context, sale *models.Sale) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO sales (id, sale_number, sale_date, customer_id, customer_name,
			                   branch_id, branch_name, total_amount, is_cancelled,
			                   created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			sale.ID, sale.SaleNumber, sale.SaleDate, sale.CustomerID, sale.CustomerName,
			sale.BranchID, sale.BranchName, sale.TotalAmount, sale.IsCancelled,
			sale.CreatedAt, sale.UpdatedAt,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
				return salesdomain.ErrSaleNumberTaken
			}
			return fmt.Errorf("insert sale: %w", err)
		}

		if err := insertItems(ctx, tx, sale); err != nil {
			return err
		}
		return nil
	})
}

// GetByID retrieves a sale with its items in insertion order.
// Returns ErrSaleNotFound if no sale has the given ID.
func (r *SaleRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	row := r.db.DB().QueryRowContext(ctx, `
		SELECT id, sale_number, sale_date, customer_id, customer_name,
		       branch_id, branch_name, total_amount, is_cancelled,
		       created_at, updated_at
		FROM sales WHERE id = $1`, id)

	sale, err := scanSale(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, salesdomain.ErrSaleNotFound
		}
		return nil, fmt.Errorf("query sale: %w", err)
	}

	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT id, sale_id, product_id, product_name, quantity,
		       unit_price, discount, total, is_cancelled
		FROM sale_items WHERE sale_id = $1
		ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("query sale items: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	for rows.Next() {
		var item models.SaleItem
		if err := rows.Scan(
			&item.ID, &item.SaleID, &item.ProductID, &item.ProductName, &item.Quantity,
			&item.UnitPrice, &item.Discount, &item.Total, &item.IsCancelled,
		); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		sale.Items = append(sale.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sale items: %w", err)
	}

	return sale, nil
}

// Update persists the sale with full-replace item semantics: existing item
// rows are deleted and the sale's current items inserted in their place,
// all inside one transaction. Returns ErrSaleNotFound when the sale row
// does not exist.
func (r *SaleRepository) Update(ctx context.Context, sale *models.Sale) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE sales
			SET sale_number = $2, sale_date = $3, customer_id = $4, customer_name = $5,
			    branch_id = $6, branch_name = $7, total_amount = $8, is_cancelled = $9,
			    updated_at = $10
			WHERE id = $1`,
			sale.ID, sale.SaleNumber, sale.SaleDate, sale.CustomerID, sale.CustomerName,
			sale.BranchID, sale.BranchName, sale.TotalAmount, sale.IsCancelled,
			sale.UpdatedAt,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
				return salesdomain.ErrSaleNumberTaken
			}
			return fmt.Errorf("update sale: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update sale rows affected: %w", err)
		}
		if affected == 0 {
			return salesdomain.ErrSaleNotFound
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM sale_items WHERE sale_id = $1`, sale.ID); err != nil {
			return fmt.Errorf("delete sale items: %w", err)
		}

		return insertItems(ctx, tx, sale)
	})
}

// Delete removes the sale; item rows go with it via ON DELETE CASCADE.
// Reports false when no sale had the given ID.
func (r *SaleRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := r.db.DB().ExecContext(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete sale: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete sale rows affected: %w", err)
	}
	return affected > 0, nil
}

func insertItems(ctx context.Context, tx *sql.Tx, sale *models.Sale) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO sale_items (id, sale_id, position, product_id, product_name,
		                        quantity, unit_price, discount, total, is_cancelled)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`)
	if err != nil {
		return fmt.Errorf("prepare insert item: %w", err)
	}
	defer stmt.Close() //nolint:errcheck

	for pos, item := range sale.Items {
		if _, err := stmt.ExecContext(ctx,
			item.ID, sale.ID, pos, item.ProductID, item.ProductName,
			item.Quantity, item.UnitPrice, item.Discount, item.Total, item.IsCancelled,
		); err != nil {
			return fmt.Errorf("insert sale item %d: %w", pos, err)
		}
	}
	return nil
}

func scanSale(row *sql.Row) (*models.Sale, error) {
	var sale models.Sale
	if err := row.Scan(
		&sale.ID, &sale.SaleNumber, &sale.SaleDate, &sale.CustomerID, &sale.CustomerName,
		&sale.BranchID, &sale.BranchName, &sale.TotalAmount, &sale.IsCancelled,
		&sale.CreatedAt, &sale.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &sale, nil
}
