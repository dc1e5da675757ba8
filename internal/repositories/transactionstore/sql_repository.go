package transactionstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"sales_insights/internal/models"
)

const insertBatchSize = 500

const insertColumns = "id, title, description, price, date_of_sale, sold, category, image"

// SQLRepository persists the record set in the transactions table. The SQL
// is portable between MySQL and SQLite.
type SQLRepository struct {
	db *sql.DB
}

func NewSQLRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

// ReplaceAll deletes every row and inserts records inside one transaction.
func (r *SQLRepository) ReplaceAll(ctx context.Context, records []models.Transaction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM transactions"); err != nil {
		tx.Rollback()
		return fmt.Errorf("clear transactions: %w", err)
	}

	for start := 0; start < len(records); start += insertBatchSize {
		end := min(start+insertBatchSize, len(records))
		if err := insertBatch(ctx, tx, records[start:end]); err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func insertBatch(ctx context.Context, tx *sql.Tx, batch []models.Transaction) error {
	placeholders := make([]string, len(batch))
	args := make([]any, 0, len(batch)*8)
	for i, t := range batch {
		placeholders[i] = "(?, ?, ?, ?, ?, ?, ?, ?)"
		args = append(args, t.ID, t.Title, t.Description, t.Price, t.DateOfSale.String(), t.Sold, t.Category, t.Image)
	}

	query := "INSERT INTO transactions (" + insertColumns + ") VALUES " + strings.Join(placeholders, ", ")
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert transactions: %w", err)
	}
	return nil
}

// LoadAll reads every row ordered by id.
func (r *SQLRepository) LoadAll(ctx context.Context) ([]models.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+insertColumns+" FROM transactions ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var (
			t    models.Transaction
			date string
		)
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Price, &date, &t.Sold, &t.Category, &t.Image); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.DateOfSale, err = models.ParseSaleDate(date)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", t.ID, err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return transactions, nil
}
