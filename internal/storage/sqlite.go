package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"finsight/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) InsertExpense(ctx context.Context, e core.ExpenseRecord) (string, error) {
	id := e.ID
	if id == "" {
		id = uuid.NewString()
	}

	var validityEnd any
	if !e.ValidityEnd.IsZero() {
		validityEnd = e.ValidityEnd.String()
	}

	err := r.write(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO expenses (id, amount, currency, category, occurred_on, allocatable, validity_end, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, e.Amount.String(), string(e.Currency), e.Category, e.Date.String(),
			boolToInt(e.Allocatable), validityEnd, time.Now().UTC().Format(time.RFC3339))
		return err
	})
	if err != nil {
		return "", fmt.Errorf("insert expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", id,
		"amount", e.Amount.String(),
		"currency", e.Currency,
		"category", e.Category,
		"allocatable", e.Allocatable)

	return id, nil
}

func (r *SQLiteRepository) InsertRevenue(ctx context.Context, rev core.RevenueRecord) (string, error) {
	id := rev.ID
	if id == "" {
		id = uuid.NewString()
	}

	err := r.write(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO revenues (id, amount, currency, category, occurred_on, status, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, rev.Amount.String(), string(rev.Currency), rev.Category, rev.Date.String(),
			rev.Status, time.Now().UTC().Format(time.RFC3339))
		return err
	})
	if err != nil {
		return "", fmt.Errorf("insert revenue: %w", err)
	}

	slog.InfoContext(ctx, "Revenue saved",
		"id", id,
		"amount", rev.Amount.String(),
		"currency", rev.Currency,
		"status", rev.Status)

	return id, nil
}

func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id string) error {
	return r.softDelete(ctx, "expenses", id)
}

func (r *SQLiteRepository) DeleteRevenue(ctx context.Context, id string) error {
	return r.softDelete(ctx, "revenues", id)
}

func (r *SQLiteRepository) softDelete(ctx context.Context, table, id string) error {
	var affected int64
	err := r.write(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			// table name comes from the two callers above, never from input
			fmt.Sprintf(`UPDATE %s SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`, table),
			time.Now().UTC().Format(time.RFC3339), id)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return fmt.Errorf("soft delete from %s: %w", table, err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	slog.InfoContext(ctx, "Record soft deleted", "table", table, "id", id)
	return nil
}

func (r *SQLiteRepository) ListExpenses(ctx context.Context) ([]core.ExpenseRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, amount, currency, category, occurred_on, allocatable, validity_end
		 FROM expenses WHERE deleted_at IS NULL ORDER BY occurred_on, id`)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var out []core.ExpenseRecord
	for rows.Next() {
		var (
			e           core.ExpenseRecord
			amount      string
			currency    string
			occurredOn  string
			allocatable int64
			validityEnd sql.NullString
		)
		if err := rows.Scan(&e.ID, &amount, &currency, &e.Category, &occurredOn, &allocatable, &validityEnd); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		e.Amount = parseStoredAmount(amount)
		e.Currency = core.CurrencyCode(currency)
		e.Date = parseStoredDate(occurredOn)
		e.Allocatable = allocatable != 0
		if validityEnd.Valid {
			e.ValidityEnd = parseStoredDate(validityEnd.String)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) ListRevenues(ctx context.Context) ([]core.RevenueRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, amount, currency, category, occurred_on, status
		 FROM revenues WHERE deleted_at IS NULL ORDER BY occurred_on, id`)
	if err != nil {
		return nil, fmt.Errorf("query revenues: %w", err)
	}
	defer rows.Close()

	var out []core.RevenueRecord
	for rows.Next() {
		var (
			rec        core.RevenueRecord
			amount     string
			currency   string
			occurredOn string
		)
		if err := rows.Scan(&rec.ID, &amount, &currency, &rec.Category, &occurredOn, &rec.Status); err != nil {
			return nil, fmt.Errorf("scan revenue: %w", err)
		}
		rec.Amount = parseStoredAmount(amount)
		rec.Currency = core.CurrencyCode(currency)
		rec.Date = parseStoredDate(occurredOn)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate revenues: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) SnapshotVersion(ctx context.Context) (int64, error) {
	var version int64
	if err := r.db.QueryRowContext(ctx, `SELECT version FROM snapshot_meta WHERE id = 1`).Scan(&version); err != nil {
		return 0, fmt.Errorf("read snapshot version: %w", err)
	}
	return version, nil
}

// write runs fn in a transaction and bumps the snapshot version alongside
// it, so cached reports keyed on the version invalidate on every change.
func (r *SQLiteRepository) write(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE snapshot_meta SET version = version + 1 WHERE id = 1`); err != nil {
		return fmt.Errorf("bump snapshot version: %w", err)
	}
	return tx.Commit()
}

func parseStoredAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseStoredDate(s string) core.Date {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return core.Date{}
	}
	return core.DateOf(t)
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
