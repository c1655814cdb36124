package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nambse/gelirgider/internal/core"

	_ "modernc.org/sqlite"
)

// RecentLimit is how many transactions the projection keeps in memory.
const RecentLimit = 30

// ErrNotFound is returned when a mutation targets an id with no matching row.
var ErrNotFound = errors.New("transaction not found")

// SQLiteRepository owns the process-wide database handle. The underlying
// engine serializes access itself; callers share one instance for the whole
// process lifetime.
type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

// Options controls how the database file is bootstrapped.
type Options struct {
	// SeedPath, when set, is a pre-seeded database file copied to the
	// database path on first run. Migrations still run afterwards and are
	// idempotent against the seed contents.
	SeedPath string
}

// NewSQLiteRepository opens (bootstrapping if needed) the database at dbPath.
func NewSQLiteRepository(dbPath string, opts Options) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	if opts.SeedPath != "" {
		if err := copySeedIfAbsent(opts.SeedPath, dbPath); err != nil {
			return nil, fmt.Errorf("bootstrap seed database: %w", err)
		}
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

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
	}, nil
}

// copySeedIfAbsent copies the bundled seed database to the writable path on
// first launch. An existing database is never overwritten.
func copySeedIfAbsent(seedPath, dbPath string) error {
	if _, err := os.Stat(dbPath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat database: %w", err)
	}

	src, err := os.Open(seedPath)
	if err != nil {
		return fmt.Errorf("open seed: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(dbPath)
	if err != nil {
		return fmt.Errorf("create database: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("copy seed: %w", err)
	}

	slog.Info("Seed database copied", "seed", seedPath, "path", dbPath)
	return nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// RecentTransactions loads the newest RecentLimit transactions.
func (r *SQLiteRepository) RecentTransactions(ctx context.Context) ([]core.Transaction, error) {
	transactions, err := r.queries.ListRecentTransactions(ctx, RecentLimit)
	if err != nil {
		return nil, fmt.Errorf("list recent transactions: %w", err)
	}
	return transactions, nil
}

// Categories loads the full seeded category set.
func (r *SQLiteRepository) Categories(ctx context.Context) ([]core.Category, error) {
	categories, err := r.queries.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// MonthlyTotals aggregates income and expense totals between two inclusive
// calendar dates.
func (r *SQLiteRepository) MonthlyTotals(ctx context.Context, startDate, endDate string) (core.MonthlyStats, error) {
	stats, err := r.queries.GetMonthlyTotals(ctx, startDate, endDate)
	if err != nil {
		return core.MonthlyStats{}, fmt.Errorf("get monthly totals: %w", err)
	}
	return stats, nil
}

// WeeklyTotals aggregates amounts by day-of-week for one type and range.
func (r *SQLiteRepository) WeeklyTotals(ctx context.Context, startDate, endDate string, typ core.TransactionType) ([]WeeklyTotalRow, error) {
	rows, err := r.queries.GetWeeklyTotals(ctx, startDate, endDate, typ)
	if err != nil {
		return nil, fmt.Errorf("get weekly totals: %w", err)
	}
	return rows, nil
}

// CreateTransaction inserts a new row and returns it with its assigned id.
func (r *SQLiteRepository) CreateTransaction(ctx context.Context, in core.TransactionInput) (core.Transaction, error) {
	created, err := r.queries.CreateTransaction(ctx, in)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", created.ID,
		"type", created.Type,
		"amount", created.Amount,
		"date", created.Date)

	return created, nil
}

// UpdateTransaction overwrites all mutable fields by id. Returns ErrNotFound
// when no row matches.
func (r *SQLiteRepository) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	affected, err := r.queries.UpdateTransaction(ctx, t)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update transaction %d: %w", t.ID, ErrNotFound)
	}

	slog.InfoContext(ctx, "Transaction updated", "id", t.ID, "type", t.Type, "amount", t.Amount)
	return nil
}

// DeleteTransaction removes the row with the given id. Deleting an absent id
// is a no-op.
func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id int64) error {
	if err := r.queries.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction deleted", "id", id)
	return nil
}
