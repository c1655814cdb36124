package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nambse/gelirgider/internal/core"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries issues the SQL statements the projection store depends on. The
// statement shapes are part of the store's contract and must not drift.
type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

const listRecentTransactions = `
SELECT id, amount, date, description, type, category_id
FROM Transactions
ORDER BY date DESC, id DESC
LIMIT ?
`

// ListRecentTransactions returns the newest transactions first; among equal
// dates the most recently inserted row wins.
func (q *Queries) ListRecentTransactions(ctx context.Context, limit int64) ([]core.Transaction, error) {
	rows, err := q.db.QueryContext(ctx, listRecentTransactions, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var t core.Transaction
		if err := rows.Scan(&t.ID, &t.Amount, &t.Date, &t.Description, &t.Type, &t.CategoryID); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

const listCategories = `
SELECT id, name, type
FROM Categories
`

// ListCategories returns the full seeded category set. Order is the seed
// insertion order and carries no meaning; consumers look up by id.
func (q *Queries) ListCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := q.db.QueryContext(ctx, listCategories)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Type); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

const getMonthlyTotals = `
SELECT
    COALESCE(SUM(CASE WHEN type = 'Expense' THEN amount ELSE 0 END), 0) AS totalExpenses,
    COALESCE(SUM(CASE WHEN type = 'Income' THEN amount ELSE 0 END), 0) AS totalIncome
FROM Transactions
WHERE date >= ? AND date <= ?
`

// GetMonthlyTotals sums amounts per type between two inclusive dates. A
// month with no rows yields {0, 0}, never an error.
func (q *Queries) GetMonthlyTotals(ctx context.Context, startDate, endDate string) (core.MonthlyStats, error) {
	var stats core.MonthlyStats
	row := q.db.QueryRowContext(ctx, getMonthlyTotals, startDate, endDate)
	if err := row.Scan(&stats.TotalExpense, &stats.TotalIncome); err != nil {
		return core.MonthlyStats{}, fmt.Errorf("scan monthly totals: %w", err)
	}
	return stats, nil
}

const getWeeklyTotals = `
SELECT
    CAST(strftime('%w', date) AS INTEGER) AS day_of_week,
    SUM(amount) AS total
FROM Transactions
WHERE date >= ? AND date <= ? AND type = ?
GROUP BY day_of_week
ORDER BY day_of_week ASC
`

// WeeklyTotalRow is one day-of-week bucket (0=Sunday) with its summed amount.
type WeeklyTotalRow struct {
	DayOfWeek int
	Total     float64
}

// GetWeeklyTotals groups matching transactions by day-of-week. Days without
// rows are simply absent from the result.
func (q *Queries) GetWeeklyTotals(ctx context.Context, startDate, endDate string, typ core.TransactionType) ([]WeeklyTotalRow, error) {
	rows, err := q.db.QueryContext(ctx, getWeeklyTotals, startDate, endDate, string(typ))
	if err != nil {
		return nil, fmt.Errorf("query weekly totals: %w", err)
	}
	defer rows.Close()

	var out []WeeklyTotalRow
	for rows.Next() {
		var r WeeklyTotalRow
		if err := rows.Scan(&r.DayOfWeek, &r.Total); err != nil {
			return nil, fmt.Errorf("scan weekly total: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const createTransaction = `
INSERT INTO Transactions (amount, date, description, type, category_id)
VALUES (?, ?, ?, ?, ?)
RETURNING id, amount, date, description, type, category_id
`

// CreateTransaction inserts a row and returns it with the storage-assigned id.
func (q *Queries) CreateTransaction(ctx context.Context, in core.TransactionInput) (core.Transaction, error) {
	var t core.Transaction
	row := q.db.QueryRowContext(ctx, createTransaction,
		in.Amount, in.Date, in.Description, string(in.Type), in.CategoryID)
	if err := row.Scan(&t.ID, &t.Amount, &t.Date, &t.Description, &t.Type, &t.CategoryID); err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}
	return t, nil
}

const updateTransaction = `
UPDATE Transactions
SET amount = ?, date = ?, description = ?, type = ?, category_id = ?
WHERE id = ?
`

// UpdateTransaction overwrites all mutable fields of the row with the given
// id and reports how many rows matched.
func (q *Queries) UpdateTransaction(ctx context.Context, t core.Transaction) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateTransaction,
		t.Amount, t.Date, t.Description, string(t.Type), t.CategoryID, t.ID)
	if err != nil {
		return 0, fmt.Errorf("update transaction: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update rows affected: %w", err)
	}
	return affected, nil
}

const deleteTransaction = `
DELETE FROM Transactions
WHERE id = ?
`

// DeleteTransaction removes the row with the given id, if any.
func (q *Queries) DeleteTransaction(ctx context.Context, id int64) error {
	if _, err := q.db.ExecContext(ctx, deleteTransaction, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}
