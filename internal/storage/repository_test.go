package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/nambse/gelirgider/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "gelirgider.db"), Options{})
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func mustCreate(t *testing.T, repo *SQLiteRepository, in core.TransactionInput) core.Transaction {
	t.Helper()
	created, err := repo.CreateTransaction(context.Background(), in)
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}
	return created
}

func TestMigrationsSeedCategories(t *testing.T) {
	repo := newTestRepo(t)

	cats, err := repo.Categories(context.Background())
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if len(cats) != 15 {
		t.Fatalf("got %d categories, want 15", len(cats))
	}

	var income, expense int
	for _, c := range cats {
		switch c.Type {
		case core.TypeIncome:
			income++
		case core.TypeExpense:
			expense++
		default:
			t.Fatalf("unexpected category type %q", c.Type)
		}
	}
	if expense != 8 || income != 7 {
		t.Fatalf("got %d expense / %d income categories, want 8/7", expense, income)
	}
}

func TestRecentTransactionsOrdering(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// Inserted out of date order; ties on date break by id descending.
	first := mustCreate(t, repo, core.TransactionInput{CategoryID: 1, Amount: 10, Date: "2024-01-01", Description: "a", Type: core.TypeExpense})
	second := mustCreate(t, repo, core.TransactionInput{CategoryID: 1, Amount: 20, Date: "2024-01-03", Description: "b", Type: core.TypeExpense})
	third := mustCreate(t, repo, core.TransactionInput{CategoryID: 1, Amount: 30, Date: "2024-01-02", Description: "c", Type: core.TypeExpense})
	fourth := mustCreate(t, repo, core.TransactionInput{CategoryID: 1, Amount: 40, Date: "2024-01-02", Description: "d", Type: core.TypeExpense})

	got, err := repo.RecentTransactions(ctx)
	if err != nil {
		t.Fatalf("recent transactions: %v", err)
	}
	wantOrder := []int64{second.ID, fourth.ID, third.ID, first.ID}
	if len(got) != len(wantOrder) {
		t.Fatalf("got %d transactions, want %d", len(got), len(wantOrder))
	}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Fatalf("position %d: got id %d, want %d", i, got[i].ID, id)
		}
	}
}

func TestRecentTransactionsLimit(t *testing.T) {
	repo := newTestRepo(t)

	for day := 1; day <= 31; day++ {
		mustCreate(t, repo, core.TransactionInput{
			CategoryID:  1,
			Amount:      1,
			Date:        fmt.Sprintf("2024-01-%02d", day),
			Description: "x",
			Type:        core.TypeExpense,
		})
	}
	// 4 more on top of 31: the 5 oldest days must fall off.
	for i := 0; i < 4; i++ {
		mustCreate(t, repo, core.TransactionInput{CategoryID: 1, Amount: 1, Date: "2024-02-01", Description: "y", Type: core.TypeExpense})
	}

	got, err := repo.RecentTransactions(context.Background())
	if err != nil {
		t.Fatalf("recent transactions: %v", err)
	}
	if len(got) != RecentLimit {
		t.Fatalf("got %d transactions, want %d", len(got), RecentLimit)
	}
	for _, tx := range got {
		if tx.Date < "2024-01-06" {
			t.Fatalf("transaction dated %s should have been excluded", tx.Date)
		}
	}
}

func TestMonthlyTotals(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	mustCreate(t, repo, core.TransactionInput{CategoryID: 9, Amount: 100, Date: "2024-03-05", Description: "Paycheck", Type: core.TypeIncome})
	mustCreate(t, repo, core.TransactionInput{CategoryID: 6, Amount: 40.5, Date: "2024-03-10", Description: "Market", Type: core.TypeExpense})
	mustCreate(t, repo, core.TransactionInput{CategoryID: 6, Amount: 9.5, Date: "2024-03-31", Description: "Market", Type: core.TypeExpense})
	// Outside the month on both sides.
	mustCreate(t, repo, core.TransactionInput{CategoryID: 9, Amount: 999, Date: "2024-02-29", Description: "old", Type: core.TypeIncome})
	mustCreate(t, repo, core.TransactionInput{CategoryID: 6, Amount: 999, Date: "2024-04-01", Description: "next", Type: core.TypeExpense})

	stats, err := repo.MonthlyTotals(ctx, "2024-03-01", "2024-03-31")
	if err != nil {
		t.Fatalf("monthly totals: %v", err)
	}
	if stats.TotalIncome != 100 || stats.TotalExpense != 50 {
		t.Fatalf("got %+v, want income 100 / expense 50", stats)
	}

	// Empty month yields zeros, never an error.
	empty, err := repo.MonthlyTotals(ctx, "2025-06-01", "2025-06-30")
	if err != nil {
		t.Fatalf("monthly totals for empty month: %v", err)
	}
	if empty.TotalIncome != 0 || empty.TotalExpense != 0 {
		t.Fatalf("empty month: got %+v, want zeros", empty)
	}
}

func TestWeeklyTotalsSparse(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// Week of 2024-03-03 (Sun) .. 2024-03-09 (Sat).
	mustCreate(t, repo, core.TransactionInput{CategoryID: 6, Amount: 30, Date: "2024-03-04", Description: "Monday", Type: core.TypeExpense})
	mustCreate(t, repo, core.TransactionInput{CategoryID: 6, Amount: 20, Date: "2024-03-04", Description: "Monday too", Type: core.TypeExpense})
	mustCreate(t, repo, core.TransactionInput{CategoryID: 6, Amount: 75.5, Date: "2024-03-08", Description: "Friday", Type: core.TypeExpense})
	// Same week, other type: must not leak into the expense aggregate.
	mustCreate(t, repo, core.TransactionInput{CategoryID: 9, Amount: 500, Date: "2024-03-04", Description: "Salary", Type: core.TypeIncome})

	rows, err := repo.WeeklyTotals(ctx, "2024-03-03", "2024-03-09", core.TypeExpense)
	if err != nil {
		t.Fatalf("weekly totals: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d buckets, want 2 (sparse result)", len(rows))
	}
	if rows[0].DayOfWeek != 1 || rows[0].Total != 50 {
		t.Fatalf("Monday bucket = %+v", rows[0])
	}
	if rows[1].DayOfWeek != 5 || rows[1].Total != 75.5 {
		t.Fatalf("Friday bucket = %+v", rows[1])
	}
}

func TestUpdateTransaction(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created := mustCreate(t, repo, core.TransactionInput{CategoryID: 1, Amount: 10, Date: "2024-01-01", Description: "before", Type: core.TypeExpense})

	created.Amount = 25
	created.Description = "after"
	if err := repo.UpdateTransaction(ctx, created); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.RecentTransactions(ctx)
	if err != nil {
		t.Fatalf("recent transactions: %v", err)
	}
	if got[0].ID != created.ID || got[0].Amount != 25 || got[0].Description != "after" {
		t.Fatalf("update not reflected: %+v", got[0])
	}
}

func TestUpdateMissingTransaction(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.UpdateTransaction(context.Background(), core.Transaction{
		ID: 9999, CategoryID: 1, Amount: 1, Date: "2024-01-01", Description: "ghost", Type: core.TypeExpense,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestDeleteTransaction(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created := mustCreate(t, repo, core.TransactionInput{CategoryID: 1, Amount: 10, Date: "2024-01-01", Description: "gone", Type: core.TypeExpense})
	if err := repo.DeleteTransaction(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	got, err := repo.RecentTransactions(ctx)
	if err != nil {
		t.Fatalf("recent transactions: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty list, got %d rows", len(got))
	}

	// Deleting an absent id is a silent no-op.
	if err := repo.DeleteTransaction(ctx, created.ID); err != nil {
		t.Fatalf("delete absent id: %v", err)
	}
}

func TestSeedCopyBootstrap(t *testing.T) {
	dir := t.TempDir()
	seedPath := filepath.Join(dir, "seed.db")

	// Build a seed database with one pre-existing transaction.
	seed, err := NewSQLiteRepository(seedPath, Options{})
	if err != nil {
		t.Fatalf("build seed: %v", err)
	}
	mustCreate(t, seed, core.TransactionInput{CategoryID: 9, Amount: 77, Date: "2024-05-01", Description: "seeded", Type: core.TypeIncome})
	if err := seed.Close(); err != nil {
		t.Fatalf("close seed: %v", err)
	}

	dbPath := filepath.Join(dir, "app", "gelirgider.db")
	repo, err := NewSQLiteRepository(dbPath, Options{SeedPath: seedPath})
	if err != nil {
		t.Fatalf("open with seed: %v", err)
	}
	defer repo.Close()

	got, err := repo.RecentTransactions(context.Background())
	if err != nil {
		t.Fatalf("recent transactions: %v", err)
	}
	if len(got) != 1 || got[0].Description != "seeded" {
		t.Fatalf("seed contents missing: %+v", got)
	}
}
