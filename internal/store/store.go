// Package store implements the transaction projection store: every read and
// write against the embedded database flows through here, and consumers
// render from the in-memory snapshot it maintains.
//
// The refresh protocol is deliberately coarse: every mutation is followed by
// a wholesale reload of the projection. Reads are best-effort and leave the
// previous snapshot untouched on failure; writes always fail loudly.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nambse/gelirgider/internal/core"
	"github.com/nambse/gelirgider/internal/storage"
)

// Repository is the storage surface the store depends on.
type Repository interface {
	RecentTransactions(ctx context.Context) ([]core.Transaction, error)
	Categories(ctx context.Context) ([]core.Category, error)
	MonthlyTotals(ctx context.Context, startDate, endDate string) (core.MonthlyStats, error)
	WeeklyTotals(ctx context.Context, startDate, endDate string, typ core.TransactionType) ([]storage.WeeklyTotalRow, error)
	CreateTransaction(ctx context.Context, in core.TransactionInput) (core.Transaction, error)
	UpdateTransaction(ctx context.Context, t core.Transaction) error
	DeleteTransaction(ctx context.Context, id int64) error
}

// Projection is the display state: the recent transaction list, the category
// set, and the current month's totals. It is replaced as a whole on every
// refresh; no partial update is ever observable.
type Projection struct {
	Transactions []core.Transaction `json:"transactions"`
	Categories   []core.Category    `json:"categories"`
	MonthlyStats core.MonthlyStats  `json:"monthlyStats"`
}

// Store is constructed once at startup around the shared database handle and
// passed to consumers. Concurrent fetches may interleave at the I/O level;
// each one replaces the projection wholesale, so the worst case is a stale
// read losing a race, never corrupted state.
type Store struct {
	repo Repository
	now  func() time.Time

	mu         sync.RWMutex
	projection Projection
	weekly     core.WeeklyAggregate
}

func New(repo Repository) *Store {
	return &Store{
		repo: repo,
		now:  time.Now,
	}
}

// FetchAll reloads the projection: the 30 most recent transactions (newest
// first), the full category set, and income/expense totals for the current
// wall-clock month. On any failure the previous projection is kept and the
// error is returned after logging.
func (s *Store) FetchAll(ctx context.Context) error {
	transactions, err := s.repo.RecentTransactions(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to fetch transactions", "error", err)
		return fmt.Errorf("fetch transactions: %w", err)
	}

	categories, err := s.repo.Categories(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to fetch categories", "error", err)
		return fmt.Errorf("fetch categories: %w", err)
	}

	monthStart, monthEnd := core.MonthRange(s.now())
	stats, err := s.repo.MonthlyTotals(ctx, monthStart, monthEnd)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to fetch monthly stats",
			"error", err, "month_start", monthStart, "month_end", monthEnd)
		return fmt.Errorf("fetch monthly stats: %w", err)
	}

	s.mu.Lock()
	s.projection = Projection{
		Transactions: transactions,
		Categories:   categories,
		MonthlyStats: stats,
	}
	s.mu.Unlock()

	return nil
}

// FetchWeekly reloads the weekly aggregate for one inclusive date range and
// transaction type. The result is sparse: days without transactions are
// absent and must be treated as zero by the consumer.
func (s *Store) FetchWeekly(ctx context.Context, startDate, endDate string, typ core.TransactionType) error {
	rows, err := s.repo.WeeklyTotals(ctx, startDate, endDate, typ)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to fetch weekly totals",
			"error", err, "start", startDate, "end", endDate, "type", typ)
		return fmt.Errorf("fetch weekly totals: %w", err)
	}

	data := make(map[int]float64, len(rows))
	for _, r := range rows {
		data[r.DayOfWeek] = r.Total
	}

	s.mu.Lock()
	s.weekly = core.WeeklyAggregate{
		StartDate: startDate,
		EndDate:   endDate,
		Type:      typ,
		Data:      data,
	}
	s.mu.Unlock()

	return nil
}

// Add inserts a new transaction and returns it with its assigned id. The
// insert failing is the caller's problem; refresh failures after a
// successful write are logged only, since the write itself stuck.
//
// After the refresh the weekly aggregate is resynced to the current
// Sunday-start week for the new transaction's type, even when the
// transaction falls outside that week. The chart always shows "this week"
// after a save.
func (s *Store) Add(ctx context.Context, in core.TransactionInput) (core.Transaction, error) {
	created, err := s.repo.CreateTransaction(ctx, in)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("add transaction: %w", err)
	}

	if err := s.FetchAll(ctx); err != nil {
		slog.WarnContext(ctx, "Projection refresh after add failed", "error", err, "id", created.ID)
	}

	weekStart, weekEnd := core.WeekRange(s.now())
	if err := s.FetchWeekly(ctx, weekStart, weekEnd, in.Type); err != nil {
		slog.WarnContext(ctx, "Weekly resync after add failed", "error", err, "id", created.ID)
	}

	return created, nil
}

// Edit overwrites all mutable fields of an existing transaction by id.
// Editing an id with no matching row returns storage.ErrNotFound. Unlike
// Add, Edit does not resync the weekly aggregate; the consumer re-requests
// whatever week it is displaying.
func (s *Store) Edit(ctx context.Context, t core.Transaction) error {
	if err := s.repo.UpdateTransaction(ctx, t); err != nil {
		return fmt.Errorf("edit transaction: %w", err)
	}

	if err := s.FetchAll(ctx); err != nil {
		slog.WarnContext(ctx, "Projection refresh after edit failed", "error", err, "id", t.ID)
	}

	return nil
}

// Delete removes the transaction with the given id. Deleting an absent id is
// a silent no-op.
func (s *Store) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	if err := s.FetchAll(ctx); err != nil {
		slog.WarnContext(ctx, "Projection refresh after delete failed", "error", err, "id", id)
	}

	return nil
}

// Snapshot returns a copy of the current projection. The copy is safe to
// hold across later mutations.
func (s *Store) Snapshot() Projection {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p := Projection{
		Transactions: make([]core.Transaction, len(s.projection.Transactions)),
		Categories:   make([]core.Category, len(s.projection.Categories)),
		MonthlyStats: s.projection.MonthlyStats,
	}
	copy(p.Transactions, s.projection.Transactions)
	copy(p.Categories, s.projection.Categories)
	return p
}

// CategoryByID looks up a category in the current projection.
func (s *Store) CategoryByID(id int64) (core.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.projection.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return core.Category{}, false
}

// Weekly returns a copy of the current weekly aggregate.
func (s *Store) Weekly() core.WeeklyAggregate {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w := s.weekly
	if s.weekly.Data != nil {
		w.Data = make(map[int]float64, len(s.weekly.Data))
		for k, v := range s.weekly.Data {
			w.Data[k] = v
		}
	}
	return w
}
