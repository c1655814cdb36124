package core

import (
	"errors"
	"strings"
)

const (
	// TypeIncome and TypeExpense are the canonical transaction types.
	// The original app labels them "Gelir" and "Gider" in the UI.
	TypeIncome  TransactionType = "Income"
	TypeExpense TransactionType = "Expense"
)

type (
	TransactionType string

	// Transaction is a single income or expense entry. The id is assigned
	// by storage on creation and immutable thereafter.
	Transaction struct {
		ID          int64           `json:"id"`
		CategoryID  int64           `json:"category_id"`
		Amount      float64         `json:"amount"`
		Date        string          `json:"date"` // YYYY-MM-DD
		Description string          `json:"description"`
		Type        TransactionType `json:"type"`
	}

	// TransactionInput carries the fields of a transaction before storage
	// has assigned an id.
	TransactionInput struct {
		CategoryID  int64           `json:"category_id"`
		Amount      float64         `json:"amount"`
		Date        string          `json:"date"`
		Description string          `json:"description"`
		Type        TransactionType `json:"type"`
	}

	// Category is a seeded, read-only grouping for transactions. A
	// category's type constrains which transactions may reference it.
	Category struct {
		ID   int64           `json:"id"`
		Name string          `json:"name"`
		Type TransactionType `json:"type"`
	}

	// MonthlyStats holds the income/expense totals for one calendar month.
	// Derived on every fetch, never persisted.
	MonthlyStats struct {
		TotalIncome  float64 `json:"totalIncome"`
		TotalExpense float64 `json:"totalExpenses"`
	}
)

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrEmptyDescription = errors.New("empty description")
)

// IsValid reports whether t is one of the two known transaction types.
func (t TransactionType) IsValid() bool {
	return t == TypeIncome || t == TypeExpense
}

// TurkishLabel returns the display label used by the original app.
func (t TransactionType) TurkishLabel() string {
	switch t {
	case TypeIncome:
		return "Gelir"
	case TypeExpense:
		return "Gider"
	default:
		return string(t)
	}
}

// String implements fmt.Stringer.
func (t TransactionType) String() string {
	return string(t)
}

func (in TransactionInput) Validate() error {
	if err := ValidateDate(in.Date); err != nil {
		return err
	}
	if in.Amount <= 0 {
		return ErrInvalidAmount
	}
	if len(strings.TrimSpace(in.Description)) == 0 {
		return ErrEmptyDescription
	}
	if !in.Type.IsValid() {
		return ErrInvalidType
	}
	if in.CategoryID <= 0 {
		return ErrInvalidCategory
	}
	return nil
}

func (t Transaction) Validate() error {
	return t.Input().Validate()
}

// Input strips the storage-assigned id from a transaction.
func (t Transaction) Input() TransactionInput {
	return TransactionInput{
		CategoryID:  t.CategoryID,
		Amount:      t.Amount,
		Date:        t.Date,
		Description: t.Description,
		Type:        t.Type,
	}
}
