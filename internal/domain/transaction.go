package domain

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether t is one of the known transaction types
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

const (
	DefaultRecentLimit   = 5
	MaxDescriptionLength = 1000
)

// Transaction is a single ledger entry joined with its category name
type Transaction struct {
	ID           int32           `json:"id"`
	UserID       int32           `json:"userId"`
	Type         TransactionType `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Description  *string         `json:"description,omitempty"`
	CategoryID   int32           `json:"categoryId"`
	CategoryName string          `json:"category"`
	Date         time.Time       `json:"date"`
}

// SortField is an allow-listed column a transaction listing can be ordered by
type SortField string

const (
	SortByDate   SortField = "date"
	SortByAmount SortField = "amount"
	SortByType   SortField = "type"
	SortByID     SortField = "id"
)

// SortOrder is an allow-listed ordering direction
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortField maps caller input onto the allow-list. Unknown values fall
// back to SortByDate; "id_transaction" is accepted as an alias of "id".
func ParseSortField(s string) SortField {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "amount":
		return SortByAmount
	case "type":
		return SortByType
	case "id", "id_transaction":
		return SortByID
	default:
		return SortByDate
	}
}

// ParseSortOrder maps caller input onto the allow-list, falling back to SortDesc
func ParseSortOrder(s string) SortOrder {
	if strings.EqualFold(strings.TrimSpace(s), string(SortAsc)) {
		return SortAsc
	}
	return SortDesc
}

// TransactionQuery describes a read over one user's transactions.
// Zero values mean "no constraint"; Limit 0 means unbounded.
type TransactionQuery struct {
	UserID       int32
	StartDate    *time.Time
	EndDate      *time.Time
	Type         *TransactionType
	CategoryName *string
	SortField    SortField
	SortOrder    SortOrder
	Limit        int32
}

// TransactionWrite carries the mutable fields of a transaction after category resolution
type TransactionWrite struct {
	UserID      int32
	Type        TransactionType
	Amount      decimal.Decimal
	Description *string
	CategoryID  int32
	Date        time.Time
}

type TransactionRepository interface {
	Create(ctx context.Context, data *TransactionWrite) (int32, error)
	GetByID(ctx context.Context, id int32) (*Transaction, error)
	Update(ctx context.Context, id int32, data *TransactionWrite) error
	// Delete removes the row; userID 0 skips the ownership constraint.
	Delete(ctx context.Context, id int32, userID int32) error
	Query(ctx context.Context, q TransactionQuery) ([]*Transaction, error)
}
