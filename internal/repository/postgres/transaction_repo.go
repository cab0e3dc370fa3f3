package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ashecone/expense-tracker-api/db/sqlc"
	"github.com/ashecone/expense-tracker-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TransactionRepository implements domain.TransactionRepository using PostgreSQL.
// Listing goes through buildTransactionQuery; everything else is sqlc.
type TransactionRepository struct {
	pool    *pgxpool.Pool
	queries *sqlc.Queries
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{
		pool:    pool,
		queries: sqlc.New(pool),
	}
}

// Create inserts a transaction and returns its id
func (r *TransactionRepository) Create(ctx context.Context, data *domain.TransactionWrite) (int32, error) {
	amount, err := decimalToPgNumeric(data.Amount)
	if err != nil {
		return 0, fmt.Errorf("invalid amount: %w", err)
	}

	return r.queries.CreateTransaction(ctx, sqlc.CreateTransactionParams{
		UserID:      data.UserID,
		Type:        string(data.Type),
		Amount:      amount,
		Description: stringPtrToPgText(data.Description),
		CategoryID:  data.CategoryID,
		Date:        pgtype.Date{Time: data.Date, Valid: true},
	})
}

// GetByID retrieves a transaction joined with its category name
func (r *TransactionRepository) GetByID(ctx context.Context, id int32) (*domain.Transaction, error) {
	row, err := r.queries.GetTransactionByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return sqlcTransactionRowToDomain(row), nil
}

// Update replaces the mutable fields of a transaction owned by data.UserID
func (r *TransactionRepository) Update(ctx context.Context, id int32, data *domain.TransactionWrite) error {
	amount, err := decimalToPgNumeric(data.Amount)
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}

	affected, err := r.queries.UpdateTransaction(ctx, sqlc.UpdateTransactionParams{
		IDTransaction: id,
		UserID:        data.UserID,
		Type:          string(data.Type),
		Amount:        amount,
		Description:   stringPtrToPgText(data.Description),
		CategoryID:    data.CategoryID,
		Date:          pgtype.Date{Time: data.Date, Valid: true},
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

// Delete removes a transaction, constrained to userID when it is non-zero
func (r *TransactionRepository) Delete(ctx context.Context, id int32, userID int32) error {
	var (
		affected int64
		err      error
	)
	if userID != 0 {
		affected, err = r.queries.DeleteUserTransaction(ctx, sqlc.DeleteUserTransactionParams{
			IDTransaction: id,
			UserID:        userID,
		})
	} else {
		affected, err = r.queries.DeleteTransaction(ctx, id)
	}
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

// Query lists a user's transactions using the filter, sort and limit in q
func (r *TransactionRepository) Query(ctx context.Context, q domain.TransactionQuery) ([]*domain.Transaction, error) {
	sql, args := buildTransactionQuery(q)

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := make([]*domain.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

// scanTransaction reads a row of selectTransactionColumns into the same shape
// sqlc returns for GetTransactionByID
func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var r sqlc.GetTransactionByIDRow
	if err := row.Scan(&r.IDTransaction, &r.UserID, &r.Type, &r.Amount, &r.Description, &r.CategoryID, &r.CategoryName, &r.Date); err != nil {
		return nil, err
	}
	return sqlcTransactionRowToDomain(r), nil
}

func sqlcTransactionRowToDomain(r sqlc.GetTransactionByIDRow) *domain.Transaction {
	return &domain.Transaction{
		ID:           r.IDTransaction,
		UserID:       r.UserID,
		Type:         domain.TransactionType(r.Type),
		Amount:       pgNumericToDecimal(r.Amount),
		Description:  pgTextToStringPtr(r.Description),
		CategoryID:   r.CategoryID,
		CategoryName: r.CategoryName,
		Date:         r.Date.Time,
	}
}
