package postgres

import (
	"context"
	"errors"

	"github.com/ashecone/expense-tracker-api/db/sqlc"
	"github.com/ashecone/expense-tracker-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CategoryRepository implements domain.CategoryRepository using PostgreSQL
type CategoryRepository struct {
	queries *sqlc.Queries
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{queries: sqlc.New(pool)}
}

// GetByName retrieves a category by its exact name
func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	category, err := r.queries.GetCategoryByName(ctx, name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return sqlcCategoryToDomain(category), nil
}

// Create inserts a new category. A concurrent insert of the same name surfaces
// as ErrCategoryAlreadyExists through the UNIQUE(name) constraint.
func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	created, err := r.queries.CreateCategory(ctx, sqlc.CreateCategoryParams{
		Name: category.Name,
		Type: string(category.Type),
	})
	if err != nil {
		if isPgUniqueViolation(err) {
			return nil, domain.ErrCategoryAlreadyExists
		}
		return nil, err
	}
	return sqlcCategoryToDomain(created), nil
}

func sqlcCategoryToDomain(c sqlc.Category) *domain.Category {
	return &domain.Category{
		ID:   c.IDCategory,
		Name: c.Name,
		Type: domain.TransactionType(c.Type),
	}
}
