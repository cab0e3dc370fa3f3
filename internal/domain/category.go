package domain

import "context"

type Category struct {
	ID   int32           `json:"id"`
	Name string          `json:"name"`
	Type TransactionType `json:"type"`
}

const MaxCategoryNameLength = 100

// CategoryRepository persists categories. Create returns ErrCategoryAlreadyExists
// when the name is taken, including when another request won the insert race.
type CategoryRepository interface {
	GetByName(ctx context.Context, name string) (*Category, error)
	Create(ctx context.Context, category *Category) (*Category, error)
}
