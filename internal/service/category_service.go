package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ashecone/expense-tracker-api/internal/domain"
	"github.com/rs/zerolog/log"
)

// CategoryService resolves category names to ids, creating categories on first use
type CategoryService struct {
	categoryRepo domain.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo domain.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// Resolve returns the id of the category called name, creating it with
// fallbackType if it does not exist. The boolean reports whether it was created.
//
// Two requests creating the same new name race on the UNIQUE(name) constraint;
// the loser re-reads the winner's row instead of failing. An existing category
// keeps the type it was created with even if fallbackType differs.
func (s *CategoryService) Resolve(ctx context.Context, name string, fallbackType domain.TransactionType) (*domain.Category, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, domain.ErrCategoryRequired
	}
	if len(name) > domain.MaxCategoryNameLength {
		return nil, false, domain.ErrCategoryNameTooLong
	}
	if !fallbackType.Valid() {
		return nil, false, domain.ErrInvalidTransactionType
	}

	category, err := s.categoryRepo.GetByName(ctx, name)
	if err == nil {
		s.warnOnTypeMismatch(category, fallbackType)
		return category, false, nil
	}
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		return nil, false, fmt.Errorf("look up category: %w", err)
	}

	created, err := s.categoryRepo.Create(ctx, &domain.Category{Name: name, Type: fallbackType})
	if err == nil {
		log.Info().Int32("category_id", created.ID).Str("name", created.Name).Str("type", string(created.Type)).Msg("Category created")
		return created, true, nil
	}
	if !errors.Is(err, domain.ErrCategoryAlreadyExists) {
		return nil, false, fmt.Errorf("create category: %w", err)
	}

	// lost the insert race, the winner's row is now visible
	category, err = s.categoryRepo.GetByName(ctx, name)
	if err != nil {
		return nil, false, fmt.Errorf("re-read category after conflict: %w", err)
	}
	log.Debug().Int32("category_id", category.ID).Str("name", name).Msg("Category created concurrently, reusing")
	s.warnOnTypeMismatch(category, fallbackType)
	return category, false, nil
}

func (s *CategoryService) warnOnTypeMismatch(category *domain.Category, requested domain.TransactionType) {
	if category.Type != requested {
		log.Warn().
			Int32("category_id", category.ID).
			Str("name", category.Name).
			Str("category_type", string(category.Type)).
			Str("transaction_type", string(requested)).
			Msg("Category reused with a different transaction type; keeping original type")
	}
}
