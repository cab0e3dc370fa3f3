package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ashecone/expense-tracker-api/internal/domain"
	"github.com/ashecone/expense-tracker-api/internal/util"
	"github.com/ashecone/expense-tracker-api/internal/websocket"
	"github.com/shopspring/decimal"
)

var maxAmount = decimal.New(1, 13)

// TransactionService implements the ledger: transaction CRUD, listing and
// balance aggregation.
type TransactionService struct {
	transactionRepo domain.TransactionRepository
	categories      *CategoryService
	eventPublisher  websocket.EventPublisher
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(transactionRepo domain.TransactionRepository, categories *CategoryService) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		categories:      categories,
	}
}

// SetEventPublisher sets the WebSocket event publisher
func (s *TransactionService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *TransactionService) publishEvent(userID int32, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(userID, event)
	}
}

// TransactionEventPayload is pushed to subscribers after a ledger write
type TransactionEventPayload struct {
	TransactionID int32       `json:"transactionId"`
	UserID        int32       `json:"userId,omitempty"`
	Type          string      `json:"type,omitempty"`
	Amount        json.Number `json:"amount,omitempty"`
	Category      string      `json:"category,omitempty"`
	Date          string      `json:"date,omitempty"`
}

// TransactionInput holds the caller-supplied fields of a transaction write
type TransactionInput struct {
	UserID      int32
	Type        domain.TransactionType
	Amount      decimal.Decimal
	Description *string
	Category    string
	Date        string
}

// FilterInput holds the optional filters for Filter. Empty strings mean unset.
type FilterInput struct {
	UserID    int32
	StartDate string
	EndDate   string
	Type      string
	Category  string
}

// validate checks everything that does not need the store
func (s *TransactionService) validate(input TransactionInput) (*domain.TransactionWrite, error) {
	if input.UserID <= 0 {
		return nil, domain.ErrInvalidUserID
	}
	if !input.Type.Valid() {
		return nil, domain.ErrInvalidTransactionType
	}
	if input.Amount.LessThanOrEqual(decimal.Zero) || input.Amount.GreaterThanOrEqual(maxAmount) {
		return nil, domain.ErrInvalidAmount
	}
	// amounts are stored as NUMERIC(15,2); more precision would not round-trip
	if !input.Amount.Equal(input.Amount.Round(2)) {
		return nil, domain.ErrInvalidAmount
	}
	if strings.TrimSpace(input.Category) == "" {
		return nil, domain.ErrCategoryRequired
	}
	date, ok := util.ParseDate(strings.TrimSpace(input.Date))
	if !ok {
		return nil, domain.ErrInvalidDate
	}

	var description *string
	if input.Description != nil {
		trimmed := strings.TrimSpace(*input.Description)
		if trimmed != "" {
			if len(trimmed) > domain.MaxDescriptionLength {
				return nil, domain.ErrDescriptionTooLong
			}
			description = &trimmed
		}
	}

	return &domain.TransactionWrite{
		UserID:      input.UserID,
		Type:        input.Type,
		Amount:      input.Amount,
		Description: description,
		Date:        date,
	}, nil
}

// resolveCategory fills data.CategoryID, announcing newly created categories
func (s *TransactionService) resolveCategory(ctx context.Context, data *domain.TransactionWrite, name string) (*domain.Category, error) {
	category, created, err := s.categories.Resolve(ctx, name, data.Type)
	if err != nil {
		return nil, err
	}
	data.CategoryID = category.ID
	if created {
		s.publishEvent(data.UserID, websocket.CategoryCreated(category))
	}
	return category, nil
}

// Add validates and records a new transaction, returning its id
func (s *TransactionService) Add(ctx context.Context, input TransactionInput) (int32, error) {
	data, err := s.validate(input)
	if err != nil {
		return 0, err
	}

	category, err := s.resolveCategory(ctx, data, input.Category)
	if err != nil {
		return 0, err
	}

	id, err := s.transactionRepo.Create(ctx, data)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}

	s.publishEvent(data.UserID, websocket.TransactionCreated(eventPayload(id, data, category.Name)))
	return id, nil
}

// Update replaces a transaction's fields. Rows not owned by input.UserID are
// reported as ErrTransactionNotFound so existence is not revealed.
func (s *TransactionService) Update(ctx context.Context, id int32, input TransactionInput) error {
	if id <= 0 {
		return domain.ErrTransactionNotFound
	}
	data, err := s.validate(input)
	if err != nil {
		return err
	}

	category, err := s.resolveCategory(ctx, data, input.Category)
	if err != nil {
		return err
	}

	if err := s.transactionRepo.Update(ctx, id, data); err != nil {
		return err
	}

	s.publishEvent(data.UserID, websocket.TransactionUpdated(eventPayload(id, data, category.Name)))
	return nil
}

// Delete removes a transaction. When userID is non-zero only that user's row
// can be removed.
func (s *TransactionService) Delete(ctx context.Context, id int32, userID int32) error {
	if id <= 0 {
		return domain.ErrTransactionNotFound
	}
	if userID < 0 {
		return domain.ErrInvalidUserID
	}

	// the owner is needed to route the event when the caller did not name one
	owner := userID
	if owner == 0 {
		existing, err := s.transactionRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		owner = existing.UserID
	}

	if err := s.transactionRepo.Delete(ctx, id, userID); err != nil {
		return err
	}

	s.publishEvent(owner, websocket.TransactionDeleted(TransactionEventPayload{TransactionID: id}))
	return nil
}

// GetByID returns the full transaction including description and category name
func (s *TransactionService) GetByID(ctx context.Context, id int32) (*domain.Transaction, error) {
	if id <= 0 {
		return nil, domain.ErrTransactionNotFound
	}
	return s.transactionRepo.GetByID(ctx, id)
}

// List returns every transaction of the user with its summary. Unknown sort
// fields or directions fall back to date descending.
func (s *TransactionService) List(ctx context.Context, userID int32, orderBy, order string) (*domain.TransactionList, error) {
	return s.list(ctx, userID, orderBy, order, 0)
}

// ListLimited is List bounded to the first limit rows after sorting; the
// summary covers only those rows. A non-positive limit uses DefaultRecentLimit.
func (s *TransactionService) ListLimited(ctx context.Context, userID int32, orderBy, order string, limit int32) (*domain.TransactionList, error) {
	if limit <= 0 {
		limit = domain.DefaultRecentLimit
	}
	return s.list(ctx, userID, orderBy, order, limit)
}

func (s *TransactionService) list(ctx context.Context, userID int32, orderBy, order string, limit int32) (*domain.TransactionList, error) {
	if userID <= 0 {
		return nil, domain.ErrInvalidUserID
	}

	transactions, err := s.transactionRepo.Query(ctx, domain.TransactionQuery{
		UserID:    userID,
		SortField: domain.ParseSortField(orderBy),
		SortOrder: domain.ParseSortOrder(order),
		Limit:     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	return &domain.TransactionList{
		Transactions: transactions,
		Summary:      domain.Summarize(transactions),
	}, nil
}

// Filter lists a user's transactions narrowed by an inclusive date range,
// type and category name, newest first.
func (s *TransactionService) Filter(ctx context.Context, input FilterInput) ([]*domain.Transaction, error) {
	if input.UserID <= 0 {
		return nil, domain.ErrInvalidUserID
	}

	q := domain.TransactionQuery{
		UserID:    input.UserID,
		SortField: domain.SortByDate,
		SortOrder: domain.SortDesc,
	}

	startStr := strings.TrimSpace(input.StartDate)
	endStr := strings.TrimSpace(input.EndDate)
	if (startStr == "") != (endStr == "") {
		return nil, domain.ErrIncompleteDateRange
	}
	if startStr != "" {
		start, err := parseFilterDate(startStr)
		if err != nil {
			return nil, err
		}
		end, err := parseFilterDate(endStr)
		if err != nil {
			return nil, err
		}
		q.StartDate = &start
		q.EndDate = &end
	}

	if typeStr := strings.TrimSpace(input.Type); typeStr != "" {
		txType := domain.TransactionType(typeStr)
		if !txType.Valid() {
			return nil, domain.ErrInvalidTransactionType
		}
		q.Type = &txType
	}

	if category := strings.TrimSpace(input.Category); category != "" {
		q.CategoryName = &category
	}

	transactions, err := s.transactionRepo.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("filter transactions: %w", err)
	}
	return transactions, nil
}

func parseFilterDate(s string) (time.Time, error) {
	d, ok := util.ParseDate(s)
	if !ok {
		return time.Time{}, domain.ErrInvalidDate
	}
	return d, nil
}

func eventPayload(id int32, data *domain.TransactionWrite, category string) TransactionEventPayload {
	return TransactionEventPayload{
		TransactionID: id,
		UserID:        data.UserID,
		Type:          string(data.Type),
		Amount:        json.Number(domain.FormatAmount(data.Amount)),
		Category:      category,
		Date:          util.FormatDate(data.Date),
	}
}
