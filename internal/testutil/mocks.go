package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/ashecone/expense-tracker-api/internal/domain"
	"github.com/ashecone/expense-tracker-api/internal/websocket"
)

// MockUserRepository is an in-memory implementation of domain.UserRepository
type MockUserRepository struct {
	mu      sync.Mutex
	Users   map[int32]*domain.User
	NextID  int32
	GetErr  error // returned by every read when set
	WriteFn func(user *domain.User) error
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:  make(map[int32]*domain.User),
		NextID: 1,
	}
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID == 0 {
		user.ID = m.NextID
	}
	if user.ID >= m.NextID {
		m.NextID = user.ID + 1
	}
	m.Users[user.ID] = user
}

func (m *MockUserRepository) emailTaken(email string, exceptID int32) bool {
	for _, u := range m.Users {
		if u.ID != exceptID && u.Email == email {
			return true
		}
	}
	return false
}

// Create stores a copy of user, enforcing unique emails
func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteFn != nil {
		if err := m.WriteFn(user); err != nil {
			return nil, err
		}
	}
	if m.emailTaken(user.Email, 0) {
		return nil, domain.ErrEmailAlreadyExists
	}
	created := *user
	created.ID = m.NextID
	m.NextID++
	m.Users[created.ID] = &created
	out := created
	return &out, nil
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if u, ok := m.Users[id]; ok {
		out := *u
		return &out, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByEmail retrieves a user by email
func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for _, u := range m.Users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// List returns users matching filter ordered by id
func (m *MockUserRepository) List(ctx context.Context, filter domain.UserFilter) ([]*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	users := make([]*domain.User, 0)
	for _, u := range m.Users {
		if filter.ID != nil && u.ID != *filter.ID {
			continue
		}
		if filter.Email != nil && u.Email != *filter.Email {
			continue
		}
		out := *u
		users = append(users, &out)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// UpdateProfile updates name and email
func (m *MockUserRepository) UpdateProfile(ctx context.Context, id int32, name, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.Users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if m.emailTaken(email, id) {
		return nil, domain.ErrEmailAlreadyExists
	}
	u.Name = name
	u.Email = email
	out := *u
	return &out, nil
}

// UpdatePassword replaces the stored hash
func (m *MockUserRepository) UpdatePassword(ctx context.Context, id int32, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.Users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

// MockCategoryRepository is an in-memory implementation of domain.CategoryRepository
// with a unique name constraint.
type MockCategoryRepository struct {
	mu         sync.Mutex
	Categories map[int32]*domain.Category
	NextID     int32
	// BeforeCreate runs before the uniqueness check, outside the lock. Tests
	// use it to force interleavings of concurrent resolves.
	BeforeCreate func(name string)
	GetErr       error
	CreateErr    error
	CreateCalls  int
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		Categories: make(map[int32]*domain.Category),
		NextID:     1,
	}
}

// AddCategory adds a category to the mock repository (helper for tests)
func (m *MockCategoryRepository) AddCategory(category *domain.Category) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if category.ID == 0 {
		category.ID = m.NextID
	}
	if category.ID >= m.NextID {
		m.NextID = category.ID + 1
	}
	m.Categories[category.ID] = category
}

// GetByName retrieves a category by exact name
func (m *MockCategoryRepository) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for _, c := range m.Categories {
		if c.Name == name {
			out := *c
			return &out, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

// Create inserts a category or fails with ErrCategoryAlreadyExists
func (m *MockCategoryRepository) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if m.BeforeCreate != nil {
		m.BeforeCreate(category.Name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls++
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	for _, c := range m.Categories {
		if c.Name == category.Name {
			return nil, domain.ErrCategoryAlreadyExists
		}
	}
	created := *category
	created.ID = m.NextID
	m.NextID++
	m.Categories[created.ID] = &created
	out := created
	return &out, nil
}

// CountByName returns how many categories carry name
func (m *MockCategoryRepository) CountByName(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Categories {
		if c.Name == name {
			n++
		}
	}
	return n
}

// nameOf returns the category name for id, used to emulate the SQL join
func (m *MockCategoryRepository) nameOf(id int32) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.Categories[id]; ok {
		return c.Name
	}
	return ""
}

// MockTransactionRepository is an in-memory implementation of domain.TransactionRepository
type MockTransactionRepository struct {
	mu           sync.Mutex
	Transactions map[int32]*domain.Transaction
	NextID       int32
	Categories   *MockCategoryRepository
	QueryErr     error
	CreateErr    error
	LastQuery    *domain.TransactionQuery
}

// NewMockTransactionRepository creates a repository that joins category names from categories
func NewMockTransactionRepository(categories *MockCategoryRepository) *MockTransactionRepository {
	return &MockTransactionRepository{
		Transactions: make(map[int32]*domain.Transaction),
		NextID:       1,
		Categories:   categories,
	}
}

// AddTransaction adds a transaction to the mock repository (helper for tests)
func (m *MockTransactionRepository) AddTransaction(t *domain.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.ID == 0 {
		t.ID = m.NextID
	}
	if t.ID >= m.NextID {
		m.NextID = t.ID + 1
	}
	m.Transactions[t.ID] = t
}

func (m *MockTransactionRepository) categoryName(id int32) string {
	if m.Categories == nil {
		return ""
	}
	return m.Categories.nameOf(id)
}

// Create stores a new transaction
func (m *MockTransactionRepository) Create(ctx context.Context, data *domain.TransactionWrite) (int32, error) {
	name := m.categoryName(data.CategoryID)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	id := m.NextID
	m.NextID++
	m.Transactions[id] = &domain.Transaction{
		ID:           id,
		UserID:       data.UserID,
		Type:         data.Type,
		Amount:       data.Amount,
		Description:  data.Description,
		CategoryID:   data.CategoryID,
		CategoryName: name,
		Date:         data.Date,
	}
	return id, nil
}

// GetByID retrieves a transaction by id
func (m *MockTransactionRepository) GetByID(ctx context.Context, id int32) (*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.Transactions[id]; ok {
		out := *t
		return &out, nil
	}
	return nil, domain.ErrTransactionNotFound
}

// Update replaces the row matching id and owner
func (m *MockTransactionRepository) Update(ctx context.Context, id int32, data *domain.TransactionWrite) error {
	name := m.categoryName(data.CategoryID)

	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.Transactions[id]
	if !ok || t.UserID != data.UserID {
		return domain.ErrTransactionNotFound
	}
	t.Type = data.Type
	t.Amount = data.Amount
	t.Description = data.Description
	t.CategoryID = data.CategoryID
	t.CategoryName = name
	t.Date = data.Date
	return nil
}

// Delete removes a row, constrained to userID when non-zero
func (m *MockTransactionRepository) Delete(ctx context.Context, id int32, userID int32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.Transactions[id]
	if !ok || (userID != 0 && t.UserID != userID) {
		return domain.ErrTransactionNotFound
	}
	delete(m.Transactions, id)
	return nil
}

// Query emulates the filtered, sorted and limited SELECT
func (m *MockTransactionRepository) Query(ctx context.Context, q domain.TransactionQuery) ([]*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	captured := q
	m.LastQuery = &captured
	if m.QueryErr != nil {
		return nil, m.QueryErr
	}

	result := make([]*domain.Transaction, 0)
	for _, t := range m.Transactions {
		if t.UserID != q.UserID {
			continue
		}
		if q.StartDate != nil && t.Date.Before(*q.StartDate) {
			continue
		}
		if q.EndDate != nil && t.Date.After(*q.EndDate) {
			continue
		}
		if q.Type != nil && t.Type != *q.Type {
			continue
		}
		if q.CategoryName != nil && t.CategoryName != *q.CategoryName {
			continue
		}
		out := *t
		result = append(result, &out)
	}

	desc := q.SortOrder != domain.SortAsc
	sort.SliceStable(result, func(i, j int) bool {
		cmp := compareTransactions(result[i], result[j], q.SortField)
		if cmp == 0 {
			cmp = compareInt32(result[i].ID, result[j].ID)
		}
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})

	if q.Limit > 0 && int(q.Limit) < len(result) {
		result = result[:q.Limit]
	}
	return result, nil
}

func compareTransactions(a, b *domain.Transaction, field domain.SortField) int {
	switch field {
	case domain.SortByAmount:
		return a.Amount.Cmp(b.Amount)
	case domain.SortByType:
		return strings.Compare(string(a.Type), string(b.Type))
	case domain.SortByID:
		return compareInt32(a.ID, b.ID)
	default:
		return a.Date.Compare(b.Date)
	}
}

func compareInt32(a, b int32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	mu     sync.Mutex
	Events []PublishedEvent
}

// PublishedEvent is one captured Publish call
type PublishedEvent struct {
	UserID int32
	Event  websocket.Event
}

// Publish records the event
func (m *MockEventPublisher) Publish(userID int32, event websocket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, PublishedEvent{UserID: userID, Event: event})
}

// Types returns the event type strings in publish order
func (m *MockEventPublisher) Types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, len(m.Events))
	for i, e := range m.Events {
		types[i] = e.Event.Type
	}
	return types
}
