package service

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/ashecone/expense-tracker-api/internal/domain"
)

// AccountService handles registration, authentication and profile management
type AccountService struct {
	userRepo domain.UserRepository
	hasher   PasswordHasher

	// dummyHash is compared against on unknown emails so both sign-in
	// failures take the same time
	dummyHashOnce sync.Once
	dummyHash     string
}

// NewAccountService creates a new AccountService
func NewAccountService(userRepo domain.UserRepository, hasher PasswordHasher) *AccountService {
	return &AccountService{userRepo: userRepo, hasher: hasher}
}

// SignUp registers a user and returns it without the password hash
func (s *AccountService) SignUp(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if email == "" {
		return nil, domain.ErrEmailRequired
	}
	if err := domain.ValidateProfileLengths(name, email); err != nil {
		return nil, err
	}
	if strings.TrimSpace(password) == "" {
		return nil, domain.ErrPasswordRequired
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.userRepo.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// SignIn authenticates by email and password. Unknown emails and wrong
// passwords both return ErrInvalidCredentials.
func (s *AccountService) SignIn(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, domain.ErrEmailRequired
	}
	if strings.TrimSpace(password) == "" {
		return nil, domain.ErrPasswordRequired
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsNotFoundError(err) {
			s.burnComparison(password)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := s.hasher.Verify(user.PasswordHash, password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

func (s *AccountService) burnComparison(password string) {
	s.dummyHashOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash("timing-equalizer-0")
	})
	if s.dummyHash != "" {
		_, _ = s.hasher.Verify(s.dummyHash, password)
	}
}

// UpdateProfile replaces a user's name and email
func (s *AccountService) UpdateProfile(ctx context.Context, userID int32, name, email string) (*domain.User, error) {
	if userID <= 0 {
		return nil, domain.ErrUserNotFound
	}
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if email == "" {
		return nil, domain.ErrEmailRequired
	}
	if err := domain.ValidateProfileLengths(name, email); err != nil {
		return nil, err
	}
	if !domain.ValidEmail(email) {
		return nil, domain.ErrInvalidEmail
	}

	return s.userRepo.UpdateProfile(ctx, userID, name, email)
}

// ChangePassword stores a new password after checking the strength policy.
// A non-empty currentPassword must match the stored hash first.
func (s *AccountService) ChangePassword(ctx context.Context, userID int32, newPassword, currentPassword string) error {
	if userID <= 0 {
		return domain.ErrUserNotFound
	}
	if err := domain.ValidatePasswordStrength(newPassword); err != nil {
		return err
	}

	if currentPassword != "" {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		ok, err := s.hasher.Verify(user.PasswordHash, currentPassword)
		if err != nil {
			return fmt.Errorf("verify password: %w", err)
		}
		if !ok {
			return domain.ErrCurrentPasswordIncorrect
		}
	}

	hashed, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.userRepo.UpdatePassword(ctx, userID, hashed)
}

// ListUsers returns users matching the allow-listed filter. Keys outside
// domain.UserFilterFields are rejected with ErrUnsupportedFilter.
func (s *AccountService) ListUsers(ctx context.Context, params map[string]string) ([]*domain.User, error) {
	var filter domain.UserFilter
	for key, value := range params {
		if !slices.Contains(domain.UserFilterFields, key) {
			return nil, fmt.Errorf("%w: %q, allowed: %s", domain.ErrUnsupportedFilter, key, strings.Join(domain.UserFilterFields, ", "))
		}
		switch key {
		case "id":
			id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 32)
			if err != nil || id <= 0 {
				return nil, fmt.Errorf("%w: id must be a positive integer", domain.ErrInvalidInput)
			}
			id32 := int32(id)
			filter.ID = &id32
		case "email":
			email := strings.TrimSpace(value)
			filter.Email = &email
		}
	}
	return s.userRepo.List(ctx, filter)
}

// GetUser returns the user with id
func (s *AccountService) GetUser(ctx context.Context, id int32) (*domain.User, error) {
	if id <= 0 {
		return nil, domain.ErrUserNotFound
	}
	return s.userRepo.GetByID(ctx, id)
}
