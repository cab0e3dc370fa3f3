package postgres

import (
	"context"
	"errors"

	"github.com/ashecone/expense-tracker-api/db/sqlc"
	"github.com/ashecone/expense-tracker-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository implements domain.UserRepository using PostgreSQL
type UserRepository struct {
	queries *sqlc.Queries
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{queries: sqlc.New(pool)}
}

// Create inserts a user whose password is already hashed
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	created, err := r.queries.CreateUser(ctx, sqlc.CreateUserParams{
		Name:     user.Name,
		Email:    user.Email,
		Password: user.PasswordHash,
	})
	if err != nil {
		if isPgUniqueViolation(err) {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, err
	}
	return sqlcUserToDomain(created), nil
}

// GetByID retrieves a user by id
func (r *UserRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	user, err := r.queries.GetUserByID(ctx, id)
	if err != nil {
		return nil, userLookupError(err)
	}
	return sqlcUserToDomain(user), nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := r.queries.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, userLookupError(err)
	}
	return sqlcUserToDomain(user), nil
}

// List returns users matching the allow-listed equality filter
func (r *UserRepository) List(ctx context.Context, filter domain.UserFilter) ([]*domain.User, error) {
	rows, err := r.queries.ListUsers(ctx, userFilterToParams(filter))
	if err != nil {
		return nil, err
	}

	users := make([]*domain.User, len(rows))
	for i, row := range rows {
		users[i] = sqlcUserToDomain(row)
	}
	return users, nil
}

// UpdateProfile replaces a user's name and email
func (r *UserRepository) UpdateProfile(ctx context.Context, id int32, name, email string) (*domain.User, error) {
	updated, err := r.queries.UpdateUserProfile(ctx, sqlc.UpdateUserProfileParams{
		IDUser: id,
		Name:   name,
		Email:  email,
	})
	if err != nil {
		if isPgUniqueViolation(err) {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, userLookupError(err)
	}
	return sqlcUserToDomain(updated), nil
}

// UpdatePassword stores a new password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, id int32, passwordHash string) error {
	affected, err := r.queries.UpdateUserPassword(ctx, sqlc.UpdateUserPasswordParams{
		IDUser:   id,
		Password: passwordHash,
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func userLookupError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrUserNotFound
	}
	return err
}

// userFilterToParams maps unset filter fields to NULL, which the query treats as "any"
func userFilterToParams(filter domain.UserFilter) sqlc.ListUsersParams {
	var params sqlc.ListUsersParams
	if filter.ID != nil {
		params.ID = pgtype.Int4{Int32: *filter.ID, Valid: true}
	}
	if filter.Email != nil {
		params.Email = pgtype.Text{String: *filter.Email, Valid: true}
	}
	return params
}

func sqlcUserToDomain(u sqlc.User) *domain.User {
	return &domain.User{
		ID:           u.IDUser,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.Password,
	}
}
