package user

import (
	"context"
	"fmt"

	"duochat/internal/app/db"
	dbc "duochat/internal/app/db/sqlc"
)

// PostgresStore is the credential store backed by the users table.
type PostgresStore struct {
	q *dbc.Queries
}

// NewPostgresStore wraps the shared query set.
func NewPostgresStore(q *dbc.Queries) *PostgresStore {
	return &PostgresStore{q: q}
}

func fromRow(row dbc.User) *User {
	return &User{
		ID:            db.UUIDString(row.ID),
		FullName:      row.FullName,
		Email:         row.Email,
		PasswordHash:  row.PasswordHash,
		ProfilePicURL: row.ProfilePicUrl.String,
		CreatedAt:     row.CreatedAt.Time,
		UpdatedAt:     row.UpdatedAt.Time,
	}
}

// Create inserts a user in a single statement; the unique email constraint
// decides conflicts, reported as ErrEmailTaken.
func (s *PostgresStore) Create(ctx context.Context, fullName, email, passwordHash string) (*User, error) {
	row, err := s.q.CreateUser(ctx, dbc.CreateUserParams{
		FullName:     fullName,
		Email:        email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return fromRow(row), nil
}

// GetByEmail looks a user up by exact email.
func (s *PostgresStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	row, err := s.q.GetUserByEmail(ctx, email)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return fromRow(row), nil
}

// GetByID looks a user up by id. Malformed ids are reported as ErrNotFound.
func (s *PostgresStore) GetByID(ctx context.Context, id string) (*User, error) {
	uid, err := db.ParseUUID(id)
	if err != nil {
		return nil, ErrNotFound
	}

	row, err := s.q.GetUserByID(ctx, uid)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return fromRow(row), nil
}

// ListExcept returns every user other than id.
func (s *PostgresStore) ListExcept(ctx context.Context, id string) ([]User, error) {
	uid, err := db.ParseUUID(id)
	if err != nil {
		return nil, ErrNotFound
	}

	rows, err := s.q.ListUsersExcept(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]User, 0, len(rows))
	for _, row := range rows {
		users = append(users, *fromRow(row))
	}
	return users, nil
}

// UpdateProfilePic sets the profile picture URL and returns the updated user.
func (s *PostgresStore) UpdateProfilePic(ctx context.Context, id, url string) (*User, error) {
	uid, err := db.ParseUUID(id)
	if err != nil {
		return nil, ErrNotFound
	}

	row, err := s.q.UpdateUserProfilePic(ctx, dbc.UpdateUserProfilePicParams{
		ID:            uid,
		ProfilePicUrl: db.Text(url),
	})
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update profile pic: %w", err)
	}
	return fromRow(row), nil
}
