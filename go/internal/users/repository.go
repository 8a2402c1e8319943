package users

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pickpool/pickpool/go/internal/models"
	"github.com/pickpool/pickpool/go/internal/users/db"
)

// Querier defines what the repository needs from the database layer
type Querier interface {
	CreateUser(ctx context.Context, arg db.CreateUserParams) (db.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (db.User, error)
	GetUserByUsername(ctx context.Context, username string) (db.User, error)
	ListUsers(ctx context.Context) ([]db.User, error)
}

// Repository implements user data access operations
type Repository struct {
	queries Querier
}

// NewRepository creates a new users repository
func NewRepository(querier Querier) *Repository {
	return &Repository{
		queries: querier,
	}
}

// CreateUser creates a new pool member
func (r *Repository) CreateUser(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	dbUser, err := r.queries.CreateUser(ctx, db.CreateUserParams{
		ID:          uuid.New(),
		Username:    req.Username,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return r.dbUserToModel(dbUser), nil
}

// GetUser retrieves a member by ID
func (r *Repository) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	dbUser, err := r.queries.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return r.dbUserToModel(dbUser), nil
}

// GetUserByUsername retrieves a member by username
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	dbUser, err := r.queries.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return r.dbUserToModel(dbUser), nil
}

// ListUsers retrieves all pool members ordered by username
func (r *Repository) ListUsers(ctx context.Context) ([]models.User, error) {
	dbUsers, err := r.queries.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]models.User, len(dbUsers))
	for i, dbUser := range dbUsers {
		users[i] = *r.dbUserToModel(dbUser)
	}

	return users, nil
}

func (r *Repository) dbUserToModel(dbUser db.User) *models.User {
	return &models.User{
		ID:          dbUser.ID,
		Username:    dbUser.Username,
		DisplayName: dbUser.DisplayName,
		CreatedAt:   dbUser.CreatedAt,
	}
}
