package postgres

import (
	"context"
	"errors"

	"github.com/dukerupert/tabletab/internal/domain"
	"github.com/dukerupert/tabletab/internal/repository"
	"github.com/jackc/pgx/v5"
)

type UserRepository struct {
	repo repository.Querier
}

var _ domain.UserRepository = (*UserRepository)(nil)

func NewUserRepository(repo repository.Querier) *UserRepository {
	return &UserRepository{repo: repo}
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	const op = "postgres.user.get"

	row, err := r.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound(op, "user", username)
		}
		return nil, domain.Internal(err, op, "failed to load user")
	}
	u := mapUser(row)
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, params domain.NewUserParams) (*domain.User, error) {
	const op = "postgres.user.create"

	row, err := r.repo.CreateUser(ctx, repository.CreateUserParams{
		Username:     params.Username,
		FullName:     params.FullName,
		Role:         string(params.Role),
		PasswordHash: params.PasswordHash,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.Conflict(op, "username already exists")
		}
		return nil, domain.Internal(err, op, "failed to create user")
	}
	u := mapUser(row)
	return &u, nil
}

func (r *UserRepository) CountByRole(ctx context.Context, role domain.Role) (int, error) {
	n, err := r.repo.CountActiveUsersByRole(ctx, string(role))
	if err != nil {
		return 0, domain.Internal(err, "postgres.user.count", "failed to count users")
	}
	return int(n), nil
}

func mapUser(row repository.User) domain.User {
	return domain.User{
		ID:           row.ID,
		Username:     row.Username,
		FullName:     row.FullName,
		Role:         domain.Role(row.Role),
		PasswordHash: row.PasswordHash,
		Active:       row.IsActive,
		CreatedAt:    row.CreatedAt.Time,
	}
}
