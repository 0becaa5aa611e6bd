package repository

import (
	"context"
)

const getUserByUsername = `-- name: GetUserByUsername :one
SELECT id, username, full_name, role, password_hash, is_active, created_at FROM users
WHERE username = $1
`

func (q *Queries) GetUserByUsername(ctx context.Context, username string) (User, error) {
	row := q.db.QueryRow(ctx, getUserByUsername, username)
	var i User
	err := row.Scan(
		&i.ID,
		&i.Username,
		&i.FullName,
		&i.Role,
		&i.PasswordHash,
		&i.IsActive,
		&i.CreatedAt,
	)
	return i, err
}

const createUser = `-- name: CreateUser :one
INSERT INTO users (username, full_name, role, password_hash)
VALUES ($1, $2, $3, $4)
RETURNING id, username, full_name, role, password_hash, is_active, created_at
`

type CreateUserParams struct {
	Username     string `json:"username"`
	FullName     string `json:"full_name"`
	Role         string `json:"role"`
	PasswordHash string `json:"password_hash"`
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRow(ctx, createUser,
		arg.Username,
		arg.FullName,
		arg.Role,
		arg.PasswordHash,
	)
	var i User
	err := row.Scan(
		&i.ID,
		&i.Username,
		&i.FullName,
		&i.Role,
		&i.PasswordHash,
		&i.IsActive,
		&i.CreatedAt,
	)
	return i, err
}

const countActiveUsersByRole = `-- name: CountActiveUsersByRole :one
SELECT count(*)::bigint FROM users
WHERE role = $1 AND is_active
`

func (q *Queries) CountActiveUsersByRole(ctx context.Context, role string) (int64, error) {
	row := q.db.QueryRow(ctx, countActiveUsersByRole, role)
	var count int64
	err := row.Scan(&count)
	return count, err
}
