package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/dukerupert/tabletab/internal/auth"
	"github.com/dukerupert/tabletab/internal/domain"
	"github.com/dukerupert/tabletab/internal/telemetry"
)

// Session is the result of a successful login.
type Session struct {
	Token     string       `json:"access_token"`
	TokenType string       `json:"token_type"`
	ExpiresIn int64        `json:"expires_in"`
	User      *domain.User `json:"user"`
}

// UserService provides staff account operations
type UserService interface {
	// Authenticate verifies username/password and issues a bearer token
	Authenticate(ctx context.Context, username, password string) (*Session, error)

	// CreateUser adds a staff account with a hashed password
	CreateUser(ctx context.Context, username, fullName, password string, role domain.Role) (*domain.User, error)
}

type userService struct {
	users   domain.UserRepository
	tokens  *auth.TokenIssuer
	metrics *telemetry.BillingMetrics
	gate    *Gate
	logger  *slog.Logger
}

// NewUserService creates a new UserService instance
func NewUserService(users domain.UserRepository, tokens *auth.TokenIssuer, metrics *telemetry.BillingMetrics, gate *Gate, logger *slog.Logger) UserService {
	if logger == nil {
		logger = slog.Default()
	}
	if gate == nil {
		gate = NewGate(metrics, logger)
	}
	return &userService{users: users, tokens: tokens, metrics: metrics, gate: gate, logger: logger}
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (*Session, error) {
	username = strings.TrimSpace(username)

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if domain.ErrorCode(err) == domain.ENOTFOUND {
			s.metrics.LoginRejected("user_not_found")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := auth.VerifyPassword(password, user.PasswordHash); err != nil {
		s.metrics.LoginRejected("invalid_password")
		s.logger.Info("login failed", "username", username)
		return nil, ErrInvalidCredentials
	}
	if !user.Active {
		s.metrics.LoginRejected("inactive")
		return nil, ErrAccountInactive
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, domain.Internal(err, "service.user.authenticate", "Failed to issue token")
	}

	s.metrics.Login(string(user.Role))
	s.logger.Info("login succeeded", "username", username, "role", user.Role)
	return &Session{
		Token:     token,
		TokenType: "bearer",
		ExpiresIn: int64(s.tokens.TTL().Seconds()),
		User:      user,
	}, nil
}

func (s *userService) CreateUser(ctx context.Context, username, fullName, password string, role domain.Role) (*domain.User, error) {
	const op = "service.user.create"

	if err := s.gate.Authorize(ctx, op, auth.ManageUsers); err != nil {
		return nil, err
	}

	username = strings.TrimSpace(username)
	var verr error
	if username == "" {
		verr = domain.AddFieldError(verr, "username", "is required")
	}
	if !role.Valid() {
		verr = domain.AddFieldError(verr, "role", "is not a known role")
	}
	hash, err := auth.HashPassword(password)
	if errors.Is(err, auth.ErrPasswordTooShort) {
		verr = domain.AddFieldError(verr, "password", err.Error())
	} else if err != nil {
		return nil, domain.Internal(err, op, "Failed to hash password")
	}
	if verr != nil {
		return nil, verr
	}

	user, err := s.users.Create(ctx, domain.NewUserParams{
		Username:     username,
		FullName:     strings.TrimSpace(fullName),
		Role:         role,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("user created", "username", user.Username, "role", user.Role)
	return user, nil
}
