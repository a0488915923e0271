package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lactec/intranet/internal/auth"
	"github.com/lactec/intranet/internal/config"
	"github.com/lactec/intranet/internal/domain"
	"github.com/lactec/intranet/internal/repository"
	apperrors "github.com/lactec/intranet/pkg/util/errorutil"
)

// GroupLister lists the groups of a user.
type GroupLister interface {
	GroupsFor(ctx context.Context, userID string) ([]string, error)
}

// AuthService coordinates accounts, login and principal resolution.
type AuthService struct {
	users      repository.UserRepository
	groups     GroupLister
	tokenMgr   *auth.TokenManager
	bcryptCost int
	logger     *zap.Logger
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo repository.UserRepository
	Groups   GroupLister
	Logger   *zap.Logger
}

// CreateUserInput describes a new account.
type CreateUserInput struct {
	Username string
	Password string
	Roles    []domain.Role
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:      deps.UserRepo,
		groups:     deps.Groups,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		bcryptCost: cfg.BcryptCost,
		logger:     logger,
	}
}

// TokenManager exposes the token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// CreateUser creates a new account.
func (s *AuthService) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, apperrors.NewValidationError("username and password required", nil)
	}
	for _, role := range input.Roles {
		if !role.Valid() {
			return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": string(role)})
		}
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		Roles:        input.Roles,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, apperrors.NewConflict("username already exists", map[string]any{"username": username})
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// EnsureUser creates the account unless the username already exists.
func (s *AuthService) EnsureUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	existing, err := s.users.GetByUsername(ctx, input.Username)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.MapError(err)
	}
	user, err := s.CreateUser(ctx, input)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user provisioned", zap.String("username", user.Username))
	return user, nil
}

// Login verifies credentials and issues an access token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if !user.Active {
		return nil, "", time.Time{}, apperrors.NewForbidden("account disabled")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, exp, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return user, token, exp, nil
}

// ResolvePrincipal loads the principal a user acts as.
func (s *AuthService) ResolvePrincipal(ctx context.Context, userID string) (*domain.Principal, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return nil, apperrors.MapError(err)
	}
	if !user.Active {
		return nil, apperrors.NewForbidden("account disabled")
	}
	groups, err := s.groups.GroupsFor(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	roles := append([]domain.Role{domain.RoleAuthenticated}, user.Roles...)
	return &domain.Principal{ID: user.ID, Roles: roles, Groups: groups}, nil
}
