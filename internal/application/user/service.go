// Package user provides the application layer for accounts and
// authentication, implementing the inbound AuthService port.
package user

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pantrywise/v1/internal/domain/user"
	"github.com/pantrywise/v1/internal/ports/inbound"
	"github.com/pantrywise/v1/internal/ports/outbound"
	"github.com/pantrywise/v1/pkg/errors"
)

// AuthService implements the account use cases
type AuthService struct {
	userRepo outbound.UserRepository
	tokens   outbound.TokenService
	logger   *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo outbound.UserRepository,
	tokens outbound.TokenService,
	logger *zap.Logger,
) inbound.AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger.Named("auth-service"),
	}
}

// Register creates a new account
func (s *AuthService) Register(ctx context.Context, cmd inbound.RegisterCommand) (*inbound.UserDTO, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, errors.NewDatabaseError("check email existence", err)
	}
	if exists {
		return nil, errors.NewEmailAlreadyExistsError(cmd.Email)
	}

	entity, err := user.NewUser(cmd.Email, cmd.Name, cmd.Password)
	if err != nil {
		return nil, errors.NewValidationError(err.Error()).WithCause(err)
	}

	if err := s.userRepo.Create(ctx, entity); err != nil {
		return nil, errors.NewDatabaseError("create user", err)
	}

	s.logger.Info("User registered",
		zap.String("user_id", entity.ID().String()),
		zap.String("email", entity.Email()),
	)

	dto := entityToDTO(entity)
	return &dto, nil
}

// Login verifies credentials and issues an access token
func (s *AuthService) Login(ctx context.Context, cmd inbound.LoginCommand) (*inbound.AuthTokenDTO, error) {
	entity, err := s.userRepo.FindByEmail(ctx, cmd.Email)
	if err != nil {
		if err == user.ErrUserNotFound {
			return nil, errors.NewInvalidCredentialsError()
		}
		return nil, errors.NewDatabaseError("find user by email", err)
	}

	if !entity.CheckPassword(cmd.Password) {
		s.logger.Warn("Failed login attempt", zap.String("email", cmd.Email))
		return nil, errors.NewInvalidCredentialsError()
	}

	token, expiresAt, err := s.tokens.Issue(entity.ID(), entity.Email())
	if err != nil {
		return nil, errors.NewInternalError("failed to issue access token").WithCause(err)
	}

	s.logger.Info("User logged in", zap.String("user_id", entity.ID().String()))

	return &inbound.AuthTokenDTO{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User:        entityToDTO(entity),
	}, nil
}

// GetUser returns the account behind a user id
func (s *AuthService) GetUser(ctx context.Context, userID uuid.UUID) (*inbound.UserDTO, error) {
	entity, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == user.ErrUserNotFound {
			return nil, errors.NewUserNotFoundError(userID.String())
		}
		return nil, errors.NewDatabaseError("find user", err)
	}

	dto := entityToDTO(entity)
	return &dto, nil
}

func entityToDTO(u *user.User) inbound.UserDTO {
	return inbound.UserDTO{
		ID:        u.ID(),
		Email:     u.Email(),
		Name:      u.Name(),
		CreatedAt: u.CreatedAt(),
	}
}
