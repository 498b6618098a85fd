package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/sam7695/secure-asset-management/internal/auth/domain"
	"github.com/sam7695/secure-asset-management/internal/auth/dto"
	apperrors "github.com/sam7695/secure-asset-management/internal/errors"
)

type UserService struct {
	users  domain.UserStore
	hasher *HashingService
	tokens TokenGenerator
}

func NewUserService(users domain.UserStore, hasher *HashingService, tokens TokenGenerator) *UserService {
	return &UserService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// Register creates a new user with a hashed password. No token is issued
// on registration.
func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*domain.User, error) {
	existing, err := s.users.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrUserExists
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     input.Username,
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and issues a bearer token, persisting it on
// the user record. Overwriting the stored token invalidates any prior
// session: one active session per user.
func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.LoginOutput, error) {
	user, err := s.users.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}

	// Unknown username and wrong password must be indistinguishable to
	// the caller (enumeration resistance).
	if user == nil || !s.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdateToken(ctx, user.ID, &token); err != nil {
		return nil, err
	}

	return &dto.LoginOutput{Token: token, UserID: user.ID}, nil
}

// Logout clears the persisted token. Logging out a user with no active
// token is not an error.
func (s *UserService) Logout(ctx context.Context, userID string) error {
	return s.users.UpdateToken(ctx, userID, nil)
}

// Authenticate resolves the identity behind a raw bearer token and
// enforces revocation: a token that no longer matches the user's stored
// current token is rejected even if its signature and expiry check out.
func (s *UserService) Authenticate(ctx context.Context, rawToken string) (string, error) {
	userID, err := s.tokens.Verify(rawToken)
	if err != nil {
		return "", apperrors.ErrInvalidToken
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	if user == nil || user.CurrentToken == nil || *user.CurrentToken != rawToken {
		return "", apperrors.ErrInvalidToken
	}

	return userID, nil
}
