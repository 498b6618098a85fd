package domain

//go:generate mockgen -destination=../../mocks/mock_user_store.go -package=mocks github.com/sam7695/secure-asset-management/internal/auth/domain UserStore

import "context"

type UserStore interface {
	// GetByUsername returns (nil, nil) when no user has the given username.
	GetByUsername(ctx context.Context, username string) (*User, error)
	// GetByID returns (nil, nil) when the user does not exist.
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, user *User) error
	// UpdateToken sets the user's current token; nil clears it.
	UpdateToken(ctx context.Context, userID string, token *string) error
}
