package rest

import (
	"context"
	"errors"
	"net/url"

	"github.com/sam7695/secure-asset-management/internal/auth/domain"
	apperrors "github.com/sam7695/secure-asset-management/internal/errors"
	"github.com/sam7695/secure-asset-management/internal/restapi"
)

// UserStore reads and writes user records through the external data API.
type UserStore struct {
	api *restapi.Client
}

func NewUserStore(api *restapi.Client) *UserStore {
	return &UserStore{api: api}
}

// userRecord is the wire shape of a user on the data API. The hash
// travels in the "password" field, the current token in "token".
type userRecord struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Password string  `json:"password"`
	Token    *string `json:"token"`
}

func (r userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Username:     r.Username,
		PasswordHash: r.Password,
		CurrentToken: r.Token,
	}
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var records []userRecord
	err := s.api.Get(ctx, "/users?username="+url.QueryEscape(username), &records)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	return records[0].toDomain(), nil
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var record userRecord
	err := s.api.Get(ctx, "/users/"+url.PathEscape(id), &record)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return record.toDomain(), nil
}

func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	record := userRecord{
		ID:       user.ID,
		Username: user.Username,
		Password: user.PasswordHash,
		Token:    user.CurrentToken,
	}

	return s.api.Post(ctx, "/users", record, nil)
}

func (s *UserStore) UpdateToken(ctx context.Context, userID string, token *string) error {
	body := map[string]*string{"token": token}

	return s.api.Patch(ctx, "/users/"+url.PathEscape(userID), body, nil)
}
