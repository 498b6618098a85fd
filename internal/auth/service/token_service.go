package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/sam7695/secure-asset-management/internal/auth/service TokenGenerator

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/sam7695/secure-asset-management/internal/errors"
)

type TokenGenerator interface {
	Issue(userID string) (string, error)
	Verify(token string) (string, error)
}

// TokenService signs and verifies HS256 bearer tokens carrying a user
// identity claim. It deliberately knows nothing about revocation; the
// auth workflow cross-checks the stored current token for that.
type TokenService struct {
	Secret []byte
	Expiry time.Duration
}

type TokenClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

func NewTokenService(secret string, expiryMinutes int) *TokenService {
	return &TokenService{
		Secret: []byte(secret),
		Expiry: time.Duration(expiryMinutes) * time.Minute,
	}
}

func (ts *TokenService) Issue(userID string) (string, error) {
	now := time.Now()

	claims := TokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.Expiry)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ts.Secret)
}

// Verify returns the userId claim of a structurally valid, correctly
// signed, unexpired token. Any other outcome is ErrInvalidToken.
func (ts *TokenService) Verify(tokenString string) (string, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrInvalidToken
		}
		return ts.Secret, nil
	})

	if err != nil || !token.Valid {
		return "", apperrors.ErrInvalidToken
	}

	return claims.UserID, nil
}
