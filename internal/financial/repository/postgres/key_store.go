package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sam7695/secure-asset-management/internal/financial/domain"
)

// DB is the subset of pgxpool.Pool the key store needs; pgxmock
// satisfies it in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// KeyStore persists keypairs in Postgres so a process restart cannot
// orphan encrypted records. Creation races resolve through an atomic
// compare-and-insert on the user_id primary key.
type KeyStore struct {
	db DB
}

func NewKeyStore(db DB) *KeyStore {
	return &KeyStore{db: db}
}

func (s *KeyStore) Get(ctx context.Context, userID string) (*domain.KeyPair, error) {
	query := `
		SELECT public_key, private_key
		FROM financial_keypairs
		WHERE user_id = $1;
	`
	pair := domain.KeyPair{UserID: userID}
	err := s.db.QueryRow(ctx, query, userID).Scan(&pair.PublicKey, &pair.PrivateKey)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get keypair: %w", err)
	}

	return &pair, nil
}

func (s *KeyStore) PutIfAbsent(ctx context.Context, pair *domain.KeyPair) (*domain.KeyPair, error) {
	query := `
		INSERT INTO financial_keypairs (user_id, public_key, private_key, created_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (user_id) DO NOTHING;
	`
	tag, err := s.db.Exec(ctx, query, pair.UserID, pair.PublicKey, pair.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to store keypair: %w", err)
	}

	if tag.RowsAffected() == 1 {
		return pair, nil
	}

	// Lost the insert race: a concurrent caller stored theirs first.
	stored, err := s.Get(ctx, pair.UserID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("keypair for user %s vanished after conflicting insert", pair.UserID)
	}

	return stored, nil
}
