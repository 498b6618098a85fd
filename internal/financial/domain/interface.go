package domain

//go:generate mockgen -destination=../../mocks/mock_record_store.go -package=mocks github.com/sam7695/secure-asset-management/internal/financial/domain RecordStore
//go:generate mockgen -destination=../../mocks/mock_key_store.go -package=mocks github.com/sam7695/secure-asset-management/internal/financial/domain KeyStore

import "context"

type RecordStore interface {
	// Get returns (nil, nil) when the user has no record.
	Get(ctx context.Context, userID string) (*FinancialRecord, error)
	Create(ctx context.Context, record *FinancialRecord) error
	Update(ctx context.Context, record *FinancialRecord) error
}

// KeyStore persists per-user keypairs. PutIfAbsent is the concurrency
// contract: when several first-time callers race on the same userID,
// exactly one keypair wins and every caller observes the winner.
type KeyStore interface {
	// Get returns (nil, nil) when no keypair exists for the user.
	Get(ctx context.Context, userID string) (*KeyPair, error)
	// PutIfAbsent stores the keypair unless one already exists, and
	// returns whichever keypair ends up stored.
	PutIfAbsent(ctx context.Context, pair *KeyPair) (*KeyPair, error)
}
