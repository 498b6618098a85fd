package service

import (
	"context"
	"encoding/json"

	"github.com/sam7695/secure-asset-management/internal/financial/domain"
	"github.com/sam7695/secure-asset-management/internal/financial/dto"
	apperrors "github.com/sam7695/secure-asset-management/internal/errors"
)

type FinancialService struct {
	records    domain.RecordStore
	encryption *EncryptionService
}

func NewFinancialService(records domain.RecordStore, encryption *EncryptionService) *FinancialService {
	return &FinancialService{
		records:    records,
		encryption: encryption,
	}
}

// Create encrypts and stores a user's first financial record. It is not
// an upsert: a second create fails with ErrConflict, overwriting is
// Update's job.
func (s *FinancialService) Create(ctx context.Context, userID string, payload dto.FinancialPayload) error {
	if err := payload.Validate(); err != nil {
		return err
	}

	existing, err := s.records.Get(ctx, userID)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperrors.ErrConflict
	}

	pair, err := s.encryption.GetOrCreateKeyPair(ctx, userID)
	if err != nil {
		return err
	}

	encrypted, err := s.encryptPayload(payload, pair)
	if err != nil {
		return err
	}

	return s.records.Create(ctx, &domain.FinancialRecord{UserID: userID, Data: encrypted})
}

// Update overwrites the user's existing record. It requires both a
// keypair and a record to already exist.
func (s *FinancialService) Update(ctx context.Context, userID string, payload dto.FinancialPayload) error {
	if err := payload.Validate(); err != nil {
		return err
	}

	pair, err := s.encryption.GetKeyPair(ctx, userID)
	if err != nil {
		return err
	}

	existing, err := s.records.Get(ctx, userID)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperrors.ErrNotFound
	}

	encrypted, err := s.encryptPayload(payload, pair)
	if err != nil {
		return err
	}

	return s.records.Update(ctx, &domain.FinancialRecord{UserID: userID, Data: encrypted})
}

// Read fetches and decrypts the user's record back into the original
// document.
func (s *FinancialService) Read(ctx context.Context, userID string) (dto.FinancialPayload, error) {
	record, err := s.records.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperrors.ErrNotFound
	}

	pair, err := s.encryption.GetKeyPair(ctx, userID)
	if err != nil {
		return nil, err
	}

	plaintext, err := s.encryption.Decrypt(record.Data, pair.PrivateKey)
	if err != nil {
		return nil, err
	}

	var payload dto.FinancialPayload
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return nil, apperrors.ErrDecryptionFailed
	}

	return payload, nil
}

func (s *FinancialService) encryptPayload(payload dto.FinancialPayload, pair *domain.KeyPair) (string, error) {
	plaintext, err := json.Marshal(payload)
	if err != nil {
		return "", apperrors.ErrInvalidPayload
	}

	return s.encryption.Encrypt(plaintext, pair.PublicKey)
}
