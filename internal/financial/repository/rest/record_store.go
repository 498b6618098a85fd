package rest

import (
	"context"
	"errors"
	"net/url"

	apperrors "github.com/sam7695/secure-asset-management/internal/errors"
	"github.com/sam7695/secure-asset-management/internal/financial/domain"
	"github.com/sam7695/secure-asset-management/internal/restapi"
)

// RecordStore reads and writes encrypted financial records through the
// external data API. One record per user, keyed by userId.
type RecordStore struct {
	api *restapi.Client
}

func NewRecordStore(api *restapi.Client) *RecordStore {
	return &RecordStore{api: api}
}

type financialRecord struct {
	UserID string `json:"userId"`
	Data   string `json:"data"`
}

func (s *RecordStore) Get(ctx context.Context, userID string) (*domain.FinancialRecord, error) {
	var record financialRecord
	err := s.api.Get(ctx, "/financialData/"+url.PathEscape(userID), &record)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &domain.FinancialRecord{UserID: record.UserID, Data: record.Data}, nil
}

func (s *RecordStore) Create(ctx context.Context, record *domain.FinancialRecord) error {
	body := financialRecord{UserID: record.UserID, Data: record.Data}

	return s.api.Post(ctx, "/financialData", body, nil)
}

func (s *RecordStore) Update(ctx context.Context, record *domain.FinancialRecord) error {
	body := financialRecord{UserID: record.UserID, Data: record.Data}

	return s.api.Put(ctx, "/financialData/"+url.PathEscape(record.UserID), body, nil)
}
