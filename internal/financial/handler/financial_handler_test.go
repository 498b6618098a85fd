package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	authdomain "github.com/sam7695/secure-asset-management/internal/auth/domain"
	authservice "github.com/sam7695/secure-asset-management/internal/auth/service"
	apperrors "github.com/sam7695/secure-asset-management/internal/errors"
	"github.com/sam7695/secure-asset-management/internal/financial/domain"
	"github.com/sam7695/secure-asset-management/internal/financial/dto"
	"github.com/sam7695/secure-asset-management/internal/financial/handler"
	"github.com/sam7695/secure-asset-management/internal/financial/repository/memory"
	"github.com/sam7695/secure-asset-management/internal/financial/service"
	"github.com/sam7695/secure-asset-management/internal/mocks"
)

const bearerToken = "token-abc"

type testApp struct {
	app        *fiber.App
	records    *mocks.MockRecordStore
	encryption *service.EncryptionService
}

// newFinancialApp wires the financial routes behind a passing auth gate:
// the mock token generator resolves bearerToken to user-1, whose stored
// current token matches.
func newFinancialApp(t *testing.T) *testApp {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	current := bearerToken
	user := &authdomain.User{ID: "user-1", Username: "alice", CurrentToken: &current}

	mockUsers := mocks.NewMockUserStore(ctrl)
	mockUsers.EXPECT().GetByID(gomock.Any(), "user-1").Return(user, nil).AnyTimes()
	mockTokens := mocks.NewMockTokenGenerator(ctrl)
	mockTokens.EXPECT().Verify(bearerToken).Return("user-1", nil).AnyTimes()

	hasher := authservice.NewHashingService(bcrypt.MinCost)
	userService := authservice.NewUserService(mockUsers, hasher, mockTokens)

	mockRecords := mocks.NewMockRecordStore(ctrl)
	encryption := service.NewEncryptionService(memory.NewKeyStore(), service.MinKeyBits)
	financialService := service.NewFinancialService(mockRecords, encryption)

	app := fiber.New()
	handler.RegisterRoutes(app, handler.NewFinancialHandler(financialService), userService)

	return &testApp{app: app, records: mockRecords, encryption: encryption}
}

func (ta *testApp) request(t *testing.T, method, path string, body any, authorized bool) (int, string) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorized {
		req.Header.Set("Authorization", "Bearer "+bearerToken)
	}

	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(raw)
}

func createInput() dto.FinancialInput {
	return dto.FinancialInput{Data: dto.FinancialPayload{"account": "A1", "balance": float64(100)}}
}

func TestFinancialHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ta := newFinancialApp(t)
		ta.records.EXPECT().Get(gomock.Any(), "user-1").Return(nil, nil)
		ta.records.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		status, body := ta.request(t, http.MethodPost, "/financial/create-financial-data", createInput(), true)

		assert.Equal(t, fiber.StatusCreated, status)
		assert.Contains(t, body, "financial data created successfully")
	})

	t.Run("unauthorized without token", func(t *testing.T) {
		ta := newFinancialApp(t)

		status, _ := ta.request(t, http.MethodPost, "/financial/create-financial-data", createInput(), false)

		assert.Equal(t, fiber.StatusUnauthorized, status)
	})

	t.Run("invalid payload", func(t *testing.T) {
		ta := newFinancialApp(t)

		input := dto.FinancialInput{Data: dto.FinancialPayload{"balance": float64(1)}}
		status, body := ta.request(t, http.MethodPost, "/financial/create-financial-data", input, true)

		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Contains(t, body, "account and balance")
	})

	t.Run("conflict on existing record", func(t *testing.T) {
		ta := newFinancialApp(t)
		existing := &domain.FinancialRecord{UserID: "user-1", Data: "ciphertext"}
		ta.records.EXPECT().Get(gomock.Any(), "user-1").Return(existing, nil)

		status, _ := ta.request(t, http.MethodPost, "/financial/create-financial-data", createInput(), true)

		assert.Equal(t, fiber.StatusConflict, status)
	})

	t.Run("oversize payload", func(t *testing.T) {
		ta := newFinancialApp(t)
		ta.records.EXPECT().Get(gomock.Any(), "user-1").Return(nil, nil)

		big := make([]byte, 400)
		for i := range big {
			big[i] = 'x'
		}
		input := dto.FinancialInput{Data: dto.FinancialPayload{
			"account": "A1",
			"balance": float64(1),
			"notes":   string(big),
		}}

		status, _ := ta.request(t, http.MethodPost, "/financial/create-financial-data", input, true)

		assert.Equal(t, fiber.StatusRequestEntityTooLarge, status)
	})
}

func TestFinancialHandler_Update(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ta := newFinancialApp(t)
		_, err := ta.encryption.GetOrCreateKeyPair(context.Background(), "user-1")
		require.NoError(t, err)

		existing := &domain.FinancialRecord{UserID: "user-1", Data: "old"}
		ta.records.EXPECT().Get(gomock.Any(), "user-1").Return(existing, nil)
		ta.records.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		status, body := ta.request(t, http.MethodPut, "/financial/update-financial-data", createInput(), true)

		assert.Equal(t, fiber.StatusOK, status)
		assert.Contains(t, body, "financial data updated successfully")
	})

	t.Run("no keypair", func(t *testing.T) {
		ta := newFinancialApp(t)

		status, _ := ta.request(t, http.MethodPut, "/financial/update-financial-data", createInput(), true)

		assert.Equal(t, fiber.StatusNotFound, status)
	})

	t.Run("no record", func(t *testing.T) {
		ta := newFinancialApp(t)
		_, err := ta.encryption.GetOrCreateKeyPair(context.Background(), "user-1")
		require.NoError(t, err)

		ta.records.EXPECT().Get(gomock.Any(), "user-1").Return(nil, nil)

		status, _ := ta.request(t, http.MethodPut, "/financial/update-financial-data", createInput(), true)

		assert.Equal(t, fiber.StatusNotFound, status)
	})
}

func TestFinancialHandler_Read(t *testing.T) {
	t.Run("round-trips created data", func(t *testing.T) {
		ta := newFinancialApp(t)

		var stored *domain.FinancialRecord
		ta.records.EXPECT().Get(gomock.Any(), "user-1").Return(nil, nil)
		ta.records.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, record *domain.FinancialRecord) error {
				stored = record
				return nil
			})

		status, _ := ta.request(t, http.MethodPost, "/financial/create-financial-data", createInput(), true)
		require.Equal(t, fiber.StatusCreated, status)

		ta.records.EXPECT().Get(gomock.Any(), "user-1").Return(stored, nil)

		status, body := ta.request(t, http.MethodGet, "/financial/financial-data", nil, true)

		assert.Equal(t, fiber.StatusOK, status)

		var out dto.FinancialOutput
		require.NoError(t, json.Unmarshal([]byte(body), &out))
		assert.Equal(t, "A1", out.FinancialData["account"])
		assert.Equal(t, float64(100), out.FinancialData["balance"])
	})

	t.Run("not found", func(t *testing.T) {
		ta := newFinancialApp(t)
		ta.records.EXPECT().Get(gomock.Any(), "user-1").Return(nil, nil)

		status, body := ta.request(t, http.MethodGet, "/financial/financial-data", nil, true)

		assert.Equal(t, fiber.StatusNotFound, status)
		assert.Contains(t, body, "financial data not found")
	})

	t.Run("decryption failure stays opaque", func(t *testing.T) {
		ta := newFinancialApp(t)
		_, err := ta.encryption.GetOrCreateKeyPair(context.Background(), "user-1")
		require.NoError(t, err)

		corrupt := &domain.FinancialRecord{UserID: "user-1", Data: "aGVsbG8gd29ybGQ="}
		ta.records.EXPECT().Get(gomock.Any(), "user-1").Return(corrupt, nil)

		status, body := ta.request(t, http.MethodGet, "/financial/financial-data", nil, true)

		assert.Equal(t, fiber.StatusInternalServerError, status)
		assert.Contains(t, body, "internal server error")
	})
}

func TestFinancialHandler_UpstreamFailureStaysOpaque(t *testing.T) {
	ta := newFinancialApp(t)
	ta.records.EXPECT().Get(gomock.Any(), "user-1").Return(nil, apperrors.ErrUpstreamUnavailable)

	status, body := ta.request(t, http.MethodGet, "/financial/financial-data", nil, true)

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Contains(t, body, "internal server error")
	assert.NotContains(t, body, "data store")
}
