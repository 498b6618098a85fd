package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sam7695/secure-asset-management/internal/auth/domain"
	"github.com/sam7695/secure-asset-management/internal/auth/dto"
	"github.com/sam7695/secure-asset-management/internal/auth/handler"
	"github.com/sam7695/secure-asset-management/internal/auth/service"
	apperrors "github.com/sam7695/secure-asset-management/internal/errors"
	"github.com/sam7695/secure-asset-management/internal/mocks"
)

func newAuthApp(t *testing.T) (*fiber.App, *mocks.MockUserStore, *mocks.MockTokenGenerator) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockStore := mocks.NewMockUserStore(ctrl)
	mockTokens := mocks.NewMockTokenGenerator(ctrl)
	hasher := service.NewHashingService(bcrypt.MinCost)
	userService := service.NewUserService(mockStore, hasher, mockTokens)

	app := fiber.New()
	handler.RegisterRoutes(app, handler.NewAuthHandler(userService), userService)

	return app, mockStore, mockTokens
}

func postJSON(t *testing.T, app *fiber.App, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	encoded, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(encoded))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	rec.Code = resp.StatusCode
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	rec.Body = bytes.NewBuffer(raw)

	return rec
}

func TestRegister(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		app, mockStore, _ := newAuthApp(t)
		mockStore.EXPECT().GetByUsername(gomock.Any(), "alice").Return(nil, nil)
		mockStore.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		resp := postJSON(t, app, "/auth/register", dto.RegisterInput{Username: "alice", Password: "pw1"}, nil)

		assert.Equal(t, fiber.StatusCreated, resp.Code)
		assert.Contains(t, resp.Body.String(), "user registered successfully")
	})

	t.Run("duplicate username", func(t *testing.T) {
		app, mockStore, _ := newAuthApp(t)
		existing := &domain.User{ID: "user-1", Username: "alice"}
		mockStore.EXPECT().GetByUsername(gomock.Any(), "alice").Return(existing, nil)

		resp := postJSON(t, app, "/auth/register", dto.RegisterInput{Username: "alice", Password: "pw2"}, nil)

		assert.Equal(t, fiber.StatusConflict, resp.Code)
		assert.Contains(t, resp.Body.String(), "user already exists")
	})

	t.Run("missing fields", func(t *testing.T) {
		app, _, _ := newAuthApp(t)

		resp := postJSON(t, app, "/auth/register", dto.RegisterInput{Username: "alice"}, nil)

		assert.Equal(t, fiber.StatusBadRequest, resp.Code)
	})

	t.Run("upstream failure stays opaque", func(t *testing.T) {
		app, mockStore, _ := newAuthApp(t)
		mockStore.EXPECT().GetByUsername(gomock.Any(), "alice").Return(nil, apperrors.ErrUpstreamUnavailable)

		resp := postJSON(t, app, "/auth/register", dto.RegisterInput{Username: "alice", Password: "pw1"}, nil)

		assert.Equal(t, fiber.StatusInternalServerError, resp.Code)
		assert.Contains(t, resp.Body.String(), "internal server error")
		assert.NotContains(t, resp.Body.String(), "data store")
	})
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("pw1"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{ID: "user-1", Username: "alice", PasswordHash: string(hash)}

	t.Run("success", func(t *testing.T) {
		app, mockStore, mockTokens := newAuthApp(t)
		mockStore.EXPECT().GetByUsername(gomock.Any(), "alice").Return(user, nil)
		mockTokens.EXPECT().Issue("user-1").Return("token-abc", nil)
		mockStore.EXPECT().UpdateToken(gomock.Any(), "user-1", gomock.Any()).Return(nil)

		resp := postJSON(t, app, "/auth/login", dto.LoginInput{Username: "alice", Password: "pw1"}, nil)

		assert.Equal(t, fiber.StatusOK, resp.Code)

		var out dto.LoginOutput
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
		assert.Equal(t, "token-abc", out.Token)
		assert.Equal(t, "user-1", out.UserID)
	})

	t.Run("wrong password", func(t *testing.T) {
		app, mockStore, _ := newAuthApp(t)
		mockStore.EXPECT().GetByUsername(gomock.Any(), "alice").Return(user, nil)

		resp := postJSON(t, app, "/auth/login", dto.LoginInput{Username: "alice", Password: "wrong"}, nil)

		assert.Equal(t, fiber.StatusUnauthorized, resp.Code)
		assert.Contains(t, resp.Body.String(), "invalid credentials")
	})

	t.Run("unknown username yields identical response", func(t *testing.T) {
		app, mockStore, _ := newAuthApp(t)
		mockStore.EXPECT().GetByUsername(gomock.Any(), "ghost").Return(nil, nil)

		resp := postJSON(t, app, "/auth/login", dto.LoginInput{Username: "ghost", Password: "pw1"}, nil)

		assert.Equal(t, fiber.StatusUnauthorized, resp.Code)
		assert.Contains(t, resp.Body.String(), "invalid credentials")
	})
}

func TestLogout(t *testing.T) {
	current := "token-abc"
	user := &domain.User{ID: "user-1", Username: "alice", CurrentToken: &current}

	t.Run("success", func(t *testing.T) {
		app, mockStore, mockTokens := newAuthApp(t)
		mockTokens.EXPECT().Verify("token-abc").Return("user-1", nil)
		mockStore.EXPECT().GetByID(gomock.Any(), "user-1").Return(user, nil)
		mockStore.EXPECT().UpdateToken(gomock.Any(), "user-1", gomock.Nil()).Return(nil)

		resp := postJSON(t, app, "/auth/logout", nil, map[string]string{
			"Authorization": "Bearer token-abc",
		})

		assert.Equal(t, fiber.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), "logout successful")
	})

	t.Run("missing token", func(t *testing.T) {
		app, _, _ := newAuthApp(t)

		resp := postJSON(t, app, "/auth/logout", nil, nil)

		assert.Equal(t, fiber.StatusUnauthorized, resp.Code)
	})

	t.Run("revoked token", func(t *testing.T) {
		app, mockStore, mockTokens := newAuthApp(t)
		loggedOut := &domain.User{ID: "user-1", Username: "alice", CurrentToken: nil}
		mockTokens.EXPECT().Verify("token-abc").Return("user-1", nil)
		mockStore.EXPECT().GetByID(gomock.Any(), "user-1").Return(loggedOut, nil)

		resp := postJSON(t, app, "/auth/logout", nil, map[string]string{
			"Authorization": "Bearer token-abc",
		})

		assert.Equal(t, fiber.StatusUnauthorized, resp.Code)
	})
}
