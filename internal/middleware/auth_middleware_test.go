package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-erp-api/internal/handler"
	"go-erp-api/internal/model"
	"go-erp-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Register(ctx context.Context, req service.RegisterRequest) (*model.User, error) {
	args := m.Called(ctx, req)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, req service.LoginRequest) (*service.LoginResponse, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*service.LoginResponse)
	return res, args.Error(1)
}

func (m *mockAuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockAuthService) ResetPassword(ctx context.Context, username, newPassword string) error {
	return m.Called(ctx, username, newPassword).Error(0)
}

func (m *mockAuthService) ValidateToken(ctx context.Context, token string) (*model.User, error) {
	args := m.Called(ctx, token)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func newProtectedApp(auth service.AuthService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: handler.ErrorHandler})
	app.Get("/me", RequireAuth(auth), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":  c.Locals("user_id").(uuid.UUID).String(),
			"username": c.Locals("username"),
		})
	})
	return app
}

func TestRequireAuth_RejectsBadHeaders(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "missing", header: ""},
		{name: "wrong scheme", header: "Basic abc"},
		{name: "no token", header: "Bearer"},
		{name: "extra parts", header: "Bearer a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := new(mockAuthService)
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := newProtectedApp(auth).Test(req)
			require.NoError(t, err)

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			auth.AssertNotCalled(t, "ValidateToken", mock.Anything, mock.Anything)
		})
	}
}

func TestRequireAuth_PropagatesServiceErrors(t *testing.T) {
	auth := new(mockAuthService)
	auth.On("ValidateToken", mock.Anything, "revoked").Return(nil, service.ErrSessionRevoked)
	auth.On("ValidateToken", mock.Anything, "inactive").Return(nil, service.ErrUserInactive)
	app := newProtectedApp(auth)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer revoked")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer inactive")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequireAuth_SetsLocals(t *testing.T) {
	auth := new(mockAuthService)
	user := &model.User{Username: "admin"}
	user.ID = uuid.New()
	auth.On("ValidateToken", mock.Anything, "good").Return(user, nil)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "bearer good")
	resp, err := newProtectedApp(auth).Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireWebSocketAuth_RequiresUpgrade(t *testing.T) {
	auth := new(mockAuthService)
	app := fiber.New(fiber.Config{ErrorHandler: handler.ErrorHandler})
	app.Get("/ws", RequireWebSocketAuth(auth), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ws?token=abc", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusUpgradeRequired, resp.StatusCode)
	auth.AssertNotCalled(t, "ValidateToken", mock.Anything, mock.Anything)
}
