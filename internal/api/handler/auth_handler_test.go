package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/service"
	"reviewhub/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMain(m *testing.M) {
	logger.Init(logger.Options{Level: "error", Output: io.Discard})
	os.Exit(m.Run())
}

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, username, email string) (*models.User, error) {
	args := m.Called(ctx, username, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) IssueToken(ctx context.Context, username, code string) (string, error) {
	args := m.Called(ctx, username, code)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func postJSON(router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSignupHandler_Success(t *testing.T) {
	mockAuth := new(MockAuthService)
	h := NewAuthHandler(mockAuth)
	router := setupRouter()
	router.POST("/auth/signup", h.Signup)

	user := &models.User{Username: "alice", Email: "alice@example.com"}
	mockAuth.On("Signup", mock.Anything, "alice", "alice@example.com").Return(user, nil)

	w := postJSON(router, "/auth/signup", dto.SignupRequest{
		Username: "alice",
		Email:    "alice@example.com",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.SignupResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, "alice@example.com", resp.Email)
	mockAuth.AssertExpectations(t)
}

func TestSignupHandler_MissingEmail(t *testing.T) {
	mockAuth := new(MockAuthService)
	h := NewAuthHandler(mockAuth)
	router := setupRouter()
	router.POST("/auth/signup", h.Signup)

	w := postJSON(router, "/auth/signup", map[string]string{"username": "alice"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockAuth.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything, mock.Anything)
}

func TestSignupHandler_ReservedUsername(t *testing.T) {
	mockAuth := new(MockAuthService)
	h := NewAuthHandler(mockAuth)
	router := setupRouter()
	router.POST("/auth/signup", h.Signup)

	mockAuth.On("Signup", mock.Anything, "me", "me@example.com").
		Return(nil, service.ErrReservedUsername)

	w := postJSON(router, "/auth/signup", dto.SignupRequest{
		Username: "me",
		Email:    "me@example.com",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignupHandler_MailFailure(t *testing.T) {
	mockAuth := new(MockAuthService)
	h := NewAuthHandler(mockAuth)
	router := setupRouter()
	router.POST("/auth/signup", h.Signup)

	mockAuth.On("Signup", mock.Anything, "alice", "alice@example.com").
		Return(nil, service.ErrMailDelivery)

	w := postJSON(router, "/auth/signup", dto.SignupRequest{
		Username: "alice",
		Email:    "alice@example.com",
	})

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestTokenHandler_Success(t *testing.T) {
	mockAuth := new(MockAuthService)
	h := NewAuthHandler(mockAuth)
	router := setupRouter()
	router.POST("/auth/token", h.Token)

	mockAuth.On("IssueToken", mock.Anything, "alice", "abc123defg").Return("signed-token", nil)

	w := postJSON(router, "/auth/token", dto.TokenRequest{
		Username:         "alice",
		ConfirmationCode: "abc123defg",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.TokenResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "signed-token", resp.Token)
}

func TestTokenHandler_UnknownUser(t *testing.T) {
	mockAuth := new(MockAuthService)
	h := NewAuthHandler(mockAuth)
	router := setupRouter()
	router.POST("/auth/token", h.Token)

	mockAuth.On("IssueToken", mock.Anything, "ghost", "abc123defg").
		Return("", service.ErrUserNotFound)

	w := postJSON(router, "/auth/token", dto.TokenRequest{
		Username:         "ghost",
		ConfirmationCode: "abc123defg",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTokenHandler_WrongCode(t *testing.T) {
	mockAuth := new(MockAuthService)
	h := NewAuthHandler(mockAuth)
	router := setupRouter()
	router.POST("/auth/token", h.Token)

	mockAuth.On("IssueToken", mock.Anything, "alice", "wrongwrong").
		Return("", service.ErrInvalidCode)

	w := postJSON(router, "/auth/token", dto.TokenRequest{
		Username:         "alice",
		ConfirmationCode: "wrongwrong",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
