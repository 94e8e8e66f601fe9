package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"nexify_backend/internal/middleware"
	"nexify_backend/internal/model"
	"nexify_backend/internal/service"
	"nexify_backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserService struct {
	jwtUtil  *utils.JWTUtil
	existing map[string]bool
}

var _ service.UserService = (*stubUserService)(nil)

func (s *stubUserService) IssueToken(email, name string) (string, error) {
	return s.jwtUtil.GenerateToken(email, name)
}

func (s *stubUserService) CreateUser(ctx context.Context, req model.CreateUserRequest) (string, bool, error) {
	if s.existing[req.Email] {
		return "", false, nil
	}
	s.existing[req.Email] = true
	return "new-id", true, nil
}

func (s *stubUserService) GetAllUsers(ctx context.Context) ([]model.User, error) { return nil, nil }
func (s *stubUserService) RoleStatus(ctx context.Context, email string) (model.RoleStatus, error) {
	return model.RoleStatus{}, nil
}
func (s *stubUserService) IsAdmin(ctx context.Context, email string) (bool, error)     { return false, nil }
func (s *stubUserService) IsModerator(ctx context.Context, email string) (bool, error) { return false, nil }
func (s *stubUserService) UpdateRole(ctx context.Context, id, role string) (int64, error) {
	return 0, nil
}

func newUserTestRouter(t *testing.T) (*gin.Engine, *stubUserService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := &stubUserService{
		jwtUtil:  utils.NewJWTUtil("secret", 24),
		existing: map[string]bool{},
	}
	h := NewUserHandler(svc, 24*60*60)
	router := gin.New()
	rg := router.Group("/api/v1")
	pass := func(c *gin.Context) { c.Next() }
	h.RegisterUserRoutes(rg, pass, pass, pass)
	return router, svc
}

func TestCreateAccessToken_SetsSessionCookie(t *testing.T) {
	router, svc := newUserTestRouter(t)

	body := strings.NewReader(`{"email":"user@example.com","name":"Test User"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/access-token", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, middleware.SessionCookieName, cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteNoneMode, cookie.SameSite)
	assert.Equal(t, 24*60*60, cookie.MaxAge)

	claims, err := svc.jwtUtil.ValidateToken(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", claims.Email)
}

func TestLogout_ClearsSessionCookie(t *testing.T) {
	router, _ := newUserTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/logout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.SessionCookieName, cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestCreateUser_NullInsertMarkerOnDuplicate(t *testing.T) {
	router, _ := newUserTestRouter(t)

	post := func() *httptest.ResponseRecorder {
		body := strings.NewReader(`{"email":"user@example.com","name":"Test User"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := post()
	assert.Equal(t, http.StatusOK, w.Code)
	var first map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	assert.Equal(t, "new-id", first["insertedId"])

	w = post()
	assert.Equal(t, http.StatusOK, w.Code)
	var second map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	val, present := second["insertedId"]
	assert.True(t, present)
	assert.Nil(t, val)
}

func TestCreateUser_RejectsMalformedBody(t *testing.T) {
	router, _ := newUserTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users", strings.NewReader(`{"email":"not-an-email"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
