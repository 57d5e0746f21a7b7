package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tiendago/ventas-online/internal/model"
	"go.uber.org/zap"
)

type fakeUserFinder struct {
	users map[string]*model.User
}

func (f *fakeUserFinder) FindByID(ctx context.Context, id string) (*model.User, error) {
	return f.users[id], nil
}

func newMiddlewareFixture(t *testing.T) (*TokenManager, *fakeUserFinder, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := NewTokenManager("test-secret", time.Hour)
	users := &fakeUserFinder{users: map[string]*model.User{
		"u1": {BaseModel: model.BaseModel{ID: "u1"}, Role: model.RoleClient, Status: true},
		"u2": {BaseModel: model.BaseModel{ID: "u2"}, Role: model.RoleAdmin, Status: true},
		"u3": {BaseModel: model.BaseModel{ID: "u3"}, Role: model.RoleClient, Status: false},
	}}
	mw := NewMiddleware(tokens, users, zap.NewNop())

	router := gin.New()
	router.GET("/protected", mw.RequireAuth(), func(c *gin.Context) {
		u, _ := UserFromContext(c)
		c.JSON(http.StatusOK, gin.H{"id": u.ID})
	})
	router.GET("/admin-only", mw.RequireAuth(), mw.RequireRoles(model.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return tokens, users, router
}

func doRequest(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuthMissingHeader(t *testing.T) {
	_, _, router := newMiddlewareFixture(t)
	rec := doRequest(router, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthValidToken(t *testing.T) {
	tokens, _, router := newMiddlewareFixture(t)
	token, err := tokens.Generate("u1", model.RoleClient)
	require.NoError(t, err)

	rec := doRequest(router, "/protected", token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "u1")
}

func TestRequireAuthSoftDeletedAccount(t *testing.T) {
	tokens, _, router := newMiddlewareFixture(t)
	token, err := tokens.Generate("u3", model.RoleClient)
	require.NoError(t, err)

	rec := doRequest(router, "/protected", token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthUnknownSubject(t *testing.T) {
	tokens, _, router := newMiddlewareFixture(t)
	token, err := tokens.Generate("ghost", model.RoleClient)
	require.NoError(t, err)

	rec := doRequest(router, "/protected", token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRoles(t *testing.T) {
	tokens, _, router := newMiddlewareFixture(t)

	clientToken, err := tokens.Generate("u1", model.RoleClient)
	require.NoError(t, err)
	adminToken, err := tokens.Generate("u2", model.RoleAdmin)
	require.NoError(t, err)

	rec := doRequest(router, "/admin-only", clientToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(router, "/admin-only", adminToken)
	assert.Equal(t, http.StatusOK, rec.Code)
}
