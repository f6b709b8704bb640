package middleware

import (
	"Birrapp/internal/repository"
	"Birrapp/internal/service"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessionService struct {
	identity *repository.SessionIdentity
	err      error
}

func (f *fakeSessionService) Resolve(_ context.Context, token string) (*repository.SessionIdentity, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.identity != nil && token == "valid-token" {
		return f.identity, nil
	}
	return nil, nil
}

func newAuthRouter(svc service.SessionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(svc), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":   c.GetString(UserIDKey),
			"user_name": c.GetString(UserNameKey),
		})
	})
	return r
}

func doAuth(r *gin.Engine, header string) (*httptest.ResponseRecorder, map[string]interface{}) {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	body := make(map[string]interface{})
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	svc := &fakeSessionService{identity: &repository.SessionIdentity{
		UserID:    "user-1",
		Name:      "Ana García",
		ExpiresAt: time.Now().Add(time.Hour),
	}}
	r := newAuthRouter(svc)

	w, body := doAuth(r, "Bearer valid-token")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", body["user_id"])
	assert.Equal(t, "Ana García", body["user_name"])
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	r := newAuthRouter(&fakeSessionService{})

	_, body := doAuth(r, "")
	assert.EqualValues(t, 401, body["code"])

	_, body = doAuth(r, "Basic abc")
	assert.EqualValues(t, 401, body["code"])
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	r := newAuthRouter(&fakeSessionService{})

	_, body := doAuth(r, "Bearer bogus")
	assert.EqualValues(t, 401, body["code"])
}

func TestAuthMiddlewareResolveError(t *testing.T) {
	r := newAuthRouter(&fakeSessionService{err: errors.New("db down")})

	_, body := doAuth(r, "Bearer valid-token")
	assert.EqualValues(t, 500, body["code"])
}
