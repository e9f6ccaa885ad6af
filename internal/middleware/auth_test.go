package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/estate-service/internal/models"
	"github.com/yourusername/estate-service/internal/repository"
	"github.com/yourusername/estate-service/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// staticProfiles serves one fixed user document
type staticProfiles struct {
	user *models.User
}

func (p staticProfiles) GetUser(ctx context.Context, userID string) (*models.User, error) {
	if p.user == nil {
		return nil, repository.ErrNotFound
	}
	c := *p.user
	return &c, nil
}

func (p staticProfiles) UpdateRole(ctx context.Context, userID string, role models.Role) error {
	return nil
}

func (p staticProfiles) WatchUser(ctx context.Context, userID string, onNext func(*models.User), onError func(error)) func() {
	return func() {}
}

type fakeResolver map[string]*services.Session

func (r fakeResolver) Resolve(token string) (*services.Session, error) {
	s, ok := r[token]
	if !ok {
		return nil, services.ErrSessionNotFound
	}
	return s, nil
}

func sessionWith(t *testing.T, user *models.User) *services.Session {
	t.Helper()
	s := services.NewSession("sess-"+user.UserID, models.Identity{UID: user.UserID, Email: user.Email}, staticProfiles{user: user}, nil, time.Now().Add(time.Hour))
	_, err := s.Refresh(context.Background())
	require.NoError(t, err)
	return s
}

func member(id string, role models.Role) *models.User {
	return &models.User{UserID: id, Email: id + "@example.com", Name: "Asha", Mobile: "9876543210", Role: role}
}

func newRouter(resolver SessionResolver, chain ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	handlers := append([]gin.HandlerFunc{RequireSession(resolver)}, chain...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": c.GetString(UserIDKey), "role": State(c).Role})
	})
	router.GET("/protected", handlers...)
	return router
}

func get(router *gin.Engine, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestRequireSession(t *testing.T) {
	resolver := fakeResolver{"good": sessionWith(t, member("u1", models.RoleBroker))}
	router := newRouter(resolver)

	w := get(router, "good")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userID":"u1"`)
	assert.Contains(t, w.Body.String(), `"role":"broker"`)

	w = get(router, "bad")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
	assert.Contains(t, w.Body.String(), "/login")

	w = get(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireSession_MalformedHeader(t *testing.T) {
	router := newRouter(fakeResolver{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRejectBlocked(t *testing.T) {
	blocked := member("u1", models.RoleAdmin)
	blocked.Blocked = true
	resolver := fakeResolver{
		"blocked": sessionWith(t, blocked),
		"ok":      sessionWith(t, member("u2", models.RoleUser)),
	}
	router := newRouter(resolver, RejectBlocked())

	w := get(router, "blocked")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "USER_BLOCKED")

	assert.Equal(t, http.StatusOK, get(router, "ok").Code)
}

func TestRequireProfile(t *testing.T) {
	incomplete := member("u1", models.RoleUser)
	incomplete.Mobile = ""
	resolver := fakeResolver{
		"incomplete": sessionWith(t, incomplete),
		"complete":   sessionWith(t, member("u2", models.RoleUser)),
		// a session whose user document does not exist yet
		"missing": services.NewSession("sess-ghost", models.Identity{UID: "ghost"}, staticProfiles{}, nil, time.Now().Add(time.Hour)),
	}
	router := newRouter(resolver, RequireProfile())

	w := get(router, "incomplete")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "PROFILE_INCOMPLETE")
	assert.Contains(t, w.Body.String(), "/profile")

	assert.Equal(t, http.StatusForbidden, get(router, "missing").Code)
	assert.Equal(t, http.StatusOK, get(router, "complete").Code)
}

func TestRequireRole(t *testing.T) {
	resolver := fakeResolver{
		"user":  sessionWith(t, member("u1", models.RoleUser)),
		"admin": sessionWith(t, member("a1", models.RoleAdmin)),
		"root":  sessionWith(t, member("r1", models.RoleSuperAdmin)),
	}
	router := newRouter(resolver, AdminOnly())

	w := get(router, "user")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "/home")

	assert.Equal(t, http.StatusOK, get(router, "admin").Code)
	assert.Equal(t, http.StatusOK, get(router, "root").Code)
}

func TestErrorLogger_RecoversPanic(t *testing.T) {
	router := gin.New()
	router.Use(ErrorLogger())
	router.GET("/boom", func(c *gin.Context) {
		panic(errors.New("boom"))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
}

func TestCORS_Preflight(t *testing.T) {
	router := gin.New()
	router.Use(CORS([]string{"https://estate.example.com"}))
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://estate.example.com")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://estate.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	router.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
