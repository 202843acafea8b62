package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hemloeth/attendance/internal/domain/user"
)

type fakeUserRepo struct {
	users map[string]user.User
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) Create(ctx context.Context, newUser user.User) (user.User, error) {
	return newUser, nil
}

func (f *fakeUserRepo) LinkGoogleAccount(ctx context.Context, googleID string, email string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, email string, name string, image *string) error {
	return nil
}

func (f *fakeUserRepo) UpdateRole(ctx context.Context, email string, role user.Role) error {
	return nil
}

func (f *fakeUserRepo) ListByRole(ctx context.Context, role user.Role) ([]user.User, error) {
	return nil, nil
}

func requestWithClaims(t *testing.T, claims map[string]interface{}) *http.Request {
	t.Helper()

	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(claims)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := jwtauth.NewContext(req.Context(), token, nil)
	return req.WithContext(ctx)
}

func okHandler() (http.Handler, *bool) {
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}), &called
}

func TestAuthRequiredRejectsRefreshToken(t *testing.T) {
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	next, called := okHandler()
	handler := AuthRequired(ja)(next)

	req := requestWithClaims(t, map[string]interface{}{
		"user_id": "u1",
		"type":    "refresh",
	})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called)
}

func TestAuthRequiredAcceptsAccessToken(t *testing.T) {
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	next, called := okHandler()
	handler := AuthRequired(ja)(next)

	req := requestWithClaims(t, map[string]interface{}{
		"user_id": "u1",
		"email":   "alice@example.com",
		"role":    "user",
		"type":    "access",
	})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *called)
}

func TestAdminRequiredForbidsUserRole(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]user.User{
		"alice@example.com": {ID: "u1", Email: "alice@example.com", Role: user.RoleUser},
	}}
	next, called := okHandler()
	handler := AdminRequired(repo)(next)

	req := requestWithClaims(t, map[string]interface{}{
		"user_id": "u1",
		"email":   "alice@example.com",
		"role":    "user",
		"type":    "access",
	})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, *called)
}

func TestAdminRequiredUsesPersistedRole(t *testing.T) {
	// Token still claims role=user but the persisted record says admin
	repo := &fakeUserRepo{users: map[string]user.User{
		"root@example.com": {ID: "a1", Email: "root@example.com", Role: user.RoleAdmin},
	}}
	next, called := okHandler()
	handler := AdminRequired(repo)(next)

	req := requestWithClaims(t, map[string]interface{}{
		"user_id": "a1",
		"email":   "root@example.com",
		"role":    "user",
		"type":    "access",
	})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *called)
}

func TestAdminRequiredUnknownUser(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]user.User{}}
	next, called := okHandler()
	handler := AdminRequired(repo)(next)

	req := requestWithClaims(t, map[string]interface{}{
		"user_id": "ghost",
		"email":   "ghost@example.com",
		"type":    "access",
	})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, *called)
}

func TestRateLimiterBlocksAfterBurst(t *testing.T) {
	rl := NewRateLimiter(60, 2)
	defer rl.Stop()

	next, _ := okHandler()
	handler := rl.Middleware()(next)

	claims := map[string]interface{}{
		"user_id": "u1",
		"email":   "alice@example.com",
		"type":    "access",
	}

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithClaims(t, claims))
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithClaims(t, claims))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	// A different user has an independent bucket
	otherClaims := map[string]interface{}{
		"user_id": "u2",
		"email":   "bob@example.com",
		"type":    "access",
	}
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithClaims(t, otherClaims))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, rl.LimiterCount())
}
