package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"clinicbook/models"
	"clinicbook/services/user"
)

// stubUserService resolves every token the same way.
type stubUserService struct {
	identity *models.Identity
	err      error
}

func (s *stubUserService) Register(context.Context, string, string, string) (*models.User, error) {
	return nil, errors.New("not implemented")
}

func (s *stubUserService) Authenticate(context.Context, string, string) (*user.AuthResponse, error) {
	return nil, errors.New("not implemented")
}

func (s *stubUserService) ResolveIdentity(context.Context, string) (*models.Identity, error) {
	return s.identity, s.err
}

func (s *stubUserService) GetByID(context.Context, string) (*models.User, error) {
	return nil, errors.New("not implemented")
}

func (s *stubUserService) UpdateProfile(context.Context, string, user.ProfileUpdate) (*models.User, error) {
	return nil, errors.New("not implemented")
}

func (s *stubUserService) ListByRole(context.Context, models.Role) ([]models.User, error) {
	return nil, errors.New("not implemented")
}

func authRequest(t *testing.T, svc user.UserService, header string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(JWTAuthMiddleware(svc))
	r.GET("/", func(c *gin.Context) {
		id, ok := CallerIdentity(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no identity in context"})
			return
		}
		c.JSON(http.StatusOK, id)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	caller := models.Identity{ID: "pat-1", Role: models.RolePatient}

	cases := []struct {
		name   string
		svc    *stubUserService
		header string
		want   int
	}{
		{
			name:   "valid token passes identity through",
			svc:    &stubUserService{identity: &caller},
			header: "Bearer good-token",
			want:   http.StatusOK,
		},
		{
			name: "missing header",
			svc:  &stubUserService{identity: &caller},
			want: http.StatusUnauthorized,
		},
		{
			name:   "wrong scheme",
			svc:    &stubUserService{identity: &caller},
			header: "Basic abc",
			want:   http.StatusUnauthorized,
		},
		{
			name:   "rejected token",
			svc:    &stubUserService{err: user.ErrUnauthenticated},
			header: "Bearer bad-token",
			want:   http.StatusUnauthorized,
		},
		{
			// A broken user store is not the caller's fault. It must never
			// read as a rejected credential.
			name:   "user store failure",
			svc:    &stubUserService{err: errors.New("connection refused")},
			header: "Bearer good-token",
			want:   http.StatusServiceUnavailable,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := authRequest(t, tc.svc, tc.header)
			if w.Code != tc.want {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tc.want, w.Body.String())
			}
		})
	}
}
