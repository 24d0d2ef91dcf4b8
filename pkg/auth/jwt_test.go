package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *JWTService {
	t.Helper()
	s, err := NewJWTService("test-secret", time.Hour)
	require.NoError(t, err)
	return s
}

func TestNewJWTService_MissingKey(t *testing.T) {
	_, err := NewJWTService("", time.Hour)
	assert.ErrorIs(t, err, ErrMissingJWTKey)
}

func TestGenerateAndValidate(t *testing.T) {
	s := newService(t)
	p := Principal{UserID: "u1", Username: "jane", Role: "seller", SellerID: "s1"}

	token, expiresAt, err := s.GenerateToken(p)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, p, claims.Principal())
}

func TestValidateToken_Errors(t *testing.T) {
	s := newService(t)
	token, _, err := s.GenerateToken(Principal{UserID: "u1", Role: "customer"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		setup   func(s *JWTService)
		token   string
		wantErr error
	}{
		{
			name:    "garbage",
			token:   "not.a.token",
			wantErr: ErrInvalidToken,
		},
		{
			name:    "wrong key",
			setup:   func(s *JWTService) { s.secretKey = []byte("other") },
			token:   token,
			wantErr: ErrInvalidToken,
		},
		{
			name:    "expired",
			setup:   func(s *JWTService) { s.now = func() time.Time { return time.Now().Add(2 * time.Hour) } },
			token:   token,
			wantErr: ErrExpiredToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(t)
			if tt.setup != nil {
				tt.setup(svc)
			}
			_, err := svc.ValidateToken(tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRefreshToken(t *testing.T) {
	s := newService(t)
	token, _, err := s.GenerateToken(Principal{UserID: "u1", Role: "admin"})
	require.NoError(t, err)

	// expired for 30 minutes: still refreshable
	s.now = func() time.Time { return time.Now().Add(90 * time.Minute) }
	refreshed, _, err := s.RefreshToken(token)
	require.NoError(t, err)

	claims, err := s.ValidateToken(refreshed)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)

	// expired for longer than one period
	s.now = func() time.Time { return time.Now().Add(3 * time.Hour) }
	_, _, err = s.RefreshToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestMiddlewares(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := newService(t)
	sellerToken, _, err := s.GenerateToken(Principal{UserID: "u1", Role: "seller", SellerID: "s1"})
	require.NoError(t, err)

	r := gin.New()
	r.GET("/open", OptionalJWTAuthMiddleware(s), func(c *gin.Context) {
		p, ok := GetCurrentUser(c)
		if !ok {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, p.UserID)
	})
	r.GET("/admin", JWTAuthMiddleware(s), RoleAuthMiddleware("admin"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/staff", JWTAuthMiddleware(s), RoleAuthMiddleware("admin", "seller"), func(c *gin.Context) {
		p, _ := PrincipalFromContext(c.Request.Context())
		c.String(http.StatusOK, p.SellerID)
	})

	tests := []struct {
		name       string
		path       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"optional without token", "/open", "", http.StatusOK, "anonymous"},
		{"optional with token", "/open", "Bearer " + sellerToken, http.StatusOK, "u1"},
		{"optional with bad token", "/open", "Bearer nope", http.StatusOK, "anonymous"},
		{"missing token", "/admin", "", http.StatusUnauthorized, ""},
		{"malformed header", "/admin", "Token " + sellerToken, http.StatusUnauthorized, ""},
		{"wrong role", "/admin", "Bearer " + sellerToken, http.StatusForbidden, ""},
		{"allowed role", "/staff", "Bearer " + sellerToken, http.StatusOK, "s1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}
