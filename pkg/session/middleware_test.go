package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/id", func(c *gin.Context) {
		c.String(http.StatusOK, "%s|%s", GetSessionID(c), FromContext(c.Request.Context()))
	})
	return r
}

func TestMiddleware(t *testing.T) {
	known := uuid.New().String()
	fromCookie := uuid.New().String()

	tests := []struct {
		name     string
		setup    func(r *http.Request)
		expected string
	}{
		{
			name:     "header wins",
			setup:    func(r *http.Request) { r.Header.Set(HeaderName, known) },
			expected: known,
		},
		{
			name:     "cookie used without header",
			setup:    func(r *http.Request) { r.AddCookie(&http.Cookie{Name: CookieName, Value: fromCookie}) },
			expected: fromCookie,
		},
		{
			name:  "invalid header is replaced",
			setup: func(r *http.Request) { r.Header.Set(HeaderName, "not-a-uuid") },
		},
		{
			name:  "nothing supplied",
			setup: func(r *http.Request) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/id", nil)
			tt.setup(req)
			rec := httptest.NewRecorder()

			newRouter().ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			got := rec.Header().Get(HeaderName)
			_, err := uuid.Parse(got)
			require.NoError(t, err)
			if tt.expected != "" {
				assert.Equal(t, tt.expected, got)
			} else {
				assert.NotEqual(t, "not-a-uuid", got)
			}
			assert.Equal(t, got+"|"+got, rec.Body.String())
		})
	}
}
