package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"vtube-go/internal/config"
	"vtube-go/pkg/utils"

	"github.com/gin-gonic/gin"
)

func loadTestConfig(t *testing.T) {
	t.Helper()

	content := `
app:
  name: vtube-test
jwt:
  access_secret: test-access-secret
  access_expire_mins: 15
  refresh_secret: test-refresh-secret
  refresh_expire_days: 7
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.Load(path); err != nil {
		t.Fatalf("load config: %v", err)
	}
}

func newAuthRouter(t *testing.T, mw gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/protected", mw, func(c *gin.Context) {
		userID, ok := GetCurrentUserID(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"user_id": 0})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return r
}

func TestAuthRequiredMissingToken(t *testing.T) {
	loadTestConfig(t)
	r := newAuthRouter(t, AuthRequired())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthRequiredInvalidToken(t *testing.T) {
	loadTestConfig(t)
	r := newAuthRouter(t, AuthRequired())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthRequiredValidToken(t *testing.T) {
	loadTestConfig(t)
	r := newAuthRouter(t, AuthRequired())

	token, err := utils.GenerateAccessToken(42, "alice")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if body := w.Body.String(); body != `{"user_id":42}` {
		t.Fatalf("unexpected body %s", body)
	}
}

func TestAuthOptionalAnonymous(t *testing.T) {
	loadTestConfig(t)
	r := newAuthRouter(t, AuthOptional())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for anonymous, got %d", w.Code)
	}
	if body := w.Body.String(); body != `{"user_id":0}` {
		t.Fatalf("unexpected body %s", body)
	}
}

func TestAuthOptionalWithToken(t *testing.T) {
	loadTestConfig(t)
	r := newAuthRouter(t, AuthOptional())

	token, err := utils.GenerateAccessToken(7, "bob")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if body := w.Body.String(); body != `{"user_id":7}` {
		t.Fatalf("unexpected body %s", body)
	}
}

func TestExtractTokenFormats(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"empty", "", ""},
		{"bearer", "Bearer abc123", "abc123"},
		{"lowercase bearer", "bearer abc123", "abc123"},
		{"no scheme", "abc123", ""},
		{"wrong scheme", "Basic abc123", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				c.Request.Header.Set("Authorization", tc.header)
			}

			if got := extractToken(c); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
