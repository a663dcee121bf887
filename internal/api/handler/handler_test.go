package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newQueryContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+rawQuery, nil)
	return c
}

func TestParsePagination(t *testing.T) {
	cases := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", 1, 10},
		{"explicit values", "page=3&limit=25", 3, 25},
		{"zero page", "page=0&limit=5", 1, 5},
		{"negative page", "page=-1", 1, 10},
		{"limit over cap", "limit=999", 1, 10},
		{"garbage values", "page=abc&limit=xyz", 1, 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newQueryContext(t, tc.query)
			page, limit := parsePagination(c)
			if page != tc.wantPage || limit != tc.wantLimit {
				t.Fatalf("query %q: got (%d, %d), want (%d, %d)",
					tc.query, page, limit, tc.wantPage, tc.wantLimit)
			}
		})
	}
}

func TestParseIDParam(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "42"}}

	id, err := parseIDParam(c, "id")
	if err != nil {
		t.Fatalf("parse id: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected 42, got %d", id)
	}

	c.Params = gin.Params{{Key: "id", Value: "not-a-number"}}
	if _, err := parseIDParam(c, "id"); err == nil {
		t.Fatal("expected error for non-numeric id")
	}
}
