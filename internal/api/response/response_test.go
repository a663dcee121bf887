package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func TestOKEnvelope(t *testing.T) {
	c, w := newTestContext()

	OK(c, "获取成功", map[string]int{"id": 1})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !resp.Success {
		t.Fatal("expected success true")
	}
	if resp.Message != "获取成功" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
	if resp.Data == nil {
		t.Fatal("expected data to be present")
	}
}

func TestCreatedStatus(t *testing.T) {
	c, w := newTestContext()

	Created(c, "创建成功", nil)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
}

func TestErrorHelpers(t *testing.T) {
	cases := []struct {
		name     string
		fn       func(*gin.Context, string)
		status   int
		wantType string
	}{
		{"bad request", BadRequest, http.StatusBadRequest, "BadRequest"},
		{"unauthorized", Unauthorized, http.StatusUnauthorized, "Unauthorized"},
		{"forbidden", Forbidden, http.StatusForbidden, "Forbidden"},
		{"not found", NotFound, http.StatusNotFound, "NotFound"},
		{"conflict", Conflict, http.StatusConflict, "Conflict"},
		{"internal", InternalError, http.StatusInternalServerError, "InternalServerError"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, w := newTestContext()

			tc.fn(c, "出错了")

			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}

			var resp ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal response: %v", err)
			}
			if resp.Error.Code != tc.status {
				t.Fatalf("expected error code %d, got %d", tc.status, resp.Error.Code)
			}
			if resp.Error.Type != tc.wantType {
				t.Fatalf("expected error type %q, got %q", tc.wantType, resp.Error.Type)
			}
			if resp.Error.Message != "出错了" {
				t.Fatalf("unexpected message %q", resp.Error.Message)
			}
		})
	}
}
