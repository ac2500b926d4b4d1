package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func sanitizeRouter(captured *map[string]interface{}, query *string) *gin.Engine {
	router := gin.New()
	router.Use(Sanitize())
	router.POST("/echo", func(c *gin.Context) {
		var body map[string]interface{}
		if err := c.ShouldBindJSON(&body); err == nil {
			*captured = body
		}
		*query = c.Query("q")
		c.Status(http.StatusOK)
	})
	return router
}

func TestSanitize_StripsScriptFromBody(t *testing.T) {
	var captured map[string]interface{}
	var query string
	router := sanitizeRouter(&captured, &query)

	payload := map[string]interface{}{
		"username": `<script>alert("xss")</script>alice`,
		"nested":   map[string]interface{}{"note": "<img src=x onerror=alert(1)>hello"},
		"count":    3,
	}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/echo", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if got := captured["username"]; got != "alice" {
		t.Errorf("username = %q, want %q", got, "alice")
	}
	nested, _ := captured["nested"].(map[string]interface{})
	if got, _ := nested["note"].(string); strings.Contains(got, "<") {
		t.Errorf("nested note still contains markup: %q", got)
	}
	if got, ok := captured["count"].(float64); !ok || got != 3 {
		t.Errorf("non-string value changed: %v", captured["count"])
	}
}

func TestSanitize_StripsScriptFromQuery(t *testing.T) {
	var captured map[string]interface{}
	var query string
	router := sanitizeRouter(&captured, &query)

	req := httptest.NewRequest(http.MethodPost, "/echo?q=%3Cscript%3Ealert(1)%3C/script%3Esafe", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if strings.Contains(query, "<script>") {
		t.Errorf("query still contains script tag: %q", query)
	}
	if !strings.Contains(query, "safe") {
		t.Errorf("query lost legitimate content: %q", query)
	}
}

func TestSanitize_InvalidJSONPassesThrough(t *testing.T) {
	var captured map[string]interface{}
	var query string
	router := sanitizeRouter(&captured, &query)

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// The middleware must not swallow the body; binding sees the original
	// invalid payload and the handler decides what to do with it.
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if captured != nil {
		t.Errorf("invalid JSON should not bind, got %v", captured)
	}
}
