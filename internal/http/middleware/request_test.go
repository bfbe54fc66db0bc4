package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/you/contactsvc/domain"
)

func TestClientContext(t *testing.T) {
	var got *domain.ClientContext
	r := gin.New()
	r.GET("/x", ClientContext(), func(c *gin.Context) {
		got = domain.ClientContextFrom(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.RemoteAddr = "10.1.2.3:5555"
	req.Header.Set("User-Agent", "curl/8.0")
	r.ServeHTTP(httptest.NewRecorder(), req)

	if got == nil {
		t.Fatal("expected client context on the request")
	}
	if got.IPAddress != "10.1.2.3" || got.UserAgent != "curl/8.0" {
		t.Errorf("unexpected client context %+v", got)
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&log.JSONFormatter{})

	r := gin.New()
	r.Use(RequestLogger(logger))
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected one JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["level"] != "warning" || entry["path"] != "/missing" || entry["status"] != float64(404) {
		t.Errorf("unexpected log entry %v", entry)
	}
}

func TestMetrics_PassesThrough(t *testing.T) {
	r := gin.New()
	r.Use(Metrics())
	r.GET("/contacts/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/contacts/3", nil))
	if w.Code != http.StatusNoContent {
		t.Errorf("expected handler status to pass through, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unmatched route, got %d", w.Code)
	}
}
