package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func contextWithRequest(remoteAddr string, headers map[string]string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteAddr
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	c.Request = req
	return c
}

func TestGetClientIPPrefersForwardedFor(t *testing.T) {
	c := contextWithRequest("10.0.0.1:4321", map[string]string{
		"X-Forwarded-For": "203.0.113.7, 10.0.0.1",
		"X-Real-IP":       "198.51.100.2",
	})
	if ip := getClientIP(c); ip != "203.0.113.7" {
		t.Errorf("ip = %q, want first forwarded hop", ip)
	}
}

func TestGetClientIPIgnoresGarbageForwardedFor(t *testing.T) {
	c := contextWithRequest("10.0.0.1:4321", map[string]string{
		"X-Forwarded-For": "not-an-ip",
		"X-Real-IP":       "198.51.100.2",
	})
	if ip := getClientIP(c); ip != "198.51.100.2" {
		t.Errorf("ip = %q, want the X-Real-IP fallback", ip)
	}
}

func TestGetClientIPStripsPortFromRemoteAddr(t *testing.T) {
	c := contextWithRequest("192.0.2.10:55000", nil)
	if ip := getClientIP(c); ip != "192.0.2.10" {
		t.Errorf("ip = %q, want the peer address without the port", ip)
	}
}
