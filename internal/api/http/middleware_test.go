package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
)

func loginAttempt(limited http.HandlerFunc, remoteAddr string, xff ...string) int {
	req := httptest.NewRequest("POST", "/api/v1/ngo/login", nil)
	req.RemoteAddr = remoteAddr
	for _, v := range xff {
		req.Header.Add("X-Forwarded-For", v)
	}
	rec := httptest.NewRecorder()
	limited(rec, req)
	return rec.Code
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestLoginLimiter_PerPeer(t *testing.T) {
	limited := NewLoginLimiter(1, 2).Wrap(okHandler)

	codes := []int{
		loginAttempt(limited, "203.0.113.7:5000"),
		loginAttempt(limited, "203.0.113.7:5001"),
		loginAttempt(limited, "203.0.113.7:5002"),
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Equal(t, http.StatusOK, loginAttempt(limited, "198.51.100.1:5000"))
}

func TestLoginLimiter_IgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	limited := NewLoginLimiter(1, 1).Wrap(okHandler)

	allowed := 0
	for i := 0; i < 50; i++ {
		if loginAttempt(limited, "203.0.113.7:5000", fmt.Sprintf("192.0.2.%d", i)) == http.StatusOK {
			allowed++
		}
	}
	assert.Equal(t, 1, allowed)
}

func TestLoginLimiter_TrustedProxy(t *testing.T) {
	proxies := netip.MustParsePrefix("10.0.0.0/8")
	limiter := NewLoginLimiter(1, 1, proxies)
	limited := limiter.Wrap(okHandler)

	// Distinct clients behind the proxy get their own buckets.
	assert.Equal(t, http.StatusOK, loginAttempt(limited, "10.0.0.1:443", "203.0.113.5"))
	assert.Equal(t, http.StatusOK, loginAttempt(limited, "10.0.0.1:443", "203.0.113.6"))
	assert.Equal(t, http.StatusTooManyRequests, loginAttempt(limited, "10.0.0.1:443", "203.0.113.5"))

	// A spoofed leftmost entry does not escape the real client's bucket.
	assert.Equal(t, http.StatusTooManyRequests, loginAttempt(limited, "10.0.0.1:443", "192.0.2.99, 203.0.113.5"))
}

func TestLoginLimiter_ClientIP(t *testing.T) {
	limiter := NewLoginLimiter(1, 1, netip.MustParsePrefix("10.0.0.0/8"), netip.MustParsePrefix("127.0.0.1/32"))

	tests := []struct {
		name       string
		remoteAddr string
		xff        []string
		want       string
	}{
		{"untrusted peer", "203.0.113.7:5000", []string{"192.0.2.1"}, "203.0.113.7"},
		{"no header", "10.0.0.1:443", nil, "10.0.0.1"},
		{"single hop", "10.0.0.1:443", []string{"198.51.100.9"}, "198.51.100.9"},
		{"chained proxies", "127.0.0.1:443", []string{"198.51.100.9, 10.0.0.2"}, "198.51.100.9"},
		{"multiple headers", "10.0.0.1:443", []string{"192.0.2.1", "198.51.100.9"}, "198.51.100.9"},
		{"malformed hop", "10.0.0.1:443", []string{"not-an-ip"}, "10.0.0.1"},
		{"mapped peer", "[::ffff:203.0.113.7]:5000", []string{"192.0.2.1"}, "203.0.113.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for _, v := range tt.xff {
				req.Header.Add("X-Forwarded-For", v)
			}
			assert.Equal(t, tt.want, limiter.clientIP(req))
		})
	}
}
