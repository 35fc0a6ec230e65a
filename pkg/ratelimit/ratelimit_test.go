package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowWithinLimit(t *testing.T) {
	rl := NewLoginRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("1.2.3.4"), "attempt %d should be allowed", i+1)
	}
	assert.False(t, rl.Allow("1.2.3.4"))

	// Başka IP'ler etkilenmez.
	assert.True(t, rl.Allow("5.6.7.8"))
}

func TestResetClearsCounter(t *testing.T) {
	rl := NewLoginRateLimiter(2, time.Minute)

	rl.Allow("1.2.3.4")
	rl.Allow("1.2.3.4")
	require.False(t, rl.Allow("1.2.3.4"))

	rl.Reset("1.2.3.4")
	assert.True(t, rl.Allow("1.2.3.4"))
}

func TestWindowExpiryResetsCounter(t *testing.T) {
	rl := NewLoginRateLimiter(1, 20*time.Millisecond)

	require.True(t, rl.Allow("1.2.3.4"))
	require.False(t, rl.Allow("1.2.3.4"))

	time.Sleep(40 * time.Millisecond)
	assert.True(t, rl.Allow("1.2.3.4"))
}

func TestRetryAfterSeconds(t *testing.T) {
	rl := NewLoginRateLimiter(1, time.Minute)

	assert.Equal(t, 0, rl.RetryAfterSeconds("1.2.3.4")) // henüz bucket yok

	rl.Allow("1.2.3.4")
	after := rl.RetryAfterSeconds("1.2.3.4")
	assert.Greater(t, after, 0)
	assert.LessOrEqual(t, after, 61)
}

func TestExtractIP(t *testing.T) {
	newReq := func(remoteAddr string, headers map[string]string) *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/api/user/login", nil)
		r.RemoteAddr = remoteAddr
		for k, v := range headers {
			r.Header.Set(k, v)
		}
		return r
	}

	cases := []struct {
		name string
		req  *http.Request
		want string
	}{
		{"direct connection", newReq("10.0.0.1:54321", nil), "10.0.0.1"},
		{"x-forwarded-for single", newReq("127.0.0.1:80", map[string]string{"X-Forwarded-For": "1.2.3.4"}), "1.2.3.4"},
		{"x-forwarded-for chain", newReq("127.0.0.1:80", map[string]string{"X-Forwarded-For": "1.2.3.4, 10.0.0.1"}), "1.2.3.4"},
		{"x-real-ip", newReq("127.0.0.1:80", map[string]string{"X-Real-IP": "9.8.7.6"}), "9.8.7.6"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractIP(tc.req))
		})
	}
}

func TestFormatRetryMessage(t *testing.T) {
	assert.Equal(t, "45 second(s)", FormatRetryMessage(45))
	assert.Equal(t, "2 minute(s)", FormatRetryMessage(120))
	assert.Equal(t, "1 minute(s)", FormatRetryMessage(90))
}
