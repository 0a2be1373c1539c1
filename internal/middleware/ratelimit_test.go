package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func doRequest(h http.Handler, remoteAddr string) int {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/media", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimitDisabled(t *testing.T) {
	h := RateLimit(0)(okHandler())

	for i := 0; i < 100; i++ {
		assert.Equal(t, http.StatusOK, doRequest(h, "10.0.0.1:1234"))
	}
}

func TestRateLimitBlocksAfterBurst(t *testing.T) {
	// 2/min gives a burst of 2; the third immediate request must be rejected
	h := RateLimit(2)(okHandler())

	assert.Equal(t, http.StatusOK, doRequest(h, "10.0.0.1:1234"))
	assert.Equal(t, http.StatusOK, doRequest(h, "10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, doRequest(h, "10.0.0.1:1234"))
}

func TestRateLimitIsPerClient(t *testing.T) {
	h := RateLimit(2)(okHandler())

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, doRequest(h, "10.0.0.1:1111"))
	}
	assert.Equal(t, http.StatusTooManyRequests, doRequest(h, "10.0.0.1:2222"))

	// a different IP gets a fresh bucket
	assert.Equal(t, http.StatusOK, doRequest(h, "10.0.0.2:1111"))
}
