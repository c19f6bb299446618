package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimit_BurstThenThrottle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/auth/signup", RateLimit(1, 3), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		req, _ := http.NewRequest("POST", "/auth/signup", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{200, 200, 200, 429}, codes)
}

func TestRateLimit_PerClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/auth/signup", RateLimit(1, 1), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	first, _ := http.NewRequest("POST", "/auth/signup", nil)
	first.RemoteAddr = "10.0.0.1:1234"
	w1 := httptest.NewRecorder()
	r.ServeHTTP(w1, first)

	// A second client has its own bucket.
	second, _ := http.NewRequest("POST", "/auth/signup", nil)
	second.RemoteAddr = "10.0.0.2:1234"
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, second)

	assert.Equal(t, http.StatusOK, w1.Code)
	assert.Equal(t, http.StatusOK, w2.Code)
}
