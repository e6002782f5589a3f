package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/zetafinance/zeta/config"
)

func TestSecretKeyAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name          string
		clientKey     string
		expectedCode  int
		expectedError string
		setupConfig   func() *config.Configuration
	}{
		{
			name:      "Valid secret key",
			clientKey: "master-key",
			setupConfig: func() *config.Configuration {
				return &config.Configuration{
					Server: config.ServerConfig{
						Secure:    true,
						SecretKey: "master-key",
					},
				}
			},
			expectedCode: http.StatusOK,
		},
		{
			name:      "Invalid secret key",
			clientKey: "wrong-key",
			setupConfig: func() *config.Configuration {
				return &config.Configuration{
					Server: config.ServerConfig{
						Secure:    true,
						SecretKey: "master-key",
					},
				}
			},
			expectedCode:  http.StatusUnauthorized,
			expectedError: "Invalid secret key",
		},
		{
			name:      "Missing secret key",
			clientKey: "",
			setupConfig: func() *config.Configuration {
				return &config.Configuration{
					Server: config.ServerConfig{
						Secure:    true,
						SecretKey: "master-key",
					},
				}
			},
			expectedCode:  http.StatusUnauthorized,
			expectedError: "Missing secret key",
		},
		{
			name:      "Secret key not configured",
			clientKey: "any-key",
			setupConfig: func() *config.Configuration {
				return &config.Configuration{
					Server: config.ServerConfig{
						Secure: true,
					},
				}
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Secret key is not configured",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config.ConfigStore.Store(tt.setupConfig())

			router := gin.New()
			router.GET("/accounts", SecretKeyAuthMiddleware(), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", "/accounts", nil)
			if tt.clientKey != "" {
				req.Header.Set("X-Zeta-Key", tt.clientKey)
			}

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
		})
	}
}

func TestRateLimitMiddleware_Disabled(t *testing.T) {
	gin.SetMode(gin.TestMode)

	conf := &config.Configuration{}
	router := gin.New()
	router.GET("/accounts", RateLimitMiddleware(conf), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// No limiter settings means every request passes
	for i := 0; i < 10; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/accounts", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimitMiddleware_LimitsBursts(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rps := 1.0
	burst := 2
	cleanup := 60
	conf := &config.Configuration{
		RateLimit: config.RateLimitConfig{
			RequestsPerSecond:  &rps,
			Burst:              &burst,
			CleanupIntervalSec: &cleanup,
		},
	}

	router := gin.New()
	router.GET("/accounts", RateLimitMiddleware(conf), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/accounts", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, http.StatusOK, codes[0])
	assert.Equal(t, http.StatusOK, codes[1])
	assert.Contains(t, codes, http.StatusTooManyRequests)
}
