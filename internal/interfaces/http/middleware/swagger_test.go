package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newSwaggerRouter(cfg SwaggerConfig) *gin.Engine {
	router := gin.New()
	router.GET("/swagger/*any", SwaggerProtection(cfg), func(c *gin.Context) {
		c.String(http.StatusOK, "docs")
	})
	return router
}

func swaggerRequest(router *gin.Engine, remoteAddr string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	req.RemoteAddr = remoteAddr
	router.ServeHTTP(w, req)
	return w.Code
}

func TestSwaggerProtection(t *testing.T) {
	tests := []struct {
		name       string
		cfg        SwaggerConfig
		remoteAddr string
		want       int
	}{
		{"disabled", SwaggerConfig{Enabled: false}, "127.0.0.1:1234", http.StatusNotFound},
		{"no allow list", SwaggerConfig{Enabled: true}, "203.0.113.9:1234", http.StatusOK},
		{"exact ip allowed", SwaggerConfig{Enabled: true, AllowedIPs: []string{"127.0.0.1"}}, "127.0.0.1:1234", http.StatusOK},
		{"exact ip denied", SwaggerConfig{Enabled: true, AllowedIPs: []string{"127.0.0.1"}}, "192.168.1.1:1234", http.StatusForbidden},
		{"cidr allowed", SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.0/8"}}, "10.20.30.40:1234", http.StatusOK},
		{"cidr denied", SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.0/8"}}, "11.0.0.1:1234", http.StatusForbidden},
		{"garbage entries deny", SwaggerConfig{Enabled: true, AllowedIPs: []string{"not-an-ip"}}, "127.0.0.1:1234", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, swaggerRequest(newSwaggerRouter(tt.cfg), tt.remoteAddr))
		})
	}
}

func TestIPAllowed(t *testing.T) {
	prefixes := parseAllowList([]string{"::1", "192.168.0.0/16"})

	assert.True(t, ipAllowed("::1", prefixes))
	assert.True(t, ipAllowed("192.168.4.2", prefixes))
	assert.True(t, ipAllowed("::ffff:192.168.4.2", prefixes))
	assert.False(t, ipAllowed("172.16.0.1", prefixes))
	assert.False(t, ipAllowed("", prefixes))
}
