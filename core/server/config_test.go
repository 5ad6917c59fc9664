package server_test

import (
	"testing"
	"time"

	"media-sync/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Address(t *testing.T) {
	tests := []struct {
		name string
		cfg  server.Config
		want string
	}{
		{"PortOnly", server.Config{Port: "8080"}, ":8080"},
		{"ColonPort", server.Config{Port: ":9090"}, ":9090"},
		{"HostAndPort", server.Config{Host: "127.0.0.1", Port: "8080"}, "127.0.0.1:8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.Address())
		})
	}
}

func TestConfig_AuthAndShutdown(t *testing.T) {
	assert.False(t, server.Config{ApiKey: "  "}.AuthEnabled())
	assert.True(t, server.Config{ApiKey: "k"}.AuthEnabled())

	assert.Equal(t, 10*time.Second, server.Config{}.ShutdownTimeout())
	assert.Equal(t, 3*time.Second, server.Config{ShutdownTimeoutSeconds: 3}.ShutdownTimeout())
}
