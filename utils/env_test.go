package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDebugMode(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		expected bool
	}{
		{"DEBUG=true", map[string]string{"DEBUG": "true"}, true},
		{"DEBUG=1", map[string]string{"DEBUG": "1"}, true},
		{"LOG_LEVEL大写", map[string]string{"LOG_LEVEL": "DEBUG"}, true},
		{"GIN_MODE", map[string]string{"GIN_MODE": "debug"}, true},
		{"全部未设置", map[string]string{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DEBUG", "")
			t.Setenv("LOG_LEVEL", "")
			t.Setenv("GIN_MODE", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			assert.Equal(t, tt.expected, IsDebugMode())
		})
	}
}

func TestGetEnvWithDefault(t *testing.T) {
	t.Setenv("TEST_KEY", "")
	assert.Equal(t, "default", GetEnvWithDefault("TEST_KEY", "default"))

	t.Setenv("TEST_KEY", "test_value")
	assert.Equal(t, "test_value", GetEnvWithDefault("TEST_KEY", "default"))
}

func TestGetEnvBool(t *testing.T) {
	for _, value := range []string{"true", "1", "yes", "on", "TRUE", "  true  "} {
		t.Setenv("TEST_BOOL", value)
		assert.True(t, GetEnvBool("TEST_BOOL"), "Value: %s", value)
	}
	for _, value := range []string{"false", "0", "no", "off", "invalid", ""} {
		t.Setenv("TEST_BOOL", value)
		assert.False(t, GetEnvBool("TEST_BOOL"), "Value: %s", value)
	}
}
