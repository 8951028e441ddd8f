package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func clearProxyEnv(t *testing.T) {
	for _, key := range ProxyEnvKeys {
		t.Setenv(key, "")
	}
}

func TestProxyURL_Precedence(t *testing.T) {
	clearProxyEnv(t)
	assert.Empty(t, ProxyURL())

	t.Setenv("http_proxy", "http://lower-http:3128")
	assert.Equal(t, "http://lower-http:3128", ProxyURL())

	t.Setenv("HTTP_PROXY", "http://upper-http:3128")
	assert.Equal(t, "http://upper-http:3128", ProxyURL())

	t.Setenv("HTTPS_PROXY", "http://upper-https:3128")
	assert.Equal(t, "http://upper-https:3128", ProxyURL())
}

func TestIsStealthModeEnabled(t *testing.T) {
	for _, v := range []string{"1", "true", "YES", " on "} {
		t.Setenv("STEALTH_MODE", v)
		assert.True(t, IsStealthModeEnabled(), v)
	}
	t.Setenv("STEALTH_MODE", "off")
	assert.False(t, IsStealthModeEnabled())
}

func TestHTTP2Mode(t *testing.T) {
	t.Setenv("STEALTH_HTTP2_MODE", "FORCE")
	assert.Equal(t, HTTP2ModeForce, HTTP2Mode())

	t.Setenv("STEALTH_HTTP2_MODE", "bogus")
	assert.Equal(t, HTTP2ModeAuto, HTTP2Mode())
}

func TestDefaultStyle(t *testing.T) {
	t.Setenv("DEFAULT_STYLE", "")
	assert.Equal(t, "antigravity", DefaultStyle())

	t.Setenv("DEFAULT_STYLE", " gemini-cli ")
	assert.Equal(t, "gemini-cli", DefaultStyle())
}

func TestConfiguredVersion(t *testing.T) {
	t.Setenv("ANTIGRAVITY_VERSION", " 1.20.0\n")
	assert.Equal(t, "1.20.0", ConfiguredVersion())
}
