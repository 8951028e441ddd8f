package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cloudcodeid/identity"
	sysconfig "cloudcodeid/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, defaultStyle identity.Style) (*gin.Engine, *identity.VersionRegistry) {
	t.Helper()
	reg := identity.NewVersionRegistry()
	router := gin.New()
	New(Options{Generator: identity.NewGenerator(reg), DefaultStyle: defaultStyle}).Register(router)
	return router, reg
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func TestHandleHeaders_GeminiCLI(t *testing.T) {
	router, _ := newTestRouter(t, "")

	w := doRequest(router, http.MethodGet, "/v1/headers?style=gemini-cli&model=gemini-2.5-pro", "")
	require.Equal(t, http.StatusOK, w.Code)

	var headers map[string]string
	decode(t, w, &headers)
	assert.Equal(t, map[string]string{
		"User-Agent":        "google-api-nodejs-client/9.15.1",
		"X-Goog-Api-Client": "gl-node/22.17.0",
		"Client-Metadata":   "ideType=IDE_UNSPECIFIED,platform=PLATFORM_UNSPECIFIED,pluginType=GEMINI",
	}, headers)
}

func TestHandleHeaders_DefaultStyle(t *testing.T) {
	router, _ := newTestRouter(t, identity.StyleAntigravity)

	w := doRequest(router, http.MethodGet, "/v1/headers", "")
	require.Equal(t, http.StatusOK, w.Code)

	var headers identity.HeaderSet
	decode(t, w, &headers)
	assert.True(t, strings.HasPrefix(headers.UserAgent, "antigravity/1.19.6 "))
	assert.NotEmpty(t, headers.GoogAPIClient)
	assert.NotEmpty(t, headers.ClientMetadata)
}

func TestHandleHeaders_InvalidStyle(t *testing.T) {
	router, _ := newTestRouter(t, "")

	w := doRequest(router, http.MethodGet, "/v1/headers?style=vscode", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_style")
}

func TestHandleFingerprints(t *testing.T) {
	router, reg := newTestRouter(t, "")
	reg.Set("1.20.0")

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/v1/fingerprints"},
		{http.MethodGet, "/v1/fingerprints/current"},
	} {
		w := doRequest(router, tc.method, tc.path, "")
		require.Equal(t, http.StatusOK, w.Code, tc.path)

		var fp identity.Fingerprint
		decode(t, w, &fp)
		assert.Contains(t, fp.UserAgent, "antigravity/1.20.0", tc.path)
		assert.NotEmpty(t, fp.DeviceID, tc.path)
	}
}

func TestHandleRefreshFingerprint(t *testing.T) {
	router, reg := newTestRouter(t, "")
	reg.Set("1.20.0")

	body := `{"deviceId":"d-1","userAgent":"antigravity/1.0.0 darwin/arm64","clientMetadata":{"platform":"MACOS"}}`
	w := doRequest(router, http.MethodPost, "/v1/fingerprints/refresh", body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Fingerprint identity.Fingerprint `json:"fingerprint"`
		Headers     identity.HeaderSet   `json:"headers"`
		Changed     bool                 `json:"changed"`
	}
	decode(t, w, &resp)
	assert.True(t, resp.Changed)
	assert.Equal(t, "antigravity/1.20.0 darwin/arm64", resp.Fingerprint.UserAgent)
	assert.Equal(t, "d-1", resp.Fingerprint.DeviceID)
	// 请求头使用更新后的 User-Agent
	assert.Equal(t, "antigravity/1.20.0 darwin/arm64", resp.Headers.UserAgent)
	assert.Contains(t, resp.Headers.ClientMetadata, `"platform":"MACOS"`)

	w = doRequest(router, http.MethodPost, "/v1/fingerprints/refresh",
		`{"userAgent":"antigravity/1.20.0 darwin/arm64"}`)
	decode(t, w, &resp)
	assert.False(t, resp.Changed)
}

func TestHandleRefreshFingerprint_BadBody(t *testing.T) {
	router, _ := newTestRouter(t, "")

	w := doRequest(router, http.MethodPost, "/v1/fingerprints/refresh", "{")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleVersion_FirstWriteWins(t *testing.T) {
	router, _ := newTestRouter(t, "")

	var resp map[string]any
	w := doRequest(router, http.MethodGet, "/v1/version", "")
	decode(t, w, &resp)
	assert.Equal(t, "1.19.6", resp["version"])
	assert.Equal(t, false, resp["locked"])

	w = doRequest(router, http.MethodPut, "/v1/version", `{"version":"v1.20.0"}`)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &resp)
	assert.Equal(t, "1.20.0", resp["version"])
	assert.Equal(t, true, resp["applied"])

	w = doRequest(router, http.MethodPut, "/v1/version", `{"version":"1.21.0"}`)
	decode(t, w, &resp)
	assert.Equal(t, "1.20.0", resp["version"])
	assert.Equal(t, false, resp["applied"])
}

func TestHandleSetVersion_Invalid(t *testing.T) {
	router, reg := newTestRouter(t, "")

	w := doRequest(router, http.MethodPut, "/v1/version", `{"version":"latest"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodPut, "/v1/version", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, reg.Locked())
}

func TestSystemInfoAndNoRoute(t *testing.T) {
	router, _ := newTestRouter(t, identity.StyleGeminiCLI)

	w := doRequest(router, http.MethodGet, "/api/system/info", "")
	require.Equal(t, http.StatusOK, w.Code)
	var info map[string]any
	decode(t, w, &info)
	assert.Equal(t, "gemini-cli", info["default_style"])
	assert.Equal(t, "1.19.6", info["client_version"])

	w = doRequest(router, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSystemInfo_ReportsSettingsWithoutToken(t *testing.T) {
	// 预先设置环境变量，避免配置文件写入的值泄漏到其他测试
	t.Setenv("DEFAULT_STYLE", "antigravity")
	t.Setenv("IDENTITY_CLIENT_TOKEN", "env-token")

	path := filepath.Join(t.TempDir(), "system_config.json")
	data := `{"default_style":"gemini-cli","client_token":"file-token"}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0600))
	_, err := sysconfig.LoadSystemConfig(path)
	require.NoError(t, err)

	router, _ := newTestRouter(t, "")
	w := doRequest(router, http.MethodGet, "/api/system/info", "")
	require.Equal(t, http.StatusOK, w.Code)

	var info struct {
		Settings map[string]any `json:"settings"`
	}
	decode(t, w, &info)
	assert.Equal(t, "gemini-cli", info.Settings["default_style"])
	assert.NotContains(t, info.Settings, "client_token")
	assert.NotContains(t, w.Body.String(), "file-token")
}
