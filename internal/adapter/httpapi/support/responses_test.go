package support

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"cloudcodeid/identity"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	errorObj, ok := response["error"].(map[string]any)
	require.True(t, ok)
	return errorObj
}

func newTestContext(w *httptest.ResponseRecorder) *gin.Context {
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/v1/headers", nil)
	return c
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name         string
		statusCode   int
		format       string
		args         []any
		expectedCode string
	}{
		{"BadRequest错误", http.StatusBadRequest, "无效的请求参数", nil, "bad_request"},
		{"Unauthorized错误", http.StatusUnauthorized, "认证失败", nil, "unauthorized"},
		{"NotFound错误", http.StatusNotFound, "未找到", nil, "not_found"},
		{"InternalServerError错误", http.StatusInternalServerError, "服务器内部错误: %v", []any{"编码失败"}, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			RespondError(c, tt.statusCode, tt.format, tt.args...)

			assert.Equal(t, tt.statusCode, w.Code)
			errorObj := decodeError(t, w)
			assert.Equal(t, tt.expectedCode, errorObj["code"])
			assert.NotEmpty(t, errorObj["message"])
		})
	}
}

func TestHandleIdentityError_InvalidStyle(t *testing.T) {
	w := httptest.NewRecorder()
	c := newTestContext(w)

	HandleIdentityError(c, fmt.Errorf("%w: %q", identity.ErrInvalidStyle, "vscode"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_style", decodeError(t, w)["code"])
}

func TestHandleIdentityError_Other(t *testing.T) {
	w := httptest.NewRecorder()
	c := newTestContext(w)

	HandleIdentityError(c, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal_error", decodeError(t, w)["code"])
}
