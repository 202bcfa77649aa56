package router

import (
	"fmt"
	"html"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"typejson_demo/internal/config"
	"typejson_demo/internal/controller"
	"typejson_demo/internal/middleware"
	"typejson_demo/internal/model"
	"typejson_demo/internal/service"
	"typejson_demo/pkg/typejson"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ==================== 测试辅助 ====================

func setupTestRouter(maxInputBytes int64) *gin.Engine {
	reg := typejson.NewRegistry()
	model.RegisterReachableTypes(reg)
	svc := service.NewPageService(typejson.NewDecoder(reg, typejson.Auto), 5*time.Second)

	return SetupRouter(
		&Controllers{Page: controller.NewPageController(svc)},
		zap.NewNop(),
		config.ServerConfig{MaxInputBytes: maxInputBytes},
	)
}

func submit(r http.Handler, path, input string) *httptest.ResponseRecorder {
	form := url.Values{"JsonInput": {input}}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ==================== 测试用例 ====================

func TestGetContainsSamplePayload(t *testing.T) {
	r := setupTestRouter(64 << 10)

	for _, path := range []string{"/", "/Index"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

		require.Equal(t, http.StatusOK, w.Code, path)
		body := w.Body.String()
		assert.Contains(t, body, `<textarea name="JsonInput"`, path)
		assert.Contains(t, body, html.EscapeString(service.SamplePayload), path)
		assert.NotContains(t, body, "Deserialized type:", path)
		assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID), path)
	}
}

func TestPostRendersResultType(t *testing.T) {
	r := setupTestRouter(64 << 10)

	w := submit(r, "/", service.SamplePayload)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Deserialized type: <code>typejson_demo/internal/model.ProcessStartInfo</code>")
	assert.Contains(t, body, html.EscapeString(service.SamplePayload))
	assert.NotContains(t, body, `class="error"`)
}

func TestPostRendersError(t *testing.T) {
	r := setupTestRouter(64 << 10)

	w := submit(r, "/Index", `{"$type":"System.Uri","OriginalString":"relative/only"}`)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `<p class="error">UriFormatError: `)
	assert.NotContains(t, body, "Deserialized type:")
}

func TestPostEmptyRendersNoOutput(t *testing.T) {
	r := setupTestRouter(64 << 10)

	w := submit(r, "/", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.NotContains(t, body, "Deserialized type:")
	assert.NotContains(t, body, `class="error"`)
}

func TestPostOversizedInputRejected(t *testing.T) {
	r := setupTestRouter(32)

	w := submit(r, "/", strings.Repeat("x", 1024))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `class="error"`)
}

func TestPostPerformsExternalEffect(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("需要 touch")
	}
	r := setupTestRouter(64 << 10)

	marker := filepath.Join(t.TempDir(), "via-http")
	w := submit(r, "/", fmt.Sprintf(`{
		"$type": "System.Windows.Data.ObjectDataProvider, PresentationFramework",
		"MethodName": "Start",
		"ObjectInstance": {
			"$type": "System.Diagnostics.Process, System",
			"StartInfo": {"FileName": "touch", "ArgumentList": [%q]}
		}
	}`, marker))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "typejson_demo/internal/model.ObjectDataProvider")

	_, err := os.Stat(marker)
	assert.NoError(t, err)
}
