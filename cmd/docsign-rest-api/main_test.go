//go:build unit
// +build unit

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	v1 "github.com/MGTheTrain/docsign/internal/api/rest/v1"
	"github.com/MGTheTrain/docsign/internal/pkg/config"
	"github.com/MGTheTrain/docsign/internal/pkg/httputil"
	"github.com/MGTheTrain/docsign/internal/pkg/testutil"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.RestConfig{
		Port:   "8080",
		Logger: config.LoggerSettings{LogLevel: config.LogLevelInfo, LogType: config.LogTypeConsole},
		KeyGeneration: config.KeyGenerationSettings{
			DefaultKeySize: 512,
			Timeout:        time.Minute,
		},
		Signature: config.SignatureSettings{HashAlgorithm: "sha256"},
		CORS:      config.CORSSettings{AllowedOrigins: []string{"*"}},
	}
	require.NoError(t, cfg.Validate())

	registry := prometheus.NewRegistry()
	deps, err := initializeDependencies(cfg, registry, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	return newRouter(cfg, deps, registry)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_GenerateSignVerify(t *testing.T) {
	r := newTestRouter(t)

	w := serve(r, testutil.NewMultipartRequest(t, http.MethodPost, v1.BasePath+"/keys",
		map[string]string{"name": "Alice Smith", "department": "Finance"}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	privateKey := w.Body.Bytes()
	keyID := w.Header().Get("X-Key-ID")
	require.Len(t, keyID, 8)

	document := httputil.FormFile{Field: "file", FileName: "report.txt", Content: []byte("annual report")}

	w = serve(r, testutil.NewMultipartRequest(t, http.MethodPost, v1.BasePath+"/sign", nil,
		document,
		httputil.FormFile{Field: "private_key", FileName: "Alice_Smith_private.key", Content: privateKey}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "attachment; filename=report.txt.sig", w.Header().Get("Content-Disposition"))
	signature := w.Body.Bytes()

	w = serve(r, testutil.NewMultipartRequest(t, http.MethodPost, v1.BasePath+"/verify",
		map[string]string{"key_id": keyID},
		document,
		httputil.FormFile{Field: "signature", FileName: "report.txt.sig", Content: signature}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var response v1.VerifyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Valid)
	require.NotNil(t, response.Signer)
	assert.Equal(t, "Alice Smith (Finance)", *response.Signer)

	w = serve(r, testutil.NewMultipartRequest(t, http.MethodPost, v1.BasePath+"/verify",
		map[string]string{"key_id": keyID},
		httputil.FormFile{Field: "file", FileName: "report.txt", Content: []byte("annual report v2")},
		httputil.FormFile{Field: "signature", FileName: "report.txt.sig", Content: signature}))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.False(t, response.Valid)
	assert.Nil(t, response.Signer)
}

func TestRouter_Directory(t *testing.T) {
	r := newTestRouter(t)

	w := serve(r, testutil.NewMultipartRequest(t, http.MethodPost, v1.BasePath+"/directory",
		map[string]string{"name": "Bob", "department": "IT"},
		httputil.FormFile{Field: "public_key", FileName: "bob.pub", Content: []byte("17:3233")}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var registered v1.RegisterKeyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))

	req, _ := http.NewRequest(http.MethodGet, v1.BasePath+"/directory", nil)
	w = serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)

	var directory v1.DirectoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &directory))
	require.Len(t, directory.Entries, 1)
	assert.Equal(t, registered.KeyID, directory.Entries[0].ID)

	req, _ = http.NewRequest(http.MethodDelete, v1.BasePath+"/directory/"+registered.KeyID, nil)
	assert.Equal(t, http.StatusOK, serve(r, req).Code)

	req, _ = http.NewRequest(http.MethodDelete, v1.BasePath+"/directory/"+registered.KeyID, nil)
	assert.Equal(t, http.StatusNotFound, serve(r, req).Code)
}

func TestRouter_Metrics(t *testing.T) {
	r := newTestRouter(t)

	req, _ := http.NewRequest(http.MethodGet, v1.BasePath+"/health", nil)
	require.Equal(t, http.StatusOK, serve(r, req).Code)

	req, _ = http.NewRequest(http.MethodGet, "/metrics", nil)
	w := serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "docsign_http_requests_total")
}

func TestAllowsAnyOrigin(t *testing.T) {
	assert.True(t, allowsAnyOrigin([]string{"*"}))
	assert.True(t, allowsAnyOrigin([]string{"https://example.com", "*"}))
	assert.False(t, allowsAnyOrigin([]string{"https://example.com"}))
}
