package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MGTheTrain/docsign/internal/pkg/httputil"
	"github.com/stretchr/testify/require"
)

// NewMultipartRequest builds a multipart/form-data request for handler tests
func NewMultipartRequest(t *testing.T, method, url string, fields map[string]string, files ...httputil.FormFile) *http.Request {
	t.Helper()

	body, contentType, err := httputil.NewMultipartBody(fields, files)
	require.NoError(t, err)

	req := httptest.NewRequest(method, url, body)
	req.Header.Set("Content-Type", contentType)
	return req
}
