//go:build unit
// +build unit

package v1

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"mime"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MGTheTrain/docsign/internal/domain/crypto"
	"github.com/MGTheTrain/docsign/internal/domain/keys"
	"github.com/MGTheTrain/docsign/internal/pkg/httputil"
	"github.com/MGTheTrain/docsign/internal/pkg/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testPublicKey = "17:3233"

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestKeyEntry() *keys.KeyEntry {
	return &keys.KeyEntry{
		ID:              "abc12345",
		Name:            "Alice Smith",
		Department:      "Finance",
		PublicKey:       testPublicKey,
		DateTimeCreated: time.Now(),
	}
}

func newKeyHandlerUnderTest() (KeyHandler, *MockKeyGenerationService, *MockKeyDirectoryService) {
	generation := new(MockKeyGenerationService)
	directory := new(MockKeyDirectoryService)
	return NewKeyHandler(generation, directory, crypto.DefaultKeySize), generation, directory
}

func TestKeyHandler_GenerateKeys_Success(t *testing.T) {
	handler, generation, _ := newKeyHandlerUnderTest()

	generated := &keys.GeneratedKey{
		Entry:      newTestKeyEntry(),
		PrivateKey: crypto.NewPrivateKey(big.NewInt(2753), big.NewInt(3233)),
	}
	generation.
		On("Generate", mock.Anything, "Alice Smith", "Finance", 2048).
		Return(generated, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = testutil.NewMultipartRequest(t, http.MethodPost, "/keys",
		map[string]string{"name": "Alice Smith", "department": "Finance", "key_size": "2048"})

	handler.GenerateKeys(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2753:3233", w.Body.String())
	assert.Equal(t, "application/octet-stream", w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=Alice_Smith_private.key", w.Header().Get("Content-Disposition"))
	assert.Equal(t, "abc12345", w.Header().Get("X-Key-ID"))
	generation.AssertExpectations(t)
}

func TestKeyHandler_GenerateKeys_QuotesFilename(t *testing.T) {
	handler, generation, _ := newKeyHandlerUnderTest()

	entry := newTestKeyEntry()
	entry.Name = `Dana "DJ" O'Neil; admin`
	generation.
		On("Generate", mock.Anything, entry.Name, "Finance", 2048).
		Return(&keys.GeneratedKey{Entry: entry, PrivateKey: crypto.NewPrivateKey(big.NewInt(2753), big.NewInt(3233))}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = testutil.NewMultipartRequest(t, http.MethodPost, "/keys",
		map[string]string{"name": entry.Name, "department": "Finance", "key_size": "2048"})

	handler.GenerateKeys(c)

	require.Equal(t, http.StatusOK, w.Code)
	disposition, params, err := mime.ParseMediaType(w.Header().Get("Content-Disposition"))
	require.NoError(t, err)
	assert.Equal(t, "attachment", disposition)
	assert.Equal(t, `Dana_"DJ"_O'Neil;_admin_private.key`, params["filename"])
	assert.Len(t, params, 1)
}

func TestKeyHandler_GenerateKeys_DefaultKeySize(t *testing.T) {
	handler, generation, _ := newKeyHandlerUnderTest()

	generation.
		On("Generate", mock.Anything, "Bob", "IT", crypto.DefaultKeySize).
		Return(&keys.GeneratedKey{Entry: newTestKeyEntry(), PrivateKey: crypto.NewPrivateKey(big.NewInt(7), big.NewInt(33))}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = testutil.NewMultipartRequest(t, http.MethodPost, "/keys",
		map[string]string{"name": "Bob", "department": "IT"})

	handler.GenerateKeys(c)

	assert.Equal(t, http.StatusOK, w.Code)
	generation.AssertExpectations(t)
}

func TestKeyHandler_GenerateKeys_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]string
	}{
		{"unsupported key size", map[string]string{"name": "Bob", "department": "IT", "key_size": "1000"}},
		{"missing name", map[string]string{"department": "IT"}},
		{"missing department", map[string]string{"name": "Bob"}},
		{"non numeric key size", map[string]string{"name": "Bob", "department": "IT", "key_size": "big"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, generation, _ := newKeyHandlerUnderTest()

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = testutil.NewMultipartRequest(t, http.MethodPost, "/keys", tt.fields)

			handler.GenerateKeys(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			generation.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestKeyHandler_GenerateKeys_ServiceErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("generation: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{fmt.Errorf("generation: %w", crypto.ErrInvalidKeySize), http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			handler, generation, _ := newKeyHandlerUnderTest()
			generation.On("Generate", mock.Anything, "Bob", "IT", 512).Return(nil, tt.err)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = testutil.NewMultipartRequest(t, http.MethodPost, "/keys",
				map[string]string{"name": "Bob", "department": "IT", "key_size": "512"})

			handler.GenerateKeys(c)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), "key generation failed")
		})
	}
}

func TestKeyHandler_ListDirectory_Success(t *testing.T) {
	handler, _, directory := newKeyHandlerUnderTest()
	directory.On("List", mock.Anything).Return([]*keys.KeyEntry{newTestKeyEntry()}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/directory", nil)

	handler.ListDirectory(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response DirectoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Entries, 1)
	assert.Equal(t, "abc12345", response.Entries[0].ID)
	assert.Equal(t, testPublicKey, response.Entries[0].PublicKey)
	directory.AssertExpectations(t)
}

func TestKeyHandler_ListDirectory_Empty(t *testing.T) {
	handler, _, directory := newKeyHandlerUnderTest()
	directory.On("List", mock.Anything).Return(nil, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/directory", nil)

	handler.ListDirectory(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"entries":[]}`, w.Body.String())
}

func TestKeyHandler_GetByID(t *testing.T) {
	handler, _, directory := newKeyHandlerUnderTest()
	directory.On("GetByID", mock.Anything, "abc12345").Return(newTestKeyEntry(), nil)
	directory.On("GetByID", mock.Anything, "missing1").Return(nil, keys.ErrKeyNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/directory/abc12345", nil)
	c.Params = gin.Params{gin.Param{Key: "id", Value: "abc12345"}}

	handler.GetByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Alice Smith")

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/directory/missing1", nil)
	c.Params = gin.Params{gin.Param{Key: "id", Value: "missing1"}}

	handler.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	directory.AssertExpectations(t)
}

func TestKeyHandler_Register_Success(t *testing.T) {
	handler, _, directory := newKeyHandlerUnderTest()
	directory.On("Register", mock.Anything, "Alice Smith", "Finance", testPublicKey).Return(newTestKeyEntry(), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = testutil.NewMultipartRequest(t, http.MethodPost, "/directory",
		map[string]string{"name": "Alice Smith", "department": "Finance"},
		httputil.FormFile{Field: "public_key", FileName: "alice.pub", Content: []byte(testPublicKey)})

	handler.Register(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response RegisterKeyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "abc12345", response.KeyID)
	assert.Equal(t, "Public key registered successfully", response.Message)
	directory.AssertExpectations(t)
}

func TestKeyHandler_Register_InvalidKey(t *testing.T) {
	handler, _, directory := newKeyHandlerUnderTest()
	directory.On("Register", mock.Anything, "Alice", "Finance", "garbage").
		Return(nil, fmt.Errorf("failed to parse public key: %w", crypto.ErrInvalidKeyFormat))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = testutil.NewMultipartRequest(t, http.MethodPost, "/directory",
		map[string]string{"name": "Alice", "department": "Finance"},
		httputil.FormFile{Field: "public_key", FileName: "alice.pub", Content: []byte("garbage")})

	handler.Register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid public key")
}

func TestKeyHandler_Register_MissingFile(t *testing.T) {
	handler, _, directory := newKeyHandlerUnderTest()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = testutil.NewMultipartRequest(t, http.MethodPost, "/directory",
		map[string]string{"name": "Alice", "department": "Finance"})

	handler.Register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	directory.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestKeyHandler_DeleteByID(t *testing.T) {
	handler, _, directory := newKeyHandlerUnderTest()
	directory.On("DeleteByID", mock.Anything, "abc12345").Return(nil)
	directory.On("DeleteByID", mock.Anything, "missing1").Return(keys.ErrKeyNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodDelete, "/directory/abc12345", nil)
	c.Params = gin.Params{gin.Param{Key: "id", Value: "abc12345"}}

	handler.DeleteByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Key deleted successfully")

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodDelete, "/directory/missing1", nil)
	c.Params = gin.Params{gin.Param{Key: "id", Value: "missing1"}}

	handler.DeleteByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	directory.AssertExpectations(t)
}
