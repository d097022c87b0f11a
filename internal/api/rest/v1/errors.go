package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/MGTheTrain/docsign/internal/domain/crypto"
	"github.com/MGTheTrain/docsign/internal/domain/keys"
	"github.com/MGTheTrain/docsign/internal/pkg/httputil"

	"github.com/gin-gonic/gin"
)

// statusFor maps service errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, keys.ErrKeyNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, crypto.ErrInvalidKeyFormat),
		errors.Is(err, crypto.ErrInvalidSignatureFormat),
		errors.Is(err, crypto.ErrInvalidKeySize),
		errors.Is(err, crypto.ErrKeyTooSmall),
		errors.Is(err, crypto.ErrMissingKey),
		errors.Is(err, crypto.ErrOutOfRange),
		errors.Is(err, crypto.ErrUnsupportedHashAlgorithm),
		errors.Is(err, keys.ErrInvalidKeyEntry),
		errors.Is(err, httputil.ErrFileTooLarge):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(ctx *gin.Context, action string, err error) {
	var errorResponse ErrorResponse
	errorResponse.Message = fmt.Sprintf("%s: %v", action, err.Error())
	ctx.JSON(statusFor(err), errorResponse)
}

func writeBadRequest(ctx *gin.Context, format string, args ...interface{}) {
	var errorResponse ErrorResponse
	errorResponse.Message = fmt.Sprintf(format, args...)
	ctx.JSON(http.StatusBadRequest, errorResponse)
}

// readFormFile reads a required file part of the request
func readFormFile(ctx *gin.Context, field string) ([]byte, string, error) {
	header, err := ctx.FormFile(field)
	if err != nil {
		return nil, "", fmt.Errorf("missing file %q: %w", field, err)
	}

	data, err := httputil.ReadFileHeader(header)
	if err != nil {
		return nil, "", err
	}
	return data, header.Filename, nil
}
