package v1

import (
	"errors"
	"fmt"
	"time"

	"github.com/MGTheTrain/docsign/internal/pkg/validators"

	"github.com/go-playground/validator/v10"
)

// GenerateKeyRequest is the form accepted by POST /keys
type GenerateKeyRequest struct {
	Name       string `form:"name" validate:"required,min=1,max=255"`
	Department string `form:"department" validate:"required,min=1,max=255"`
	KeySize    int    `form:"key_size" validate:"rsakeysize"`
}

// Validate for validating GenerateKeyRequest struct
func (r *GenerateKeyRequest) Validate() error {
	return validateStruct(r)
}

// RegisterKeyRequest holds the form fields of POST /directory. The public key arrives as a file part.
type RegisterKeyRequest struct {
	Name       string `form:"name" validate:"required,min=1,max=255"`
	Department string `form:"department" validate:"required,min=1,max=255"`
}

// Validate for validating RegisterKeyRequest struct
func (r *RegisterKeyRequest) Validate() error {
	return validateStruct(r)
}

// HashRequest holds the form fields of POST /hash
type HashRequest struct {
	Algorithm string `form:"algorithm" validate:"omitempty,oneof=md5 sha256"`
}

// Validate for validating HashRequest struct
func (r *HashRequest) Validate() error {
	return validateStruct(r)
}

func validateStruct(s interface{}) error {
	validate := validator.New()
	if err := validators.Register(validate); err != nil {
		return err
	}

	err := validate.Struct(s)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// KeyEntryResponse is a public key directory entry
type KeyEntryResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Department      string    `json:"department"`
	PublicKey       string    `json:"public_key"`
	DateTimeCreated time.Time `json:"created_at"`
}

// DirectoryResponse lists the directory entries
type DirectoryResponse struct {
	Entries []KeyEntryResponse `json:"entries"`
}

// RegisterKeyResponse is returned after a public key was added to the directory
type RegisterKeyResponse struct {
	Message string `json:"message"`
	KeyID   string `json:"key_id"`
}

// VerifyResponse is the outcome of POST /verify
type VerifyResponse struct {
	Valid   bool    `json:"valid"`
	Message string  `json:"message"`
	Signer  *string `json:"signer"`
}

// HashResponse carries a hex digest
type HashResponse struct {
	Algorithm string `json:"algorithm"`
	Digest    string `json:"digest"`
}

// HealthResponse describes the running service
type HealthResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// InfoResponse carries an informational message
type InfoResponse struct {
	Message string `json:"message"`
}

// ErrorResponse carries an error message
type ErrorResponse struct {
	Message string `json:"message"`
}
