package keys

import (
	"errors"
	"fmt"
	"time"

	"github.com/MGTheTrain/docsign/internal/domain/crypto"

	"github.com/go-playground/validator/v10"
)

// KeyIDLength is the length of a directory identifier.
const KeyIDLength = 8

var (
	// ErrKeyNotFound is returned when no directory entry has the requested ID.
	ErrKeyNotFound = errors.New("key not found")

	// ErrInvalidKeyEntry is returned when an entry fails validation.
	ErrInvalidKeyEntry = errors.New("invalid key entry")

	// ErrKeyIDConflict is returned when an entry with the same ID already exists.
	ErrKeyIDConflict = errors.New("key id already exists")
)

// KeyEntry entity
type KeyEntry struct {
	ID              string    `validate:"required,len=8,alphanum"`
	Name            string    `validate:"required,min=1,max=255"`
	Department      string    `validate:"required,min=1,max=255"`
	PublicKey       string    `validate:"required"`
	DateTimeCreated time.Time `validate:"required"`
}

// Signer returns the label shown for a verified signature, "<name> (<department>)".
func (k *KeyEntry) Signer() string {
	return fmt.Sprintf("%s (%s)", k.Name, k.Department)
}

// ParsedPublicKey decodes the stored "e:n" key string.
func (k *KeyEntry) ParsedPublicKey() (*crypto.PublicKey, error) {
	return crypto.ParsePublicKey(k.PublicKey)
}

// Validate for validating KeyEntry struct
func (k *KeyEntry) Validate() error {
	validate := validator.New()

	err := validate.Struct(k)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("%w: %v", ErrInvalidKeyEntry, messages)
		}
		return fmt.Errorf("%w: %v", ErrInvalidKeyEntry, err)
	}

	if _, err := k.ParsedPublicKey(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidKeyEntry, err)
	}

	return nil
}
