package validators

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// RSAKeySizeTag is the struct tag that triggers RSAKeySizeValidation.
const RSAKeySizeTag = "rsakeysize"

// supportedRSAKeySizes lists the modulus sizes in bits accepted at the API boundary.
var supportedRSAKeySizes = map[int64]struct{}{
	512:  {},
	1024: {},
	2048: {},
	3072: {},
	4096: {},
}

// RSAKeySizeValidation accepts signed or unsigned integer fields holding a supported RSA modulus size.
func RSAKeySizeValidation(fl validator.FieldLevel) bool {
	field := fl.Field()

	var size int64
	switch {
	case field.CanInt():
		size = field.Int()
	case field.CanUint():
		size = int64(field.Uint())
	default:
		return false
	}

	_, ok := supportedRSAKeySizes[size]
	return ok
}

// Register installs the custom validations on v.
func Register(v *validator.Validate) error {
	if err := v.RegisterValidation(RSAKeySizeTag, RSAKeySizeValidation); err != nil {
		return fmt.Errorf("failed to register %s validation: %w", RSAKeySizeTag, err)
	}
	return nil
}

// IsSupportedRSAKeySize reports whether bits is one of the accepted modulus sizes.
func IsSupportedRSAKeySize(bits int) bool {
	_, ok := supportedRSAKeySizes[int64(bits)]
	return ok
}
