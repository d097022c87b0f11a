//go:build unit
// +build unit

package validators

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type keyRequest struct {
	KeySize int `validate:"rsakeysize"`
}

type unsignedKeyRequest struct {
	KeySize uint32 `validate:"rsakeysize"`
}

type badKeyRequest struct {
	KeySize string `validate:"rsakeysize"`
}

func TestRSAKeySizeValidation(t *testing.T) {
	v := validator.New()
	require.NoError(t, Register(v))

	tests := []struct {
		size    int
		wantErr bool
	}{
		{512, false},
		{1024, false},
		{2048, false},
		{3072, false},
		{4096, false},
		{0, true},
		{256, true},
		{1023, true},
		{8192, true},
		{-1024, true},
	}

	for _, tt := range tests {
		err := v.Struct(keyRequest{KeySize: tt.size})
		if tt.wantErr {
			assert.Error(t, err, "size %d", tt.size)
		} else {
			assert.NoError(t, err, "size %d", tt.size)
		}
		assert.Equal(t, !tt.wantErr, IsSupportedRSAKeySize(tt.size))
	}
}

func TestRSAKeySizeValidation_UnsignedAndUnsupportedKinds(t *testing.T) {
	v := validator.New()
	require.NoError(t, Register(v))

	assert.NoError(t, v.Struct(unsignedKeyRequest{KeySize: 2048}))
	assert.Error(t, v.Struct(unsignedKeyRequest{KeySize: 100}))
	assert.Error(t, v.Struct(badKeyRequest{KeySize: "2048"}))
}
