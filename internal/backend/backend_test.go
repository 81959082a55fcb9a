package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapOID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tag     string
		wantOID uint32
		wantLen int16
	}{
		{"int", 23, 4},
		{"INT8", 23, 4},
		{"bigint", 23, 4},
		{"text", 19, -1},
		{"TEXT", 19, -1},
		{"varchar_text", 19, -1},
	}

	for _, tt := range tests {
		oid, name, length, err := MapOID(tt.tag)
		assert.NoError(t, err, tt.tag)
		assert.Equal(t, tt.wantOID, oid, tt.tag)
		assert.Equal(t, tt.wantLen, length, tt.tag)
		assert.NotEmpty(t, name, tt.tag)
	}
}

func TestMapOID_Unsupported(t *testing.T) {
	t.Parallel()

	_, _, _, err := MapOID("float8")
	assert.Error(t, err)

	var unsupported ErrUnsupportedType
	assert.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "float8", unsupported.Tag)
}
