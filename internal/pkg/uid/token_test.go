package uid

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpaqueToken_Generate(t *testing.T) {
	gen := NewOpaqueToken()

	token := gen.Generate()
	raw, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err, "token must be cookie-safe base64url without padding")
	assert.Len(t, raw, 32)
}

func TestOpaqueToken_GenerateUnique(t *testing.T) {
	gen := NewOpaqueToken()

	seen := make(map[string]struct{})
	for range 1000 {
		token := gen.Generate()
		_, dup := seen[token]
		require.False(t, dup, "tokens must not repeat")
		seen[token] = struct{}{}
	}
}
