package uid

import (
	"crypto/rand"
	"encoding/base64"
)

// tokenByteLen is the raw entropy per token: 32 bytes = 256 bits.
const tokenByteLen = 32

// OpaqueToken generates high-entropy, URL-safe credential strings.
//
// Tokens are read from crypto/rand and carry no embedded structure: nothing
// about the user, the node, or the time can be derived from a token value.
type OpaqueToken struct{}

// NewOpaqueToken returns an OpaqueToken generator.
func NewOpaqueToken() *OpaqueToken {
	return &OpaqueToken{}
}

// Generate returns a new 256-bit token encoded with unpadded base64url.
//
// If the system random source fails the process cannot safely issue
// credentials, so this panics rather than degrade to weaker output.
func (o *OpaqueToken) Generate() string {
	raw := make([]byte, tokenByteLen)
	if _, err := rand.Read(raw); err != nil {
		panic("uid: system random source unavailable: " + err.Error())
	}

	return base64.RawURLEncoding.EncodeToString(raw)
}
