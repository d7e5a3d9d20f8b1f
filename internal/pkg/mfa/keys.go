package mfa

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// HKDFKeyProvider derives per-scope AES keys from a single master key using
// HKDF-SHA256. Each (user, purpose) pair gets an independent subkey, so a
// leaked subkey does not expose any other user's seed material.
type HKDFKeyProvider struct {
	master []byte
}

// NewHKDFKeyProvider constructs a provider from master key material.
// The master key must be at least 32 bytes.
func NewHKDFKeyProvider(master []byte) (*HKDFKeyProvider, error) {
	if len(master) < aesKeyLen {
		return nil, fmt.Errorf("mfacrypto: master key must be at least %d bytes: %w", aesKeyLen, ErrInvalidKeyLength)
	}

	k := make([]byte, len(master))
	copy(k, master)

	return &HKDFKeyProvider{master: k}, nil
}

// Key derives the AES-256 key for the provided scope.
func (p *HKDFKeyProvider) Key(scope Scope) ([]byte, error) {
	if p == nil || len(p.master) == 0 {
		return nil, ErrMissingStaticKey
	}

	// Field labels keep the info string canonical and collision free.
	info := fmt.Appendf(nil, "uid=%d\npurpose=%s\n", scope.UserID, scope.Purpose)

	key := make([]byte, aesKeyLen)
	if _, err := io.ReadFull(hkdf.New(sha256.New, p.master, nil, info), key); err != nil {
		return nil, fmt.Errorf("mfacrypto: key derivation failed: %w", err)
	}

	return key, nil
}
