package mfa

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey() []byte {
	return bytes.Repeat([]byte{0x42}, 32)
}

func TestAESGCMEncryptor_RoundTrip(t *testing.T) {
	enc := NewAESGCMEncryptor(StaticKeyProvider{KeyBytes: testKey()})
	scope := Scope{UserID: 7, Purpose: PurposeOTPSeed}

	ct, err := enc.Encrypt([]byte("JBSWY3DPEHPK3PXP"), scope)
	require.NoError(t, err)
	require.NotEmpty(t, ct)

	pt, err := enc.Decrypt(ct, scope)
	require.NoError(t, err)
	assert.Equal(t, []byte("JBSWY3DPEHPK3PXP"), pt)
}

func TestAESGCMEncryptor_ScopeBinding(t *testing.T) {
	enc := NewAESGCMEncryptor(StaticKeyProvider{KeyBytes: testKey()})

	ct, err := enc.Encrypt([]byte("seed"), Scope{UserID: 7, Purpose: PurposeOTPSeed})
	require.NoError(t, err)

	_, err = enc.Decrypt(ct, Scope{UserID: 8, Purpose: PurposeOTPSeed})
	assert.Error(t, err, "ciphertext must not decrypt for another user")

	_, err = enc.Decrypt(ct, Scope{UserID: 7, Purpose: Purpose("other")})
	assert.Error(t, err, "ciphertext must not decrypt for another purpose")
}

func TestAESGCMEncryptor_TamperedCiphertext(t *testing.T) {
	enc := NewAESGCMEncryptor(StaticKeyProvider{KeyBytes: testKey()})
	scope := Scope{UserID: 7, Purpose: PurposeOTPSeed}

	ct, err := enc.Encrypt([]byte("seed"), scope)
	require.NoError(t, err)

	ct[len(ct)-1] ^= 0x01
	_, err = enc.Decrypt(ct, scope)
	assert.Error(t, err)
}

func TestAESGCMEncryptor_EmptyPlaintext(t *testing.T) {
	enc := NewAESGCMEncryptor(StaticKeyProvider{KeyBytes: testKey()})

	_, err := enc.Encrypt(nil, Scope{UserID: 1, Purpose: PurposeOTPSeed})
	assert.ErrorIs(t, err, ErrPlaintextEmpty)
}
