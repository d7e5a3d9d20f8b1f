package mfa

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHKDFKeyProvider_RejectsShortMaster(t *testing.T) {
	_, err := NewHKDFKeyProvider(bytes.Repeat([]byte{0x01}, 16))
	assert.Error(t, err)
}

func TestHKDFKeyProvider_Deterministic(t *testing.T) {
	p, err := NewHKDFKeyProvider(testKey())
	require.NoError(t, err)

	scope := Scope{UserID: 7, Purpose: PurposeOTPSeed}
	k1, err := p.Key(scope)
	require.NoError(t, err)
	k2, err := p.Key(scope)
	require.NoError(t, err)

	assert.Len(t, k1, 32)
	assert.Equal(t, k1, k2)
}

func TestHKDFKeyProvider_KeysDifferPerScope(t *testing.T) {
	p, err := NewHKDFKeyProvider(testKey())
	require.NoError(t, err)

	base, err := p.Key(Scope{UserID: 7, Purpose: PurposeOTPSeed})
	require.NoError(t, err)

	otherUser, err := p.Key(Scope{UserID: 8, Purpose: PurposeOTPSeed})
	require.NoError(t, err)
	assert.NotEqual(t, base, otherUser)

	otherPurpose, err := p.Key(Scope{UserID: 7, Purpose: Purpose("other")})
	require.NoError(t, err)
	assert.NotEqual(t, base, otherPurpose)
}

func TestHKDFKeyProvider_WorksWithEncryptor(t *testing.T) {
	p, err := NewHKDFKeyProvider(testKey())
	require.NoError(t, err)

	enc := NewAESGCMEncryptor(p)
	scope := Scope{UserID: 99, Purpose: PurposeOTPSeed}

	ct, err := enc.Encrypt([]byte("seed material"), scope)
	require.NoError(t, err)

	pt, err := enc.Decrypt(ct, scope)
	require.NoError(t, err)
	assert.Equal(t, []byte("seed material"), pt)
}
