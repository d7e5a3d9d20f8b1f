package otp

import (
	"testing"
	"time"

	libOTP "github.com/pquerna/otp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "JBSWY3DPEHPK3PXP" // base32, fixed for determinism

func TestTOTP_ValidateCurrentStep(t *testing.T) {
	totp := NewTOTP("tfabit", 30, 1, libOTP.DigitsSix)
	at := time.UnixMilli(1700000000000).UTC()

	code, err := totp.GenerateCode(testSecret, at)
	require.NoError(t, err)
	require.Len(t, code, 6)

	assert.True(t, totp.Validate(code, testSecret, at))
}

func TestTOTP_ValidateSkewWindow(t *testing.T) {
	totp := NewTOTP("tfabit", 30, 1, libOTP.DigitsSix)
	at := time.UnixMilli(1700000000000).UTC()

	tests := []struct {
		name   string
		offset time.Duration
		want   bool
	}{
		{name: "previous step accepted", offset: -30 * time.Second, want: true},
		{name: "next step accepted", offset: 30 * time.Second, want: true},
		{name: "two steps back rejected", offset: -60 * time.Second, want: false},
		{name: "two steps ahead rejected", offset: 60 * time.Second, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			code, err := totp.GenerateCode(testSecret, at.Add(tc.offset))
			require.NoError(t, err)

			assert.Equal(t, tc.want, totp.Validate(code, testSecret, at))
		})
	}
}

func TestTOTP_ValidateWindowIsSymmetric(t *testing.T) {
	// A code from step N verifies at N±1 and nowhere further.
	totp := NewTOTP("tfabit", 30, 1, libOTP.DigitsSix)
	at := time.UnixMilli(1700000000000).UTC()

	code, err := totp.GenerateCode(testSecret, at)
	require.NoError(t, err)

	assert.True(t, totp.Validate(code, testSecret, at.Add(-30*time.Second)))
	assert.True(t, totp.Validate(code, testSecret, at.Add(30*time.Second)))
	assert.False(t, totp.Validate(code, testSecret, at.Add(90*time.Second)))
}

func TestTOTP_ValidateRejectsGarbage(t *testing.T) {
	totp := NewTOTP("tfabit", 30, 1, libOTP.DigitsSix)
	at := time.Now()

	assert.False(t, totp.Validate("abcdef", testSecret, at))
	assert.False(t, totp.Validate("", testSecret, at))
	assert.False(t, totp.Validate("12345", testSecret, at))
}

func TestNewTOTP_Defaults(t *testing.T) {
	totp := NewTOTP("tfabit", 0, -1, libOTP.Digits(99))

	assert.Equal(t, uint(30), totp.period)
	assert.Equal(t, uint(1), totp.skew)
	assert.Equal(t, libOTP.DigitsSix, totp.digits)
}

func TestTOTP_ValidateZeroSkew(t *testing.T) {
	totp := NewTOTP("tfabit", 30, 0, libOTP.DigitsSix)
	at := time.UnixMilli(1700000000000).UTC()

	code, err := totp.GenerateCode(testSecret, at)
	require.NoError(t, err)

	assert.True(t, totp.Validate(code, testSecret, at))
	assert.False(t, totp.Validate(code, testSecret, at.Add(-30*time.Second)))
	assert.False(t, totp.Validate(code, testSecret, at.Add(30*time.Second)))
}
