package inbound

import (
	"net/http"
	"testing"
	"time"

	"github.com/shandysiswandi/tfabit/internal/tfa/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetCookie_Issue(t *testing.T) {
	expires := time.UnixMilli(1700000000000).UTC().Add(30 * 24 * time.Hour)

	c := setCookie(&usecase.TrustCookie{
		Name:      "tfa-trusted",
		Value:     "raw-token",
		Domain:    "example.com",
		Secure:    true,
		ExpiresAt: expires,
	})
	require.NotNil(t, c)

	assert.Equal(t, "tfa-trusted", c.Name)
	assert.Equal(t, "raw-token", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, "example.com", c.Domain)
	assert.Equal(t, expires, c.Expires)
	assert.True(t, c.Secure)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Zero(t, c.MaxAge)
}

func TestSetCookie_Clear(t *testing.T) {
	c := setCookie(&usecase.TrustCookie{Name: "tfa-trusted"})
	require.NotNil(t, c)

	assert.Empty(t, c.Value)
	assert.Equal(t, -1, c.MaxAge)
	assert.True(t, c.HttpOnly)
}

func TestSetCookie_Nil(t *testing.T) {
	assert.Nil(t, setCookie(nil))
}

func TestVerifyResponse_Cookies(t *testing.T) {
	assert.Nil(t, VerifyResponse{}.Cookies())

	ck := &http.Cookie{Name: "tfa-trusted", Value: "raw-token"}
	got := VerifyResponse{cookie: ck}.Cookies()
	require.Len(t, got, 1)
	assert.Same(t, ck, got[0])
}

func TestDeviceRevokeAllResponse_Cookies(t *testing.T) {
	assert.Nil(t, DeviceRevokeAllResponse{}.Cookies())

	ck := &http.Cookie{Name: "tfa-trusted", MaxAge: -1}
	got := DeviceRevokeAllResponse{cookie: ck}.Cookies()
	require.Len(t, got, 1)
	assert.Same(t, ck, got[0])
}
