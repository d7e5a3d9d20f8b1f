package usecase

import (
	"testing"
	"time"

	"github.com/shandysiswandi/tfabit/internal/pkg/goerror"
	"github.com/shandysiswandi/tfabit/internal/tfa/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify_ValidCode(t *testing.T) {
	fx := newFixture(t)
	fx.enroll(t, testUserID)

	out, err := fx.uc.Verify(authCtx(testUserID), VerifyInput{Code: fx.code(t)})
	require.NoError(t, err)

	assert.False(t, out.Trusted)
	assert.Nil(t, out.TrustCookie)
	assert.Len(t, fx.repo.accepted, 1, "accepted code must be recorded")
	assert.Empty(t, fx.flood.counts, "attempt counter must be cleared on success")
}

func TestVerify_NormalizesWhitespace(t *testing.T) {
	fx := newFixture(t)
	fx.enroll(t, testUserID)
	code := fx.code(t)

	spaced := " " + code[:3] + " " + code[3:] + "\t"
	_, err := fx.uc.Verify(authCtx(testUserID), VerifyInput{Code: spaced})
	require.NoError(t, err)
}

func TestVerify_ReplayedCodeRejected(t *testing.T) {
	fx := newFixture(t)
	fx.enroll(t, testUserID)
	code := fx.code(t)

	_, err := fx.uc.Verify(authCtx(testUserID), VerifyInput{Code: code})
	require.NoError(t, err)

	_, err = fx.uc.Verify(authCtx(testUserID), VerifyInput{Code: code, IP: "203.0.113.9"})
	require.Error(t, err)
	assert.Equal(t, msgAlreadyUsed, err.Error())

	require.NoError(t, fx.gm.Wait())
	require.Len(t, fx.msg.replayed, 1)
	assert.Equal(t, testUserID, fx.msg.replayed[0].UserID)
	assert.Equal(t, "203.0.113.9", fx.msg.replayed[0].OriginIP)
	assert.Equal(t, entity.RejectReasonAlreadyUsed, fx.msg.replayed[0].Reason)
}

func TestVerify_LostInsertRaceRejected(t *testing.T) {
	fx := newFixture(t)
	fx.enroll(t, testUserID)
	fx.repo.forceInsertMiss = true

	_, err := fx.uc.Verify(authCtx(testUserID), VerifyInput{Code: fx.code(t)})
	require.Error(t, err)
	assert.Equal(t, msgAlreadyUsed, err.Error())
}

func TestVerify_SameCodeIndependentPerUser(t *testing.T) {
	fx := newFixture(t)
	fx.enroll(t, testUserID)
	fx.enroll(t, testUserID+1)
	code := fx.code(t)

	_, err := fx.uc.Verify(authCtx(testUserID), VerifyInput{Code: code})
	require.NoError(t, err)

	// The same step's code must still verify for a different user.
	_, err = fx.uc.Verify(authCtx(testUserID+1), VerifyInput{Code: code})
	require.NoError(t, err)
}

func TestVerify_WrongCode(t *testing.T) {
	fx := newFixture(t)
	fx.enroll(t, testUserID)

	code := fx.code(t)
	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	_, err := fx.uc.Verify(authCtx(testUserID), VerifyInput{Code: wrong})
	require.Error(t, err)
	assert.Equal(t, msgInvalidCode, err.Error())
	assert.Empty(t, fx.repo.accepted, "rejected code must not be recorded")
}

func TestVerify_MalformedCode(t *testing.T) {
	fx := newFixture(t)
	fx.enroll(t, testUserID)

	for _, code := range []string{"", "12345", "1234567", "12a456"} {
		_, err := fx.uc.Verify(authCtx(testUserID), VerifyInput{Code: code})
		require.Error(t, err, "code %q", code)
	}

	assert.Empty(t, fx.repo.accepted)
}

func TestVerify_NotEnrolled(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.uc.Verify(authCtx(testUserID), VerifyInput{Code: "123456"})
	require.Error(t, err)
	assert.Equal(t, msgNotEnrolled, err.Error())
}

func TestVerify_UndecryptableSeedTreatedAsNotEnrolled(t *testing.T) {
	fx := newFixture(t)
	fx.enroll(t, testUserID)

	seed := fx.repo.seeds[testUserID]
	seed.Ciphertext[len(seed.Ciphertext)-1] ^= 0x01

	_, err := fx.uc.Verify(authCtx(testUserID), VerifyInput{Code: "123456"})
	require.Error(t, err)
	assert.Equal(t, msgNotEnrolled, err.Error())
}

func TestVerify_StorageFailureFailsClosed(t *testing.T) {
	fx := newFixture(t)
	fx.enroll(t, testUserID)
	fx.repo.err = assert.AnError

	_, err := fx.uc.Verify(authCtx(testUserID), VerifyInput{Code: fx.code(t)})
	require.Error(t, err)

	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, goerror.TypeServer, gerr.Type())
}

func TestVerify_FloodLimit(t *testing.T) {
	fx := newFixture(t)
	fx.enroll(t, testUserID)
	fx.flood.limit = 2

	for range 2 {
		_, err := fx.uc.Verify(authCtx(testUserID), VerifyInput{Code: "999999"})
		require.Error(t, err)
	}

	_, err := fx.uc.Verify(authCtx(testUserID), VerifyInput{Code: fx.code(t)})
	require.Error(t, err)

	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, goerror.CodeTooManyRequest, gerr.Code())
}

func TestVerify_Unauthenticated(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.uc.Verify(t.Context(), VerifyInput{Code: "123456"})
	require.Error(t, err)

	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, goerror.CodeUnauthorized, gerr.Code())
}

func TestVerify_TrustDeviceIssuesCookie(t *testing.T) {
	fx := newFixture(t)
	fx.enroll(t, testUserID)

	out, err := fx.uc.Verify(authCtx(testUserID), VerifyInput{
		Code:        fx.code(t),
		TrustDevice: true,
		UserAgent:   "Mozilla/5.0 Gecko/20100101 Firefox/126.0",
		IP:          "203.0.113.9",
	})
	require.NoError(t, err)

	require.NotNil(t, out.TrustCookie)
	assert.Equal(t, "tfa-trusted", out.TrustCookie.Name)
	assert.Equal(t, "opaque-trust-token", out.TrustCookie.Value)
	assert.Equal(t, fx.clock.now.Add(30*24*time.Hour), out.TrustCookie.ExpiresAt)

	require.Len(t, fx.repo.devices, 1)
	for _, dev := range fx.repo.devices {
		assert.Equal(t, testUserID, dev.UserID)
		assert.Equal(t, "Firefox", dev.DisplayName)
		assert.Equal(t, "203.0.113.9", dev.OriginIP)
		assert.NotEqual(t, "opaque-trust-token", dev.TokenHash, "raw token must never be stored")
	}

	require.NoError(t, fx.gm.Wait())
	require.Len(t, fx.msg.trusted, 1)
	assert.Equal(t, testUserID, fx.msg.trusted[0].UserID)
}

func TestVerify_TrustCookieSkipsCode(t *testing.T) {
	fx := newFixture(t)
	fx.enroll(t, testUserID)

	out, err := fx.uc.Verify(authCtx(testUserID), VerifyInput{
		Code:        fx.code(t),
		TrustDevice: true,
	})
	require.NoError(t, err)
	require.NotNil(t, out.TrustCookie)

	// Second verification presents only the cookie, no code.
	out, err = fx.uc.Verify(authCtx(testUserID), VerifyInput{TrustToken: out.TrustCookie.Value})
	require.NoError(t, err)
	assert.True(t, out.Trusted)

	for _, dev := range fx.repo.devices {
		assert.Equal(t, fx.clock.now, dev.LastUsedAt)
	}
}

func TestVerify_TrustCookieOfOtherUserIgnored(t *testing.T) {
	fx := newFixture(t)
	fx.enroll(t, testUserID)

	out, err := fx.uc.Verify(authCtx(testUserID), VerifyInput{
		Code:        fx.code(t),
		TrustDevice: true,
	})
	require.NoError(t, err)

	// Another user presenting the stolen cookie still needs a code.
	_, err = fx.uc.Verify(authCtx(testUserID+1), VerifyInput{TrustToken: out.TrustCookie.Value})
	require.Error(t, err)
}

func TestVerify_StaleTrustRequiresCode(t *testing.T) {
	fx := newFixture(t)
	fx.enroll(t, testUserID)

	out, err := fx.uc.Verify(authCtx(testUserID), VerifyInput{
		Code:        fx.code(t),
		TrustDevice: true,
	})
	require.NoError(t, err)
	token := out.TrustCookie.Value

	// Jump past the 30 day trust horizon. The cookie alone no longer
	// satisfies the factor and the stale row is removed.
	fx.clock.now = fx.clock.now.AddDate(0, 0, 31)

	_, err = fx.uc.Verify(authCtx(testUserID), VerifyInput{TrustToken: token})
	require.Error(t, err)
	assert.Empty(t, fx.repo.devices, "stale device must be removed")

	out, err = fx.uc.Verify(authCtx(testUserID), VerifyInput{TrustToken: token, Code: fx.code(t)})
	require.NoError(t, err)
	assert.False(t, out.Trusted)
}
