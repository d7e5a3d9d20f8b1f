package usecase

import (
	"testing"

	"github.com/shandysiswandi/tfabit/internal/pkg/goerror"
	"github.com/shandysiswandi/tfabit/internal/tfa/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedDevice(fx *fixture, id, userID int64, name string) {
	fx.repo.devices[id] = entity.TrustedDevice{
		ID:          id,
		UserID:      userID,
		TokenHash:   "hash",
		DisplayName: name,
		OriginIP:    "203.0.113.9",
		CreatedAt:   fx.clock.now,
		LastUsedAt:  fx.clock.now,
	}
}

func TestDeviceList(t *testing.T) {
	fx := newFixture(t)
	seedDevice(fx, 1, testUserID, "Chrome")
	seedDevice(fx, 2, testUserID, "Firefox")
	seedDevice(fx, 3, testUserID+1, "Safari")

	out, err := fx.uc.DeviceList(authCtx(testUserID))
	require.NoError(t, err)
	assert.Len(t, out.Devices, 2, "only the caller's devices are listed")
}

func TestDeviceList_Empty(t *testing.T) {
	fx := newFixture(t)

	out, err := fx.uc.DeviceList(authCtx(testUserID))
	require.NoError(t, err)
	assert.Empty(t, out.Devices)
}

func TestDeviceRevoke(t *testing.T) {
	fx := newFixture(t)
	seedDevice(fx, 1, testUserID, "Chrome")

	err := fx.uc.DeviceRevoke(authCtx(testUserID), DeviceRevokeInput{DeviceID: 1})
	require.NoError(t, err)
	assert.Empty(t, fx.repo.devices)

	require.NoError(t, fx.gm.Wait())
	require.Len(t, fx.msg.revoked, 1)
	assert.Equal(t, int64(1), fx.msg.revoked[0].DeviceID)
	assert.False(t, fx.msg.revoked[0].RevokedAll)
}

func TestDeviceRevoke_NotFound(t *testing.T) {
	fx := newFixture(t)

	err := fx.uc.DeviceRevoke(authCtx(testUserID), DeviceRevokeInput{DeviceID: 42})
	require.Error(t, err)

	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, goerror.CodeNotFound, gerr.Code())
}

func TestDeviceRevoke_OtherUsersDevice(t *testing.T) {
	fx := newFixture(t)
	seedDevice(fx, 1, testUserID+1, "Chrome")

	err := fx.uc.DeviceRevoke(authCtx(testUserID), DeviceRevokeInput{DeviceID: 1})
	require.Error(t, err)
	assert.Len(t, fx.repo.devices, 1, "other user's device must survive")
}

func TestDeviceRevokeAll(t *testing.T) {
	fx := newFixture(t)
	seedDevice(fx, 1, testUserID, "Chrome")
	seedDevice(fx, 2, testUserID, "Firefox")
	seedDevice(fx, 3, testUserID+1, "Safari")

	out, err := fx.uc.DeviceRevokeAll(authCtx(testUserID))
	require.NoError(t, err)

	assert.Equal(t, int64(2), out.Revoked)
	assert.Len(t, fx.repo.devices, 1)

	require.NotNil(t, out.ClearCookie)
	assert.Empty(t, out.ClearCookie.Value, "cookie must be cleared")

	require.NoError(t, fx.gm.Wait())
	require.Len(t, fx.msg.revoked, 1)
	assert.True(t, fx.msg.revoked[0].RevokedAll)
}

func TestDeviceRevokeAll_Idempotent(t *testing.T) {
	fx := newFixture(t)

	out, err := fx.uc.DeviceRevokeAll(authCtx(testUserID))
	require.NoError(t, err)
	assert.Equal(t, int64(0), out.Revoked)

	require.NoError(t, fx.gm.Wait())
	assert.Empty(t, fx.msg.revoked, "no event when nothing was revoked")
}

func TestStatus(t *testing.T) {
	fx := newFixture(t)

	out, err := fx.uc.Status(authCtx(testUserID))
	require.NoError(t, err)
	assert.False(t, out.Ready)

	fx.enroll(t, testUserID)

	out, err = fx.uc.Status(authCtx(testUserID))
	require.NoError(t, err)
	assert.True(t, out.Ready)
}

func TestSeedDelete(t *testing.T) {
	fx := newFixture(t)
	fx.enroll(t, testUserID)

	out, err := fx.uc.SeedDelete(authCtx(testUserID))
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.Deleted)

	// Deleting again is a successful no-op.
	out, err = fx.uc.SeedDelete(authCtx(testUserID))
	require.NoError(t, err)
	assert.Equal(t, int64(0), out.Deleted)
}

func TestSeedDelete_DoesNotAffectOtherUsers(t *testing.T) {
	fx := newFixture(t)
	fx.enroll(t, testUserID)
	fx.enroll(t, testUserID+1)

	_, err := fx.uc.SeedDelete(authCtx(testUserID))
	require.NoError(t, err)

	st, err := fx.uc.Status(authCtx(testUserID + 1))
	require.NoError(t, err)
	assert.True(t, st.Ready)
}

func TestTrustCookieName_Default(t *testing.T) {
	fx := newFixture(t)

	assert.Equal(t, "tfa-trusted", fx.uc.TrustCookieName())
}
