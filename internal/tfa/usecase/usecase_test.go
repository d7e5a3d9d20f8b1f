package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shandysiswandi/tfabit/internal/pkg/flood"
	"github.com/shandysiswandi/tfabit/internal/pkg/goerror"
	"github.com/shandysiswandi/tfabit/internal/pkg/goroutine"
	"github.com/shandysiswandi/tfabit/internal/pkg/hash"
	"github.com/shandysiswandi/tfabit/internal/pkg/instrument"
	"github.com/shandysiswandi/tfabit/internal/pkg/jwt"
	"github.com/shandysiswandi/tfabit/internal/pkg/mfa"
	"github.com/shandysiswandi/tfabit/internal/pkg/otp"
	"github.com/shandysiswandi/tfabit/internal/pkg/validator"
	"github.com/shandysiswandi/tfabit/internal/tfa/entity"
	"github.com/stretchr/testify/require"
)

// fakeRepo is an in-memory repoDB so scenarios can span several calls.
type fakeRepo struct {
	mu       sync.Mutex
	seeds    map[int64]entity.Seed
	accepted map[string]struct{}
	devices  map[int64]entity.TrustedDevice

	err             error // forced on every call when set
	forceInsertMiss bool  // simulate losing the insert race
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		seeds:    make(map[int64]entity.Seed),
		accepted: make(map[string]struct{}),
		devices:  make(map[int64]entity.TrustedDevice),
	}
}

func acceptedKey(userID int64, codeHash string) string {
	return fmt.Sprintf("%d|%s", userID, codeHash)
}

func (f *fakeRepo) GetSeed(_ context.Context, userID int64) (*entity.Seed, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	seed, ok := f.seeds[userID]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &seed, nil
}

func (f *fakeRepo) DeleteSeed(_ context.Context, userID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	if _, ok := f.seeds[userID]; !ok {
		return 0, nil
	}
	delete(f.seeds, userID)
	return 1, nil
}

func (f *fakeRepo) ExistsAcceptedCode(_ context.Context, userID int64, codeHash string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.accepted[acceptedKey(userID, codeHash)]
	return ok, nil
}

func (f *fakeRepo) InsertAcceptedCodeIfAbsent(_ context.Context, userID int64, codeHash string, _ time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	if f.forceInsertMiss {
		return false, nil
	}
	key := acceptedKey(userID, codeHash)
	if _, ok := f.accepted[key]; ok {
		return false, nil
	}
	f.accepted[key] = struct{}{}
	return true, nil
}

func (f *fakeRepo) CreateTrustedDevice(_ context.Context, dev entity.TrustedDevice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.devices[dev.ID] = dev
	return nil
}

func (f *fakeRepo) GetTrustedDeviceByTokenHash(_ context.Context, userID int64, tokenHash string) (*entity.TrustedDevice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, dev := range f.devices {
		if dev.UserID == userID && dev.TokenHash == tokenHash {
			return &dev, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeRepo) TouchTrustedDevice(_ context.Context, id, userID int64, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	dev, ok := f.devices[id]
	if ok && dev.UserID == userID {
		dev.LastUsedAt = at
		f.devices[id] = dev
	}
	return nil
}

func (f *fakeRepo) ListTrustedDevices(_ context.Context, userID int64) ([]entity.TrustedDevice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var devs []entity.TrustedDevice
	for _, dev := range f.devices {
		if dev.UserID == userID {
			devs = append(devs, dev)
		}
	}
	return devs, nil
}

func (f *fakeRepo) DeleteTrustedDevice(_ context.Context, id, userID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	dev, ok := f.devices[id]
	if !ok || dev.UserID != userID {
		return 0, nil
	}
	delete(f.devices, id)
	return 1, nil
}

func (f *fakeRepo) DeleteAllTrustedDevices(_ context.Context, userID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	var count int64
	for id, dev := range f.devices {
		if dev.UserID == userID {
			delete(f.devices, id)
			count++
		}
	}
	return count, nil
}

type fakeMessaging struct {
	mu       sync.Mutex
	trusted  []DeviceTrustedEvent
	revoked  []DeviceRevokedEvent
	replayed []ReplayDetectedEvent
}

func (f *fakeMessaging) PublishDeviceTrusted(_ context.Context, msg DeviceTrustedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trusted = append(f.trusted, msg)
	return nil
}

func (f *fakeMessaging) PublishDeviceRevoked(_ context.Context, msg DeviceRevokedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revoked = append(f.revoked, msg)
	return nil
}

func (f *fakeMessaging) PublishReplayDetected(_ context.Context, msg ReplayDetectedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replayed = append(f.replayed, msg)
	return nil
}

type fakeFlood struct {
	mu     sync.Mutex
	counts map[string]int64
	limit  int64
	err    error
}

func newFakeFlood(limit int64) *fakeFlood {
	return &fakeFlood{counts: make(map[string]int64), limit: limit}
}

func (f *fakeFlood) Register(_ context.Context, identifier string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.counts[identifier]++
	if f.counts[identifier] > f.limit {
		return flood.ErrLimitReached
	}
	return nil
}

func (f *fakeFlood) Clear(_ context.Context, identifier string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.counts, identifier)
	return nil
}

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

type fakeNumberID struct {
	mu   sync.Mutex
	next int64
}

func (f *fakeNumberID) Generate() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	return f.next
}

type fakeStringID struct {
	value string
}

func (f *fakeStringID) Generate() string { return f.value }

// stubConfig returns mapped values and zero values for everything else.
type stubConfig struct {
	values map[string]any
}

func (c *stubConfig) Close() error { return nil }

func (c *stubConfig) duration(key string, unit time.Duration) time.Duration {
	if v, ok := c.values[key].(int); ok {
		return time.Duration(v) * unit
	}
	return 0
}

func (c *stubConfig) GetSecond(key string) time.Duration { return c.duration(key, time.Second) }
func (c *stubConfig) GetMinute(key string) time.Duration { return c.duration(key, time.Minute) }
func (c *stubConfig) GetHour(key string) time.Duration   { return c.duration(key, time.Hour) }
func (c *stubConfig) GetDay(key string) time.Duration    { return c.duration(key, 24*time.Hour) }

func (c *stubConfig) GetInt(key string) int {
	v, _ := c.values[key].(int)
	return v
}
func (c *stubConfig) GetInt32(key string) int32 { return int32(c.GetInt(key)) }
func (c *stubConfig) GetInt64(key string) int64 { return int64(c.GetInt(key)) }

func (c *stubConfig) GetUint(key string) uint     { return uint(c.GetInt(key)) }
func (c *stubConfig) GetUint16(key string) uint16 { return uint16(c.GetInt(key)) }
func (c *stubConfig) GetUint32(key string) uint32 { return uint32(c.GetInt(key)) }
func (c *stubConfig) GetUint64(key string) uint64 { return uint64(c.GetInt(key)) }

func (c *stubConfig) GetFloat32(key string) float32 { return 0 }
func (c *stubConfig) GetFloat64(key string) float64 { return 0 }

func (c *stubConfig) GetBool(key string) bool {
	v, _ := c.values[key].(bool)
	return v
}

func (c *stubConfig) GetString(key string) string {
	v, _ := c.values[key].(string)
	return v
}

func (c *stubConfig) GetBinary(key string) []byte { return nil }

func (c *stubConfig) GetArray(key string) []string { return nil }

func (c *stubConfig) GetMap(key string) map[string]string { return nil }

// fixture bundles a Usecase with its collaborators for assertions.
type fixture struct {
	uc    *Usecase
	repo  *fakeRepo
	msg   *fakeMessaging
	flood *fakeFlood
	clock *fakeClock
	totp  *otp.TOTP
	gm    *goroutine.Manager
	hmac  hash.Hash
	enc   mfa.Encryptor
}

const (
	testUserID     = int64(7)
	testSeedSecret = "JBSWY3DPEHPK3PXP"
)

func newFixture(t *testing.T) *fixture {
	t.Helper()

	v10, err := validator.NewV10Validator()
	require.NoError(t, err)

	var key [32]byte
	for i := range key {
		key[i] = byte(i)
	}
	enc := mfa.NewAESGCMEncryptor(mfa.StaticKeyProvider{KeyBytes: key[:]})

	fx := &fixture{
		repo:  newFakeRepo(),
		msg:   &fakeMessaging{},
		flood: newFakeFlood(6),
		clock: &fakeClock{now: time.UnixMilli(1700000000000).UTC()},
		totp:  otp.NewTOTP("tfabit", 30, 1, 6),
		gm:    goroutine.NewManager(8),
		hmac:  hash.NewHMACSHA256("token-secret"),
		enc:   enc,
	}

	fx.uc = New(Dependency{
		RepoDB:        fx.repo,
		RepoMessaging: fx.msg,
		Flood:         fx.flood,
		Validator:     v10,
		Config:        &stubConfig{values: map[string]any{}},
		HMAC:          fx.hmac,
		ReplayHMAC:    hash.NewHMACSHA256("replay-secret"),
		MFAEncryptor:  fx.enc,
		UID:           &fakeNumberID{},
		Token:         &fakeStringID{value: "opaque-trust-token"},
		Totp:          fx.totp,
		Clock:         fx.clock,
		Instrument:    instrument.NewNoop(),
		Goroutine:     fx.gm,
	})

	return fx
}

// enroll stores an encrypted seed for the user.
func (fx *fixture) enroll(t *testing.T, userID int64) {
	t.Helper()

	ct, err := fx.enc.Encrypt([]byte(testSeedSecret), mfa.Scope{UserID: userID, Purpose: mfa.PurposeOTPSeed})
	require.NoError(t, err)

	fx.repo.seeds[userID] = entity.Seed{
		UserID:     userID,
		Ciphertext: ct,
		KeyVersion: 1,
		CreatedAt:  fx.clock.now,
	}
}

// code returns the valid TOTP code for the fixture's current time.
func (fx *fixture) code(t *testing.T) string {
	t.Helper()

	code, err := fx.totp.GenerateCode(testSeedSecret, fx.clock.now)
	require.NoError(t, err)

	return code
}

func authCtx(userID int64) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{UserID: userID})
}
