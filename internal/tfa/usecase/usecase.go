package usecase

import (
	"context"
	"time"

	"github.com/shandysiswandi/tfabit/internal/pkg/clock"
	"github.com/shandysiswandi/tfabit/internal/pkg/config"
	"github.com/shandysiswandi/tfabit/internal/pkg/flood"
	"github.com/shandysiswandi/tfabit/internal/pkg/goerror"
	"github.com/shandysiswandi/tfabit/internal/pkg/goroutine"
	"github.com/shandysiswandi/tfabit/internal/pkg/hash"
	"github.com/shandysiswandi/tfabit/internal/pkg/instrument"
	"github.com/shandysiswandi/tfabit/internal/pkg/jwt"
	"github.com/shandysiswandi/tfabit/internal/pkg/mfa"
	"github.com/shandysiswandi/tfabit/internal/pkg/otp"
	"github.com/shandysiswandi/tfabit/internal/pkg/uid"
	"github.com/shandysiswandi/tfabit/internal/pkg/validator"
	"github.com/shandysiswandi/tfabit/internal/tfa/entity"
	"go.opentelemetry.io/otel/trace"
)

type DeviceTrustedEvent struct {
	UserID      int64
	DeviceID    int64
	DisplayName string
	OriginIP    string
}

type DeviceRevokedEvent struct {
	UserID     int64
	DeviceID   int64
	RevokedAll bool
}

type ReplayDetectedEvent struct {
	UserID   int64
	OriginIP string
	Reason   entity.RejectReason
}

type repoMessaging interface {
	PublishDeviceTrusted(ctx context.Context, msg DeviceTrustedEvent) error
	PublishDeviceRevoked(ctx context.Context, msg DeviceRevokedEvent) error
	PublishReplayDetected(ctx context.Context, msg ReplayDetectedEvent) error
}

type repoDB interface {
	GetSeed(ctx context.Context, userID int64) (*entity.Seed, error)
	DeleteSeed(ctx context.Context, userID int64) (int64, error)

	ExistsAcceptedCode(ctx context.Context, userID int64, codeHash string) (bool, error)
	InsertAcceptedCodeIfAbsent(ctx context.Context, userID int64, codeHash string, at time.Time) (bool, error)

	CreateTrustedDevice(ctx context.Context, dev entity.TrustedDevice) error
	GetTrustedDeviceByTokenHash(ctx context.Context, userID int64, tokenHash string) (*entity.TrustedDevice, error)
	TouchTrustedDevice(ctx context.Context, id, userID int64, at time.Time) error
	ListTrustedDevices(ctx context.Context, userID int64) ([]entity.TrustedDevice, error)
	DeleteTrustedDevice(ctx context.Context, id, userID int64) (int64, error)
	DeleteAllTrustedDevices(ctx context.Context, userID int64) (int64, error)
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	flood         flood.Guard
	validator     validator.Validator
	cfg           config.Config
	hmac          hash.Hash
	replayHmac    hash.Hash
	mfaEncryptor  mfa.Encryptor
	uid           uid.NumberID
	token         uid.StringID
	totp          otp.OTP
	clock         clock.Clocker
	ins           instrument.Instrumentation
	goroutine     *goroutine.Manager
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Flood         flood.Guard
	Validator     validator.Validator
	Config        config.Config
	HMAC          hash.Hash
	ReplayHMAC    hash.Hash
	MFAEncryptor  mfa.Encryptor
	UID           uid.NumberID
	Token         uid.StringID
	Totp          otp.OTP
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
	Goroutine     *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		flood:         dep.Flood,
		validator:     dep.Validator,
		cfg:           dep.Config,
		hmac:          dep.HMAC,
		replayHmac:    dep.ReplayHMAC,
		mfaEncryptor:  dep.MFAEncryptor,
		uid:           dep.UID,
		token:         dep.Token,
		totp:          dep.Totp,
		clock:         dep.Clock,
		ins:           dep.Instrument,
		goroutine:     dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("tfa.usecase").Start(ctx, name)
}

func (s *Usecase) authenticatedUser(ctx context.Context) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	return clm, nil
}

func (s *Usecase) trustTTL() time.Duration {
	ttl := s.cfg.GetDay("modules.tfa.trust_cookie.ttl_days")
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}

	return ttl
}
