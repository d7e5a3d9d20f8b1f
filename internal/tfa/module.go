package tfa

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/tfabit/internal/pkg/clock"
	"github.com/shandysiswandi/tfabit/internal/pkg/config"
	"github.com/shandysiswandi/tfabit/internal/pkg/flood"
	"github.com/shandysiswandi/tfabit/internal/pkg/goroutine"
	"github.com/shandysiswandi/tfabit/internal/pkg/hash"
	"github.com/shandysiswandi/tfabit/internal/pkg/instrument"
	"github.com/shandysiswandi/tfabit/internal/pkg/messaging"
	"github.com/shandysiswandi/tfabit/internal/pkg/mfa"
	"github.com/shandysiswandi/tfabit/internal/pkg/otp"
	"github.com/shandysiswandi/tfabit/internal/pkg/router"
	"github.com/shandysiswandi/tfabit/internal/pkg/uid"
	"github.com/shandysiswandi/tfabit/internal/pkg/validator"
	"github.com/shandysiswandi/tfabit/internal/tfa/inbound"
	"github.com/shandysiswandi/tfabit/internal/tfa/outbound/db"
	"github.com/shandysiswandi/tfabit/internal/tfa/outbound/mq"
	"github.com/shandysiswandi/tfabit/internal/tfa/usecase"
)

type Dependency struct {
	DBConn       *pgxpool.Pool              `validate:"required"`
	CacheConn    *redis.Client              `validate:"required"`
	Goroutine    *goroutine.Manager         `validate:"required"`
	Router       *router.Router             `validate:"required"`
	Messaging    messaging.Messaging        `validate:"required"`
	Config       config.Config              `validate:"required"`
	Instrument   instrument.Instrumentation `validate:"required"`
	UID          uid.NumberID               `validate:"required"`
	Token        uid.StringID               `validate:"required"`
	HMAC         hash.Hash                  `validate:"required"`
	ReplayHMAC   hash.Hash                  `validate:"required"`
	MFAEncryptor mfa.Encryptor              `validate:"required"`
	Clock        clock.Clocker              `validate:"required"`
	Totp         otp.OTP                    `validate:"required"`
	Validator    validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	dbTfa := db.NewDB(dep.DBConn, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)
	guard := flood.New(dep.CacheConn,
		dep.Config.GetSecond("modules.tfa.flood.window_seconds"),
		dep.Config.GetInt64("modules.tfa.flood.max_attempts"))

	uc := usecase.New(usecase.Dependency{
		RepoDB:        dbTfa,
		RepoMessaging: repoMsg,
		Flood:         guard,
		Validator:     dep.Validator,
		Config:        dep.Config,
		HMAC:          dep.HMAC,
		ReplayHMAC:    dep.ReplayHMAC,
		MFAEncryptor:  dep.MFAEncryptor,
		UID:           dep.UID,
		Token:         dep.Token,
		Totp:          dep.Totp,
		Clock:         dep.Clock,
		Instrument:    dep.Instrument,
		Goroutine:     dep.Goroutine,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
