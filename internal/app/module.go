package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/tfabit/internal/tfa"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.tfa.enabled") {
		if err := tfa.New(tfa.Dependency{
			Config:       a.config,
			Instrument:   a.ins,
			UID:          a.uid,
			Token:        a.token,
			HMAC:         a.hmac,
			ReplayHMAC:   a.replayHmac,
			MFAEncryptor: a.mfaEncryptor,
			Clock:        a.clock,
			Validator:    a.validator,
			Router:       a.router,
			Totp:         a.totp,
			DBConn:       a.dbConn,
			CacheConn:    a.cacheConn,
			Messaging:    a.messaging,
			Goroutine:    a.goroutine,
		}); err != nil {
			slog.Error("failed to init module tfa", "error", err)
			os.Exit(1)
		}
	}
}
