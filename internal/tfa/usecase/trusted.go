package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shandysiswandi/tfabit/internal/pkg/goerror"
	"github.com/shandysiswandi/tfabit/internal/tfa/entity"
)

// TrustCookie carries everything the HTTP layer needs to set or clear the
// trust cookie. The usecase owns the contract values (name, domain, flags,
// horizon) so handlers stay free of configuration.
type TrustCookie struct {
	Name      string
	Value     string
	Domain    string
	Secure    bool
	ExpiresAt time.Time
}

// TrustCookieName returns the configured cookie name handlers read the raw
// trust token from.
func (s *Usecase) TrustCookieName() string {
	name := s.cfg.GetString("modules.tfa.trust_cookie.name")
	if name == "" {
		name = "tfa-trusted"
	}

	return name
}

func (s *Usecase) newTrustCookie(value string, expiresAt time.Time) *TrustCookie {
	return &TrustCookie{
		Name:      s.TrustCookieName(),
		Value:     value,
		Domain:    s.cfg.GetString("modules.tfa.trust_cookie.domain"),
		Secure:    s.cfg.GetBool("modules.tfa.trust_cookie.secure"),
		ExpiresAt: expiresAt,
	}
}

// checkTrustedToken resolves a raw cookie token to a live trusted device.
//
// A match past its trust horizon is removed and reported as not trusted. The
// cookie's own expiry is never consulted, only created_at on the server row.
// Lookup failures other than not-found are returned so the caller fails
// closed instead of silently demanding a code from a trusted device.
func (s *Usecase) checkTrustedToken(ctx context.Context, userID int64, rawToken string) (*entity.TrustedDevice, error) {
	tokenHash, err := s.hmac.Hash(rawToken)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash trust token", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	dev, err := s.repoDB.GetTrustedDeviceByTokenHash(ctx, userID, string(tokenHash))
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get trusted device by token", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	now := s.clock.Now()
	if dev.Expired(s.trustTTL(), now) {
		slog.WarnContext(ctx, "trusted device past trust horizon", "user_id", userID, "device_id", dev.ID)
		if _, err := s.repoDB.DeleteTrustedDevice(ctx, dev.ID, userID); err != nil {
			slog.ErrorContext(ctx, "failed to remove stale trusted device", "user_id", userID, "device_id", dev.ID, "error", err)
		}
		return nil, nil
	}

	if err := s.repoDB.TouchTrustedDevice(ctx, dev.ID, userID, now); err != nil {
		slog.ErrorContext(ctx, "failed to update trusted device last_used_at", "user_id", userID, "device_id", dev.ID, "error", err)
		return nil, goerror.NewServer(err)
	}
	dev.LastUsedAt = now

	return dev, nil
}

// issueTrustedDevice mints an opaque token, persists its hash as a device row
// and returns the cookie to hand to the client. Only the hash is stored.
func (s *Usecase) issueTrustedDevice(ctx context.Context, userID int64, userAgent, ip string) (*TrustCookie, error) {
	rawToken := s.token.Generate()

	tokenHash, err := s.hmac.Hash(rawToken)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash trust token", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	now := s.clock.Now()
	dev := entity.TrustedDevice{
		ID:          s.uid.Generate(),
		UserID:      userID,
		TokenHash:   string(tokenHash),
		DisplayName: entity.AgentDisplayName(userAgent),
		OriginIP:    ip,
		CreatedAt:   now,
		LastUsedAt:  now,
	}

	if err := s.repoDB.CreateTrustedDevice(ctx, dev); err != nil {
		slog.ErrorContext(ctx, "failed to repo create trusted device", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "device trusted for second factor",
		"user_id", userID, "device_id", dev.ID, "device_name", dev.DisplayName, "ip", ip)

	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		if err := s.repoMessaging.PublishDeviceTrusted(ctx, DeviceTrustedEvent{
			UserID:      userID,
			DeviceID:    dev.ID,
			DisplayName: dev.DisplayName,
			OriginIP:    ip,
		}); err != nil {
			slog.ErrorContext(ctx, "failed to publish device trusted event", "user_id", userID, "error", err)
		}
		return nil
	})

	return s.newTrustCookie(rawToken, now.Add(s.trustTTL())), nil
}
