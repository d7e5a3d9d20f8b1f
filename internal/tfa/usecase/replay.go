package usecase

import (
	"context"
	"log/slog"
	"strings"
	"unicode"

	"github.com/shandysiswandi/tfabit/internal/pkg/goerror"
	"github.com/shandysiswandi/tfabit/internal/tfa/entity"
)

// User-facing rejection messages. Replayed codes get a distinct message so
// the user knows to wait for the next step instead of retyping.
const (
	msgInvalidCode = "Invalid application code. Please try again."
	msgAlreadyUsed = "Invalid code, it was recently used for a login. " +
		"Please wait for the application to generate a new code."
	msgNotEnrolled = "Account is not enrolled for two-factor authentication"
)

// normalizeCode strips all whitespace so codes copied with spaces
// ("123 456") still verify.
func normalizeCode(code string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, code)
}

func (s *Usecase) codeDigits() int {
	digits := s.cfg.GetInt("mfa.totp.digits")
	if digits != 6 && digits != 8 {
		digits = 6
	}

	return digits
}

// isWellFormedCode rejects inputs that cannot possibly be a code before any
// store is consulted.
func (s *Usecase) isWellFormedCode(code string) bool {
	if len(code) != s.codeDigits() {
		return false
	}

	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}

	return true
}

// hashCode produces the keyed hash of a normalized code used for replay
// bookkeeping. The key is dedicated to this purpose and distinct from the
// seed-encryption master key, so accepted-code rows reveal nothing about
// codes to anyone without it.
func (s *Usecase) hashCode(ctx context.Context, code string) (string, error) {
	codeHash, err := s.replayHmac.Hash(code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash verification code", "error", err)
		return "", goerror.NewServer(err)
	}

	return string(codeHash), nil
}

// rejectReplay publishes the replay security event and returns the replay
// rejection. Publishing is best effort off the request path.
func (s *Usecase) rejectReplay(ctx context.Context, userID int64, ip string) error {
	reason := entity.RejectReasonAlreadyUsed
	slog.WarnContext(ctx, "verification code replayed", "user_id", userID, "ip", ip, "reason", reason.String())

	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		if err := s.repoMessaging.PublishReplayDetected(ctx, ReplayDetectedEvent{
			UserID:   userID,
			OriginIP: ip,
			Reason:   reason,
		}); err != nil {
			slog.ErrorContext(ctx, "failed to publish replay detected event", "user_id", userID, "error", err)
		}
		return nil
	})

	return goerror.NewBusiness(msgAlreadyUsed, goerror.CodeUnauthorized)
}
