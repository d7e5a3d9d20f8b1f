package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/tfabit/internal/pkg/flood"
	"github.com/shandysiswandi/tfabit/internal/pkg/goerror"
	"github.com/shandysiswandi/tfabit/internal/pkg/mfa"
	"github.com/shandysiswandi/tfabit/internal/tfa/entity"
)

type VerifyInput struct {
	Code        string
	TrustToken  string // raw trust cookie value, empty when absent
	TrustDevice bool
	UserAgent   string
	IP          string
}

type VerifyOutput struct {
	Trusted     bool
	TrustCookie *TrustCookie
}

// Verify completes the second factor for the authenticated user.
//
// A live trust cookie short-circuits the code check entirely. Otherwise the
// code goes through flood gating, normalization, the replay set, seed
// decryption and the time-window check, and on success is recorded so it can
// never verify again.
func (s *Usecase) Verify(ctx context.Context, in VerifyInput) (*VerifyOutput, error) {
	ctx, span := s.startSpan(ctx, "Verify")
	defer span.End()

	clm, err := s.authenticatedUser(ctx)
	if err != nil {
		return nil, err
	}
	userID := clm.UserID

	if in.TrustToken != "" {
		dev, err := s.checkTrustedToken(ctx, userID, in.TrustToken)
		if err != nil {
			return nil, err
		}
		if dev != nil {
			return &VerifyOutput{Trusted: true}, nil
		}
	}

	if err := s.registerAttempt(ctx, userID); err != nil {
		return nil, err
	}

	code := normalizeCode(in.Code)
	if !s.isWellFormedCode(code) {
		slog.WarnContext(ctx, "malformed verification code", "user_id", userID, "reason", entity.RejectReasonMalformed.String())
		return nil, goerror.NewInvalidInput(nil, "code", "must be a numeric application code")
	}

	codeHash, err := s.hashCode(ctx, code)
	if err != nil {
		return nil, err
	}

	used, err := s.repoDB.ExistsAcceptedCode(ctx, userID, codeHash)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo check accepted code", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if used {
		return nil, s.rejectReplay(ctx, userID, in.IP)
	}

	seedBytes, err := s.loadSeedPlaintext(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !s.totp.Validate(code, string(seedBytes), s.clock.Now()) {
		slog.WarnContext(ctx, "invalid totp code", "user_id", userID, "reason", entity.RejectReasonInvalidCode.String())
		return nil, goerror.NewBusiness(msgInvalidCode, goerror.CodeUnauthorized)
	}

	inserted, err := s.repoDB.InsertAcceptedCodeIfAbsent(ctx, userID, codeHash, s.clock.Now())
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo record accepted code", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if !inserted {
		// Concurrent attempt won the insert; exactly one succeeds.
		return nil, s.rejectReplay(ctx, userID, in.IP)
	}

	s.clearAttempts(ctx, userID)

	out := &VerifyOutput{}
	if in.TrustDevice {
		cookie, err := s.issueTrustedDevice(ctx, userID, in.UserAgent, in.IP)
		if err != nil {
			return nil, err
		}
		out.TrustCookie = cookie
	}

	return out, nil
}

// loadSeedPlaintext fetches and transiently decrypts the user's seed. Absence
// and an undecryptable row both mean there is no usable enrollment.
func (s *Usecase) loadSeedPlaintext(ctx context.Context, userID int64) ([]byte, error) {
	seed, err := s.repoDB.GetSeed(ctx, userID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "verification attempted without enrollment", "user_id", userID, "reason", entity.RejectReasonNotEnrolled.String())
		return nil, goerror.NewBusiness(msgNotEnrolled, goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get seed", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	seedBytes, err := s.mfaEncryptor.Decrypt(seed.Ciphertext, mfa.Scope{
		UserID:  userID,
		Purpose: mfa.PurposeOTPSeed,
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to decrypt seed", "user_id", userID, "key_version", seed.KeyVersion, "reason", entity.RejectReasonNotEnrolled.String(), "error", err)
		return nil, goerror.NewBusiness(msgNotEnrolled, goerror.CodeConflict)
	}

	return seedBytes, nil
}

func (s *Usecase) registerAttempt(ctx context.Context, userID int64) error {
	err := s.flood.Register(ctx, flood.Key("tfa.verify", userID))
	if errors.Is(err, flood.ErrLimitReached) {
		slog.WarnContext(ctx, "verification attempt limit reached", "user_id", userID)
		return goerror.NewBusiness("Too many verification attempts. Please try again later.", goerror.CodeTooManyRequest)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to register verification attempt", "user_id", userID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

func (s *Usecase) clearAttempts(ctx context.Context, userID int64) {
	if err := s.flood.Clear(ctx, flood.Key("tfa.verify", userID)); err != nil {
		slog.WarnContext(ctx, "failed to clear verification attempts", "user_id", userID, "error", err)
	}
}
