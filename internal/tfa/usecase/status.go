package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/tfabit/internal/pkg/goerror"
)

type StatusOutput struct {
	Ready bool
}

// Status reports whether the user can be challenged: true exactly when an
// enrolled seed exists.
func (s *Usecase) Status(ctx context.Context) (*StatusOutput, error) {
	ctx, span := s.startSpan(ctx, "Status")
	defer span.End()

	clm, err := s.authenticatedUser(ctx)
	if err != nil {
		return nil, err
	}

	_, err = s.repoDB.GetSeed(ctx, clm.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		return &StatusOutput{Ready: false}, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get seed", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &StatusOutput{Ready: true}, nil
}
