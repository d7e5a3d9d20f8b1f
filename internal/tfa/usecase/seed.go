package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/tfabit/internal/pkg/goerror"
)

type SeedDeleteOutput struct {
	Deleted int64
}

// SeedDelete removes the user's seed. Idempotent: deleting a missing seed
// succeeds with a zero count.
func (s *Usecase) SeedDelete(ctx context.Context) (*SeedDeleteOutput, error) {
	ctx, span := s.startSpan(ctx, "SeedDelete")
	defer span.End()

	clm, err := s.authenticatedUser(ctx)
	if err != nil {
		return nil, err
	}

	affected, err := s.repoDB.DeleteSeed(ctx, clm.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete seed", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if affected > 0 {
		slog.InfoContext(ctx, "second factor seed removed", "user_id", clm.UserID)
	}

	return &SeedDeleteOutput{Deleted: affected}, nil
}
