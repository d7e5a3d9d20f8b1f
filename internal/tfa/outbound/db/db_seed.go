package db

import (
	"context"

	"github.com/shandysiswandi/tfabit/internal/tfa/entity"
)

func (s *DB) GetSeed(ctx context.Context, userID int64) (_ *entity.Seed, err error) {
	ctx, span := s.startSpan(ctx, "GetSeed")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT user_id, ciphertext, key_version, created_at
		FROM tfa_seeds
		WHERE user_id = $1`

	var seed entity.Seed
	err = s.conn.QueryRow(ctx, query, userID).
		Scan(&seed.UserID, &seed.Ciphertext, &seed.KeyVersion, &seed.CreatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &seed, nil
}

func (s *DB) DeleteSeed(ctx context.Context, userID int64) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "DeleteSeed")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `DELETE FROM tfa_seeds WHERE user_id = $1`, userID)
	if err != nil {
		return 0, s.mapError(err)
	}

	return tag.RowsAffected(), nil
}
