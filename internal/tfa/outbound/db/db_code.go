package db

import (
	"context"
	"time"
)

func (s *DB) ExistsAcceptedCode(ctx context.Context, userID int64, codeHash string) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "ExistsAcceptedCode")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT EXISTS (
			SELECT 1 FROM tfa_accepted_codes
			WHERE user_id = $1 AND code_hash = $2
		)`

	var exists bool
	if err = s.conn.QueryRow(ctx, query, userID, codeHash).Scan(&exists); err != nil {
		return false, s.mapError(err)
	}

	return exists, nil
}

// InsertAcceptedCodeIfAbsent records an accepted code and reports whether
// this call inserted the row. Under concurrent attempts with the same code
// the unique constraint guarantees exactly one caller sees true.
func (s *DB) InsertAcceptedCodeIfAbsent(ctx context.Context, userID int64, codeHash string, at time.Time) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "InsertAcceptedCodeIfAbsent")
	defer func() { s.endSpan(span, err) }()

	const query = `
		INSERT INTO tfa_accepted_codes (user_id, code_hash, accepted_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, code_hash) DO NOTHING`

	tag, err := s.conn.Exec(ctx, query, userID, codeHash, at)
	if err != nil {
		return false, s.mapError(err)
	}

	return tag.RowsAffected() > 0, nil
}
