package db

import (
	"context"
	"time"

	"github.com/shandysiswandi/tfabit/internal/tfa/entity"
)

func (s *DB) CreateTrustedDevice(ctx context.Context, dev entity.TrustedDevice) (err error) {
	ctx, span := s.startSpan(ctx, "CreateTrustedDevice")
	defer func() { s.endSpan(span, err) }()

	const query = `
		INSERT INTO tfa_trusted_devices
			(id, user_id, token_hash, display_name, origin_ip, created_at, last_used_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = s.conn.Exec(ctx, query,
		dev.ID, dev.UserID, dev.TokenHash, dev.DisplayName, dev.OriginIP, dev.CreatedAt, dev.LastUsedAt)

	return s.mapError(err)
}

func (s *DB) GetTrustedDeviceByTokenHash(ctx context.Context, userID int64, tokenHash string) (_ *entity.TrustedDevice, err error) {
	ctx, span := s.startSpan(ctx, "GetTrustedDeviceByTokenHash")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT id, user_id, token_hash, display_name, origin_ip, created_at, last_used_at
		FROM tfa_trusted_devices
		WHERE user_id = $1 AND token_hash = $2`

	var dev entity.TrustedDevice
	err = s.conn.QueryRow(ctx, query, userID, tokenHash).
		Scan(&dev.ID, &dev.UserID, &dev.TokenHash, &dev.DisplayName, &dev.OriginIP, &dev.CreatedAt, &dev.LastUsedAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &dev, nil
}

func (s *DB) TouchTrustedDevice(ctx context.Context, id, userID int64, at time.Time) (err error) {
	ctx, span := s.startSpan(ctx, "TouchTrustedDevice")
	defer func() { s.endSpan(span, err) }()

	const query = `
		UPDATE tfa_trusted_devices
		SET last_used_at = $3
		WHERE id = $1 AND user_id = $2`

	_, err = s.conn.Exec(ctx, query, id, userID, at)

	return s.mapError(err)
}

func (s *DB) ListTrustedDevices(ctx context.Context, userID int64) (_ []entity.TrustedDevice, err error) {
	ctx, span := s.startSpan(ctx, "ListTrustedDevices")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT id, user_id, token_hash, display_name, origin_ip, created_at, last_used_at
		FROM tfa_trusted_devices
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := s.conn.Query(ctx, query, userID)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var devs []entity.TrustedDevice
	for rows.Next() {
		var dev entity.TrustedDevice
		if err = rows.Scan(&dev.ID, &dev.UserID, &dev.TokenHash, &dev.DisplayName,
			&dev.OriginIP, &dev.CreatedAt, &dev.LastUsedAt); err != nil {
			return nil, s.mapError(err)
		}
		devs = append(devs, dev)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return devs, nil
}

func (s *DB) DeleteTrustedDevice(ctx context.Context, id, userID int64) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "DeleteTrustedDevice")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx,
		`DELETE FROM tfa_trusted_devices WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return 0, s.mapError(err)
	}

	return tag.RowsAffected(), nil
}

func (s *DB) DeleteAllTrustedDevices(ctx context.Context, userID int64) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "DeleteAllTrustedDevices")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx,
		`DELETE FROM tfa_trusted_devices WHERE user_id = $1`, userID)
	if err != nil {
		return 0, s.mapError(err)
	}

	return tag.RowsAffected(), nil
}
