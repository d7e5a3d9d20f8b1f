package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/shandysiswandi/tfabit/internal/pkg/goerror"
)

type DeviceInfo struct {
	ID          int64
	DisplayName string
	OriginIP    string
	CreatedAt   time.Time
	LastUsedAt  time.Time
}

type DeviceListOutput struct {
	Devices []DeviceInfo
}

// DeviceList returns the user's trusted devices for audit display.
func (s *Usecase) DeviceList(ctx context.Context) (*DeviceListOutput, error) {
	ctx, span := s.startSpan(ctx, "DeviceList")
	defer span.End()

	clm, err := s.authenticatedUser(ctx)
	if err != nil {
		return nil, err
	}

	devs, err := s.repoDB.ListTrustedDevices(ctx, clm.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list trusted devices", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	out := &DeviceListOutput{Devices: make([]DeviceInfo, 0, len(devs))}
	for _, d := range devs {
		out.Devices = append(out.Devices, DeviceInfo{
			ID:          d.ID,
			DisplayName: d.DisplayName,
			OriginIP:    d.OriginIP,
			CreatedAt:   d.CreatedAt,
			LastUsedAt:  d.LastUsedAt,
		})
	}

	return out, nil
}

type DeviceRevokeInput struct {
	DeviceID int64 `validate:"required"`
}

// DeviceRevoke withdraws trust from one device. The next verification from
// that device requires a code again.
func (s *Usecase) DeviceRevoke(ctx context.Context, in DeviceRevokeInput) error {
	ctx, span := s.startSpan(ctx, "DeviceRevoke")
	defer span.End()

	clm, err := s.authenticatedUser(ctx)
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	affected, err := s.repoDB.DeleteTrustedDevice(ctx, in.DeviceID, clm.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete trusted device", "user_id", clm.UserID, "device_id", in.DeviceID, "error", err)
		return goerror.NewServer(err)
	}
	if affected == 0 {
		return goerror.NewBusiness("Trusted device not found", goerror.CodeNotFound)
	}

	s.publishDeviceRevoked(ctx, clm.UserID, in.DeviceID, false)

	return nil
}

type DeviceRevokeAllOutput struct {
	Revoked     int64
	ClearCookie *TrustCookie
}

// DeviceRevokeAll withdraws trust from every device of the user. Idempotent:
// revoking with no devices is a successful no-op.
func (s *Usecase) DeviceRevokeAll(ctx context.Context) (*DeviceRevokeAllOutput, error) {
	ctx, span := s.startSpan(ctx, "DeviceRevokeAll")
	defer span.End()

	clm, err := s.authenticatedUser(ctx)
	if err != nil {
		return nil, err
	}

	affected, err := s.repoDB.DeleteAllTrustedDevices(ctx, clm.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete all trusted devices", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if affected > 0 {
		s.publishDeviceRevoked(ctx, clm.UserID, 0, true)
	}

	return &DeviceRevokeAllOutput{
		Revoked:     affected,
		ClearCookie: s.newTrustCookie("", s.clock.Now()),
	}, nil
}

func (s *Usecase) publishDeviceRevoked(ctx context.Context, userID, deviceID int64, all bool) {
	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		if err := s.repoMessaging.PublishDeviceRevoked(ctx, DeviceRevokedEvent{
			UserID:     userID,
			DeviceID:   deviceID,
			RevokedAll: all,
		}); err != nil {
			slog.ErrorContext(ctx, "failed to publish device revoked event", "user_id", userID, "error", err)
		}
		return nil
	})
}
