package inbound

import (
	"context"

	"github.com/shandysiswandi/tfabit/internal/pkg/router"
	"github.com/shandysiswandi/tfabit/internal/tfa/usecase"
)

type uc interface {
	Status(ctx context.Context) (*usecase.StatusOutput, error)
	Verify(ctx context.Context, in usecase.VerifyInput) (*usecase.VerifyOutput, error)

	DeviceList(ctx context.Context) (*usecase.DeviceListOutput, error)
	DeviceRevoke(ctx context.Context, in usecase.DeviceRevokeInput) error
	DeviceRevokeAll(ctx context.Context) (*usecase.DeviceRevokeAllOutput, error)

	SeedDelete(ctx context.Context) (*usecase.SeedDeleteOutput, error)

	TrustCookieName() string
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Second factor (need authenticated)
	r.GET("/api/v1/tfa/status", end.Status)
	r.POST("/api/v1/tfa/verify", end.Verify)

	// Trusted devices (need authenticated)
	r.GET("/api/v1/tfa/devices", end.DeviceList)
	r.DELETE("/api/v1/tfa/devices/:id", end.DeviceRevoke)
	r.DELETE("/api/v1/tfa/devices", end.DeviceRevokeAll)

	// Enrollment teardown (need authenticated)
	r.DELETE("/api/v1/tfa/seed", end.SeedDelete)
}
