package inbound

import (
	"github.com/shandysiswandi/tfabit/internal/pkg/router"
	"github.com/shandysiswandi/tfabit/internal/tfa/usecase"
)

// HTTPEndpoint exposes HTTP handlers for second-factor verification and
// trusted-device management.
type HTTPEndpoint struct {
	uc uc
}

// Status reports whether the user can be challenged with a second factor.
// @Summary Second factor readiness
// @Description Returns whether the authenticated user has an enrolled seed and can be asked for a code.
// @Tags TFA
// @Produce json
// @Success 200 {object} router.successResponse{data=StatusResponse} "Readiness result"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/tfa/status [get]
func (h *HTTPEndpoint) Status(r *router.Request) (any, error) {
	resp, err := h.uc.Status(r.Context())
	if err != nil {
		return nil, err
	}

	return StatusResponse{Ready: resp.Ready}, nil
}

// Verify completes the second factor with a code or a trust cookie.
// @Summary Verify second factor
// @Description Verifies a TOTP code (or an existing trust cookie) for the authenticated user. Optionally trusts the device.
// @Tags TFA
// @Accept json
// @Produce json
// @Param request body VerifyRequest true "Verification payload"
// @Success 200 {object} router.successResponse{data=VerifyResponse} "Verification result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Invalid or replayed code"
// @Failure 409 {object} router.errorResponse "Not enrolled"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 429 {object} router.errorResponse "Too many attempts"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/tfa/verify [post]
func (h *HTTPEndpoint) Verify(r *router.Request) (any, error) {
	var req VerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	var trustToken string
	if c, err := r.Cookie(h.uc.TrustCookieName()); err == nil {
		trustToken = c.Value
	}

	resp, err := h.uc.Verify(r.Context(), usecase.VerifyInput{
		Code:        req.Code,
		TrustToken:  trustToken,
		TrustDevice: req.TrustDevice,
		UserAgent:   r.UserAgent(),
		IP:          r.RemoteAddr,
	})
	if err != nil {
		return nil, err
	}

	return VerifyResponse{
		Verified: true,
		Trusted:  resp.Trusted,
		cookie:   setCookie(resp.TrustCookie),
	}, nil
}

// DeviceList lists the user's trusted devices.
// @Summary List trusted devices
// @Description Returns the trusted devices of the authenticated user for audit display.
// @Tags TFA
// @Produce json
// @Success 200 {object} router.successResponse{data=DeviceListResponse} "Trusted devices"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/tfa/devices [get]
func (h *HTTPEndpoint) DeviceList(r *router.Request) (any, error) {
	resp, err := h.uc.DeviceList(r.Context())
	if err != nil {
		return nil, err
	}

	devices := make([]DeviceResponse, 0, len(resp.Devices))
	for _, d := range resp.Devices {
		devices = append(devices, DeviceResponse{
			ID:          d.ID,
			DisplayName: d.DisplayName,
			OriginIP:    d.OriginIP,
			CreatedAt:   d.CreatedAt,
			LastUsedAt:  d.LastUsedAt,
		})
	}

	return DeviceListResponse{Devices: devices}, nil
}

// DeviceRevoke withdraws trust from a single device.
// @Summary Revoke a trusted device
// @Description Removes the trusted device so its next login requires a code again.
// @Tags TFA
// @Produce json
// @Param id path int true "Device ID"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid device id"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 404 {object} router.errorResponse "Trusted device not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/tfa/devices/{id} [delete]
func (h *HTTPEndpoint) DeviceRevoke(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	if err := h.uc.DeviceRevoke(r.Context(), usecase.DeviceRevokeInput{DeviceID: id}); err != nil {
		return nil, err
	}

	return nil, nil
}

// DeviceRevokeAll withdraws trust from every device of the user.
// @Summary Revoke all trusted devices
// @Description Removes every trusted device of the authenticated user and clears the trust cookie.
// @Tags TFA
// @Produce json
// @Success 200 {object} router.successResponse{data=DeviceRevokeAllResponse} "Revocation result"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/tfa/devices [delete]
func (h *HTTPEndpoint) DeviceRevokeAll(r *router.Request) (any, error) {
	resp, err := h.uc.DeviceRevokeAll(r.Context())
	if err != nil {
		return nil, err
	}

	return DeviceRevokeAllResponse{
		Revoked: resp.Revoked,
		cookie:  setCookie(resp.ClearCookie),
	}, nil
}

// SeedDelete removes the user's second-factor enrollment.
// @Summary Delete second factor seed
// @Description Removes the encrypted seed for the authenticated user. Safe to repeat.
// @Tags TFA
// @Produce json
// @Success 200 {object} router.successResponse{data=SeedDeleteResponse} "Deletion result"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/tfa/seed [delete]
func (h *HTTPEndpoint) SeedDelete(r *router.Request) (any, error) {
	resp, err := h.uc.SeedDelete(r.Context())
	if err != nil {
		return nil, err
	}

	return SeedDeleteResponse{Deleted: resp.Deleted}, nil
}
