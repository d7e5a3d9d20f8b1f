package inbound

import (
	"net/http"
	"time"

	"github.com/shandysiswandi/tfabit/internal/tfa/usecase"
)

type StatusResponse struct {
	Ready bool `json:"ready"`
}

type VerifyRequest struct {
	Code        string `json:"code"`
	TrustDevice bool   `json:"trust_device"`
}

type VerifyResponse struct {
	Verified bool `json:"verified"`
	Trusted  bool `json:"trusted"`

	cookie *http.Cookie
}

func (VerifyResponse) Message() string {
	return "Verification successful."
}

func (r VerifyResponse) Cookies() []*http.Cookie {
	if r.cookie == nil {
		return nil
	}
	return []*http.Cookie{r.cookie}
}

type DeviceResponse struct {
	ID          int64     `json:"id,string"`
	DisplayName string    `json:"display_name"`
	OriginIP    string    `json:"origin_ip"`
	CreatedAt   time.Time `json:"created_at"`
	LastUsedAt  time.Time `json:"last_used_at"`
}

type DeviceListResponse struct {
	Devices []DeviceResponse `json:"devices"`
}

type DeviceRevokeAllResponse struct {
	Revoked int64 `json:"revoked"`

	cookie *http.Cookie
}

func (DeviceRevokeAllResponse) Message() string {
	return "All trusted devices revoked."
}

func (r DeviceRevokeAllResponse) Cookies() []*http.Cookie {
	if r.cookie == nil {
		return nil
	}
	return []*http.Cookie{r.cookie}
}

type SeedDeleteResponse struct {
	Deleted int64 `json:"deleted"`
}

func (SeedDeleteResponse) Message() string {
	return "Two-factor enrollment removed."
}

// setCookie maps the usecase cookie contract to an http.Cookie. A zero-value
// token clears the cookie immediately.
func setCookie(tc *usecase.TrustCookie) *http.Cookie {
	if tc == nil {
		return nil
	}

	c := &http.Cookie{
		Name:     tc.Name,
		Value:    tc.Value,
		Path:     "/",
		Domain:   tc.Domain,
		Expires:  tc.ExpiresAt,
		Secure:   tc.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if tc.Value == "" {
		c.MaxAge = -1
	}

	return c
}
