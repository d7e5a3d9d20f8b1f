package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shandysiswandi/tfabit/internal/pkg/instrument"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cookieResponse struct {
	OK bool `json:"ok"`

	cookies []*http.Cookie
}

func (cookieResponse) Message() string { return "done" }

func (r cookieResponse) Cookies() []*http.Cookie { return r.cookies }

func TestRouter_EncoderSetsCookies(t *testing.T) {
	ro := NewRouter(Config{Instrument: instrument.NewNoop()})

	rec := httptest.NewRecorder()
	ro.encoder(context.Background(), rec, cookieResponse{
		OK: true,
		cookies: []*http.Cookie{{
			Name:     "tfa-trusted",
			Value:    "raw-token",
			Path:     "/",
			Expires:  time.Now().Add(24 * time.Hour).UTC(),
			Secure:   true,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		}},
	})

	res := rec.Result()
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	cookies := res.Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "tfa-trusted", cookies[0].Name)
	assert.Equal(t, "raw-token", cookies[0].Value)
	assert.Equal(t, "/", cookies[0].Path)
	assert.True(t, cookies[0].Secure)
	assert.True(t, cookies[0].HttpOnly)
	assert.False(t, cookies[0].Expires.IsZero())

	var body successResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, "done", body.Message)
}

func TestRouter_EncoderClearsCookie(t *testing.T) {
	ro := NewRouter(Config{Instrument: instrument.NewNoop()})

	rec := httptest.NewRecorder()
	ro.encoder(context.Background(), rec, cookieResponse{
		cookies: []*http.Cookie{{Name: "tfa-trusted", Value: "", Path: "/", MaxAge: -1}},
	})

	res := rec.Result()
	defer res.Body.Close()

	cookies := res.Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Equal(t, -1, cookies[0].MaxAge, "Max-Age=0 on the wire means delete")
}

func TestRouter_EncoderNoCookieHook(t *testing.T) {
	ro := NewRouter(Config{Instrument: instrument.NewNoop()})

	rec := httptest.NewRecorder()
	ro.encoder(context.Background(), rec, map[string]string{"ok": "yes"})

	res := rec.Result()
	defer res.Body.Close()
	assert.Empty(t, res.Cookies())
	assert.Equal(t, http.StatusOK, res.StatusCode)
}
