package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Sentinel texts shown by the countdown widget.
const (
	NoSessionText = "No active session"
	ExpiredText   = "Session expired"
)

// Status classifies the current session for display.
type Status int

const (
	StatusNone Status = iota
	StatusActive
	StatusExpired
)

// Expiry decodes the token's middle segment without verifying the signature
// and returns its expiry claim. This is display-only: the token is never
// trusted client-side, the backend re-validates every request.
func Expiry(token string) (time.Time, error) {
	if token == "" {
		return time.Time{}, fmt.Errorf("no token")
	}
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("decode token: %w", err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, fmt.Errorf("token has no expiry claim")
	}
	return exp.Time, nil
}

// Remaining reports how long the session stays valid and its status.
func Remaining(token string, now time.Time) (time.Duration, Status) {
	exp, err := Expiry(token)
	if err != nil {
		return 0, StatusNone
	}
	left := exp.Sub(now)
	if left <= 0 {
		return 0, StatusExpired
	}
	return left, StatusActive
}

// FormatCountdown renders a duration as "HH:MM:SS", truncated to whole
// seconds.
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// Display produces the widget text for the given token at the given instant.
func Display(token string, now time.Time) string {
	left, status := Remaining(token, now)
	switch status {
	case StatusActive:
		return FormatCountdown(left)
	case StatusExpired:
		return ExpiredText
	default:
		return NoSessionText
	}
}

// CookieTokenSource reads the bearer token out of a raw Cookie header line,
// the way a logged-in browser tab would hand it over. The cookie name comes
// from configuration. Satisfies the API client's TokenSource.
type CookieTokenSource struct {
	Header string
	Name   string
}

// Token implements TokenSource.
func (s CookieTokenSource) Token() string {
	return TokenFromCookieHeader(s.Header, s.Name)
}

// TokenFromCookieHeader extracts the named cookie's value from a raw Cookie
// header line. Returns "" when the cookie is absent or malformed.
func TokenFromCookieHeader(header, name string) string {
	if header == "" {
		return ""
	}
	req := http.Request{Header: http.Header{"Cookie": {header}}}
	cookie, err := req.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
