package session

import (
	"fmt"
	"strings"
	"time"

	"gongbridge/lib/jwtutil"
)

var InvalidSession = fmt.Errorf("invalid session")
var SessionExpired = fmt.Errorf("session expired")

// cookie names that carry JWTs, per capture analysis of the okta
// login flow.
var JwtCookieNames = []string{
	"last_login_jwt",
	"cell_jwt",
}

// plain session cookies forwarded verbatim on every request.
var SessionCookieNames = []string{
	"g-session",
	"AWSALB",
	"AWSALBTG",
	"ajs_user_id",
	"ajs_group_id",
}

type Token struct {
	Type      string
	Raw       string
	Claims    jwtutil.Claims
	IssuedAt  time.Time
	ExpiresAt time.Time
}

func (t Token) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

type Session struct {
	Id           string
	UserEmail    string
	CellId       string
	CompanyId    string
	WorkspaceId  string
	Tokens       []Token
	Cookies      map[string]string
	CreatedAt    time.Time
	LastActivity time.Time
	Active       bool
}

// a session is usable when it still has at least one live token and
// carries a plausible identity.
func (s Session) Validate(now time.Time) error {
	if len(s.Tokens) == 0 {
		return fmt.Errorf("%w: no authentication tokens", InvalidSession)
	}

	live := 0
	for _, t := range s.Tokens {
		if !t.Expired(now) {
			live++
		}
	}
	if live == 0 {
		return SessionExpired
	}

	if !strings.Contains(s.UserEmail, "@") {
		return fmt.Errorf("%w: malformed user email", InvalidSession)
	}
	if s.CellId != "" && len(s.CellId) < 3 {
		return fmt.Errorf("%w: malformed cell id", InvalidSession)
	}
	return nil
}

// more than half the tokens expired (or an inactive flag) means the
// capture is stale and the caller should harvest a fresh one.
func (s Session) Expired(now time.Time) bool {
	if !s.Active {
		return true
	}
	if len(s.Tokens) == 0 {
		return true
	}
	expired := 0
	for _, t := range s.Tokens {
		if t.Expired(now) {
			expired++
		}
	}
	return expired*2 > len(s.Tokens)
}

// HAR sessions cannot actually be refreshed; all this can do is bump
// the activity timestamp and report whether the tokens are still live.
func (s *Session) Refresh(now time.Time) error {
	if err := s.Validate(now); err != nil {
		return err
	}
	s.LastActivity = now
	return nil
}

func (s Session) CookieHeader(now time.Time) string {
	var parts []string
	for _, t := range s.Tokens {
		if !t.Expired(now) {
			parts = append(parts, fmt.Sprintf("%s=%s", t.Type, t.Raw))
		}
	}
	for _, name := range SessionCookieNames {
		if v := s.Cookies[name]; v != "" {
			parts = append(parts, fmt.Sprintf("%s=%s", name, v))
		}
	}
	return strings.Join(parts, "; ")
}

// browser-like header set; the platform rejects requests that look
// like API clients.
func (s Session) Headers(now time.Time) map[string]string {
	headers := map[string]string{
		"User-Agent":      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36",
		"Accept":          "application/json, text/plain, */*",
		"Accept-Language": "en-US,en;q=0.9",
		"Connection":      "keep-alive",
		"Sec-Fetch-Dest":  "empty",
		"Sec-Fetch-Mode":  "cors",
		"Sec-Fetch-Site":  "same-origin",
	}
	if cookie := s.CookieHeader(now); cookie != "" {
		headers["Cookie"] = cookie
	}
	return headers
}

// each account is homed on a cell; requests must hit that cell's host.
func (s Session) BaseUrl() string {
	if s.CellId != "" {
		return fmt.Sprintf("https://%s.app.gong.io", s.CellId)
	}
	return "https://app.gong.io"
}
