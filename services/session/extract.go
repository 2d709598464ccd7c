package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gongbridge/lib/har"
	"gongbridge/lib/jwtutil"

	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/session")

// builds a session out of the cookies observed in a HAR capture of a
// logged-in browsing session. JWT cookies are decoded for identity
// and expiry; plain session cookies are carried verbatim.
func FromHAR(ctx context.Context, doc har.Document) (Session, error) {
	ctx, span := tracer.Start(ctx, "FromHAR")
	defer span.End()

	now := time.Now()

	tokens := extractTokens(ctx, doc)
	cookies := extractSessionCookies(doc)

	if len(tokens) == 0 {
		err := fmt.Errorf("%w: no jwt cookies in capture", InvalidSession)
		span.SetStatus(codes.Error, err.Error())
		return Session{}, err
	}

	email, cell := identityFromTokens(tokens)
	if email == "" {
		err := fmt.Errorf("%w: no user identity in jwt claims", InvalidSession)
		span.SetStatus(codes.Error, err.Error())
		return Session{}, err
	}

	suffix, err := random.String(8)
	if err != nil {
		span.RecordError(err)
		return Session{}, err
	}

	s := Session{
		Id:           fmt.Sprintf("gong_session_%s", suffix),
		UserEmail:    email,
		CellId:       cell,
		Tokens:       tokens,
		Cookies:      cookies,
		CreatedAt:    now,
		LastActivity: now,
		Active:       true,
	}

	err = s.Validate(now)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Session{}, err
	}

	span.SetAttributes(
		attribute.String("user_email", email),
		attribute.String("cell_id", cell),
		attribute.Int("token_count", len(tokens)),
	)
	slog.InfoContext(ctx, "extracted session from capture",
		"user", email,
		"cell", cell,
		"tokens", len(tokens),
		"cookies", len(cookies),
	)
	return s, nil
}

func extractTokens(ctx context.Context, doc har.Document) []Token {
	// dedupe by raw token value, last observation wins
	byRaw := map[string]Token{}
	var order []string

	for _, cookie := range doc.Cookies() {
		if !isJwtCookie(cookie.Name) {
			continue
		}
		if !jwtutil.LooksLikeJWT(cookie.Value) {
			continue
		}

		claims, err := jwtutil.DecodePayload(cookie.Value)
		if err != nil {
			slog.WarnContext(ctx, "skipping undecodable jwt cookie",
				"cookie", cookie.Name,
				"err", err,
			)
			continue
		}

		if _, seen := byRaw[cookie.Value]; !seen {
			order = append(order, cookie.Value)
		}
		byRaw[cookie.Value] = Token{
			Type:      cookie.Name,
			Raw:       cookie.Value,
			Claims:    claims,
			IssuedAt:  claims.IssuedAt(),
			ExpiresAt: claims.ExpiresAt(),
		}
	}

	out := make([]Token, 0, len(order))
	for _, raw := range order {
		out = append(out, byRaw[raw])
	}
	return out
}

func extractSessionCookies(doc har.Document) map[string]string {
	out := map[string]string{}
	for _, cookie := range doc.Cookies() {
		if isSessionCookie(cookie.Name) && cookie.Value != "" {
			out[cookie.Name] = cookie.Value
		}
	}
	return out
}

func isJwtCookie(name string) bool {
	for _, n := range JwtCookieNames {
		if name == n {
			return true
		}
	}
	return false
}

func isSessionCookie(name string) bool {
	for _, n := range SessionCookieNames {
		if name == n {
			return true
		}
	}
	return false
}

func identityFromTokens(tokens []Token) (email, cell string) {
	for _, t := range tokens {
		if t.Claims.Gu != "" && t.Claims.Cell != "" {
			return t.Claims.Gu, t.Claims.Cell
		}
	}
	// fall back to any token that at least names the user
	for _, t := range tokens {
		if t.Claims.Gu != "" {
			return t.Claims.Gu, ""
		}
	}
	return "", ""
}
