package jwtutil

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// claims carried by the platform's session JWTs. `gu` is the user
// email and `cell` the instance the account is homed on.
type Claims struct {
	Gp   string `json:"gp"`
	Exp  int64  `json:"exp"`
	Iat  int64  `json:"iat"`
	Jti  string `json:"jti"`
	Gu   string `json:"gu"`
	Cell string `json:"cell"`
}

func (c Claims) ExpiresAt() time.Time {
	return time.Unix(c.Exp, 0)
}

func (c Claims) IssuedAt() time.Time {
	return time.Unix(c.Iat, 0)
}

func (c Claims) Expired(now time.Time) bool {
	return now.Unix() > c.Exp
}

// decodes the payload segment of a JWT without verifying the
// signature. the tokens are harvested from the user's own browser
// session, so there is nothing to verify against; we only need the
// claims.
func DecodePayload(token string) (Claims, error) {
	segments := strings.Split(token, ".")
	if len(segments) != 3 {
		return Claims{}, fmt.Errorf("expected 3 jwt segments, got %d", len(segments))
	}

	payload, err := base64.RawURLEncoding.DecodeString(segments[1])
	if err != nil {
		return Claims{}, fmt.Errorf("decode jwt payload: %w", err)
	}

	var claims Claims
	err = json.Unmarshal(payload, &claims)
	if err != nil {
		return Claims{}, fmt.Errorf("unmarshal jwt claims: %w", err)
	}
	return claims, nil
}

// session JWTs always start with the base64 of `{"` which is "eyJ"
func LooksLikeJWT(s string) bool {
	return strings.HasPrefix(s, "eyJ") && strings.Count(s, ".") == 2
}
