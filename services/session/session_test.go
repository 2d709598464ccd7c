package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	"gongbridge/lib/har"
	"gongbridge/lib/jwtutil"
	"gongbridge/lib/testutil"
	"gongbridge/services/session/db"

	"github.com/stretchr/testify/require"
)

func encodeToken(t *testing.T, claims jwtutil.Claims) string {
	t.Helper()
	payload, err := json.Marshal(claims)
	require.NoError(t, err)

	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	body := base64.RawURLEncoding.EncodeToString(payload)
	return header + "." + body + ".c2lnbmF0dXJl"
}

func captureWithCookies(cookies ...har.Cookie) har.Document {
	return har.Document{
		Log: har.Log{
			Entries: []har.Entry{
				{
					Request: har.Request{
						Method:  "GET",
						Url:     "https://us-14496.app.gong.io/",
						Cookies: cookies,
					},
				},
			},
		},
	}
}

func TestFromHAR(t *testing.T) {
	now := time.Now()
	jwt := encodeToken(t, jwtutil.Claims{
		Exp:  now.Add(time.Hour).Unix(),
		Iat:  now.Unix(),
		Jti:  "t1",
		Gu:   "brian.coons@postman.com",
		Cell: "us-14496",
	})

	doc := captureWithCookies(
		har.Cookie{Name: "last_login_jwt", Value: jwt},
		har.Cookie{Name: "last_login_jwt", Value: jwt},
		har.Cookie{Name: "g-session", Value: "gsess"},
		har.Cookie{Name: "AWSALB", Value: "lb"},
		har.Cookie{Name: "irrelevant", Value: "x"},
	)

	s, err := FromHAR(context.Background(), doc)
	require.NoError(t, err)
	require.Equal(t, "brian.coons@postman.com", s.UserEmail)
	require.Equal(t, "us-14496", s.CellId)
	// duplicate jwt cookie values collapse into one token
	require.Len(t, s.Tokens, 1)
	require.Equal(t, map[string]string{"g-session": "gsess", "AWSALB": "lb"}, s.Cookies)
	require.Equal(t, "https://us-14496.app.gong.io", s.BaseUrl())

	cookie := s.CookieHeader(now)
	require.Contains(t, cookie, "last_login_jwt="+jwt)
	require.Contains(t, cookie, "g-session=gsess")

	headers := s.Headers(now)
	require.NotEmpty(t, headers["User-Agent"])
	require.NotEmpty(t, headers["Cookie"])
}

func TestFromHARNoTokens(t *testing.T) {
	doc := captureWithCookies(har.Cookie{Name: "g-session", Value: "gsess"})

	_, err := FromHAR(context.Background(), doc)
	require.ErrorIs(t, err, InvalidSession)
}

func TestFromHARExpiredTokens(t *testing.T) {
	past := time.Now().Add(-2 * time.Hour)
	jwt := encodeToken(t, jwtutil.Claims{
		Exp:  past.Add(time.Hour).Unix(),
		Iat:  past.Unix(),
		Gu:   "brian.coons@postman.com",
		Cell: "us-14496",
	})
	doc := captureWithCookies(har.Cookie{Name: "cell_jwt", Value: jwt})

	_, err := FromHAR(context.Background(), doc)
	require.ErrorIs(t, err, SessionExpired)
}

func TestSessionExpiredMajority(t *testing.T) {
	now := time.Now()
	mk := func(exp time.Time) Token {
		return Token{Type: "cell_jwt", Raw: "r" + exp.String(), ExpiresAt: exp, IssuedAt: now}
	}

	s := Session{
		UserEmail: "a@b.com",
		Active:    true,
		Tokens: []Token{
			mk(now.Add(time.Hour)),
			mk(now.Add(-time.Hour)),
		},
	}
	// 1 of 2 expired is not a majority
	require.False(t, s.Expired(now))

	s.Tokens = append(s.Tokens, mk(now.Add(-time.Hour)))
	require.True(t, s.Expired(now))

	s.Tokens = s.Tokens[:2]
	s.Active = false
	require.True(t, s.Expired(now))
}

func TestStoreRoundTrip(t *testing.T) {
	res, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "session",
		DbSchema: db.Schema,
	})
	defer cleanup()

	ctx := context.Background()
	now := time.Now().Truncate(time.Second)
	jwt := encodeToken(t, jwtutil.Claims{
		Exp:  now.Add(time.Hour).Unix(),
		Iat:  now.Unix(),
		Gu:   "brian.coons@postman.com",
		Cell: "us-14496",
	})

	original := Session{
		Id:           "gong_session_test1",
		UserEmail:    "brian.coons@postman.com",
		CellId:       "us-14496",
		Tokens:       []Token{{Type: "last_login_jwt", Raw: jwt, IssuedAt: now, ExpiresAt: now.Add(time.Hour)}},
		Cookies:      map[string]string{"g-session": "gsess"},
		CreatedAt:    now,
		LastActivity: now,
		Active:       true,
	}

	store := NewStore(res.DB)
	require.NoError(t, store.Save(ctx, original))

	loaded, err := store.Get(ctx, "gong_session_test1")
	require.NoError(t, err)
	require.Equal(t, original.UserEmail, loaded.UserEmail)
	require.Equal(t, original.CellId, loaded.CellId)
	require.Equal(t, original.Cookies, loaded.Cookies)
	require.Len(t, loaded.Tokens, 1)
	require.Equal(t, jwt, loaded.Tokens[0].Raw)
	require.Equal(t, "brian.coons@postman.com", loaded.Tokens[0].Claims.Gu)

	latest, err := store.Latest(ctx)
	require.NoError(t, err)
	require.Equal(t, original.Id, latest.Id)

	require.NoError(t, store.Delete(ctx, original.Id))
	_, err = store.Get(ctx, original.Id)
	require.Error(t, err)
}
