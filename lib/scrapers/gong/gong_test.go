package gong_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gongbridge/lib/scrapers/gong"
	"gongbridge/services/session"

	"github.com/stretchr/testify/require"
)

func testSession(t *testing.T) session.Session {
	t.Helper()
	now := time.Now()
	return session.Session{
		Id:        "gong_session_test",
		UserEmail: "rep@example.com",
		CellId:    "us-14496",
		Tokens: []session.Token{
			{
				Type:      "last_login_jwt",
				Raw:       "token-a",
				IssuedAt:  now.Add(-time.Hour),
				ExpiresAt: now.Add(time.Hour),
			},
			{
				Type:      "cell_jwt",
				Raw:       "token-b",
				IssuedAt:  now.Add(-time.Hour),
				ExpiresAt: now.Add(time.Hour),
			},
		},
		Cookies: map[string]string{
			"g-session": "abc123",
		},
		CreatedAt:    now,
		LastActivity: now,
		Active:       true,
	}
}

func testClient(t *testing.T, handler http.Handler) *gong.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := gong.NewClient(gong.ClientOptions{
		BaseUrl:            server.URL,
		MinRequestInterval: time.Millisecond,
	})
	require.NoError(t, err)
	err = client.UseSession(context.Background(), testSession(t))
	require.NoError(t, err)
	return client
}

func TestGetMyCalls(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ajax/home/calls/my-calls", r.URL.Path)
		require.Equal(t, "10", r.URL.Query().Get("limit"))
		require.Contains(t, r.Header.Get("Cookie"), "last_login_jwt=token-a")
		require.Contains(t, r.Header.Get("Cookie"), "g-session=abc123")

		_ = json.NewEncoder(w).Encode(map[string]any{
			"calls": []map[string]any{
				{"call_id": "123", "title": "Acme <> Vendor Sync"},
				{"call_id": "456", "title": "Renewal Discussion"},
			},
		})
	}))

	calls, err := client.GetMyCalls(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, calls, 2)
	require.Equal(t, "123", calls[0].Id)
	require.Equal(t, "Acme <> Vendor Sync", calls[0].Title)
}

func TestGetBoardDealsPostsFilters(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/dealswebapi/ajax/deals/get-board-deals", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.EqualValues(t, 25, body["limit"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"deals": []map[string]any{
				{"deal_id": "d1", "name": "Acme Renewal", "amount": 42000.0},
			},
		})
	}))

	deals, err := client.GetBoardDeals(context.Background(), 25, 0)
	require.NoError(t, err)
	require.Len(t, deals, 1)
	require.Equal(t, "Acme Renewal", deals[0].Name)
	require.Equal(t, 42000.0, deals[0].Amount)
}

func TestAuthenticationFailure(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.GetUsers(context.Background())
	require.ErrorIs(t, err, gong.AuthenticationFailed)
}

func TestApiError(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := client.GetCallDetails(context.Background(), "123")
	require.Error(t, err)

	var apiErr *gong.ApiError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusBadGateway, apiErr.Status)
}

func TestRateLimitTracking(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Remaining", "7")
		w.Header().Set("X-RateLimit-Reset", "1700000000")
		_ = json.NewEncoder(w).Encode(map[string]any{"users": []any{}})
	}))

	_, err := client.GetUsers(context.Background())
	require.NoError(t, err)

	status := client.RateLimitStatus()
	require.Equal(t, 7, status.Remaining)
	require.Equal(t, time.Unix(1700000000, 0), status.Reset)
}

func TestRequireSession(t *testing.T) {
	client, err := gong.NewClient(gong.ClientOptions{BaseUrl: "http://127.0.0.1:1"})
	require.NoError(t, err)

	_, err = client.GetUsers(context.Background())
	require.ErrorIs(t, err, session.InvalidSession)
}

func TestCheckConnection(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ajax/common/rtkn", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))

	status := client.CheckConnection(context.Background())
	require.True(t, status.Ok)
	require.NoError(t, status.Err)
	require.Greater(t, status.Latency, time.Duration(0))
}

func TestGetAccountPeople(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ajax/account/acc-1/people", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"people": []map[string]any{
				{"person_id": "p1", "email": "jane@acme.com", "name": "Jane Doe"},
			},
		})
	}))

	people, err := client.GetAccountPeople(context.Background(), "acc-1")
	require.NoError(t, err)
	require.Len(t, people, 1)
	require.Equal(t, "jane@acme.com", people[0].Email)
}

func TestGetTeamStats(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/stats/ajax/v2/team/activity/aggregated/calls", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "calls", body["metric"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"metric": "calls",
			"totals": map[string]float64{"rep@example.com": 12},
		})
	}))

	stats, err := client.GetTeamStats(context.Background(), "calls", gong.StatsPeriod{
		From: "2025-07-01", To: "2025-07-31",
	})
	require.NoError(t, err)
	require.Equal(t, 12.0, stats.Totals["rep@example.com"])
}

func TestGetCallTranscript(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/call/123/detailed-transcript", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"call_id": "123",
			"segments": []map[string]any{
				{"speaker": "Jane Doe", "start_time": 0, "text": "Thanks for joining."},
				{"speaker": "John Roe", "start_time": 12, "text": "Happy to be here."},
			},
		})
	}))

	transcript, err := client.GetCallTranscript(context.Background(), "123")
	require.NoError(t, err)
	require.Len(t, transcript.Segments, 2)
	require.Equal(t, "Jane Doe", transcript.Segments[0].Speaker)
}
