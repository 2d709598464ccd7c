package extraction_test

import (
	"context"
	"testing"
	"time"

	"gongbridge/lib/scrapers/gong"
	"gongbridge/lib/testutil"
	"gongbridge/services/extraction"
	"gongbridge/services/extraction/db"
	"gongbridge/services/session"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type fakeApi struct {
	session *session.Session

	calls         []gong.Call
	transcripts   map[string]gong.Transcript
	deals         []gong.Deal
	users         []gong.User
	conversations []gong.Conversation
	library       map[string]gong.LibraryData
	teamStats     map[string]gong.TeamStats

	usersErr     error
	usersErrOnce bool
	usersCalls   int
}

func (f *fakeApi) Session() *session.Session { return f.session }

func (f *fakeApi) GetMyCalls(ctx context.Context, limit, offset int) ([]gong.Call, error) {
	return f.calls, nil
}

func (f *fakeApi) GetCallTranscript(ctx context.Context, callId string) (gong.Transcript, error) {
	return f.transcripts[callId], nil
}

func (f *fakeApi) GetBoardDeals(ctx context.Context, limit, offset int) ([]gong.Deal, error) {
	return f.deals, nil
}

func (f *fakeApi) GetUsers(ctx context.Context) ([]gong.User, error) {
	f.usersCalls++
	if f.usersErr != nil {
		err := f.usersErr
		if f.usersErrOnce {
			f.usersErr = nil
		}
		return nil, err
	}
	return f.users, nil
}

func (f *fakeApi) GetConversations(ctx context.Context, filters gong.ConversationFilters, limit int) ([]gong.Conversation, error) {
	return f.conversations, nil
}

func (f *fakeApi) GetLibraryData(ctx context.Context, folderId string) (gong.LibraryData, error) {
	return f.library[folderId], nil
}

func (f *fakeApi) GetTeamStats(ctx context.Context, metric string, period gong.StatsPeriod) (gong.TeamStats, error) {
	return f.teamStats[metric], nil
}

func liveSession() *session.Session {
	now := time.Now()
	return &session.Session{
		Id:        "gong_session_test",
		UserEmail: "rep@example.com",
		CellId:    "us-14496",
		Tokens: []session.Token{{
			Type:      "last_login_jwt",
			Raw:       "token-a",
			IssuedAt:  now.Add(-time.Hour),
			ExpiresAt: now.Add(time.Hour),
		}},
		CreatedAt:    now,
		LastActivity: now,
		Active:       true,
	}
}

func fullFake() *fakeApi {
	return &fakeApi{
		session: liveSession(),
		calls: []gong.Call{{
			Id:            "c1",
			Title:         "Quarterly Sync",
			ScheduledTime: "Jul 22, 2025",
			AccountName:   "Salesforce",
			Participants: []gong.CallParticipant{
				{Email: "a@x.com"},
				{Email: "b@x.com"},
				{Name: "No Email"},
			},
		}},
		transcripts: map[string]gong.Transcript{
			"c1": {CallId: "c1", Segments: []gong.TranscriptSegment{
				{Speaker: "Jane", Text: "Hello there."},
			}},
		},
		deals: []gong.Deal{{Id: "d1", Name: "Renewal", Amount: 42000}},
		users: []gong.User{{Id: "u1", Email: "rep@example.com"}},
		conversations: []gong.Conversation{{
			Id:          "e1",
			Type:        "email",
			Subject:     "Re: Licensing",
			SenderEmail: "jane@postman.com",
			Body:        "<p>Hi John,</p><p>Following up.</p>",
		}},
		library: map[string]gong.LibraryData{
			"": {
				Folders: []gong.LibraryFolder{{Id: "f1", Name: "Wins"}},
				Items:   []gong.LibraryItem{{Id: "i0", Title: "Root Item"}},
			},
			"f1": {Items: []gong.LibraryItem{{Id: "i1", Title: "Great Call"}}},
		},
		teamStats: map[string]gong.TeamStats{
			"calls": {Metric: "calls", Totals: map[string]float64{"rep@example.com": 12}},
		},
	}
}

func TestExtractAllCategories(t *testing.T) {
	_, cleanup := testutil.SetupService(t, testutil.ServiceParams{Name: "extraction"})
	defer cleanup()

	svc := extraction.NewService(fullFake(), extraction.Options{
		StatsMetrics: []string{"calls"},
	})

	snapshot, err := svc.Extract(context.Background())
	require.NoError(t, err)
	require.Empty(t, snapshot.Failed())
	require.Equal(t, "gong_session_test", snapshot.SessionId)
	require.Len(t, snapshot.Results, 6)

	calls := snapshot.Records(extraction.CategoryCalls)
	require.Len(t, calls, 1)
	diff := cmp.Diff(map[string]any{
		"call_id":      "c1",
		"title":        "Quarterly Sync",
		"call_time":    "",
		"scheduled_on": "Jul 22, 2025",
		"language":     "",
		"account":      "Salesforce",
		"deal":         "",
		"attendees":    []string{"a@x.com", "b@x.com"},
		"host":         "",
		"transcript":   "Jane Hello there.",
	}, calls[0])
	if diff != "" {
		t.Fatal(diff)
	}

	emails := snapshot.Records(extraction.CategoryConversations)
	require.Len(t, emails, 1)
	require.Equal(t, "Hi John,\nFollowing up.", emails[0]["body"])

	library := snapshot.Records(extraction.CategoryLibrary)
	require.Len(t, library, 2)
	require.Equal(t, "Wins", library[1]["folder"])
}

func TestExtractRetriesAfterAuthFailure(t *testing.T) {
	_, cleanup := testutil.SetupService(t, testutil.ServiceParams{Name: "extraction"})
	defer cleanup()

	fake := fullFake()
	fake.usersErr = gong.AuthenticationFailed
	fake.usersErrOnce = true

	svc := extraction.NewService(fake, extraction.Options{
		SkipCalls:         true,
		SkipDeals:         true,
		SkipConversations: true,
		SkipLibrary:       true,
		SkipTeamStats:     true,
	})

	snapshot, err := svc.Extract(context.Background())
	require.NoError(t, err)
	require.Empty(t, snapshot.Failed())
	require.Equal(t, 2, fake.usersCalls)
	require.Len(t, snapshot.Records(extraction.CategoryUsers), 1)
}

func TestExtractCategoryFailureDoesNotAbort(t *testing.T) {
	_, cleanup := testutil.SetupService(t, testutil.ServiceParams{Name: "extraction"})
	defer cleanup()

	fake := fullFake()
	fake.usersErr = gong.RateLimited

	svc := extraction.NewService(fake, extraction.Options{
		StatsMetrics: []string{"calls"},
	})

	snapshot, err := svc.Extract(context.Background())
	require.NoError(t, err)

	failed := snapshot.Failed()
	require.Len(t, failed, 1)
	require.Equal(t, extraction.CategoryUsers, failed[0].Category)
	require.ErrorIs(t, failed[0].Err, gong.RateLimited)

	// the other five categories still ran
	require.Len(t, snapshot.Results, 6)
	require.NotEmpty(t, snapshot.Records(extraction.CategoryCalls))
}

func TestExtractRequiresSession(t *testing.T) {
	_, cleanup := testutil.SetupService(t, testutil.ServiceParams{Name: "extraction"})
	defer cleanup()

	svc := extraction.NewService(&fakeApi{}, extraction.Options{})

	_, err := svc.Extract(context.Background())
	require.ErrorIs(t, err, session.InvalidSession)
}

func TestStoreRoundTrip(t *testing.T) {
	res, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "extraction",
		DbSchema: db.Schema,
	})
	defer cleanup()

	ctx := context.Background()
	store := extraction.NewStore(res.DB)

	svc := extraction.NewService(fullFake(), extraction.Options{
		StatsMetrics: []string{"calls"},
	})
	snapshot, err := svc.Extract(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, snapshot))

	loaded, err := store.Latest(ctx)
	require.NoError(t, err)
	require.Equal(t, snapshot.Id, loaded.Id)
	require.Equal(t, snapshot.SessionId, loaded.SessionId)
	require.Len(t, loaded.Results, 6)

	calls := loaded.Records(extraction.CategoryCalls)
	require.Len(t, calls, 1)
	require.Equal(t, "Quarterly Sync", calls[0]["title"])

	require.NoError(t, store.Delete(ctx, snapshot.Id))
	_, err = store.Get(ctx, snapshot.Id)
	require.Error(t, err)
}

func TestExportEmails(t *testing.T) {
	dir := t.TempDir()

	paths, err := extraction.ExportEmails(dir, []map[string]any{
		{
			"type":       "email",
			"subject":    "Re: Licensing",
			"sender":     "jane@postman.com",
			"recipients": []string{"john@salesforce.com"},
			"body":       "Following up.",
		},
		{"type": "call", "subject": "not an email"},
	})
	require.NoError(t, err)
	require.Len(t, paths, 1)
	require.FileExists(t, paths[0])
}
