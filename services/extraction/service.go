package extraction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gongbridge/lib/scrapers/gong"
	"gongbridge/services/session"

	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/extraction")

type Category string

const (
	CategoryCalls         Category = "calls"
	CategoryDeals         Category = "deals"
	CategoryUsers         Category = "users"
	CategoryConversations Category = "conversations"
	CategoryLibrary       Category = "library"
	CategoryTeamStats     Category = "team_stats"
)

// Api is the slice of the platform client the extractor needs.
type Api interface {
	Session() *session.Session
	GetMyCalls(ctx context.Context, limit, offset int) ([]gong.Call, error)
	GetCallTranscript(ctx context.Context, callId string) (gong.Transcript, error)
	GetBoardDeals(ctx context.Context, limit, offset int) ([]gong.Deal, error)
	GetUsers(ctx context.Context) ([]gong.User, error)
	GetConversations(ctx context.Context, filters gong.ConversationFilters, limit int) ([]gong.Conversation, error)
	GetLibraryData(ctx context.Context, folderId string) (gong.LibraryData, error)
	GetTeamStats(ctx context.Context, metric string, period gong.StatsPeriod) (gong.TeamStats, error)
}

// Options toggles categories and bounds page sizes. The zero value
// extracts everything.
type Options struct {
	SkipCalls         bool `json:"skip_calls"`
	SkipDeals         bool `json:"skip_deals"`
	SkipUsers         bool `json:"skip_users"`
	SkipConversations bool `json:"skip_conversations"`
	SkipLibrary       bool `json:"skip_library"`
	SkipTeamStats     bool `json:"skip_team_stats"`

	CallLimit         int      `json:"call_limit"`
	DealLimit         int      `json:"deal_limit"`
	ConversationLimit int      `json:"conversation_limit"`
	StatsMetrics      []string `json:"stats_metrics"`
	StatsPeriod       gong.StatsPeriod
}

// CategoryResult is one category's records plus how the fetch went.
type CategoryResult struct {
	Category Category
	Records  []map[string]any
	Duration time.Duration
	Err      error
}

// Snapshot is the outcome of one extraction run.
type Snapshot struct {
	Id         string
	SessionId  string
	StartedAt  time.Time
	FinishedAt time.Time
	Results    []CategoryResult
}

// Records returns one category's flattened records, nil when the
// category was skipped or failed.
func (s Snapshot) Records(category Category) []map[string]any {
	for _, r := range s.Results {
		if r.Category == category {
			return r.Records
		}
	}
	return nil
}

// Failed lists the categories whose fetch errored.
func (s Snapshot) Failed() []CategoryResult {
	var out []CategoryResult
	for _, r := range s.Results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}

type Service struct {
	api  Api
	opts Options
}

func NewService(api Api, opts Options) *Service {
	if opts.CallLimit <= 0 {
		opts.CallLimit = 50
	}
	if opts.DealLimit <= 0 {
		opts.DealLimit = 50
	}
	if opts.ConversationLimit <= 0 {
		opts.ConversationLimit = 50
	}
	if len(opts.StatsMetrics) == 0 {
		opts.StatsMetrics = []string{"calls", "emails"}
	}
	return &Service{api: api, opts: opts}
}

// Extract runs every enabled category against the bound session. A
// category failure is recorded in the snapshot and does not abort the
// other categories.
func (s *Service) Extract(ctx context.Context) (Snapshot, error) {
	ctx, span := tracer.Start(ctx, "Extract")
	defer span.End()

	bound := s.api.Session()
	if bound == nil {
		err := fmt.Errorf("%w: no session bound", session.InvalidSession)
		span.SetStatus(codes.Error, err.Error())
		return Snapshot{}, err
	}

	id, err := random.String(8)
	if err != nil {
		return Snapshot{}, err
	}

	snapshot := Snapshot{
		Id:        fmt.Sprintf("gong_snapshot_%s", id),
		SessionId: bound.Id,
		StartedAt: time.Now(),
	}

	type job struct {
		category Category
		skip     bool
		fetch    func(context.Context) ([]map[string]any, error)
	}
	jobs := []job{
		{CategoryCalls, s.opts.SkipCalls, s.fetchCalls},
		{CategoryDeals, s.opts.SkipDeals, s.fetchDeals},
		{CategoryUsers, s.opts.SkipUsers, s.fetchUsers},
		{CategoryConversations, s.opts.SkipConversations, s.fetchConversations},
		{CategoryLibrary, s.opts.SkipLibrary, s.fetchLibrary},
		{CategoryTeamStats, s.opts.SkipTeamStats, s.fetchTeamStats},
	}

	for _, j := range jobs {
		if j.skip {
			continue
		}
		result := s.runCategory(ctx, j.category, j.fetch)
		snapshot.Results = append(snapshot.Results, result)
	}
	snapshot.FinishedAt = time.Now()

	if failed := snapshot.Failed(); len(failed) > 0 {
		span.SetStatus(codes.Error, fmt.Sprintf("%d categories failed", len(failed)))
	}
	return snapshot, nil
}

// runCategory fetches one category, retrying once after re-validating
// the session when the platform rejects its credentials mid-run.
func (s *Service) runCategory(
	ctx context.Context,
	category Category,
	fetch func(context.Context) ([]map[string]any, error),
) CategoryResult {
	ctx, span := tracer.Start(ctx, fmt.Sprintf("category/%s", category))
	defer span.End()

	start := time.Now()
	records, err := fetch(ctx)

	if errors.Is(err, gong.AuthenticationFailed) {
		slog.WarnContext(ctx, "authentication failed mid-extraction, re-validating session",
			"category", category)
		if verr := s.api.Session().Validate(time.Now()); verr != nil {
			err = verr
		} else {
			records, err = fetch(ctx)
		}
	}

	result := CategoryResult{
		Category: category,
		Records:  records,
		Duration: time.Since(start),
		Err:      err,
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.ErrorContext(ctx, "category extraction failed",
			"category", category, "err", err)
	} else {
		slog.InfoContext(ctx, "category extracted",
			"category", category,
			"records", len(records),
			"duration", result.Duration)
	}
	return result
}

func (s *Service) fetchCalls(ctx context.Context) ([]map[string]any, error) {
	calls, err := s.api.GetMyCalls(ctx, s.opts.CallLimit, 0)
	if err != nil {
		return nil, err
	}

	var records []map[string]any
	for _, call := range calls {
		record := CallRecord(call)
		transcript, err := s.api.GetCallTranscript(ctx, call.Id)
		if err != nil {
			slog.WarnContext(ctx, "transcript fetch failed",
				"call", call.Id, "err", err)
		} else {
			record["transcript"] = TranscriptText(transcript)
		}
		records = append(records, record)
	}
	return records, nil
}

func (s *Service) fetchDeals(ctx context.Context) ([]map[string]any, error) {
	deals, err := s.api.GetBoardDeals(ctx, s.opts.DealLimit, 0)
	if err != nil {
		return nil, err
	}
	var records []map[string]any
	for _, deal := range deals {
		records = append(records, DealRecord(deal))
	}
	return records, nil
}

func (s *Service) fetchUsers(ctx context.Context) ([]map[string]any, error) {
	users, err := s.api.GetUsers(ctx)
	if err != nil {
		return nil, err
	}
	var records []map[string]any
	for _, user := range users {
		records = append(records, UserRecord(user))
	}
	return records, nil
}

func (s *Service) fetchConversations(ctx context.Context) ([]map[string]any, error) {
	conversations, err := s.api.GetConversations(ctx,
		gong.ConversationFilters{}, s.opts.ConversationLimit)
	if err != nil {
		return nil, err
	}
	var records []map[string]any
	for _, conversation := range conversations {
		records = append(records, ConversationRecord(conversation))
	}
	return records, nil
}

func (s *Service) fetchLibrary(ctx context.Context) ([]map[string]any, error) {
	root, err := s.api.GetLibraryData(ctx, "")
	if err != nil {
		return nil, err
	}

	var records []map[string]any
	for _, item := range root.Items {
		records = append(records, LibraryItemRecord(item, ""))
	}
	for _, folder := range root.Folders {
		data, err := s.api.GetLibraryData(ctx, folder.Id)
		if err != nil {
			return records, err
		}
		for _, item := range data.Items {
			records = append(records, LibraryItemRecord(item, folder.Name))
		}
	}
	return records, nil
}

func (s *Service) fetchTeamStats(ctx context.Context) ([]map[string]any, error) {
	var records []map[string]any
	for _, metric := range s.opts.StatsMetrics {
		stats, err := s.api.GetTeamStats(ctx, metric, s.opts.StatsPeriod)
		if err != nil {
			return records, err
		}
		records = append(records, TeamStatsRecord(stats))
	}
	return records, nil
}
