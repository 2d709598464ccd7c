package extraction

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"gongbridge/services/extraction/db"

	"go.opentelemetry.io/otel/codes"
)

// persists extraction snapshots so validation runs can replay the most
// recent extraction without hitting the platform again.
type Store struct {
	db  *sql.DB
	qry *db.Queries
}

func NewStore(database *sql.DB) Store {
	return Store{
		db:  database,
		qry: db.New(database),
	}
}

func (s Store) Save(ctx context.Context, snapshot Snapshot) error {
	ctx, span := tracer.Start(ctx, "store:Save")
	defer span.End()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to begin transaction")
		return err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	err = txqry.CreateSnapshot(ctx, db.CreateSnapshotParams{
		ID:         snapshot.Id,
		SessionID:  snapshot.SessionId,
		StartedAt:  snapshot.StartedAt.Unix(),
		FinishedAt: snapshot.FinishedAt.Unix(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to insert snapshot row")
		return err
	}

	for _, result := range snapshot.Results {
		records, err := json.Marshal(result.Records)
		if err != nil {
			span.RecordError(err)
			return err
		}
		errText := ""
		if result.Err != nil {
			errText = result.Err.Error()
		}
		err = txqry.CreateSnapshotCategory(ctx, db.CreateSnapshotCategoryParams{
			SnapshotID: snapshot.Id,
			Category:   string(result.Category),
			Records:    string(records),
			DurationMs: result.Duration.Milliseconds(),
			Error:      errText,
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to insert category row")
			return err
		}
	}

	return tx.Commit()
}

func (s Store) Get(ctx context.Context, id string) (Snapshot, error) {
	ctx, span := tracer.Start(ctx, "store:Get")
	defer span.End()

	row, err := s.qry.GetSnapshot(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, "snapshot not found")
		return Snapshot{}, err
	}
	return s.hydrate(ctx, row)
}

func (s Store) Latest(ctx context.Context) (Snapshot, error) {
	ctx, span := tracer.Start(ctx, "store:Latest")
	defer span.End()

	row, err := s.qry.GetLatestSnapshot(ctx)
	if err != nil {
		span.SetStatus(codes.Error, "no stored snapshots")
		return Snapshot{}, err
	}
	return s.hydrate(ctx, row)
}

func (s Store) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "store:Delete")
	defer span.End()

	err := s.qry.DeleteSnapshotCategories(ctx, id)
	if err != nil {
		span.RecordError(err)
		return err
	}
	return s.qry.DeleteSnapshot(ctx, id)
}

func (s Store) hydrate(ctx context.Context, row db.Snapshot) (Snapshot, error) {
	categoryRows, err := s.qry.GetSnapshotCategories(ctx, row.ID)
	if err != nil {
		return Snapshot{}, err
	}

	snapshot := Snapshot{
		Id:         row.ID,
		SessionId:  row.SessionID,
		StartedAt:  time.Unix(row.StartedAt, 0),
		FinishedAt: time.Unix(row.FinishedAt, 0),
	}
	for _, c := range categoryRows {
		var records []map[string]any
		err = json.Unmarshal([]byte(c.Records), &records)
		if err != nil {
			return Snapshot{}, err
		}
		result := CategoryResult{
			Category: Category(c.Category),
			Records:  records,
			Duration: time.Duration(c.DurationMs) * time.Millisecond,
		}
		if c.Error != "" {
			result.Err = storedCategoryError(c.Error)
		}
		snapshot.Results = append(snapshot.Results, result)
	}
	return snapshot, nil
}

// storedCategoryError preserves the message of a category failure that
// happened in a previous run; the original typed error is gone.
type storedCategoryError string

func (e storedCategoryError) Error() string {
	return string(e)
}
