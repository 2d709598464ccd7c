package db

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

type Snapshot struct {
	ID         string
	SessionID  string
	StartedAt  int64
	FinishedAt int64
}

type SnapshotCategory struct {
	SnapshotID string
	Category   string
	Records    string
	DurationMs int64
	Error      string
}

const createSnapshot = `
INSERT INTO snapshot (id, sessionId, startedAt, finishedAt)
VALUES (?, ?, ?, ?)
`

type CreateSnapshotParams struct {
	ID         string
	SessionID  string
	StartedAt  int64
	FinishedAt int64
}

func (q *Queries) CreateSnapshot(ctx context.Context, arg CreateSnapshotParams) error {
	_, err := q.db.ExecContext(ctx, createSnapshot,
		arg.ID,
		arg.SessionID,
		arg.StartedAt,
		arg.FinishedAt,
	)
	return err
}

const createSnapshotCategory = `
INSERT INTO snapshotCategory (snapshotId, category, records, durationMs, error)
VALUES (?, ?, ?, ?, ?)
`

type CreateSnapshotCategoryParams struct {
	SnapshotID string
	Category   string
	Records    string
	DurationMs int64
	Error      string
}

func (q *Queries) CreateSnapshotCategory(ctx context.Context, arg CreateSnapshotCategoryParams) error {
	_, err := q.db.ExecContext(ctx, createSnapshotCategory,
		arg.SnapshotID,
		arg.Category,
		arg.Records,
		arg.DurationMs,
		arg.Error,
	)
	return err
}

const getSnapshot = `
SELECT id, sessionId, startedAt, finishedAt
FROM snapshot WHERE id = ?
`

func (q *Queries) GetSnapshot(ctx context.Context, id string) (Snapshot, error) {
	row := q.db.QueryRowContext(ctx, getSnapshot, id)
	var s Snapshot
	err := row.Scan(&s.ID, &s.SessionID, &s.StartedAt, &s.FinishedAt)
	return s, err
}

const getLatestSnapshot = `
SELECT id, sessionId, startedAt, finishedAt
FROM snapshot ORDER BY startedAt DESC LIMIT 1
`

func (q *Queries) GetLatestSnapshot(ctx context.Context) (Snapshot, error) {
	row := q.db.QueryRowContext(ctx, getLatestSnapshot)
	var s Snapshot
	err := row.Scan(&s.ID, &s.SessionID, &s.StartedAt, &s.FinishedAt)
	return s, err
}

const getSnapshotCategories = `
SELECT snapshotId, category, records, durationMs, error
FROM snapshotCategory WHERE snapshotId = ?
ORDER BY category
`

func (q *Queries) GetSnapshotCategories(ctx context.Context, snapshotID string) ([]SnapshotCategory, error) {
	rows, err := q.db.QueryContext(ctx, getSnapshotCategories, snapshotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SnapshotCategory
	for rows.Next() {
		var c SnapshotCategory
		err := rows.Scan(
			&c.SnapshotID,
			&c.Category,
			&c.Records,
			&c.DurationMs,
			&c.Error,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

const deleteSnapshot = `DELETE FROM snapshot WHERE id = ?`

func (q *Queries) DeleteSnapshot(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deleteSnapshot, id)
	return err
}

const deleteSnapshotCategories = `DELETE FROM snapshotCategory WHERE snapshotId = ?`

func (q *Queries) DeleteSnapshotCategories(ctx context.Context, snapshotID string) error {
	_, err := q.db.ExecContext(ctx, deleteSnapshotCategories, snapshotID)
	return err
}
