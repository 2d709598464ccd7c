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

type Session struct {
	ID           string
	UserEmail    string
	CellID       string
	CompanyID    string
	WorkspaceID  string
	Cookies      string
	CreatedAt    int64
	LastActivity int64
	Active       int64
}

type SessionToken struct {
	SessionID string
	TokenType string
	RawToken  string
	IssuedAt  int64
	ExpiresAt int64
}

const createSession = `
INSERT INTO session (id, userEmail, cellId, companyId, workspaceId, cookies, createdAt, lastActivity, active)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    cookies = excluded.cookies,
    lastActivity = excluded.lastActivity,
    active = excluded.active
`

type CreateSessionParams struct {
	ID           string
	UserEmail    string
	CellID       string
	CompanyID    string
	WorkspaceID  string
	Cookies      string
	CreatedAt    int64
	LastActivity int64
	Active       int64
}

func (q *Queries) CreateSession(ctx context.Context, arg CreateSessionParams) error {
	_, err := q.db.ExecContext(ctx, createSession,
		arg.ID,
		arg.UserEmail,
		arg.CellID,
		arg.CompanyID,
		arg.WorkspaceID,
		arg.Cookies,
		arg.CreatedAt,
		arg.LastActivity,
		arg.Active,
	)
	return err
}

const createSessionToken = `
INSERT INTO sessionToken (sessionId, tokenType, rawToken, issuedAt, expiresAt)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (sessionId, rawToken) DO NOTHING
`

type CreateSessionTokenParams struct {
	SessionID string
	TokenType string
	RawToken  string
	IssuedAt  int64
	ExpiresAt int64
}

func (q *Queries) CreateSessionToken(ctx context.Context, arg CreateSessionTokenParams) error {
	_, err := q.db.ExecContext(ctx, createSessionToken,
		arg.SessionID,
		arg.TokenType,
		arg.RawToken,
		arg.IssuedAt,
		arg.ExpiresAt,
	)
	return err
}

const getSession = `
SELECT id, userEmail, cellId, companyId, workspaceId, cookies, createdAt, lastActivity, active
FROM session WHERE id = ?
`

func (q *Queries) GetSession(ctx context.Context, id string) (Session, error) {
	row := q.db.QueryRowContext(ctx, getSession, id)
	var s Session
	err := row.Scan(
		&s.ID,
		&s.UserEmail,
		&s.CellID,
		&s.CompanyID,
		&s.WorkspaceID,
		&s.Cookies,
		&s.CreatedAt,
		&s.LastActivity,
		&s.Active,
	)
	return s, err
}

const getLatestSession = `
SELECT id, userEmail, cellId, companyId, workspaceId, cookies, createdAt, lastActivity, active
FROM session WHERE active = 1
ORDER BY lastActivity DESC LIMIT 1
`

func (q *Queries) GetLatestSession(ctx context.Context) (Session, error) {
	row := q.db.QueryRowContext(ctx, getLatestSession)
	var s Session
	err := row.Scan(
		&s.ID,
		&s.UserEmail,
		&s.CellID,
		&s.CompanyID,
		&s.WorkspaceID,
		&s.Cookies,
		&s.CreatedAt,
		&s.LastActivity,
		&s.Active,
	)
	return s, err
}

const getSessionTokens = `
SELECT sessionId, tokenType, rawToken, issuedAt, expiresAt
FROM sessionToken WHERE sessionId = ?
ORDER BY issuedAt
`

func (q *Queries) GetSessionTokens(ctx context.Context, sessionID string) ([]SessionToken, error) {
	rows, err := q.db.QueryContext(ctx, getSessionTokens, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SessionToken
	for rows.Next() {
		var t SessionToken
		err := rows.Scan(
			&t.SessionID,
			&t.TokenType,
			&t.RawToken,
			&t.IssuedAt,
			&t.ExpiresAt,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

const deleteSession = `DELETE FROM session WHERE id = ?`

func (q *Queries) DeleteSession(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deleteSession, id)
	return err
}

const deleteSessionTokens = `DELETE FROM sessionToken WHERE sessionId = ?`

func (q *Queries) DeleteSessionTokens(ctx context.Context, sessionID string) error {
	_, err := q.db.ExecContext(ctx, deleteSessionTokens, sessionID)
	return err
}
