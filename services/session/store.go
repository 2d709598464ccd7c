package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"gongbridge/lib/jwtutil"
	"gongbridge/services/session/db"

	"go.opentelemetry.io/otel/codes"
)

// persists harvested sessions so a capture can be reused across runs
// until its tokens expire.
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

func (s Store) Save(ctx context.Context, sess Session) error {
	ctx, span := tracer.Start(ctx, "store:Save")
	defer span.End()

	cookies, err := json.Marshal(sess.Cookies)
	if err != nil {
		span.RecordError(err)
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to begin transaction")
		return err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	active := int64(0)
	if sess.Active {
		active = 1
	}
	err = txqry.CreateSession(ctx, db.CreateSessionParams{
		ID:           sess.Id,
		UserEmail:    sess.UserEmail,
		CellID:       sess.CellId,
		CompanyID:    sess.CompanyId,
		WorkspaceID:  sess.WorkspaceId,
		Cookies:      string(cookies),
		CreatedAt:    sess.CreatedAt.Unix(),
		LastActivity: sess.LastActivity.Unix(),
		Active:       active,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to insert session row")
		return err
	}

	for _, t := range sess.Tokens {
		err = txqry.CreateSessionToken(ctx, db.CreateSessionTokenParams{
			SessionID: sess.Id,
			TokenType: t.Type,
			RawToken:  t.Raw,
			IssuedAt:  t.IssuedAt.Unix(),
			ExpiresAt: t.ExpiresAt.Unix(),
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to insert token row")
			return err
		}
	}

	return tx.Commit()
}

func (s Store) Get(ctx context.Context, id string) (Session, error) {
	ctx, span := tracer.Start(ctx, "store:Get")
	defer span.End()

	row, err := s.qry.GetSession(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, "session not found")
		return Session{}, err
	}
	return s.hydrate(ctx, row)
}

// the most recently used active session, the usual entrypoint for
// "pick up where the last capture left off".
func (s Store) Latest(ctx context.Context) (Session, error) {
	ctx, span := tracer.Start(ctx, "store:Latest")
	defer span.End()

	row, err := s.qry.GetLatestSession(ctx)
	if err != nil {
		span.SetStatus(codes.Error, "no stored sessions")
		return Session{}, err
	}
	return s.hydrate(ctx, row)
}

func (s Store) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "store:Delete")
	defer span.End()

	err := s.qry.DeleteSessionTokens(ctx, id)
	if err != nil {
		span.RecordError(err)
		return err
	}
	return s.qry.DeleteSession(ctx, id)
}

func (s Store) hydrate(ctx context.Context, row db.Session) (Session, error) {
	tokenRows, err := s.qry.GetSessionTokens(ctx, row.ID)
	if err != nil {
		return Session{}, err
	}

	cookies := map[string]string{}
	err = json.Unmarshal([]byte(row.Cookies), &cookies)
	if err != nil {
		return Session{}, err
	}

	tokens := make([]Token, 0, len(tokenRows))
	for _, t := range tokenRows {
		claims, err := jwtutil.DecodePayload(t.RawToken)
		if err != nil {
			// stored token rows always originate from decoded jwts
			return Session{}, err
		}
		tokens = append(tokens, Token{
			Type:      t.TokenType,
			Raw:       t.RawToken,
			Claims:    claims,
			IssuedAt:  time.Unix(t.IssuedAt, 0),
			ExpiresAt: time.Unix(t.ExpiresAt, 0),
		})
	}

	return Session{
		Id:           row.ID,
		UserEmail:    row.UserEmail,
		CellId:       row.CellID,
		CompanyId:    row.CompanyID,
		WorkspaceId:  row.WorkspaceID,
		Tokens:       tokens,
		Cookies:      cookies,
		CreatedAt:    time.Unix(row.CreatedAt, 0),
		LastActivity: time.Unix(row.LastActivity, 0),
		Active:       row.Active == 1,
	}, nil
}
