package dbutil

import (
	"database/sql"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// a local sqlite file, or a remote libsql database when Url is set.
type Config struct {
	File      string `json:"file"`
	Url       string `json:"url"`
	AuthToken string `json:"auth_token"`
}

func (config Config) OpenDB() (*sql.DB, error) {
	if config.Url == "" {
		file := config.File
		if file == "" {
			file = ":memory:"
		}
		return sql.Open("sqlite", file)
	}

	url := config.Url
	if config.AuthToken != "" {
		url += "?authToken=" + config.AuthToken
	}
	return sql.Open("libsql", url)
}

// opens the database described by config and applies the schema,
// tolerating tables that already exist from a previous run.
func Open(schema string, config Config) (*sql.DB, error) {
	db, err := config.OpenDB()
	if err != nil {
		return nil, err
	}
	err = ApplySchema(db, schema)
	if err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// ApplySchema runs one package's schema against an already-open
// database, so several packages can share a single file.
func ApplySchema(db *sql.DB, schema string) error {
	_, err := db.Exec(schema)
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		return err
	}
	return nil
}
