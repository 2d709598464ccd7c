package commands

import (
	"context"
	"database/sql"
	"os"
	"time"

	"gongbridge/lib/configutil"
	"gongbridge/lib/dbutil"
	"gongbridge/lib/restyutil"
	"gongbridge/lib/scrapers/gong"
	"gongbridge/lib/serviceutil"
	"gongbridge/services/extraction"
	extractiondb "gongbridge/services/extraction/db"
	"gongbridge/services/session"
	sessiondb "gongbridge/services/session/db"
	"gongbridge/services/validation"
)

type GroundTruthConfig struct {
	Root       string                `json:"root"`
	Layout     validation.Layout     `json:"layout"`
	Thresholds validation.Thresholds `json:"thresholds"`
}

type Config struct {
	Db          dbutil.Config      `json:"db"`
	BaseUrl     string             `json:"base_url"`
	Extraction  extraction.Options `json:"extraction"`
	GroundTruth GroundTruthConfig  `json:"ground_truth"`
	EmailExport string             `json:"email_export"`
}

func readConfig() Config {
	cfg, err := configutil.ReadConfig[Config]("gongbridge.json5")
	if os.IsNotExist(err) {
		cfg = Config{}
	} else if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	if cfg.Db.File == "" && cfg.Db.Url == "" {
		cfg.Db.File = "gongbridge.db"
	}
	if cfg.GroundTruth.Root == "" {
		cfg.GroundTruth.Root = "validation"
	}
	if cfg.GroundTruth.Layout == (validation.Layout{}) {
		cfg.GroundTruth.Layout = validation.DefaultLayout()
	}
	if cfg.GroundTruth.Thresholds == (validation.Thresholds{}) {
		cfg.GroundTruth.Thresholds = validation.DefaultThresholds()
	}
	return cfg
}

func openDatabase(cfg Config) *sql.DB {
	database, err := dbutil.Open(sessiondb.Schema, cfg.Db)
	if err != nil {
		serviceutil.Fatal("failed to open database", err)
	}
	err = dbutil.ApplySchema(database, extractiondb.Schema)
	if err != nil {
		serviceutil.Fatal("failed to apply snapshot schema", err)
	}
	return database
}

func createClient(ctx context.Context, cfg Config, sess session.Session) *gong.Client {
	client, err := gong.NewClient(gong.ClientOptions{
		BaseUrl: cfg.BaseUrl,
		Timeout: time.Second * 30,
	})
	if err != nil {
		serviceutil.Fatal("failed to initialize client", err)
	}
	client.SetRestyInstrumentOutput(restyutil.NewFilesystemOutput(".dev/resty/gong"))

	err = client.UseSession(ctx, sess)
	if err != nil {
		serviceutil.Fatal("session is not usable", err)
	}
	return client
}
