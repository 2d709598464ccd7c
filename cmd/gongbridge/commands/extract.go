package commands

import (
	"log/slog"
	"os"

	"gongbridge/lib/serviceutil"
	"gongbridge/services/extraction"
	"gongbridge/services/session"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(extractCmd)
}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extracts calls, deals, users, conversations, library and stats using the stored session.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig()
		database := openDatabase(cfg)
		defer database.Close()

		sessions := session.NewStore(database)
		sess, err := sessions.Latest(cmd.Context())
		if err != nil {
			serviceutil.Fatal("no stored session, run `gongbridge session import` first", err)
		}

		client := createClient(cmd.Context(), cfg, sess)
		svc := extraction.NewService(client, cfg.Extraction)

		snapshot, err := svc.Extract(cmd.Context())
		if err != nil {
			serviceutil.Fatal("extraction failed", err)
		}

		store := extraction.NewStore(database)
		err = store.Save(cmd.Context(), snapshot)
		if err != nil {
			serviceutil.Fatal("failed to store snapshot", err)
		}

		if cfg.EmailExport != "" {
			emails := snapshot.Records(extraction.CategoryConversations)
			paths, err := extraction.ExportEmails(cfg.EmailExport, emails)
			if err != nil {
				slog.Error("email export failed", "err", err)
			} else {
				slog.Info("emails exported", "count", len(paths), "dir", cfg.EmailExport)
			}
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"category", "records", "duration", "error"})
		for _, result := range snapshot.Results {
			errText := ""
			if result.Err != nil {
				errText = result.Err.Error()
			}
			t.AppendRow(table.Row{
				result.Category,
				len(result.Records),
				result.Duration.Round(timeRounding),
				errText,
			})
		}
		t.Render()

		slog.Info("snapshot stored", "id", snapshot.Id,
			"duration", snapshot.FinishedAt.Sub(snapshot.StartedAt))
	},
}
