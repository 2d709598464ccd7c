package commands

import (
	"fmt"
	"os"
	"time"

	"gongbridge/lib/serviceutil"
	"gongbridge/services/session"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

const timeRounding = time.Millisecond

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Checks whether the stored session is still accepted by the platform.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig()
		database := openDatabase(cfg)
		defer database.Close()

		sessions := session.NewStore(database)
		sess, err := sessions.Latest(cmd.Context())
		if err != nil {
			serviceutil.Fatal("no stored session", err)
		}

		client := createClient(cmd.Context(), cfg, sess)
		status := client.CheckConnection(cmd.Context())
		rate := client.RateLimitStatus()

		now := time.Now()
		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendRows([]table.Row{
			{"session", sess.Id},
			{"user", sess.UserEmail},
			{"session expired", fmt.Sprintf("%v", sess.Expired(now))},
			{"connection ok", fmt.Sprintf("%v", status.Ok)},
			{"latency", status.Latency.Round(timeRounding)},
			{"rate limit remaining", rate.Remaining},
		})
		if status.Err != nil {
			t.AppendRow(table.Row{"error", status.Err.Error()})
		}
		if !rate.Reset.IsZero() {
			t.AppendRow(table.Row{"rate limit resets", rate.Reset.Format(time.RFC1123)})
		}
		t.Render()

		if !status.Ok {
			os.Exit(1)
		}
	},
}
