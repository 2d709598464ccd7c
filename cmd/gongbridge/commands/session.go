package commands

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gongbridge/lib/har"
	"gongbridge/lib/serviceutil"
	"gongbridge/services/session"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	sessionCmd.AddCommand(sessionImportCmd)
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionDeleteCmd)
	rootCmd.AddCommand(sessionCmd)
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manages captured browser sessions.",
}

var sessionImportCmd = &cobra.Command{
	Use:   "import <capture.har>",
	Short: "Imports a session from a HAR capture of a logged-in browser.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig()
		database := openDatabase(cfg)
		defer database.Close()

		doc, err := har.Load(args[0])
		if err != nil {
			serviceutil.Fatal("failed to read HAR capture", err)
		}

		sess, err := session.FromHAR(cmd.Context(), doc)
		if err != nil {
			serviceutil.Fatal("no usable session in capture", err)
		}

		store := session.NewStore(database)
		err = store.Save(cmd.Context(), sess)
		if err != nil {
			serviceutil.Fatal("failed to store session", err)
		}

		slog.Info("session imported",
			"id", sess.Id,
			"user", sess.UserEmail,
			"cell", sess.CellId,
			"tokens", len(sess.Tokens))
	},
}

var sessionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Shows the most recently imported session.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig()
		database := openDatabase(cfg)
		defer database.Close()

		store := session.NewStore(database)
		sess, err := store.Latest(cmd.Context())
		if err != nil {
			serviceutil.Fatal("no stored session", err)
		}

		now := time.Now()
		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendRows([]table.Row{
			{"id", sess.Id},
			{"user", sess.UserEmail},
			{"cell", sess.CellId},
			{"base url", sess.BaseUrl()},
			{"created", sess.CreatedAt.Format(time.RFC1123)},
			{"expired", fmt.Sprintf("%v", sess.Expired(now))},
		})
		for _, token := range sess.Tokens {
			t.AppendRow(table.Row{
				fmt.Sprintf("token %s", token.Type),
				fmt.Sprintf("expires %s", token.ExpiresAt.Format(time.RFC1123)),
			})
		}
		t.Render()
	},
}

var sessionDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Deletes a stored session and its tokens.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig()
		database := openDatabase(cfg)
		defer database.Close()

		store := session.NewStore(database)
		err := store.Delete(cmd.Context(), args[0])
		if err != nil {
			serviceutil.Fatal("failed to delete session", err)
		}
		slog.Info("session deleted", "id", args[0])
	},
}
