package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gongbridge/lib/serviceutil"
	"gongbridge/services/extraction"
	"gongbridge/services/validation"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validates the latest extraction snapshot against ground-truth exports.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig()
		database := openDatabase(cfg)
		defer database.Close()

		store := extraction.NewStore(database)
		snapshot, err := store.Latest(cmd.Context())
		if err != nil {
			serviceutil.Fatal("no stored snapshot, run `gongbridge extract` first", err)
		}
		slog.Info("validating snapshot", "id", snapshot.Id)

		var parseErrors []error

		var groundTruthCalls []map[string]any
		call, err := validation.LoadCallRecord(cfg.GroundTruth.Root, cfg.GroundTruth.Layout)
		if err != nil {
			parseErrors = append(parseErrors, err)
		} else {
			groundTruthCalls = append(groundTruthCalls, call.AsMap())
		}

		emails, emailErrs := validation.LoadEmailRecords(cfg.GroundTruth.Root, cfg.GroundTruth.Layout)
		parseErrors = append(parseErrors, emailErrs...)
		var groundTruthEmails []map[string]any
		for _, email := range emails {
			groundTruthEmails = append(groundTruthEmails, email.AsMap())
		}

		pass := true
		pass = runValidation(
			"calls",
			validation.CallFields(),
			cfg.GroundTruth.Thresholds,
			groundTruthCalls,
			snapshot.Records(extraction.CategoryCalls),
			parseErrors,
		) && pass
		pass = runValidation(
			"emails",
			validation.EmailFields(),
			cfg.GroundTruth.Thresholds,
			groundTruthEmails,
			snapshot.Records(extraction.CategoryConversations),
			nil,
		) && pass

		if !pass {
			os.Exit(1)
		}
	},
}

func runValidation(
	name string,
	fields []validation.FieldSpec,
	thresholds validation.Thresholds,
	groundTruth []map[string]any,
	extracted []map[string]any,
	parseErrors []error,
) bool {
	validator, err := validation.NewValidator(fields, thresholds)
	if err != nil {
		serviceutil.Fatal("invalid validation config", err)
	}

	summary, err := validator.Run(groundTruth, extracted, parseErrors)
	if errors.Is(err, validation.NoDataValidated) {
		slog.Warn("no data validated", "kind", name)
		return false
	}
	if err != nil {
		serviceutil.Fatal("validation failed to run", err)
	}

	renderSummary(name, summary)
	return summary.Pass
}

func renderSummary(name string, summary validation.Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(fmt.Sprintf("%s validation", name))
	t.AppendRows([]table.Row{
		{"accuracy", fmt.Sprintf("%.1f%%", summary.Accuracy*100)},
		{"completeness", fmt.Sprintf("%.1f%%", summary.Completeness*100)},
		{"fields compared", summary.ComparedFields},
		{"fields matched", summary.MatchedFields},
		{"records found", fmt.Sprintf("%d/%d", summary.FoundRecords, summary.TotalRecords)},
		{"pass", summary.Pass},
	})
	t.Render()

	if mismatches := summary.Mismatches(); len(mismatches) > 0 {
		mt := table.NewWriter()
		mt.SetOutputMirror(os.Stdout)
		mt.AppendHeader(table.Row{"field", "expected", "actual", "score", "detail"})
		for _, m := range mismatches {
			mt.AppendRow(table.Row{
				m.Field, m.Expected, m.Actual,
				fmt.Sprintf("%.2f", m.Score), m.Detail,
			})
		}
		mt.Render()
	}

	for _, err := range summary.ParseErrors {
		slog.Warn("ground truth parse error", "kind", name, "err", err)
	}
}
