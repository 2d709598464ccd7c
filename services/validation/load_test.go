package validation_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gongbridge/services/validation"

	"github.com/stretchr/testify/require"
)

func writeGroundTruth(t *testing.T, layout validation.Layout) string {
	t.Helper()
	root := t.TempDir()

	callsDir := filepath.Join(root, layout.CallsDir)
	require.NoError(t, os.MkdirAll(callsDir, 0o755))

	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(callsDir, name), []byte(content), 0o644))
	}
	write(layout.CallInfoFile, "Call title\nQuarterly Sync\nAccount\nSalesforce\n")
	write(layout.AttendeesFile, "a@x.com; b@x.com")
	write(layout.TranscriptFile, "Quarterly Sync\nParticipants\nJane Doe, AE\nTranscript\n0:00 | Jane Hello there.\n")
	write(layout.StatsFile, "Talk ratio: 40%\n")

	emailsDir := filepath.Join(root, layout.EmailsDir)
	require.NoError(t, os.MkdirAll(emailsDir, 0o755))
	email := "from\nJane Doe\njane@postman.com\nto\nJohn Roe\njohn@salesforce.com\nRe: Sync\n3:47 pm EDT\nbody\n"
	require.NoError(t, os.WriteFile(filepath.Join(emailsDir, "email1.txt"), []byte(email), 0o644))

	return root
}

func TestLoadCallRecord(t *testing.T) {
	layout := validation.DefaultLayout()
	root := writeGroundTruth(t, layout)

	record, err := validation.LoadCallRecord(root, layout)
	require.NoError(t, err)
	require.Equal(t, "Quarterly Sync", record.Title)
	require.Equal(t, "Salesforce", record.Account)
	require.Equal(t, []string{"a@x.com", "b@x.com"}, record.Attendees)
	require.True(t, record.HasTranscript)
	require.Len(t, record.Transcript.Segments, 1)
	require.Contains(t, record.Stats, "Talk ratio")
}

func TestLoadCallRecordMissingDeclaredFile(t *testing.T) {
	layout := validation.DefaultLayout()
	root := writeGroundTruth(t, layout)
	require.NoError(t, os.Remove(filepath.Join(root, layout.CallsDir, layout.AttendeesFile)))

	_, err := validation.LoadCallRecord(root, layout)

	var parseErr *validation.ParseError
	require.True(t, errors.As(err, &parseErr))
	require.Equal(t, layout.AttendeesFile, parseErr.Section)
}

func TestLoadCallRecordUndeclaredSectionSkipped(t *testing.T) {
	layout := validation.DefaultLayout()
	root := writeGroundTruth(t, layout)
	require.NoError(t, os.Remove(filepath.Join(root, layout.CallsDir, layout.StatsFile)))

	// not naming the file in the layout means it is not a declared section
	layout.StatsFile = ""

	record, err := validation.LoadCallRecord(root, layout)
	require.NoError(t, err)
	require.Empty(t, record.Stats)
}

func TestLoadEmailRecords(t *testing.T) {
	layout := validation.DefaultLayout()
	root := writeGroundTruth(t, layout)

	records, errs := validation.LoadEmailRecords(root, layout)
	require.Empty(t, errs)
	require.Len(t, records, 1)
	require.Equal(t, "email1.txt", records[0].SourceFile)
	require.Equal(t, "jane@postman.com", records[0].Sender.Email)
}

func TestLoadEmailRecordsBadExportDoesNotAbort(t *testing.T) {
	layout := validation.DefaultLayout()
	root := writeGroundTruth(t, layout)
	bad := filepath.Join(root, layout.EmailsDir, "email2.txt")
	require.NoError(t, os.WriteFile(bad, []byte("no markers at all"), 0o644))

	records, errs := validation.LoadEmailRecords(root, layout)
	require.Len(t, records, 1)
	require.Len(t, errs, 1)
}
