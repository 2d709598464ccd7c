package validation

import (
	"fmt"
	"os"
	"path/filepath"
)

// LoadCallRecord reads one call's ground-truth exports from root using
// the configured layout. Every file the layout names is a declared
// section: a missing file is a ParseError, a present-but-empty one is
// not. Leaving a layout field empty skips that section.
func LoadCallRecord(root string, layout Layout) (CallRecord, error) {
	if err := layout.Validate(); err != nil {
		return CallRecord{}, err
	}

	dir := filepath.Join(root, layout.CallsDir)
	record := CallRecord{Info: map[string]string{}}

	if layout.CallInfoFile != "" {
		content, err := readSection(dir, layout.CallInfoFile)
		if err != nil {
			return CallRecord{}, err
		}
		info, err := ParseCallInfo(content)
		if err != nil {
			return CallRecord{}, err
		}
		record.Info = info
		record.Title = info["call_title"]
		record.CallTime = info["call_time"]
		record.ScheduledOn = info["scheduled_on"]
		record.Language = info["language"]
		record.Account = info["account"]
		record.Deal = info["deal"]
	}

	if layout.AttendeesFile != "" {
		content, err := readSection(dir, layout.AttendeesFile)
		if err != nil {
			return CallRecord{}, err
		}
		attendees, err := ParseAttendees(content)
		if err != nil {
			return CallRecord{}, err
		}
		record.Attendees = attendees
	}

	if layout.TranscriptFile != "" {
		content, err := readSection(dir, layout.TranscriptFile)
		if err != nil {
			return CallRecord{}, err
		}
		transcript, err := ParseTranscript(content)
		if err != nil {
			return CallRecord{}, err
		}
		record.Transcript = transcript
		record.HasTranscript = true
	}

	if layout.StatsFile != "" {
		content, err := readSection(dir, layout.StatsFile)
		if err != nil {
			return CallRecord{}, err
		}
		record.Stats = content
	}

	return record, nil
}

// LoadEmailRecords reads every email export matching the layout's glob.
// A record that fails to parse is reported alongside the ones that
// loaded, so one bad export does not abort the run.
func LoadEmailRecords(root string, layout Layout) ([]EmailRecord, []error) {
	dir := filepath.Join(root, layout.EmailsDir)
	glob := layout.EmailGlob
	if glob == "" {
		glob = "*.txt"
	}

	paths, err := filepath.Glob(filepath.Join(dir, glob))
	if err != nil {
		return nil, []error{&ParseError{Section: layout.EmailsDir, Reason: err.Error()}}
	}
	if len(paths) == 0 {
		return nil, []error{&ParseError{Section: layout.EmailsDir, Reason: "no email exports matched"}}
	}

	var records []EmailRecord
	var errs []error
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", filepath.Base(path), err))
			continue
		}
		record, err := ParseEmail(string(content))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", filepath.Base(path), err))
			continue
		}
		record.SourceFile = filepath.Base(path)
		records = append(records, record)
	}
	return records, errs
}

func readSection(dir, name string) (string, error) {
	content, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", &ParseError{Section: name}
		}
		return "", err
	}
	return string(content), nil
}
