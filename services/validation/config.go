package validation

import "fmt"

// Layout names the ground-truth files on disk. It is always supplied
// by the caller (or loaded from config) rather than hardcoded, since
// silently-renamed ground-truth files were the dominant failure mode
// this framework is meant to catch.
type Layout struct {
	// directory holding one call's ground-truth exports
	CallsDir       string `json:"calls_dir"`
	CallInfoFile   string `json:"call_info_file"`
	AttendeesFile  string `json:"attendees_file"`
	TranscriptFile string `json:"transcript_file"`
	StatsFile      string `json:"stats_file"`
	// directory holding one text file per sample email
	EmailsDir string `json:"emails_dir"`
	EmailGlob string `json:"email_glob"`
}

func DefaultLayout() Layout {
	return Layout{
		CallsDir:       "gong_call1",
		CallInfoFile:   "callinfo.txt",
		AttendeesFile:  "attendees.txt",
		TranscriptFile: "transcript.txt",
		StatsFile:      "interactionstats.txt",
		EmailsDir:      "gong_emails",
		EmailGlob:      "email*.txt",
	}
}

func (l Layout) Validate() error {
	if l.CallsDir == "" && l.EmailsDir == "" {
		return &ConfigurationError{
			Field:  "layout",
			Reason: "at least one of calls_dir or emails_dir must be set",
		}
	}
	return nil
}

type Thresholds struct {
	Accuracy     float64 `json:"accuracy"`
	Completeness float64 `json:"completeness"`
	TextOverlap  float64 `json:"text_overlap"`
	SetOverlap   float64 `json:"set_overlap"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		Accuracy:     0.95,
		Completeness: 1.0,
		TextOverlap:  0.5,
		SetOverlap:   0.8,
	}
}

func (t Thresholds) Validate() error {
	for _, check := range []struct {
		name  string
		value float64
	}{
		{"accuracy", t.Accuracy},
		{"completeness", t.Completeness},
		{"text_overlap", t.TextOverlap},
		{"set_overlap", t.SetOverlap},
	} {
		if check.value < 0 || check.value > 1 {
			return &ConfigurationError{
				Field:  check.name,
				Reason: fmt.Sprintf("threshold %v is outside [0, 1]", check.value),
			}
		}
	}
	return nil
}
