package extraction

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jordan-wright/email"
)

// ExportEmails writes extracted email conversations as RFC-822 .eml
// files under dir, one per record, for archival and manual inspection.
// Returns the paths written.
func ExportEmails(dir string, records []map[string]any) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	var paths []string
	for i, record := range records {
		if asString(record["type"]) != "" && asString(record["type"]) != "email" {
			continue
		}

		msg := email.NewEmail()
		msg.From = asString(record["sender"])
		msg.To = asStrings(record["recipients"])
		msg.Cc = asStrings(record["cc"])
		msg.Subject = asString(record["subject"])
		msg.Text = []byte(asString(record["body"]))
		if ts := asString(record["timestamp"]); ts != "" {
			msg.Headers.Set("Date", ts)
		}

		raw, err := msg.Bytes()
		if err != nil {
			return paths, fmt.Errorf("rendering email %d: %w", i, err)
		}

		name := emailFileName(i, asString(record["subject"]))
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, raw, 0o644); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func emailFileName(i int, subject string) string {
	slug := strings.ToLower(subject)
	slug = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return '-'
	}, slug)
	slug = strings.Trim(slug, "-")
	if len(slug) > 40 {
		slug = slug[:40]
	}
	if slug == "" {
		slug = "email"
	}
	return fmt.Sprintf("%03d-%s.eml", i+1, slug)
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asStrings(v any) []string {
	switch value := v.(type) {
	case []string:
		return value
	case []any:
		out := make([]string, 0, len(value))
		for _, item := range value {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
