package validation

import "fmt"

// NoDataValidated signals that zero fields were available to compare.
// It is distinct from a low-accuracy failure so callers never conflate
// "nothing to check" with "checked and failed".
var NoDataValidated = fmt.Errorf("no data validated")

// ParseError reports a required ground-truth section that is missing or
// malformed. It aborts loading of that one record, not the whole run.
type ParseError struct {
	Section string
	Reason  string
}

func (e *ParseError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("ground truth section %q is missing", e.Section)
	}
	return fmt.Sprintf("ground truth section %q: %s", e.Section, e.Reason)
}

// ConfigurationError reports an invalid field mapping or threshold.
// It is fatal and raised before any comparison runs.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid validation config (%s): %s", e.Field, e.Reason)
}
