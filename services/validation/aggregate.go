package validation

// RecordResult is the validated outcome for one ground-truth record.
type RecordResult struct {
	// identifying value of the ground-truth record, for reports
	Key    string
	Found  bool
	Fields []FieldComparison
}

// Summary is the terminal output of one validation run.
type Summary struct {
	Pass         bool
	Accuracy     float64
	Completeness float64

	ComparedFields int
	MatchedFields  int
	TotalRecords   int
	FoundRecords   int

	Records     []RecordResult
	ParseErrors []error
}

// Mismatches returns every retained field comparison that failed.
func (s Summary) Mismatches() []FieldComparison {
	var out []FieldComparison
	for _, record := range s.Records {
		for _, field := range record.Fields {
			if !field.Skipped && !field.Match {
				out = append(out, field)
			}
		}
	}
	return out
}

// Run validates every ground-truth record against the extracted
// records. Correspondence is decided by the identifying field's
// text-overlap rule; a ground-truth record with no corresponding
// extracted record counts against completeness and contributes no
// field comparisons. Returns NoDataValidated when zero fields were
// compared across the whole run.
func (v *Validator) Run(groundTruth, extracted []map[string]any, parseErrors []error) (Summary, error) {
	summary := Summary{
		TotalRecords: len(groundTruth),
		ParseErrors:  parseErrors,
	}

	for _, expected := range groundTruth {
		result := RecordResult{Key: identifyingValue(v.fields, expected)}

		var match map[string]any
		for _, candidate := range extracted {
			if v.matches(expected, candidate) {
				match = candidate
				break
			}
		}

		if match == nil {
			summary.Records = append(summary.Records, result)
			continue
		}

		result.Found = true
		result.Fields = v.ValidateRecord(expected, match)
		summary.FoundRecords++

		for _, field := range result.Fields {
			if field.Skipped {
				continue
			}
			summary.ComparedFields++
			if field.Match {
				summary.MatchedFields++
			}
		}
		summary.Records = append(summary.Records, result)
	}

	if summary.ComparedFields == 0 {
		return summary, NoDataValidated
	}

	summary.Accuracy = float64(summary.MatchedFields) / float64(summary.ComparedFields)
	if summary.TotalRecords > 0 {
		summary.Completeness = float64(summary.FoundRecords) / float64(summary.TotalRecords)
	}
	summary.Pass = summary.Accuracy >= v.thresholds.Accuracy &&
		summary.Completeness >= v.thresholds.Completeness

	return summary, nil
}

func identifyingValue(fields []FieldSpec, record map[string]any) string {
	for _, field := range fields {
		if field.Identifying {
			if s := toString(record[field.Name]); s != "" {
				return s
			}
		}
	}
	return ""
}
