package validation

import (
	"fmt"
	"strings"
)

// ComparatorKind selects how one declared field is matched.
type ComparatorKind string

const (
	CompareKindExact       ComparatorKind = "exact"
	CompareKindEmail       ComparatorKind = "email"
	CompareKindTextOverlap ComparatorKind = "text_overlap"
	CompareKindSetOverlap  ComparatorKind = "set_overlap"
)

// FieldSpec declares how one field of a record is validated. Optional
// fields absent on both sides are excluded from the denominator.
type FieldSpec struct {
	Name       string         `json:"name"`
	Comparator ComparatorKind `json:"comparator"`
	Optional   bool           `json:"optional"`
	// identifying fields decide record correspondence for completeness
	Identifying bool `json:"identifying"`
}

// FieldComparison is the outcome of validating one declared field.
type FieldComparison struct {
	Field    string
	Expected any
	Actual   any
	Match    bool
	Score    float64
	Skipped  bool
	Detail   string
}

// Validator matches extracted records against ground truth using a
// declared field mapping.
type Validator struct {
	fields     []FieldSpec
	thresholds Thresholds
}

func NewValidator(fields []FieldSpec, thresholds Thresholds) (*Validator, error) {
	if len(fields) == 0 {
		return nil, &ConfigurationError{Field: "fields", Reason: "no fields declared"}
	}
	seen := map[string]bool{}
	for _, f := range fields {
		if f.Name == "" {
			return nil, &ConfigurationError{Field: "fields", Reason: "field with empty name"}
		}
		if seen[f.Name] {
			return nil, &ConfigurationError{Field: f.Name, Reason: "declared twice"}
		}
		seen[f.Name] = true
		switch f.Comparator {
		case CompareKindExact, CompareKindEmail, CompareKindTextOverlap, CompareKindSetOverlap:
		default:
			return nil, &ConfigurationError{
				Field:  f.Name,
				Reason: fmt.Sprintf("unknown comparator %q", f.Comparator),
			}
		}
	}
	if err := thresholds.Validate(); err != nil {
		return nil, err
	}
	return &Validator{fields: fields, thresholds: thresholds}, nil
}

// ValidateRecord compares one ground-truth record (as field→value) with
// one extracted record. A field missing from the extracted record is a
// mismatch unless the expected side is also empty.
func (v *Validator) ValidateRecord(expected, actual map[string]any) []FieldComparison {
	var results []FieldComparison
	for _, field := range v.fields {
		expectedValue, expectedOk := expected[field.Name]
		actualValue, actualOk := actual[field.Name]

		expectedEmpty := !expectedOk || isEmpty(expectedValue)
		actualEmpty := !actualOk || isEmpty(actualValue)

		if field.Optional && expectedEmpty && actualEmpty {
			results = append(results, FieldComparison{
				Field:   field.Name,
				Skipped: true,
				Detail:  "optional, absent on both sides",
			})
			continue
		}

		result := FieldComparison{
			Field:    field.Name,
			Expected: expectedValue,
			Actual:   actualValue,
		}

		switch {
		case expectedEmpty && actualEmpty:
			result.Match = true
			result.Score = 1
		case expectedEmpty != actualEmpty:
			result.Detail = "present on one side only"
		default:
			cmp := v.compare(field.Comparator, expectedValue, actualValue)
			result.Match = cmp.Match
			result.Score = cmp.Score
			if !cmp.Match {
				result.Detail = fmt.Sprintf("similarity %.2f below threshold", cmp.Score)
			}
		}
		results = append(results, result)
	}
	return results
}

func (v *Validator) compare(kind ComparatorKind, expected, actual any) Comparison {
	switch kind {
	case CompareKindExact:
		return CompareExact(toString(expected), toString(actual))
	case CompareKindEmail:
		return CompareEmail(toString(expected), toString(actual))
	case CompareKindTextOverlap:
		return CompareTextOverlap(toString(expected), toString(actual), v.thresholds.TextOverlap)
	case CompareKindSetOverlap:
		return CompareSetOverlap(toStringSlice(expected), toStringSlice(actual), v.thresholds.SetOverlap)
	}
	return Comparison{}
}

// correspondence for completeness: the identifying field of the ground
// truth record must text-overlap an extracted record's.
func (v *Validator) matches(expected, actual map[string]any) bool {
	for _, field := range v.fields {
		if !field.Identifying {
			continue
		}
		cmp := CompareTextOverlap(
			toString(expected[field.Name]),
			toString(actual[field.Name]),
			v.thresholds.TextOverlap,
		)
		if cmp.Match {
			return true
		}
	}
	return false
}

func isEmpty(v any) bool {
	switch value := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(value) == ""
	case []string:
		return len(value) == 0
	case []any:
		return len(value) == 0
	}
	return false
}

func toString(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	default:
		return fmt.Sprintf("%v", value)
	}
}

func toStringSlice(v any) []string {
	switch value := v.(type) {
	case nil:
		return nil
	case []string:
		return value
	case []any:
		out := make([]string, 0, len(value))
		for _, item := range value {
			out = append(out, toString(item))
		}
		return out
	case string:
		if value == "" {
			return nil
		}
		return []string{value}
	}
	return nil
}
