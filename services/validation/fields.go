package validation

// CallFields is the default mapping for validating extracted calls.
func CallFields() []FieldSpec {
	return []FieldSpec{
		{Name: "title", Comparator: CompareKindTextOverlap, Identifying: true},
		{Name: "scheduled_on", Comparator: CompareKindTextOverlap, Optional: true},
		{Name: "account", Comparator: CompareKindTextOverlap, Optional: true},
		{Name: "deal", Comparator: CompareKindTextOverlap, Optional: true},
		{Name: "attendees", Comparator: CompareKindSetOverlap},
		{Name: "workspace_id", Comparator: CompareKindExact, Optional: true},
	}
}

// EmailFields is the default mapping for validating extracted emails.
func EmailFields() []FieldSpec {
	return []FieldSpec{
		{Name: "subject", Comparator: CompareKindTextOverlap, Identifying: true},
		{Name: "sender", Comparator: CompareKindEmail},
		{Name: "recipients", Comparator: CompareKindSetOverlap},
		{Name: "cc", Comparator: CompareKindSetOverlap, Optional: true},
		{Name: "body", Comparator: CompareKindTextOverlap, Optional: true},
	}
}

// AsMap flattens a call record into the field names CallFields declares.
func (r CallRecord) AsMap() map[string]any {
	return map[string]any{
		"title":        r.Title,
		"call_time":    r.CallTime,
		"scheduled_on": r.ScheduledOn,
		"language":     r.Language,
		"account":      r.Account,
		"deal":         r.Deal,
		"attendees":    r.Attendees,
	}
}

// AsMap flattens an email record into the field names EmailFields declares.
func (r EmailRecord) AsMap() map[string]any {
	return map[string]any{
		"subject":    r.Subject,
		"sender":     r.SenderEmail(),
		"recipients": r.RecipientEmails(),
		"cc":         r.CcEmails(),
		"timestamp":  r.Timestamp,
		"body":       r.Body,
	}
}
