package validation

// CallRecord is a hand-curated reference call, loaded from the
// ground-truth exports. Immutable once loaded.
type CallRecord struct {
	Title         string
	CallTime      string
	ScheduledOn   string
	Language      string
	Account       string
	Deal          string
	Attendees     []string
	Transcript    Transcript
	HasTranscript bool
	Stats         string
	Info          map[string]string
}

type Transcript struct {
	Title        string
	Participants []Participant
	Segments     []TranscriptSegment
}

type Participant struct {
	Name  string
	Title string
}

type TranscriptSegment struct {
	Timestamp string
	Speaker   string
	Text      string
}

// EmailRecord is a hand-curated reference email. Addresses are only
// ever extracted from email-shaped tokens in the export, never
// reconstructed from display names.
type EmailRecord struct {
	Subject    string
	Sender     Entity
	Recipients []Entity
	Cc         []Entity
	Timestamp  string
	Body       string
	SourceFile string
}

// Entity is one person block from an email export: a display name
// possibly followed by title/company lines and an address line.
// Email is empty when the export carried no address for them.
type Entity struct {
	Name  string
	Email string
}

// SenderEmail returns the sender's address, or "" when the export did
// not include one.
func (e EmailRecord) SenderEmail() string {
	return e.Sender.Email
}

func (e EmailRecord) RecipientEmails() []string {
	return entityEmails(e.Recipients)
}

func (e EmailRecord) CcEmails() []string {
	return entityEmails(e.Cc)
}

func entityEmails(entities []Entity) []string {
	var out []string
	for _, e := range entities {
		if e.Email != "" {
			out = append(out, e.Email)
		}
	}
	return out
}
