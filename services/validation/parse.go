package validation

import (
	"regexp"
	"strings"

	"gongbridge/lib/textutil"
)

var callInfoLabels = []string{
	"Call title",
	"Call time",
	"Scheduled on",
	"Language",
	"Account",
	"Deal",
	"Copy email addresses",
}

// ParseCallInfo reads the exported call-metadata block: a label on its
// own line followed by the value on the next line(s).
func ParseCallInfo(content string) (map[string]string, error) {
	labels := map[string]bool{}
	for _, l := range callInfoLabels {
		labels[l] = true
	}

	info := map[string]string{}
	var currentKey string
	var currentValue []string

	flush := func() {
		if currentKey != "" {
			info[currentKey] = strings.TrimSpace(strings.Join(currentValue, "\n"))
		}
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if labels[line] {
			flush()
			currentKey = strings.ReplaceAll(strings.ToLower(line), " ", "_")
			currentValue = nil
			continue
		}
		currentValue = append(currentValue, line)
	}
	flush()

	if len(info) == 0 {
		return nil, &ParseError{Section: "call info", Reason: "no labeled blocks found"}
	}
	return info, nil
}

// ParseAttendees reads an attendee export: addresses separated by
// semicolons or newlines. A present-but-empty export is an empty set,
// not an error.
func ParseAttendees(content string) ([]string, error) {
	var attendees []string
	for _, part := range strings.FieldsFunc(content, func(r rune) bool {
		return r == ';' || r == '\n'
	}) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if email := textutil.FirstEmail(part); email != "" {
			attendees = append(attendees, email)
		}
	}
	if attendees == nil {
		attendees = []string{}
	}
	return attendees, nil
}

var segmentRegex = regexp.MustCompile(`^\d{1,2}:\d{2}(:\d{2})?$`)

// ParseTranscript reads the transcript export: title line, a
// Participants section of "Name, Title" lines, then a Transcript
// section of "m:ss | Speaker text..." segments.
func ParseTranscript(content string) (Transcript, error) {
	lines := strings.Split(strings.TrimSpace(content), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return Transcript{}, &ParseError{Section: "transcript", Reason: "empty file"}
	}

	out := Transcript{Title: strings.TrimSpace(lines[0])}

	const (
		sectionNone = iota
		sectionParticipants
		sectionSegments
	)
	section := sectionNone
	sawTranscriptHeader := false

	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)

		switch line {
		case "Participants":
			section = sectionParticipants
			continue
		case "Transcript":
			section = sectionSegments
			sawTranscriptHeader = true
			continue
		}

		switch section {
		case sectionParticipants:
			if line == "" || strings.HasPrefix(line, "Recorded on") {
				continue
			}
			// company headers group participants with no comma
			name, title, found := strings.Cut(line, ",")
			if !found {
				continue
			}
			out.Participants = append(out.Participants, Participant{
				Name:  strings.TrimSpace(name),
				Title: strings.TrimSpace(title),
			})

		case sectionSegments:
			timestamp, rest, found := strings.Cut(line, "|")
			if !found || !segmentRegex.MatchString(strings.TrimSpace(timestamp)) {
				continue
			}
			speaker, text, _ := strings.Cut(strings.TrimSpace(rest), " ")
			out.Segments = append(out.Segments, TranscriptSegment{
				Timestamp: strings.TrimSpace(timestamp),
				Speaker:   speaker,
				Text:      strings.TrimSpace(text),
			})
		}
	}

	if !sawTranscriptHeader {
		return Transcript{}, &ParseError{Section: "Transcript"}
	}
	return out, nil
}

var timestampRegex = regexp.MustCompile(`(?i)\d{1,2}:\d{2}\s*(am|pm)\s*(EDT|EST|PDT|PST|CDT|CST|UTC|GMT)`)

// ParseEmail reads one email export. Section markers are bare "from" /
// "to" / "cc" lines; a timezone-stamped time line ends the headers and
// starts the body; a "Re:" line is the subject.
func ParseEmail(content string) (EmailRecord, error) {
	var record EmailRecord

	const (
		sectionNone = iota
		sectionFrom
		sectionTo
		sectionCc
		sectionBody
	)
	section := sectionNone

	var fromLines, toLines, ccLines, bodyLines []string

	for _, raw := range strings.Split(strings.TrimSpace(content), "\n") {
		line := strings.TrimSpace(raw)

		if section != sectionBody {
			switch line {
			case "from":
				section = sectionFrom
				continue
			case "to":
				section = sectionTo
				continue
			case "cc":
				section = sectionCc
				continue
			}
			if timestampRegex.MatchString(line) {
				record.Timestamp = line
				section = sectionBody
				continue
			}
			if strings.HasPrefix(line, "Re:") || strings.HasPrefix(line, "RE:") {
				record.Subject = line
				continue
			}
		}

		switch section {
		case sectionFrom:
			if line != "" {
				fromLines = append(fromLines, line)
			}
		case sectionTo:
			if line != "" {
				toLines = append(toLines, line)
			}
		case sectionCc:
			if line != "" {
				ccLines = append(ccLines, line)
			}
		case sectionBody:
			bodyLines = append(bodyLines, raw)
		}
	}

	if len(fromLines) == 0 && len(toLines) == 0 {
		return EmailRecord{}, &ParseError{Section: "from/to"}
	}

	if senders := parseEntities(fromLines); len(senders) > 0 {
		record.Sender = senders[0]
	}
	record.Recipients = parseEntities(toLines)
	record.Cc = parseEntities(ccLines)
	record.Body = strings.TrimSpace(strings.Join(bodyLines, "\n"))

	return record, nil
}

// parseEntities groups consecutive lines into person blocks. A new
// block starts at each name-looking line; within a block the first
// email-shaped token wins. A block without one keeps Email empty —
// addresses are never derived from names.
func parseEntities(lines []string) []Entity {
	var entities []Entity
	var block []string

	flush := func() {
		if len(block) == 0 {
			return
		}
		entity := Entity{Name: block[0]}
		for _, line := range block {
			if email := textutil.FirstEmail(line); email != "" {
				entity.Email = strings.ToLower(email)
				break
			}
		}
		entities = append(entities, entity)
		block = nil
	}

	for _, line := range lines {
		if looksLikeName(line) && len(block) > 0 {
			flush()
		}
		block = append(block, line)
	}
	flush()

	return entities
}

var titleWords = []string{
	"Director", "Manager", "Vice", "President", "Analyst",
	"Engineer", "Developer", "Rvp", "Sr", "Jr",
	"Inc", "LLC", "Corp",
}

// a name line is 2-4 capitalized words with no title/company markers
// and no address in it. title lines carry a comma ("Title, Company"),
// names never do.
func looksLikeName(line string) bool {
	if textutil.ContainsEmail(line) || strings.Contains(line, ",") {
		return false
	}
	words := strings.Fields(line)
	if len(words) < 2 || len(words) > 4 {
		return false
	}
	for _, w := range words {
		first := rune(w[0])
		if first < 'A' || first > 'Z' {
			return false
		}
		if strings.ToUpper(w) == w && len(w) > 1 {
			return false
		}
	}
	for _, marker := range titleWords {
		if strings.Contains(line, marker) {
			return false
		}
	}
	return true
}
