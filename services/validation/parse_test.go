package validation_test

import (
	"errors"
	"testing"

	"gongbridge/services/validation"

	"github.com/stretchr/testify/require"
)

func TestParseCallInfo(t *testing.T) {
	content := `Call title
Salesforce <> Postman | Quarterly Sync
Call time
Jul 22, 2025, 2:00 PM
Scheduled on
Jul 18, 2025
Language
English
Account
Salesforce
Deal
Postman Enterprise Renewal
`

	info, err := validation.ParseCallInfo(content)
	require.NoError(t, err)
	require.Equal(t, "Salesforce <> Postman | Quarterly Sync", info["call_title"])
	require.Equal(t, "Jul 22, 2025, 2:00 PM", info["call_time"])
	require.Equal(t, "Salesforce", info["account"])
	require.Equal(t, "Postman Enterprise Renewal", info["deal"])
}

func TestParseCallInfoNoLabels(t *testing.T) {
	_, err := validation.ParseCallInfo("just some text\nwith no labels")

	var parseErr *validation.ParseError
	require.True(t, errors.As(err, &parseErr))
}

func TestParseAttendees(t *testing.T) {
	attendees, err := validation.ParseAttendees(
		"a@x.com; b@x.com;c@x.com;\nd@x.com",
	)
	require.NoError(t, err)
	require.Equal(t, []string{"a@x.com", "b@x.com", "c@x.com", "d@x.com"}, attendees)
}

func TestParseAttendeesEmptySectionIsEmptySet(t *testing.T) {
	attendees, err := validation.ParseAttendees("")
	require.NoError(t, err)
	require.NotNil(t, attendees)
	require.Empty(t, attendees)

	attendees, err = validation.ParseAttendees("  ;\n; ")
	require.NoError(t, err)
	require.Empty(t, attendees)
}

func TestParseTranscript(t *testing.T) {
	content := `Salesforce <> Postman | Quarterly Sync
Recorded on Jul 22, 2025

Participants
Postman
Jane Doe, Account Executive
Salesforce
John Roe, Procurement Lead

Transcript
0:00 | Jane Thanks everyone for joining today.
0:12 | John Happy to be here, lots to cover.
1:03 | Jane Let's start with the renewal terms.
`

	transcript, err := validation.ParseTranscript(content)
	require.NoError(t, err)
	require.Equal(t, "Salesforce <> Postman | Quarterly Sync", transcript.Title)

	require.Len(t, transcript.Participants, 2)
	require.Equal(t, "Jane Doe", transcript.Participants[0].Name)
	require.Equal(t, "Account Executive", transcript.Participants[0].Title)

	require.Len(t, transcript.Segments, 3)
	require.Equal(t, "0:12", transcript.Segments[1].Timestamp)
	require.Equal(t, "John", transcript.Segments[1].Speaker)
	require.Equal(t, "Happy to be here, lots to cover.", transcript.Segments[1].Text)
}

func TestParseTranscriptMissingHeader(t *testing.T) {
	content := `Some Call
Participants
Jane Doe, Account Executive
`

	_, err := validation.ParseTranscript(content)

	var parseErr *validation.ParseError
	require.True(t, errors.As(err, &parseErr))
	require.Equal(t, "Transcript", parseErr.Section)
}

func TestParseTranscriptEmptySegmentSection(t *testing.T) {
	content := `Some Call
Participants
Jane Doe, Account Executive
Transcript
`

	transcript, err := validation.ParseTranscript(content)
	require.NoError(t, err)
	require.Empty(t, transcript.Segments)
}

func TestParseEmail(t *testing.T) {
	content := `from
Jane Doe
Account Executive, Postman
jane.doe@postman.com
to
John Roe
Procurement Lead, Salesforce
john.roe@salesforce.com
Mary Major
mary.major@salesforce.com
cc
Alex Minor
alex.minor@postman.com
Re: Postman Licensing
3:47 pm EDT
Hi John,

Following up on the licensing discussion from our call.

Best,
Jane
`

	email, err := validation.ParseEmail(content)
	require.NoError(t, err)

	require.Equal(t, "Re: Postman Licensing", email.Subject)
	require.Equal(t, "3:47 pm EDT", email.Timestamp)
	require.Equal(t, "Jane Doe", email.Sender.Name)
	require.Equal(t, "jane.doe@postman.com", email.Sender.Email)

	require.Equal(t,
		[]string{"john.roe@salesforce.com", "mary.major@salesforce.com"},
		email.RecipientEmails())
	require.Equal(t, []string{"alex.minor@postman.com"}, email.CcEmails())

	require.Contains(t, email.Body, "Following up on the licensing discussion")
	require.NotContains(t, email.Body, "3:47 pm")
}

func TestParseEmailNeverConstructsAddresses(t *testing.T) {
	content := `from
Jane Doe
Account Executive, Postman
to
John Roe
Procurement Lead, Salesforce
Re: Renewal
2:15 pm PST
Short note.
`

	email, err := validation.ParseEmail(content)
	require.NoError(t, err)

	// no address in the export, so none may be invented from the name
	require.Equal(t, "Jane Doe", email.Sender.Name)
	require.Empty(t, email.Sender.Email)
	require.Empty(t, email.RecipientEmails())
	require.Len(t, email.Recipients, 1)
	require.Equal(t, "John Roe", email.Recipients[0].Name)
}

func TestParseEmailMissingSections(t *testing.T) {
	_, err := validation.ParseEmail("just a body with no markers")

	var parseErr *validation.ParseError
	require.True(t, errors.As(err, &parseErr))
}

func TestParseEmailMultipleEntityBlocks(t *testing.T) {
	content := `from
Jane Doe
jane@postman.com
to
John Roe
Senior Director, Salesforce
john@salesforce.com
Mary Major
Vice President, Salesforce
Pat Small
pat@salesforce.com
Re: Licensing
1:05 pm EST
body
`

	email, err := validation.ParseEmail(content)
	require.NoError(t, err)

	require.Len(t, email.Recipients, 3)
	require.Equal(t, "john@salesforce.com", email.Recipients[0].Email)
	// Mary's block has title lines but no address, stays empty
	require.Equal(t, "Mary Major", email.Recipients[1].Name)
	require.Empty(t, email.Recipients[1].Email)
	require.Equal(t, "pat@salesforce.com", email.Recipients[2].Email)
}
