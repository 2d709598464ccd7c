package extraction

import (
	"fmt"
	"strings"

	"gongbridge/lib/htmlutil"
	"gongbridge/lib/scrapers/gong"
)

// Flatteners turn wire models into the field-name → value records the
// validator consumes. Field names line up with the validation mappings.

func CallRecord(call gong.Call) map[string]any {
	var attendees []string
	for _, p := range call.Participants {
		if p.Email != "" {
			attendees = append(attendees, p.Email)
		}
	}
	return map[string]any{
		"call_id":      call.Id,
		"title":        call.Title,
		"call_time":    call.StartTime,
		"scheduled_on": call.ScheduledTime,
		"language":     call.Language,
		"account":      call.AccountName,
		"deal":         call.DealName,
		"attendees":    attendees,
		"host":         call.HostEmail,
	}
}

func TranscriptText(transcript gong.Transcript) string {
	var b strings.Builder
	for _, segment := range transcript.Segments {
		fmt.Fprintf(&b, "%s %s\n", segment.Speaker, segment.Text)
	}
	return strings.TrimSpace(b.String())
}

func DealRecord(deal gong.Deal) map[string]any {
	return map[string]any{
		"deal_id":    deal.Id,
		"title":      deal.Name,
		"account":    deal.AccountName,
		"stage":      deal.Stage,
		"amount":     deal.Amount,
		"close_date": deal.CloseDate,
		"owner":      deal.OwnerEmail,
	}
}

func UserRecord(user gong.User) map[string]any {
	return map[string]any{
		"user_id": user.Id,
		"email":   user.Email,
		"name":    user.Name,
		"title":   user.Title,
		"active":  user.Active,
	}
}

// ConversationRecord strips HTML from email bodies so they compare
// against plain-text ground truth.
func ConversationRecord(conversation gong.Conversation) map[string]any {
	body, err := htmlutil.ToPlainText(conversation.Body)
	if err != nil {
		body = conversation.Body
	}
	return map[string]any{
		"conversation_id": conversation.Id,
		"type":            conversation.Type,
		"subject":         conversation.Subject,
		"sender":          conversation.SenderEmail,
		"recipients":      conversation.RecipientEmails,
		"cc":              conversation.CcEmails,
		"timestamp":       conversation.Timestamp,
		"body":            body,
	}
}

func LibraryItemRecord(item gong.LibraryItem, folder string) map[string]any {
	return map[string]any{
		"item_id": item.Id,
		"title":   item.Title,
		"call_id": item.CallId,
		"note":    item.Note,
		"folder":  folder,
	}
}

func TeamStatsRecord(stats gong.TeamStats) map[string]any {
	record := map[string]any{
		"metric": stats.Metric,
	}
	for user, value := range stats.Totals {
		record[user] = value
	}
	return record
}
