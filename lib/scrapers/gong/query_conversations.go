package gong

import (
	"context"
)

// Conversation is a single email or call thread entry from the
// conversations search surface. Body is raw HTML for emails.
type Conversation struct {
	Id              string   `json:"conversation_id"`
	Type            string   `json:"type"`
	Subject         string   `json:"subject"`
	SenderEmail     string   `json:"sender_email"`
	RecipientEmails []string `json:"recipient_emails"`
	CcEmails        []string `json:"cc_emails"`
	Timestamp       string   `json:"timestamp"`
	Body            string   `json:"body"`
}

type ConversationFilters struct {
	Types     []string `json:"types,omitempty"`
	From      string   `json:"from,omitempty"`
	To        string   `json:"to,omitempty"`
	AccountId string   `json:"account_id,omitempty"`
}

type getConversationsRequest struct {
	Filters ConversationFilters `json:"filters"`
	Limit   int                 `json:"limit"`
}

type getConversationsResponse struct {
	Conversations []Conversation `json:"conversations"`
}

func (c *Client) GetConversations(ctx context.Context, filters ConversationFilters, limit int) ([]Conversation, error) {
	ctx, span := tracer.Start(ctx, "GetConversations")
	defer span.End()

	if limit <= 0 {
		limit = 50
	}

	res := &getConversationsResponse{}
	err := c.post(ctx, "/conversations/ajax/results", getConversationsRequest{
		Filters: filters,
		Limit:   limit,
	}, res)
	if err != nil {
		return nil, err
	}
	return res.Conversations, nil
}
