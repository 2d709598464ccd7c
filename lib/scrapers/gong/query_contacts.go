package gong

import (
	"context"
)

type Contact struct {
	Id      string `json:"contact_id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Title   string `json:"title"`
	Account string `json:"account_name"`
	Phone   string `json:"phone"`
}

func (c *Client) GetContactDetails(ctx context.Context, contactId string) (Contact, error) {
	ctx, span := tracer.Start(ctx, "GetContactDetails")
	defer span.End()

	var res Contact
	err := c.get(ctx, "/ajax/contacts/get-single-contact-details", map[string]string{
		"contact_id": contactId,
	}, &res)
	return res, err
}

type Engagement struct {
	Id        string `json:"engagement_id"`
	Type      string `json:"type"`
	Subject   string `json:"subject"`
	Timestamp string `json:"timestamp"`
	Direction string `json:"direction"`
}

type getEngagementsResponse struct {
	Engagements []Engagement `json:"engagements"`
}

func (c *Client) GetContactEngagements(ctx context.Context, contactId string) ([]Engagement, error) {
	ctx, span := tracer.Start(ctx, "GetContactEngagements")
	defer span.End()

	res := &getEngagementsResponse{}
	err := c.get(ctx, "/ajax/contacts/get-engagements", map[string]string{
		"contact_id": contactId,
	}, res)
	if err != nil {
		return nil, err
	}
	return res.Engagements, nil
}
