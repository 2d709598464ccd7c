package gong

import (
	"context"
	"fmt"
	"time"
)

type Account struct {
	Id       string `json:"account_id"`
	Name     string `json:"name"`
	Website  string `json:"website"`
	Industry string `json:"industry"`
}

func (c *Client) GetAccountDetails(ctx context.Context, accountId string) (Account, error) {
	ctx, span := tracer.Start(ctx, "GetAccountDetails")
	defer span.End()

	var res Account
	err := c.get(ctx, fmt.Sprintf("/account/%s", accountId), nil, &res)
	return res, err
}

type Person struct {
	Id      string `json:"person_id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Title   string `json:"title"`
	Company string `json:"company"`
}

type getAccountPeopleResponse struct {
	People []Person `json:"people"`
}

func (c *Client) GetAccountPeople(ctx context.Context, accountId string) ([]Person, error) {
	ctx, span := tracer.Start(ctx, "GetAccountPeople")
	defer span.End()

	res := &getAccountPeopleResponse{}
	err := c.get(ctx, fmt.Sprintf("/ajax/account/%s/people", accountId), nil, res)
	if err != nil {
		return nil, err
	}
	return res.People, nil
}

type Opportunity struct {
	Id        string  `json:"opportunity_id"`
	Name      string  `json:"name"`
	Stage     string  `json:"stage"`
	Amount    float64 `json:"amount"`
	CloseDate string  `json:"close_date"`
}

type getAccountOpportunitiesResponse struct {
	Opportunities []Opportunity `json:"opportunities"`
}

func (c *Client) GetAccountOpportunities(ctx context.Context, accountId string) ([]Opportunity, error) {
	ctx, span := tracer.Start(ctx, "GetAccountOpportunities")
	defer span.End()

	res := &getAccountOpportunitiesResponse{}
	err := c.get(ctx, fmt.Sprintf("/ajax/account/%s/opportunities", accountId), nil, res)
	if err != nil {
		return nil, err
	}
	return res.Opportunities, nil
}

type Activity struct {
	Id        string `json:"activity_id"`
	Type      string `json:"type"`
	Subject   string `json:"subject"`
	Timestamp string `json:"timestamp"`
	UserEmail string `json:"user_email"`
}

type getDayActivitiesResponse struct {
	Activities []Activity `json:"activities"`
}

// date defaults to today when zero
func (c *Client) GetDayActivities(ctx context.Context, accountId string, date time.Time) ([]Activity, error) {
	ctx, span := tracer.Start(ctx, "GetDayActivities")
	defer span.End()

	if date.IsZero() {
		date = time.Now()
	}

	res := &getDayActivitiesResponse{}
	err := c.get(ctx, "/ajax/account/day-activities", map[string]string{
		"account_id": accountId,
		"date":       date.Format("2006-01-02"),
	}, res)
	if err != nil {
		return nil, err
	}
	return res.Activities, nil
}
