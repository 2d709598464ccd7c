package gong

import (
	"context"
)

type Deal struct {
	Id          string  `json:"deal_id"`
	Name        string  `json:"name"`
	AccountName string  `json:"account_name"`
	Stage       string  `json:"stage"`
	Amount      float64 `json:"amount"`
	CloseDate   string  `json:"close_date"`
	OwnerEmail  string  `json:"owner_email"`
	Warnings    []string `json:"warnings"`
}

type getBoardDealsRequest struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type getBoardDealsResponse struct {
	Deals []Deal `json:"deals"`
}

func (c *Client) GetBoardDeals(ctx context.Context, limit int, offset int) ([]Deal, error) {
	ctx, span := tracer.Start(ctx, "GetBoardDeals")
	defer span.End()

	if limit <= 0 {
		limit = 50
	}

	res := &getBoardDealsResponse{}
	err := c.post(ctx, "/dealswebapi/ajax/deals/get-board-deals", getBoardDealsRequest{
		Limit:  limit,
		Offset: offset,
	}, res)
	if err != nil {
		return nil, err
	}
	return res.Deals, nil
}
