package gong

import (
	"context"
)

type User struct {
	Id     string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Title  string `json:"title"`
	Active bool   `json:"active"`
}

type getUsersResponse struct {
	Users []User `json:"users"`
}

func (c *Client) GetUsers(ctx context.Context) ([]User, error) {
	ctx, span := tracer.Start(ctx, "GetUsers")
	defer span.End()

	res := &getUsersResponse{}
	err := c.get(ctx, "/ajax/stats/get-users", nil, res)
	if err != nil {
		return nil, err
	}
	return res.Users, nil
}
