package gong

import (
	"context"
	"fmt"
	"time"
)

type StatsPeriod struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type statsRequest struct {
	Metric string      `json:"metric"`
	Period StatsPeriod `json:"period"`
}

type TeamStats struct {
	Metric string             `json:"metric"`
	Totals map[string]float64 `json:"totals"`
}

func (c *Client) GetTeamStats(ctx context.Context, metric string, period StatsPeriod) (TeamStats, error) {
	ctx, span := tracer.Start(ctx, "GetTeamStats")
	defer span.End()

	var res TeamStats
	err := c.post(ctx, fmt.Sprintf("/stats/ajax/v2/team/activity/aggregated/%s", metric), statsRequest{
		Metric: metric,
		Period: period,
	}, &res)
	return res, err
}

type UserStats struct {
	Metric string             `json:"metric"`
	Users  map[string]float64 `json:"users"`
}

func (c *Client) GetUserStats(ctx context.Context, metric string, period StatsPeriod) (UserStats, error) {
	ctx, span := tracer.Start(ctx, "GetUserStats")
	defer span.End()

	var res UserStats
	err := c.post(ctx, fmt.Sprintf("/stats/ajax/v2/team/activity/users/%s", metric), statsRequest{
		Metric: metric,
		Period: period,
	}, &res)
	return res, err
}

type ConnectionStatus struct {
	Ok      bool
	Latency time.Duration
	Err     error
}

// CheckConnection hits the cheapest authenticated endpoint to verify the
// bound session is still accepted, reporting round-trip latency.
func (c *Client) CheckConnection(ctx context.Context) ConnectionStatus {
	ctx, span := tracer.Start(ctx, "CheckConnection")
	defer span.End()

	start := time.Now()
	err := c.get(ctx, "/ajax/common/rtkn", nil, nil)
	latency := time.Since(start)
	if err != nil {
		span.RecordError(err)
		return ConnectionStatus{Ok: false, Latency: latency, Err: err}
	}
	return ConnectionStatus{Ok: true, Latency: latency}
}
