package gong

import (
	"context"
	"fmt"
	"strconv"
)

type CallParticipant struct {
	UserId          string `json:"userId"`
	Email           string `json:"email"`
	Name            string `json:"name"`
	IsHost          bool   `json:"isHost"`
	IsInternal      bool   `json:"isInternal"`
	TalkTimeSeconds int64  `json:"talkTimeSeconds"`
}

type Call struct {
	Id            string            `json:"call_id"`
	Title         string            `json:"title"`
	StartTime     string            `json:"start_time"`
	EndTime       string            `json:"end_time"`
	ScheduledTime string            `json:"scheduled_time"`
	Duration      int64             `json:"duration_seconds"`
	HostEmail     string            `json:"host_email"`
	AccountName   string            `json:"account_name"`
	DealName      string            `json:"deal_name"`
	Language      string            `json:"language"`
	Participants  []CallParticipant `json:"participants"`
	Stats         map[string]string `json:"interaction_stats"`
}

type GetMyCallsResponse struct {
	Calls []Call `json:"calls"`
}

func (c *Client) GetMyCalls(ctx context.Context, limit, offset int) ([]Call, error) {
	ctx, span := tracer.Start(ctx, "GetMyCalls")
	defer span.End()

	res := &GetMyCallsResponse{}
	err := c.get(ctx, "/ajax/home/calls/my-calls", map[string]string{
		"limit":  strconv.Itoa(limit),
		"offset": strconv.Itoa(offset),
	}, res)
	if err != nil {
		return nil, err
	}
	return res.Calls, nil
}

func (c *Client) GetCallDetails(ctx context.Context, callId string) (Call, error) {
	ctx, span := tracer.Start(ctx, "GetCallDetails")
	defer span.End()

	var res Call
	err := c.get(ctx, fmt.Sprintf("/call/%s", callId), nil, &res)
	return res, err
}

type TranscriptSegment struct {
	Timestamp string `json:"timestamp"`
	Speaker   string `json:"speaker"`
	Text      string `json:"text"`
}

type Transcript struct {
	CallId   string              `json:"call_id"`
	Segments []TranscriptSegment `json:"segments"`
}

func (c *Client) GetCallTranscript(ctx context.Context, callId string) (Transcript, error) {
	ctx, span := tracer.Start(ctx, "GetCallTranscript")
	defer span.End()

	var res Transcript
	err := c.get(ctx, fmt.Sprintf("/call/%s/detailed-transcript", callId), nil, &res)
	return res, err
}

type searchCallsRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

type searchCallsResponse struct {
	Results []Call `json:"results"`
}

func (c *Client) SearchCalls(ctx context.Context, query string, limit int) ([]Call, error) {
	ctx, span := tracer.Start(ctx, "SearchCalls")
	defer span.End()

	res := &searchCallsResponse{}
	err := c.post(ctx, "/json/call/search", searchCallsRequest{
		Query: query,
		Limit: limit,
	}, res)
	if err != nil {
		return nil, err
	}
	return res.Results, nil
}
