package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/bossyapp/bossy/boss"
	"github.com/bossyapp/bossy/checkin"
	"github.com/bossyapp/bossy/goal"
	"github.com/bossyapp/bossy/plan"
)

// Client calls bossy RPCs on behalf of one user.
type Client struct {
	baseURL string
	userID  string
	locale  string
	client  *http.Client
}

// NewClient creates a client for the given address or URL, acting as the
// given user.
func NewClient(addr, userID string) *Client {
	baseURL := strings.TrimRight(addr, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	return &Client{baseURL: baseURL, userID: userID, client: &http.Client{}}
}

// WithLocale returns a copy of the client that requests feedback in the
// given locale.
func (c *Client) WithLocale(locale string) *Client {
	clone := *c
	clone.locale = locale
	return &clone
}

// ListGoals returns the user's goals matching the filter.
func (c *Client) ListGoals(ctx context.Context, filter goal.ListFilter) ([]goal.Goal, error) {
	var response goalsListResponse
	if err := c.post(ctx, "/goals/list", goalsListRequest{Filter: filter}, &response); err != nil {
		return nil, err
	}
	return response.Goals, nil
}

// CreateGoal creates a goal.
func (c *Client) CreateGoal(ctx context.Context, title string, opts goal.CreateOptions) (*goal.Goal, error) {
	var response goalsCreateResponse
	if err := c.post(ctx, "/goals/create", goalsCreateRequest{Title: title, Options: opts}, &response); err != nil {
		return nil, err
	}
	return &response.Goal, nil
}

// UpdateGoal updates a goal.
func (c *Client) UpdateGoal(ctx context.Context, goalID string, opts goal.UpdateOptions) (*goal.Goal, error) {
	var response goalsUpdateResponse
	if err := c.post(ctx, "/goals/update", goalsUpdateRequest{GoalID: goalID, Options: opts}, &response); err != nil {
		return nil, err
	}
	return &response.Goal, nil
}

// CompleteGoal marks a goal completed.
func (c *Client) CompleteGoal(ctx context.Context, goalID string) (*goal.Goal, error) {
	return c.transition(ctx, "/goals/complete", goalID)
}

// AbandonGoal marks a goal abandoned.
func (c *Client) AbandonGoal(ctx context.Context, goalID string) (*goal.Goal, error) {
	return c.transition(ctx, "/goals/abandon", goalID)
}

func (c *Client) transition(ctx context.Context, path, goalID string) (*goal.Goal, error) {
	var response goalsTransitionResponse
	if err := c.post(ctx, path, goalsTransitionRequest{GoalID: goalID}, &response); err != nil {
		return nil, err
	}
	return &response.Goal, nil
}

// Tasks returns a goal's daily tasks.
func (c *Client) Tasks(ctx context.Context, goalID string) ([]goal.DailyTask, error) {
	var response goalTasksResponse
	if err := c.post(ctx, "/goals/tasks", goalTasksRequest{GoalID: goalID}, &response); err != nil {
		return nil, err
	}
	return response.Tasks, nil
}

// SubmitCheckIn records a done/missed outcome for a daily task.
func (c *Client) SubmitCheckIn(ctx context.Context, taskID string, status checkin.Status, note string) (*checkin.Result, error) {
	var response checkInSubmitResponse
	request := checkInSubmitRequest{TaskID: taskID, Status: status, Note: note}
	if err := c.post(ctx, "/checkins/submit", request, &response); err != nil {
		return nil, err
	}
	return &response.Result, nil
}

// RecentEvents returns the user's boss events, newest first.
func (c *Client) RecentEvents(ctx context.Context, limit int) ([]boss.Event, error) {
	var response eventsListResponse
	if err := c.post(ctx, "/events/list", eventsListRequest{Limit: limit}, &response); err != nil {
		return nil, err
	}
	return response.Events, nil
}

// Plan returns the user's effective plan.
func (c *Client) Plan(ctx context.Context) (plan.Plan, error) {
	var response planResponse
	if err := c.post(ctx, "/plan", struct{}{}, &response); err != nil {
		return plan.Plan{}, err
	}
	return response.Plan, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, dest any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.userID != "" {
		req.Header.Set(UserHeader, c.userID)
	}
	if c.locale != "" {
		req.Header.Set("X-Bossy-Locale", c.locale)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return readErrorResponse(resp)
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return err
	}
	return nil
}

func readErrorResponse(resp *http.Response) error {
	var payload map[string]string
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(&payload); err == nil {
		if message, ok := payload["error"]; ok {
			return fmt.Errorf("bossy error: %s", message)
		}
	}
	return fmt.Errorf("bossy error: %s", resp.Status)
}
