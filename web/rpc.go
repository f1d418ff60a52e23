package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/bossyapp/bossy/boss"
	"github.com/bossyapp/bossy/checkin"
	"github.com/bossyapp/bossy/goal"
	"github.com/bossyapp/bossy/plan"
)

// Identity headers forwarded verbatim from the browser request to the
// RPC endpoints. The identity layer in front of the server sets them.
const (
	userHeader   = "X-Bossy-User"
	localeHeader = "X-Bossy-Locale"
)

func postJSON(ctx context.Context, client *http.Client, baseURL string, identity identityHeaders, path string, payload any, dest any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if identity.userID != "" {
		req.Header.Set(userHeader, identity.userID)
	}
	if identity.locale != "" {
		req.Header.Set(localeHeader, identity.locale)
	}
	resp, err := client.Do(req)
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

type identityHeaders struct {
	userID string
	locale string
}

func identityFromRequest(r *http.Request) identityHeaders {
	return identityHeaders{
		userID: r.Header.Get(userHeader),
		locale: r.Header.Get(localeHeader),
	}
}

type goalsListRequest struct {
	Filter goal.ListFilter `json:"filter"`
}

type goalsListResponse struct {
	Goals []goal.Goal `json:"goals"`
}

type goalsCreateRequest struct {
	Title   string             `json:"title"`
	Options goal.CreateOptions `json:"options"`
}

type goalsCreateResponse struct {
	Goal goal.Goal `json:"goal"`
}

type goalsUpdateRequest struct {
	GoalID  string             `json:"goal_id"`
	Options goal.UpdateOptions `json:"options"`
}

type goalsUpdateResponse struct {
	Goal goal.Goal `json:"goal"`
}

type goalsTransitionRequest struct {
	GoalID string `json:"goal_id"`
}

type goalsTransitionResponse struct {
	Goal goal.Goal `json:"goal"`
}

type goalTasksRequest struct {
	GoalID string `json:"goal_id"`
}

type goalTasksResponse struct {
	Tasks []goal.DailyTask `json:"tasks"`
}

type checkInSubmitRequest struct {
	TaskID string         `json:"task_id"`
	Status checkin.Status `json:"status"`
	Note   string         `json:"note,omitempty"`
}

type checkInSubmitResponse struct {
	Result checkin.Result `json:"result"`
}

type eventsListRequest struct {
	Limit int `json:"limit,omitempty"`
}

type eventsListResponse struct {
	Events []boss.Event `json:"events"`
}

type planResponse struct {
	Plan plan.Plan `json:"plan"`
}
