package server

import (
	"github.com/bossyapp/bossy/boss"
	"github.com/bossyapp/bossy/checkin"
	"github.com/bossyapp/bossy/goal"
	"github.com/bossyapp/bossy/plan"
)

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
