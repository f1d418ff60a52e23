package server

import (
	"net/http"
	"time"

	"github.com/bossyapp/bossy/boss"
	"github.com/bossyapp/bossy/goal"
)

func (s *Server) handleGoalsList(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var request goalsListRequest
	if err := decodeRequest(r, &request); err != nil {
		s.writeError(w, r, err)
		return
	}
	goals, err := s.goals.List(userID, request.Filter)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if goals == nil {
		goals = []goal.Goal{}
	}
	writeJSON(w, http.StatusOK, goalsListResponse{Goals: goals})
}

func (s *Server) handleGoalsCreate(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var request goalsCreateRequest
	if err := decodeRequest(r, &request); err != nil {
		s.writeError(w, r, err)
		return
	}
	created, err := s.goals.Create(userID, request.Title, request.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, goalsCreateResponse{Goal: *created})
}

func (s *Server) handleGoalsUpdate(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var request goalsUpdateRequest
	if err := decodeRequest(r, &request); err != nil {
		s.writeError(w, r, err)
		return
	}
	updated, err := s.goals.Update(userID, request.GoalID, request.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, goalsUpdateResponse{Goal: *updated})
}

func (s *Server) handleGoalsComplete(w http.ResponseWriter, r *http.Request) {
	s.handleTransition(w, r, s.goals.Complete)
}

func (s *Server) handleGoalsAbandon(w http.ResponseWriter, r *http.Request) {
	s.handleTransition(w, r, s.goals.Abandon)
}

func (s *Server) handleTransition(w http.ResponseWriter, r *http.Request, transition func(userID, goalID string) (*goal.Goal, error)) {
	userID, err := requestUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var request goalsTransitionRequest
	if err := decodeRequest(r, &request); err != nil {
		s.writeError(w, r, err)
		return
	}
	updated, err := transition(userID, request.GoalID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, goalsTransitionResponse{Goal: *updated})
}

func (s *Server) handleGoalTasks(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var request goalTasksRequest
	if err := decodeRequest(r, &request); err != nil {
		s.writeError(w, r, err)
		return
	}
	// Ownership check first; other users' goals read as not found.
	if _, err := s.goals.Get(userID, request.GoalID); err != nil {
		s.writeError(w, r, err)
		return
	}
	tasks, err := s.store.ListTasks(request.GoalID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if tasks == nil {
		tasks = []goal.DailyTask{}
	}
	writeJSON(w, http.StatusOK, goalTasksResponse{Tasks: tasks})
}

func (s *Server) handleCheckInsSubmit(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var request checkInSubmitRequest
	if err := decodeRequest(r, &request); err != nil {
		s.writeError(w, r, err)
		return
	}
	result, err := s.checkIns.Submit(userID, request.TaskID, request.Status, request.Note, requestLocale(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, checkInSubmitResponse{Result: *result})
}

func (s *Server) handleEventsList(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var request eventsListRequest
	if err := decodeRequest(r, &request); err != nil {
		s.writeError(w, r, err)
		return
	}

	// The plan's history window caps how far back the feed reaches.
	current, err := s.gate.PlanFor(userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	events, err := s.store.RecentEvents(userID, request.Limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if current.HistoryWindowDays > 0 {
		cutoff := time.Now().AddDate(0, 0, -current.HistoryWindowDays)
		kept := events[:0]
		for _, event := range events {
			if event.CreatedAt.After(cutoff) {
				kept = append(kept, event)
			}
		}
		events = kept
	}
	if events == nil {
		events = []boss.Event{}
	}
	writeJSON(w, http.StatusOK, eventsListResponse{Events: events})
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	current, err := s.gate.PlanFor(userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, planResponse{Plan: current})
}
