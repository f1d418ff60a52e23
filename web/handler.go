// Package web serves the server-rendered bossy web client. It talks to
// the JSON RPC endpoints rather than the domain packages directly, so it
// sees exactly what any other API client sees.
package web

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/bossyapp/bossy/boss"
	"github.com/bossyapp/bossy/checkin"
	"github.com/bossyapp/bossy/goal"
	internalstrings "github.com/bossyapp/bossy/internal/strings"
	"github.com/bossyapp/bossy/plan"
)

// Options configures the web handler.
type Options struct {
	// BaseURL is where the RPC endpoints live. Empty means derive from
	// the incoming request.
	BaseURL string
}

// Handler serves the bossy web client.
type Handler struct {
	baseURL   string
	client    *http.Client
	mux       *http.ServeMux
	templates *templateWrapper

	mu    sync.Mutex
	draft *goalFormDraft
}

// NewHandler creates a new web handler.
func NewHandler(opts Options) *Handler {
	handler := &Handler{
		baseURL:   internalstrings.TrimTrailingSlash(opts.BaseURL),
		client:    &http.Client{},
		templates: newTemplateWrapper(),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/web/goals", handler.handleGoals)
	mux.HandleFunc("/web/goals/create", handler.handleGoalsCreate)
	mux.HandleFunc("/web/goals/update", handler.handleGoalsUpdate)
	mux.HandleFunc("/web/goals/complete", handler.handleGoalsComplete)
	mux.HandleFunc("/web/goals/abandon", handler.handleGoalsAbandon)
	mux.HandleFunc("/web/checkins", handler.handleCheckIns)
	mux.HandleFunc("/web/events", handler.handleEvents)
	handler.mux = mux
	return handler
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

type selectOption struct {
	Value string
	Label string
}

type pageData struct {
	ActiveTab        string
	Goals            []goal.Goal
	SelectedGoal     *goal.Goal
	SelectedGoalID   string
	Tasks            []goal.DailyTask
	Create           bool
	GoalForm         goalFormValues
	GoalError        string
	Notice           string
	Events           []boss.Event
	EventsError      string
	Plan             plan.Plan
	IntensityOptions []selectOption
	BossTypeOptions  []selectOption
}

type goalFormValues struct {
	Title     string
	Intensity string
	StartDate string
	EndDate   string
	BossType  string
}

type goalFormDraft struct {
	mode      string
	id        string
	err       string
	notice    string
	values    goalFormValues
	hasValues bool
}

func (h *Handler) handleGoals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	baseURL := h.requestBaseURL(r)
	identity := identityFromRequest(r)

	goals, fetchError := h.fetchGoals(r.Context(), baseURL, identity)
	currentPlan := h.fetchPlan(r.Context(), baseURL, identity)

	createMode := r.URL.Query().Get("create") == "1"
	selectedID := trimmedQueryValue(r, "id")
	selectedGoal := (*goal.Goal)(nil)
	if !createMode {
		selectedGoal = selectGoal(goals, selectedID)
		if selectedGoal == nil && len(goals) > 0 {
			selectedGoal = &goals[0]
			selectedID = selectedGoal.ID
		}
	} else {
		selectedID = ""
	}

	formValues := defaultGoalFormValues(currentPlan)
	var tasks []goal.DailyTask
	if selectedGoal != nil {
		formValues = goalFormValuesFromGoal(*selectedGoal)
		fetched, err := h.fetchTasks(r.Context(), baseURL, identity, selectedGoal.ID)
		if err != nil && fetchError == "" {
			fetchError = err.Error()
		}
		tasks = fetched
	}

	goalError := fetchError
	notice := ""
	if draft := h.consumeDraft(createMode, selectedID); draft != nil {
		if draft.err != "" {
			goalError = draft.err
		}
		notice = draft.notice
		if draft.hasValues {
			formValues = draft.values
		}
		if draft.mode == "create" {
			createMode = true
			selectedGoal = nil
			selectedID = ""
		}
	}

	data := pageData{
		ActiveTab:        "goals",
		Goals:            goals,
		SelectedGoal:     selectedGoal,
		SelectedGoalID:   selectedID,
		Tasks:            tasks,
		Create:           createMode,
		GoalForm:         formValues,
		GoalError:        goalError,
		Notice:           notice,
		Plan:             currentPlan,
		IntensityOptions: intensityOptions(),
		BossTypeOptions:  bossTypeOptions(),
	}
	h.templates.Render(w, data)
}

func (h *Handler) handleGoalsCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.setDraft(goalFormDraft{mode: "create", err: "invalid form input"})
		http.Redirect(w, r, "/web/goals?create=1", http.StatusSeeOther)
		return
	}
	values := goalFormValuesFromRequest(r)
	options, err := values.createOptions()
	if err != nil {
		h.setDraft(goalFormDraft{mode: "create", err: err.Error(), values: values, hasValues: true})
		http.Redirect(w, r, "/web/goals?create=1", http.StatusSeeOther)
		return
	}

	var response goalsCreateResponse
	request := goalsCreateRequest{Title: values.Title, Options: options}
	if err := postJSON(r.Context(), h.client, h.requestBaseURL(r), identityFromRequest(r), "/goals/create", request, &response); err != nil {
		h.setDraft(goalFormDraft{mode: "create", err: err.Error(), values: values, hasValues: true})
		http.Redirect(w, r, "/web/goals?create=1", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/web/goals?id="+url.QueryEscape(response.Goal.ID), http.StatusSeeOther)
}

func (h *Handler) handleGoalsUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}
	goalID := trimmedQueryValue(r, "id")
	if err := r.ParseForm(); err != nil {
		h.setDraft(goalFormDraft{mode: "update", id: goalID, err: "invalid form input"})
		http.Redirect(w, r, goalRedirectPath(goalID), http.StatusSeeOther)
		return
	}
	values := goalFormValuesFromRequest(r)
	if goalID == "" {
		h.setDraft(goalFormDraft{mode: "update", err: "goal id is required", values: values, hasValues: true})
		http.Redirect(w, r, goalRedirectPath(goalID), http.StatusSeeOther)
		return
	}
	options, err := values.updateOptions()
	if err != nil {
		h.setDraft(goalFormDraft{mode: "update", id: goalID, err: err.Error(), values: values, hasValues: true})
		http.Redirect(w, r, goalRedirectPath(goalID), http.StatusSeeOther)
		return
	}
	var response goalsUpdateResponse
	request := goalsUpdateRequest{GoalID: goalID, Options: options}
	if err := postJSON(r.Context(), h.client, h.requestBaseURL(r), identityFromRequest(r), "/goals/update", request, &response); err != nil {
		h.setDraft(goalFormDraft{mode: "update", id: goalID, err: err.Error(), values: values, hasValues: true})
		http.Redirect(w, r, goalRedirectPath(goalID), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, goalRedirectPath(goalID), http.StatusSeeOther)
}

func (h *Handler) handleGoalsComplete(w http.ResponseWriter, r *http.Request) {
	h.handleTransition(w, r, "/goals/complete", "Goal marked completed.")
}

func (h *Handler) handleGoalsAbandon(w http.ResponseWriter, r *http.Request) {
	h.handleTransition(w, r, "/goals/abandon", "Goal abandoned.")
}

func (h *Handler) handleTransition(w http.ResponseWriter, r *http.Request, path, notice string) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}
	goalID := trimmedQueryValue(r, "id")
	if goalID == "" {
		h.setDraft(goalFormDraft{mode: "update", err: "goal id is required"})
		http.Redirect(w, r, "/web/goals", http.StatusSeeOther)
		return
	}
	var response goalsTransitionResponse
	request := goalsTransitionRequest{GoalID: goalID}
	if err := postJSON(r.Context(), h.client, h.requestBaseURL(r), identityFromRequest(r), path, request, &response); err != nil {
		h.setDraft(goalFormDraft{mode: "update", id: goalID, err: err.Error()})
	} else {
		h.setDraft(goalFormDraft{mode: "update", id: goalID, notice: notice})
	}
	http.Redirect(w, r, goalRedirectPath(goalID), http.StatusSeeOther)
}

func (h *Handler) handleCheckIns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}
	goalID := trimmedQueryValue(r, "goal")
	if err := r.ParseForm(); err != nil {
		h.setDraft(goalFormDraft{mode: "update", id: goalID, err: "invalid form input"})
		http.Redirect(w, r, goalRedirectPath(goalID), http.StatusSeeOther)
		return
	}
	taskID := trimmedFormValue(r, "task_id")
	status := checkin.Status(trimmedFormValue(r, "status"))
	if taskID == "" {
		h.setDraft(goalFormDraft{mode: "update", id: goalID, err: "task id is required"})
		http.Redirect(w, r, goalRedirectPath(goalID), http.StatusSeeOther)
		return
	}
	if !status.IsValid() {
		h.setDraft(goalFormDraft{mode: "update", id: goalID, err: fmt.Sprintf("invalid check-in status %q", status)})
		http.Redirect(w, r, goalRedirectPath(goalID), http.StatusSeeOther)
		return
	}

	var response checkInSubmitResponse
	request := checkInSubmitRequest{TaskID: taskID, Status: status, Note: r.FormValue("note")}
	if err := postJSON(r.Context(), h.client, h.requestBaseURL(r), identityFromRequest(r), "/checkins/submit", request, &response); err != nil {
		h.setDraft(goalFormDraft{mode: "update", id: goalID, err: err.Error()})
		http.Redirect(w, r, goalRedirectPath(goalID), http.StatusSeeOther)
		return
	}
	// Surface the boss's reaction right on the goal page.
	h.setDraft(goalFormDraft{mode: "update", id: goalID, notice: response.Result.Event.Message()})
	http.Redirect(w, r, goalRedirectPath(goalID), http.StatusSeeOther)
}

func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	baseURL := h.requestBaseURL(r)
	identity := identityFromRequest(r)

	var response eventsListResponse
	eventsError := ""
	if err := postJSON(r.Context(), h.client, baseURL, identity, "/events/list", eventsListRequest{}, &response); err != nil {
		eventsError = err.Error()
	}

	data := pageData{
		ActiveTab:   "events",
		Events:      response.Events,
		EventsError: eventsError,
		Plan:        h.fetchPlan(r.Context(), baseURL, identity),
	}
	h.templates.Render(w, data)
}

func (h *Handler) requestBaseURL(r *http.Request) string {
	if h.baseURL != "" {
		return h.baseURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func (h *Handler) fetchGoals(ctx context.Context, baseURL string, identity identityHeaders) ([]goal.Goal, string) {
	var response goalsListResponse
	if err := postJSON(ctx, h.client, baseURL, identity, "/goals/list", goalsListRequest{}, &response); err != nil {
		return nil, err.Error()
	}
	return response.Goals, ""
}

func (h *Handler) fetchTasks(ctx context.Context, baseURL string, identity identityHeaders, goalID string) ([]goal.DailyTask, error) {
	var response goalTasksResponse
	if err := postJSON(ctx, h.client, baseURL, identity, "/goals/tasks", goalTasksRequest{GoalID: goalID}, &response); err != nil {
		return nil, err
	}
	return response.Tasks, nil
}

// fetchPlan resolves the user's plan for rendering. On error the page
// falls back to free-plan rendering, which only ever under-offers.
func (h *Handler) fetchPlan(ctx context.Context, baseURL string, identity identityHeaders) plan.Plan {
	var response planResponse
	if err := postJSON(ctx, h.client, baseURL, identity, "/plan", struct{}{}, &response); err != nil {
		return plan.Free
	}
	return response.Plan
}

func (h *Handler) consumeDraft(createMode bool, selectedID string) *goalFormDraft {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.draft == nil {
		return nil
	}
	draft := h.draft
	match := false
	if draft.mode == "create" && createMode {
		match = true
	}
	if draft.mode == "update" {
		if draft.id == "" && !createMode {
			match = true
		}
		if draft.id != "" && draft.id == selectedID {
			match = true
		}
	}
	if !match {
		return nil
	}
	h.draft = nil
	return draft
}

func (h *Handler) setDraft(draft goalFormDraft) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.draft = &draft
}

func defaultGoalFormValues(currentPlan plan.Plan) goalFormValues {
	// Plans that may pick any personality start the select at supportive;
	// locked plans only ever resolve to their own.
	bossType := boss.PersonalitySupportive
	if !currentPlan.CanChangeBossType {
		bossType = currentPlan.AllowedBossType
	}
	return goalFormValues{
		Intensity: string(goal.IntensityMedium),
		BossType:  string(bossType),
	}
}

func goalFormValuesFromGoal(g goal.Goal) goalFormValues {
	return goalFormValues{
		Title:     g.Title,
		Intensity: string(g.Intensity),
		StartDate: g.StartDate.Format(goal.DateFormat),
		EndDate:   g.EndDate.Format(goal.DateFormat),
		BossType:  string(g.BossType),
	}
}

func goalFormValuesFromRequest(r *http.Request) goalFormValues {
	return goalFormValues{
		Title:     trimmedFormValue(r, "title"),
		Intensity: trimmedFormValue(r, "intensity"),
		StartDate: trimmedFormValue(r, "start_date"),
		EndDate:   trimmedFormValue(r, "end_date"),
		BossType:  trimmedFormValue(r, "boss_type"),
	}
}

func (values goalFormValues) createOptions() (goal.CreateOptions, error) {
	intensity, err := parseIntensity(values.Intensity)
	if err != nil {
		return goal.CreateOptions{}, err
	}
	start, err := parseDate(values.StartDate, "start date")
	if err != nil {
		return goal.CreateOptions{}, err
	}
	end, err := parseDate(values.EndDate, "end date")
	if err != nil {
		return goal.CreateOptions{}, err
	}
	bossType, err := parseBossType(values.BossType)
	if err != nil {
		return goal.CreateOptions{}, err
	}
	return goal.CreateOptions{
		Intensity: intensity,
		StartDate: start,
		EndDate:   end,
		BossType:  bossType,
	}, nil
}

// updateOptions deliberately carries no title: the goal title is a
// commitment, written once at creation.
func (values goalFormValues) updateOptions() (goal.UpdateOptions, error) {
	options := goal.UpdateOptions{}
	if values.Intensity != "" {
		intensity, err := parseIntensity(values.Intensity)
		if err != nil {
			return goal.UpdateOptions{}, err
		}
		options.Intensity = &intensity
	}
	if values.StartDate != "" {
		start, err := parseDate(values.StartDate, "start date")
		if err != nil {
			return goal.UpdateOptions{}, err
		}
		options.StartDate = &start
	}
	if values.EndDate != "" {
		end, err := parseDate(values.EndDate, "end date")
		if err != nil {
			return goal.UpdateOptions{}, err
		}
		options.EndDate = &end
	}
	if values.BossType != "" {
		bossType, err := parseBossType(values.BossType)
		if err != nil {
			return goal.UpdateOptions{}, err
		}
		options.BossType = &bossType
	}
	return options, nil
}

func parseIntensity(value string) (goal.Intensity, error) {
	if value == "" {
		return goal.IntensityMedium, nil
	}
	intensity := goal.Intensity(value)
	if !intensity.IsValid() {
		return "", fmt.Errorf("invalid intensity %q", value)
	}
	return intensity, nil
}

func parseDate(value, field string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("%s is required", field)
	}
	parsed, err := goal.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be a date like %s", field, goal.DateFormat)
	}
	return parsed, nil
}

func parseBossType(value string) (boss.Personality, error) {
	if value == "" {
		return "", nil
	}
	personality := boss.Personality(value)
	if !personality.IsValid() {
		return "", fmt.Errorf("invalid boss personality %q", value)
	}
	return personality, nil
}

func trimmedQueryValue(r *http.Request, key string) string {
	return internalstrings.TrimSpace(r.URL.Query().Get(key))
}

func trimmedFormValue(r *http.Request, key string) string {
	return internalstrings.TrimSpace(r.FormValue(key))
}

func selectGoal(goals []goal.Goal, id string) *goal.Goal {
	if id == "" {
		return nil
	}
	for i := range goals {
		if goals[i].ID == id {
			return &goals[i]
		}
	}
	return nil
}

func intensityOptions() []selectOption {
	options := make([]selectOption, 0, len(goal.ValidIntensities()))
	for _, intensity := range goal.ValidIntensities() {
		options = append(options, selectOption{Value: string(intensity), Label: string(intensity)})
	}
	return options
}

func bossTypeOptions() []selectOption {
	options := make([]selectOption, 0, len(boss.ValidPersonalities()))
	for _, personality := range boss.ValidPersonalities() {
		options = append(options, selectOption{Value: string(personality), Label: string(personality)})
	}
	return options
}

func goalRedirectPath(goalID string) string {
	if internalstrings.IsBlank(goalID) {
		return "/web/goals"
	}
	return "/web/goals?id=" + url.QueryEscape(goalID)
}

func writeMethodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
}
