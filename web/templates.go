package web

import (
	"html/template"
	"net/http"
	"time"

	"github.com/bossyapp/bossy/goal"
)

type templateWrapper struct {
	tmpl *template.Template
}

func newTemplateWrapper() *templateWrapper {
	return &templateWrapper{tmpl: newTemplates()}
}

func (tw *templateWrapper) Render(w http.ResponseWriter, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = tw.tmpl.ExecuteTemplate(w, "page", data)
}

func newTemplates() *template.Template {
	funcs := template.FuncMap{
		"eq":           func(a, b string) bool { return a == b },
		"formatTime":   formatTime,
		"formatDate":   formatDate,
		"isActiveGoal": func(status goal.Status) bool { return status == goal.StatusActive },
		"isDoneTask":   func(status goal.TaskStatus) bool { return status == goal.TaskDone },
	}
	return template.Must(template.New("page").Funcs(funcs).Parse(pageTemplate))
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return "-"
	}
	return value.Format("2006-01-02 15:04:05")
}

func formatDate(value time.Time) string {
	if value.IsZero() {
		return "-"
	}
	return value.Format(goal.DateFormat)
}

const pageTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Bossy {{if eq .ActiveTab "events"}}Events{{else}}Goals{{end}}</title>
  <style>
    :root {
      color-scheme: light;
    }
    body {
      margin: 0;
      font-family: "Charter", "Georgia", serif;
      color: #2b2520;
      background: radial-gradient(circle at top left, #f4efe3 0%, #fcfaf6 55%, #f6f2e8 100%);
    }
    header {
      padding: 16px 24px;
      border-bottom: 1px solid #d7cdbd;
      background: rgba(255, 255, 255, 0.72);
      backdrop-filter: blur(6px);
    }
    header h1 {
      margin: 0 0 8px 0;
      font-size: 20px;
      letter-spacing: 0.02em;
    }
    .tabs {
      display: flex;
      gap: 12px;
    }
    .tab {
      padding: 8px 14px;
      border-radius: 999px;
      text-decoration: none;
      color: #5b5148;
      border: 1px solid transparent;
    }
    .tab.active {
      color: #1d1712;
      border-color: #d1c6b6;
      background: #f5efe4;
      font-weight: 600;
    }
    main {
      display: flex;
      gap: 18px;
      padding: 18px 24px 28px;
    }
    .pane {
      background: #ffffff;
      border: 1px solid #d7cdbd;
      border-radius: 14px;
      box-shadow: 0 8px 24px rgba(60, 45, 30, 0.08);
    }
    .list-pane {
      width: 35%;
      min-width: 240px;
      padding: 16px;
      display: flex;
      flex-direction: column;
      gap: 12px;
    }
    .detail-pane {
      flex: 1;
      padding: 18px 22px 22px;
    }
    .list-actions {
      display: flex;
      justify-content: space-between;
      align-items: center;
      gap: 12px;
    }
    .button-link {
      display: inline-block;
      padding: 6px 12px;
      border-radius: 8px;
      border: 1px solid #cbbfae;
      background: #f7f2e8;
      text-decoration: none;
      color: #2b2520;
      font-size: 14px;
    }
    .item-list {
      list-style: none;
      padding: 0;
      margin: 0;
      display: flex;
      flex-direction: column;
      gap: 8px;
      overflow-y: auto;
    }
    .list-item a {
      display: block;
      padding: 10px 12px;
      border-radius: 10px;
      border: 1px solid transparent;
      text-decoration: none;
      color: inherit;
    }
    .list-item.active a {
      border-color: #c7baa8;
      background: #f6f0e6;
    }
    .item-title {
      font-weight: 600;
      display: block;
    }
    .item-meta {
      color: #72685f;
      font-size: 12px;
    }
    .field {
      display: flex;
      flex-direction: column;
      gap: 6px;
      margin-bottom: 12px;
    }
    input[type="text"],
    input[type="date"],
    select,
    textarea {
      width: 100%;
      padding: 8px 10px;
      border-radius: 8px;
      border: 1px solid #cbbfae;
      font-family: inherit;
      font-size: 14px;
      background: #fffdf9;
      box-sizing: border-box;
    }
    .actions {
      display: flex;
      flex-wrap: wrap;
      gap: 10px;
      margin-top: 16px;
    }
    button {
      padding: 8px 14px;
      border-radius: 8px;
      border: 1px solid #bfb3a2;
      background: #efe6d7;
      font-family: inherit;
      cursor: pointer;
    }
    button.danger {
      background: #f4d7d2;
      border-color: #d7a7a1;
    }
    .readonly {
      display: grid;
      grid-template-columns: 140px 1fr;
      gap: 6px 12px;
      font-size: 14px;
      margin: 16px 0 8px;
    }
    .readonly dt {
      font-weight: 600;
      color: #4f4540;
    }
    .readonly dd {
      margin: 0;
      color: #2b2520;
    }
    .error {
      padding: 10px 12px;
      border-radius: 8px;
      background: #f7d9d6;
      border: 1px solid #d9a7a2;
      margin-bottom: 12px;
      color: #5b1d17;
    }
    .notice {
      padding: 10px 12px;
      border-radius: 8px;
      background: #e5efdc;
      border: 1px solid #b8cda4;
      margin-bottom: 12px;
      color: #2e401f;
    }
    .muted {
      color: #72685f;
    }
    .task-table {
      width: 100%;
      border-collapse: collapse;
      font-size: 14px;
      margin-top: 8px;
    }
    .task-table th,
    .task-table td {
      text-align: left;
      padding: 8px 10px;
      border-bottom: 1px solid #e8e0d2;
      vertical-align: middle;
    }
    .task-table input[type="text"] {
      width: 140px;
    }
    .checkin-form {
      display: flex;
      gap: 6px;
      align-items: center;
    }
    .badge {
      display: inline-block;
      padding: 2px 10px;
      border-radius: 999px;
      font-size: 12px;
      font-weight: 600;
    }
    .badge.praise {
      background: #e5efdc;
      color: #2e401f;
      border: 1px solid #b8cda4;
    }
    .badge.warning {
      background: #f8ecd4;
      color: #5c4412;
      border: 1px solid #dcc48e;
    }
    .badge.escalation {
      background: #f7d9d6;
      color: #5b1d17;
      border: 1px solid #d9a7a2;
    }
    .event-list {
      list-style: none;
      padding: 0;
      margin: 0;
      display: flex;
      flex-direction: column;
      gap: 10px;
    }
    .event-item {
      padding: 12px 14px;
      border: 1px solid #e0d6c6;
      border-radius: 10px;
      background: #fcf8f1;
    }
    .event-message {
      margin: 6px 0 0;
    }
    @media (max-width: 900px) {
      main {
        flex-direction: column;
      }
      .list-pane {
        width: auto;
      }
    }
  </style>
</head>
<body>
  <header>
    <h1>Bossy</h1>
    <nav class="tabs">
      <a class="tab {{if eq .ActiveTab "goals"}}active{{end}}" href="/web/goals">Goals</a>
      <a class="tab {{if eq .ActiveTab "events"}}active{{end}}" href="/web/events">Boss Events</a>
    </nav>
  </header>
  <main>
    {{if eq .ActiveTab "events"}}
      <section class="pane detail-pane">
        <h2>Boss Events</h2>
        {{if .EventsError}}<div class="error">{{.EventsError}}</div>{{end}}
        <ul class="event-list">
          {{range .Events}}
            <li class="event-item">
              <span class="badge {{.Severity}}">{{.Severity}}</span>
              <span class="item-meta">{{formatTime .CreatedAt}}</span>
              <p class="event-message">{{.Message}}</p>
            </li>
          {{else}}
            <li class="muted">No boss events yet.</li>
          {{end}}
        </ul>
      </section>
    {{else}}
      <section class="pane list-pane">
        <div class="list-actions">
          <strong>Goals</strong>
          <a class="button-link" href="/web/goals?create=1">Create</a>
        </div>
        <ul class="item-list">
          {{range .Goals}}
            <li class="list-item {{if eq .ID $.SelectedGoalID}}active{{end}}">
              <a href="/web/goals?id={{.ID}}">
                <span class="item-title">{{.Title}}</span>
                <span class="item-meta">{{.Status}} · {{formatDate .StartDate}} → {{formatDate .EndDate}}</span>
              </a>
            </li>
          {{else}}
            <li class="muted">No goals yet.</li>
          {{end}}
        </ul>
      </section>
      <section class="pane detail-pane">
        {{if .GoalError}}<div class="error">{{.GoalError}}</div>{{end}}
        {{if .Notice}}<div class="notice">{{.Notice}}</div>{{end}}
        {{if .Create}}
          <h2>Create Goal</h2>
          <form method="post" action="/web/goals/create">
            <div class="field">
              <label for="goal-title">Title</label>
              <input id="goal-title" type="text" name="title" value="{{.GoalForm.Title}}" required>
            </div>
            <div class="field">
              <label for="goal-intensity">Intensity</label>
              <select id="goal-intensity" name="intensity">
                {{range .IntensityOptions}}
                  <option value="{{.Value}}" {{if eq .Value $.GoalForm.Intensity}}selected{{end}}>{{.Label}}</option>
                {{end}}
              </select>
            </div>
            <div class="field">
              <label for="goal-start">Start date</label>
              <input id="goal-start" type="date" name="start_date" value="{{.GoalForm.StartDate}}" required>
            </div>
            <div class="field">
              <label for="goal-end">End date</label>
              <input id="goal-end" type="date" name="end_date" value="{{.GoalForm.EndDate}}" required>
            </div>
            <div class="field">
              <label for="goal-boss">Boss personality</label>
              {{if .Plan.CanChangeBossType}}
                <select id="goal-boss" name="boss_type">
                  {{range .BossTypeOptions}}
                    <option value="{{.Value}}" {{if eq .Value $.GoalForm.BossType}}selected{{end}}>{{.Label}}</option>
                  {{end}}
                </select>
              {{else}}
                <select id="goal-boss" disabled>
                  <option selected>{{.Plan.AllowedBossType}}</option>
                </select>
                <span class="muted">The {{.Plan.Name}} plan uses the {{.Plan.AllowedBossType}} boss. Upgrade to choose.</span>
              {{end}}
            </div>
            <div class="actions">
              <button type="submit">Create goal</button>
            </div>
          </form>
        {{else if .SelectedGoal}}
          <h2>{{.SelectedGoal.Title}}</h2>
          {{if isActiveGoal .SelectedGoal.Status}}
            <form method="post" action="/web/goals/update?id={{.SelectedGoal.ID}}">
              <div class="field">
                <label for="goal-intensity">Intensity</label>
                <select id="goal-intensity" name="intensity">
                  {{range .IntensityOptions}}
                    <option value="{{.Value}}" {{if eq .Value $.GoalForm.Intensity}}selected{{end}}>{{.Label}}</option>
                  {{end}}
                </select>
              </div>
              <div class="field">
                <label for="goal-start">Start date</label>
                <input id="goal-start" type="date" name="start_date" value="{{.GoalForm.StartDate}}">
              </div>
              <div class="field">
                <label for="goal-end">End date</label>
                <input id="goal-end" type="date" name="end_date" value="{{.GoalForm.EndDate}}">
              </div>
              <div class="field">
                <label for="goal-boss">Boss personality</label>
                {{if .Plan.CanChangeBossType}}
                  <select id="goal-boss" name="boss_type">
                    {{range .BossTypeOptions}}
                      <option value="{{.Value}}" {{if eq .Value $.GoalForm.BossType}}selected{{end}}>{{.Label}}</option>
                    {{end}}
                  </select>
                {{else}}
                  <select id="goal-boss" disabled>
                    <option selected>{{.Plan.AllowedBossType}}</option>
                  </select>
                  <span class="muted">The {{.Plan.Name}} plan uses the {{.Plan.AllowedBossType}} boss. Upgrade to choose.</span>
                {{end}}
              </div>
              <div class="actions">
                <button type="submit">Save changes</button>
              </div>
            </form>
            <div class="actions">
              <form method="post" action="/web/goals/complete?id={{.SelectedGoal.ID}}">
                <button type="submit">Mark completed</button>
              </form>
              <form method="post" action="/web/goals/abandon?id={{.SelectedGoal.ID}}">
                <button class="danger" type="submit">Abandon goal</button>
              </form>
            </div>
          {{end}}
          <dl class="readonly">
            <dt>ID</dt><dd>{{.SelectedGoal.ID}}</dd>
            <dt>Status</dt><dd>{{.SelectedGoal.Status}}</dd>
            <dt>Boss</dt><dd>{{.SelectedGoal.BossType}}</dd>
            <dt>Dates</dt><dd>{{formatDate .SelectedGoal.StartDate}} → {{formatDate .SelectedGoal.EndDate}}</dd>
            <dt>Created</dt><dd>{{formatTime .SelectedGoal.CreatedAt}}</dd>
          </dl>
          <h3>Daily Tasks</h3>
          {{if .Tasks}}
            <table class="task-table">
              <tr><th>Date</th><th>Task</th><th>Status</th><th>Check in</th></tr>
              {{range .Tasks}}
                <tr>
                  <td>{{formatDate .Date}}</td>
                  <td>{{.Description}}</td>
                  <td>{{.Status}}</td>
                  <td>
                    {{if isDoneTask .Status}}
                      <span class="badge praise">done</span>
                    {{else}}
                      <form class="checkin-form" method="post" action="/web/checkins?goal={{.GoalID}}">
                        <input type="hidden" name="task_id" value="{{.ID}}">
                        <input type="text" name="note" placeholder="note (optional)">
                        <button type="submit" name="status" value="done">Done</button>
                        <button class="danger" type="submit" name="status" value="missed">Missed</button>
                      </form>
                    {{end}}
                  </td>
                </tr>
              {{end}}
            </table>
          {{else}}
            <p class="muted">No daily tasks.</p>
          {{end}}
        {{else}}
          <p class="muted">No goal selected.</p>
        {{end}}
      </section>
    {{end}}
  </main>
</body>
</html>
`
