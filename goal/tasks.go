package goal

import (
	"fmt"
	"time"

	"github.com/bossyapp/bossy/internal/ids"
)

// taskDuration maps intensity to the duration text used in generated
// task descriptions.
func taskDuration(intensity Intensity) string {
	switch intensity {
	case IntensityLow:
		return "15 minutes"
	case IntensityMedium:
		return "30 minutes"
	case IntensityHigh:
		return "1 hour"
	default:
		return "30 minutes"
	}
}

// GenerateTaskDescription builds the default description for a daily
// task. Users may edit it afterwards.
func GenerateTaskDescription(intensity Intensity, title string) string {
	return fmt.Sprintf("Spend %s on: %s", taskDuration(intensity), title)
}

// GenerateDailyTasks expands a goal's inclusive date range into one task
// per calendar day. Dates are a simple range expansion, not a schedule.
func GenerateDailyTasks(g Goal) []DailyTask {
	start := Day(g.StartDate)
	end := Day(g.EndDate)

	var tasks []DailyTask
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		tasks = append(tasks, DailyTask{
			ID:          ids.GenerateWithTimestamp(g.ID+date.Format(DateFormat), time.Now(), ids.DefaultLength),
			GoalID:      g.ID,
			Date:        date,
			Description: GenerateTaskDescription(g.Intensity, g.Title),
			Status:      TaskTodo,
		})
	}
	return tasks
}
