package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bossyapp/bossy/boss"
	"github.com/bossyapp/bossy/goal"
	internalstrings "github.com/bossyapp/bossy/internal/strings"
	"github.com/bossyapp/bossy/internal/ui"
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Manage goals",
}

var goalsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List goals",
	RunE:  runGoalsList,
}

var goalsCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a goal with generated daily tasks",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalsCreate,
}

var goalsUpdateCmd = &cobra.Command{
	Use:   "update <goal-id>",
	Short: "Update a goal's intensity, dates, or boss personality",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalsUpdate,
}

var goalsCompleteCmd = &cobra.Command{
	Use:   "complete <goal-id>",
	Short: "Mark a goal completed",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalsComplete,
}

var goalsAbandonCmd = &cobra.Command{
	Use:   "abandon <goal-id>",
	Short: "Abandon a goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalsAbandon,
}

var goalsTasksCmd = &cobra.Command{
	Use:   "tasks <goal-id>",
	Short: "List a goal's daily tasks",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalsTasks,
}

var (
	goalsListStatus string
	goalsListJSON   bool
	goalsTasksJSON  bool
	goalsIntensity  string
	goalsStartDate  string
	goalsEndDate    string
	goalsBossType   string
)

func init() {
	rootCmd.AddCommand(goalsCmd)
	goalsCmd.AddCommand(goalsListCmd, goalsCreateCmd, goalsUpdateCmd, goalsCompleteCmd, goalsAbandonCmd, goalsTasksCmd)

	goalsListCmd.Flags().StringVar(&goalsListStatus, "status", "", "Filter by status (active, completed, abandoned)")
	goalsListCmd.Flags().BoolVar(&goalsListJSON, "json", false, "Output as JSON")
	goalsTasksCmd.Flags().BoolVar(&goalsTasksJSON, "json", false, "Output as JSON")

	goalsCreateCmd.Flags().StringVarP(&goalsIntensity, "intensity", "i", string(goal.IntensityMedium), "Intensity (low, medium, high)")
	goalsCreateCmd.Flags().StringVar(&goalsStartDate, "start", "", "Start date (YYYY-MM-DD)")
	goalsCreateCmd.Flags().StringVar(&goalsEndDate, "end", "", "End date (YYYY-MM-DD)")
	goalsCreateCmd.Flags().StringVarP(&goalsBossType, "boss", "b", "", "Boss personality (execution, supportive, mentor, drill-sergeant)")

	goalsUpdateCmd.Flags().StringVarP(&goalsIntensity, "intensity", "i", "", "Intensity (low, medium, high)")
	goalsUpdateCmd.Flags().StringVar(&goalsStartDate, "start", "", "Start date (YYYY-MM-DD)")
	goalsUpdateCmd.Flags().StringVar(&goalsEndDate, "end", "", "End date (YYYY-MM-DD)")
	goalsUpdateCmd.Flags().StringVarP(&goalsBossType, "boss", "b", "", "Boss personality")

	addGoalFlagAliases(goalsCreateCmd, goalsUpdateCmd)
}

func runGoalsList(cmd *cobra.Command, _ []string) error {
	client, err := resolveClient()
	if err != nil {
		return err
	}

	filter := goal.ListFilter{}
	if !internalstrings.IsBlank(goalsListStatus) {
		status := goal.Status(strings.ToLower(goalsListStatus))
		filter.Status = &status
	}

	goals, err := client.ListGoals(cmd.Context(), filter)
	if err != nil {
		return err
	}

	if goalsListJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(goals)
	}

	if len(goals) == 0 {
		fmt.Println("No goals found.")
		return nil
	}

	builder := ui.NewTableBuilder([]string{"ID", "TITLE", "STATUS", "INTENSITY", "BOSS", "START", "END"}, len(goals))
	for _, g := range goals {
		builder.AddRow([]string{
			g.ID,
			ui.TruncateTableCell(g.Title),
			string(g.Status),
			string(g.Intensity),
			string(g.BossType),
			g.StartDate.Format(goal.DateFormat),
			g.EndDate.Format(goal.DateFormat),
		})
	}
	fmt.Print(builder.String())
	return nil
}

func runGoalsCreate(cmd *cobra.Command, args []string) error {
	client, err := resolveClient()
	if err != nil {
		return err
	}

	opts := goal.CreateOptions{
		Intensity: goal.Intensity(goalsIntensity),
		BossType:  boss.Personality(goalsBossType),
	}
	if opts.StartDate, err = parseDateFlag(goalsStartDate, "start"); err != nil {
		return err
	}
	if opts.EndDate, err = parseDateFlag(goalsEndDate, "end"); err != nil {
		return err
	}

	created, err := client.CreateGoal(cmd.Context(), args[0], opts)
	if err != nil {
		return err
	}
	fmt.Printf("Created goal %s: %s\n", created.ID, created.Title)
	return nil
}

func runGoalsUpdate(cmd *cobra.Command, args []string) error {
	client, err := resolveClient()
	if err != nil {
		return err
	}

	opts := goal.UpdateOptions{}
	if cmd.Flags().Changed("intensity") {
		intensity := goal.Intensity(goalsIntensity)
		opts.Intensity = &intensity
	}
	if cmd.Flags().Changed("start") {
		start, err := parseDateFlag(goalsStartDate, "start")
		if err != nil {
			return err
		}
		opts.StartDate = &start
	}
	if cmd.Flags().Changed("end") {
		end, err := parseDateFlag(goalsEndDate, "end")
		if err != nil {
			return err
		}
		opts.EndDate = &end
	}
	if cmd.Flags().Changed("boss") {
		bossType := boss.Personality(goalsBossType)
		opts.BossType = &bossType
	}

	updated, err := client.UpdateGoal(cmd.Context(), args[0], opts)
	if err != nil {
		return err
	}
	fmt.Printf("Updated goal %s\n", updated.ID)
	return nil
}

func runGoalsComplete(cmd *cobra.Command, args []string) error {
	client, err := resolveClient()
	if err != nil {
		return err
	}
	updated, err := client.CompleteGoal(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Goal %s completed: %s\n", updated.ID, updated.Title)
	return nil
}

func runGoalsAbandon(cmd *cobra.Command, args []string) error {
	client, err := resolveClient()
	if err != nil {
		return err
	}
	updated, err := client.AbandonGoal(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Goal %s abandoned: %s\n", updated.ID, updated.Title)
	return nil
}

func runGoalsTasks(cmd *cobra.Command, args []string) error {
	client, err := resolveClient()
	if err != nil {
		return err
	}
	tasks, err := client.Tasks(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if goalsTasksJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)
	}

	if len(tasks) == 0 {
		fmt.Println("No daily tasks.")
		return nil
	}

	builder := ui.NewTableBuilder([]string{"ID", "DATE", "STATUS", "TASK"}, len(tasks))
	for _, task := range tasks {
		builder.AddRow([]string{
			task.ID,
			task.Date.Format(goal.DateFormat),
			string(task.Status),
			ui.TruncateTableCell(task.Description),
		})
	}
	fmt.Print(builder.String())
	return nil
}

func parseDateFlag(value, name string) (parsed time.Time, err error) {
	if internalstrings.IsBlank(value) {
		return parsed, fmt.Errorf("--%s is required (YYYY-MM-DD)", name)
	}
	parsed, err = goal.ParseDate(value)
	if err != nil {
		return parsed, fmt.Errorf("--%s must be a date like %s", name, goal.DateFormat)
	}
	return parsed, nil
}
