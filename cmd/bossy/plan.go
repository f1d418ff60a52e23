package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the current plan and its limits",
	RunE:  runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, _ []string) error {
	client, err := resolveClient()
	if err != nil {
		return err
	}
	current, err := client.Plan(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("Plan: %s\n", current.Name)
	if current.AllowsUnlimitedGoals() {
		fmt.Println("Active goals: unlimited")
	} else {
		fmt.Printf("Active goals: up to %d\n", current.MaxActiveGoals)
	}
	if current.CanChangeBossType {
		fmt.Println("Boss personality: any")
	} else {
		fmt.Printf("Boss personality: %s only\n", current.AllowedBossType)
	}
	if current.HistoryWindowDays > 0 {
		fmt.Printf("Event history: last %d days\n", current.HistoryWindowDays)
	} else {
		fmt.Println("Event history: unlimited")
	}
	return nil
}
