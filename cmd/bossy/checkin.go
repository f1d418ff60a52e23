package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bossyapp/bossy/checkin"
)

var checkinCmd = &cobra.Command{
	Use:   "checkin <task-id> <done|missed>",
	Short: "Check in on a daily task and hear from the boss",
	Args:  cobra.ExactArgs(2),
	RunE:  runCheckin,
}

var checkinNote string

func init() {
	rootCmd.AddCommand(checkinCmd)
	checkinCmd.Flags().StringVarP(&checkinNote, "note", "n", "", "Optional note")
}

func runCheckin(cmd *cobra.Command, args []string) error {
	status := checkin.Status(args[1])
	if !status.IsValid() {
		return fmt.Errorf("status must be done or missed, got %q", args[1])
	}

	client, err := resolveClient()
	if err != nil {
		return err
	}
	result, err := client.SubmitCheckIn(cmd.Context(), args[0], status, checkinNote)
	if err != nil {
		return err
	}

	fmt.Println(renderSeverity(result.Event.Severity))
	fmt.Println(result.Event.Message())
	return nil
}
