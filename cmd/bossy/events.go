package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/bossyapp/bossy/boss"
	"github.com/bossyapp/bossy/internal/ui"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show recent boss events",
	RunE:  runEvents,
}

var (
	eventsLimit int
	eventsJSON  bool
)

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.Flags().IntVar(&eventsLimit, "limit", 0, "Maximum events to show")
	eventsCmd.Flags().BoolVar(&eventsJSON, "json", false, "Output as JSON")
}

var (
	praiseStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	warningStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	escalationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

func renderSeverity(severity boss.Severity) string {
	switch severity {
	case boss.SeverityPraise:
		return praiseStyle.Render(string(severity))
	case boss.SeverityWarning:
		return warningStyle.Render(string(severity))
	case boss.SeverityEscalation:
		return escalationStyle.Render(string(severity))
	default:
		return string(severity)
	}
}

func runEvents(cmd *cobra.Command, _ []string) error {
	client, err := resolveClient()
	if err != nil {
		return err
	}
	events, err := client.RecentEvents(cmd.Context(), eventsLimit)
	if err != nil {
		return err
	}

	if eventsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(events)
	}

	if len(events) == 0 {
		fmt.Println("No boss events yet.")
		return nil
	}

	builder := ui.NewTableBuilder([]string{"WHEN", "SEVERITY", "MESSAGE"}, len(events))
	for _, event := range events {
		builder.AddRow([]string{
			event.CreatedAt.Format("2006-01-02 15:04"),
			renderSeverity(event.Severity),
			ui.TruncateTableCell(event.Message()),
		})
	}
	fmt.Print(builder.String())
	return nil
}
