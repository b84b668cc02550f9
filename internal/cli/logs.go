package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logsCmd = &cobra.Command{
	Use:   "logs [task-id]",
	Short: "Fetch the terminal feed for a task",
	Long:  `Fetch and display the terminal log feed for a specific task.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskID := args[0]

		client := NewClient(GetServerURL())

		resp, err := client.GetTerminal(taskID)
		if err != nil {
			return fmt.Errorf("failed to get logs: %w", err)
		}

		if resp.Count == 0 {
			fmt.Printf("No log entries for task %s.\n", taskID)
			return nil
		}

		for _, entry := range resp.Logs {
			fmt.Printf("%s [%s] %s\n", entry.Timestamp, entry.Level, entry.Message)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logsCmd)
}
