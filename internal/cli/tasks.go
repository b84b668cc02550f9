package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	tasksStatus string
	tasksTaskID string
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List task records",
	Long:  `List task records by lifecycle state, or show details of a specific task.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := NewClient(GetServerURL())

		if tasksTaskID != "" {
			task, err := client.GetTask(tasksTaskID)
			if err != nil {
				return fmt.Errorf("failed to get task: %w", err)
			}

			fmt.Println("Task Details:")
			fmt.Printf("  ID:          %s\n", task.TaskID)
			fmt.Printf("  Title:       %s\n", task.Title)
			fmt.Printf("  State:       %s\n", task.Location)
			if task.Priority != "" {
				fmt.Printf("  Priority:    %s\n", task.Priority)
			}
			if task.CreatedAt != "" {
				fmt.Printf("  Created:     %s\n", task.CreatedAt)
			}
			if task.Description != "" {
				fmt.Printf("  Description: %s\n", task.Description)
			}
			return nil
		}

		resp, err := client.ListTasks(tasksStatus)
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		if resp.Count == 0 {
			fmt.Println("No tasks found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "TASK ID\tTITLE\tSTATE\tPRIORITY\tCREATED")
		for _, task := range resp.Tasks {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				task.TaskID, task.Title, task.Location, task.Priority, task.CreatedAt)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(tasksCmd)

	tasksCmd.Flags().StringVar(&tasksStatus, "status", "all", "state filter (pending, active, completed, failed, archived, all)")
	tasksCmd.Flags().StringVar(&tasksTaskID, "id", "", "show details for a single task")
}
