package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop running agent processes",
	Long: `Ask the backend to stop the orchestrator worker processes. Workers
get a graceful termination signal first and are killed only if they do
not exit within the grace period.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := NewClient(GetServerURL())

		result, err := client.StopWorkers()
		if err != nil {
			return fmt.Errorf("failed to stop workers: %w", err)
		}

		if !result.Success {
			fmt.Println(result.Message)
			return nil
		}

		fmt.Printf("OK: %s\n", result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stopCmd)
}
