package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show infrastructure health",
	Long:  `Show the backend's health snapshot of the supporting infrastructure.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := NewClient(GetServerURL())

		status, err := client.SystemStatus()
		if err != nil {
			return fmt.Errorf("failed to get system status: %w", err)
		}

		fmt.Println("System Status:")
		fmt.Printf("  Redis:        %s\n", status.Redis)
		fmt.Printf("  Webserver:    %s\n", status.Webserver)
		fmt.Printf("  Orchestrator: %s\n", status.Orchestrator)
		fmt.Printf("  Uptime:       %s\n", status.Uptime)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
