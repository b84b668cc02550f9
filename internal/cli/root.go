package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	serverURL string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "agentboard",
	Short: "Agentboard - orchestrator monitoring and control",
	Long: `Agentboard is the command line client for the agent orchestration
dashboard. It talks to the dashboard backend to inspect task records,
stream terminal feeds, review milestones, and stop running agents.`,
	Version: "0.1.0",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "dashboard backend URL")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func initConfig() {
	if env := os.Getenv("AGENTBOARD_SERVER_URL"); env != "" && serverURL == "http://localhost:8080" {
		serverURL = env
	}
}

// GetServerURL returns the configured backend URL
func GetServerURL() string {
	return serverURL
}

// IsVerbose returns whether verbose mode is enabled
func IsVerbose() bool {
	return verbose
}
