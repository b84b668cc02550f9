package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var milestonesLimit int

var milestonesCmd = &cobra.Command{
	Use:   "milestones",
	Short: "List knowledge base milestones",
	Long:  `List the most recent milestones recorded in the project knowledge base.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := NewClient(GetServerURL())

		resp, err := client.ListMilestones(milestonesLimit)
		if err != nil {
			return fmt.Errorf("failed to list milestones: %w", err)
		}

		if resp.Count == 0 {
			fmt.Println("No milestones recorded.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "CREATED\tCATEGORY\tTITLE")
		for _, m := range resp.Data {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n",
				m.CreatedAt.Format(time.RFC3339), m.Category, m.Title)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(milestonesCmd)

	milestonesCmd.Flags().IntVar(&milestonesLimit, "limit", 0, "maximum number of milestones to show")
}
