package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"starrec/internal/tracker"
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Show the win/loss summary against every opponent",
	Args:  cobra.NoArgs,
	RunE:  runRecords,
}

func init() {
	rootCmd.AddCommand(recordsCmd)
}

func runRecords(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	summaries, err := a.svc.AllRecords(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Println(tracker.FormatSummaries(summaries))
	return nil
}
