package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"starrec/internal/tracker"
)

var recordCmd = &cobra.Command{
	Use:   "record <opponent>",
	Short: "Show the head-to-head record against one opponent",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecord,
}

func init() {
	rootCmd.AddCommand(recordCmd)
}

func runRecord(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	rec, err := a.svc.Record(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Println(tracker.FormatRecord(rec))
	return nil
}
