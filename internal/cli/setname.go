package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var setNameCmd = &cobra.Command{
	Use:   "set-name <name>",
	Short: "Register your own in-game name",
	Args:  cobra.ExactArgs(1),
	RunE:  runSetName,
}

func init() {
	rootCmd.AddCommand(setNameCmd)
}

func runSetName(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	name := args[0]
	if err := a.svc.SetMyName(cmd.Context(), name); err != nil {
		return err
	}
	if err := a.cfg.AddMyName(name); err != nil {
		return err
	}
	fmt.Printf("local player registered: %s\n", name)
	return nil
}
