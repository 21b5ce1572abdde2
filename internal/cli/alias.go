package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var aliasCmd = &cobra.Command{
	Use:   "alias <player> <alt-name>",
	Short: "Register an alternate name for a player",
	Args:  cobra.ExactArgs(2),
	RunE:  runAlias,
}

func init() {
	rootCmd.AddCommand(aliasCmd)
}

func runAlias(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	player, alt := args[0], args[1]
	if err := a.svc.AddAlias(cmd.Context(), player, alt); err != nil {
		return err
	}
	fmt.Printf("alias registered: %s -> %s\n", alt, player)
	return nil
}
