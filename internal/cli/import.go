package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <replay-folder>",
	Short: "Import all replays from a folder",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	folder := args[0]
	if info, err := os.Stat(folder); err != nil || !info.IsDir() {
		return fmt.Errorf("replay folder not found: %s", folder)
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	count, err := a.svc.ImportFolder(cmd.Context(), folder)
	if err != nil {
		return err
	}
	fmt.Printf("\nimported %d new replays\n", count)

	if a.cfg.AutoDetectMe {
		name, err := a.svc.DetectMyName(cmd.Context())
		if err != nil {
			return err
		}
		if name != "" {
			fmt.Printf("local player detected: %s\n", name)
			if err := a.cfg.AddMyName(name); err != nil {
				return err
			}
		}
	}
	return nil
}
