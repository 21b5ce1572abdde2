package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"starrec/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch <replay-folder>",
	Short: "Watch a replay folder and report records as games finish",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	folder := args[0]
	if info, err := os.Stat(folder); err != nil || !info.IsDir() {
		return fmt.Errorf("replay folder not found: %s", folder)
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	a.cfg.ReplayDir = folder
	if err := a.cfg.Save(); err != nil {
		return err
	}

	fmt.Printf("watching replay folder: %s\n", folder)
	fmt.Println("records are reported automatically after each game; Ctrl+C to quit")

	rw, err := watcher.NewReplayWatcher(folder, a.newReplayCallback(cmd.Context()), watcher.Config{SettleDelay: a.settleDelay()})
	if err != nil {
		return err
	}
	if err := rw.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
