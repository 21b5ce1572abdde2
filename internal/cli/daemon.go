package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"starrec/internal/launcher"
	"starrec/internal/notify"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Watch for the game process and track replays while it runs",
	Args:  cobra.NoArgs,
	RunE:  runDaemon,
}

func init() {
	rootCmd.AddCommand(daemonCmd)
}

func runDaemon(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	replayDir, err := requireReplayDir(a)
	if err != nil {
		return err
	}

	fmt.Println("daemon mode: waiting for the game to start; Ctrl+C to quit")

	onStart := func() {
		if a.cfg.NotifyOnNewGame {
			notify.Notify("StarRecord", "game detected, replay tracking started")
		}
	}
	onStop := func() {
		if a.cfg.NotifyOnNewGame {
			notify.Notify("StarRecord", "game exited, replay tracking stopped")
		}
	}

	err = launcher.DaemonMode(cmd.Context(), replayDir, a.newReplayCallback(cmd.Context()), onStart, onStop, a.settleDelay())
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func requireReplayDir(a *app) (string, error) {
	if a.cfg.ReplayDir != "" {
		return a.cfg.ReplayDir, nil
	}
	return "", fmt.Errorf("replay folder is not configured; run: starrec set-replay-dir <path>")
}
