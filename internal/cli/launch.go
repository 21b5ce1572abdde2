package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"starrec/internal/launcher"
)

var launchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Launch the game and track replays until it exits",
	Args:  cobra.NoArgs,
	RunE:  runLaunch,
}

func init() {
	rootCmd.AddCommand(launchCmd)
}

func runLaunch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	gamePath := a.cfg.GamePath
	if gamePath == "" {
		gamePath = launcher.FindGamePath()
	}
	if gamePath == "" {
		return fmt.Errorf("game executable not found; run: starrec set-game-path <path>")
	}

	replayDir, err := requireReplayDir(a)
	if err != nil {
		return err
	}

	fmt.Println("game launched; records are reported automatically after each game")

	err = launcher.LaunchMode(cmd.Context(), gamePath, replayDir, a.newReplayCallback(cmd.Context()), a.settleDelay())
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
