package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"starrec/internal/config"
)

var setReplayDirCmd = &cobra.Command{
	Use:   "set-replay-dir <path>",
	Short: "Set the replay folder the game writes into",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return fmt.Errorf("folder not found: %s", dir)
		}
		return updateConfig(func(cfg *config.Config) {
			cfg.ReplayDir = dir
			fmt.Printf("replay folder set: %s\n", dir)
		})
	},
}

var setGamePathCmd = &cobra.Command{
	Use:   "set-game-path <path>",
	Short: "Set the game executable used by launch and daemon modes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("file not found: %s", path)
		}
		return updateConfig(func(cfg *config.Config) {
			cfg.GamePath = path
			fmt.Printf("game path set: %s\n", path)
		})
	},
}

var setDecoderCmd = &cobra.Command{
	Use:   "set-decoder <command> [args...]",
	Short: "Set the external replay decoder command",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateConfig(func(cfg *config.Config) {
			cfg.DecoderCmd = strings.Join(args, " ")
			fmt.Printf("decoder command set: %s\n", cfg.DecoderCmd)
		})
	},
}

func init() {
	rootCmd.AddCommand(setReplayDirCmd)
	rootCmd.AddCommand(setGamePathCmd)
	rootCmd.AddCommand(setDecoderCmd)
}

func updateConfig(mutate func(cfg *config.Config)) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	mutate(cfg)
	return cfg.Save()
}
