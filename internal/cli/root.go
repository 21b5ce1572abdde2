// Package cli wires the cobra command tree over the tracker service.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"starrec/internal/applog"
)

var (
	cfgPath string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "starrec",
	Short: "StarRecord - match history and head-to-head records from replays",
	Long: `StarRecord ingests replay files into a local database and answers
"what's my record against this opponent" queries. It can import a replay
folder in one shot, watch the folder live, or supervise the game process
and notify after every finished match.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		applog.Init(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default: per-user config dir)")
}

// Execute runs the root command with the given context.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
