// Package cli wires the lyrpro commands.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/littletheworld/LyrPro/internal/config"
	"github.com/littletheworld/LyrPro/internal/logging"
)

var (
	verbose    bool
	configPath string

	cfg    *config.Config
	logger *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "lyrpro",
	Short: "Karaoke lyric synchronization editor",
	Long: `LyrPro is a terminal editor for time-synchronized lyrics.

Import lyric text, scrub the audio timeline to tag each character with a
playback timestamp, preview the per-character fill animation, and export
the result as an LRC file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.DefaultPath()
		}
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}
		logger = logging.NewLogger(cfg.LogPath, verbose)
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", "", "Config file path")
}
