package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/littletheworld/LyrPro/internal/project"
	"github.com/littletheworld/LyrPro/internal/store"
)

var (
	importTitle  string
	importArtist string
	importAudio  string
)

var importCmd = &cobra.Command{
	Use:   "import <lyrics.txt>",
	Short: "Create a project from raw lyric text",
	Long: `Structures raw lyric text into sync lines: one line per input line,
with parenthesized spans split out as ad-lib parts.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read lyrics: %w", err)
		}

		title := importTitle
		if title == "" {
			title = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		}

		p := project.New(title)
		p.Artist = importArtist
		p.AudioPath = importAudio
		p.Lines = project.ParseLyrics(string(data))
		if len(p.Lines) == 0 {
			return fmt.Errorf("no lyric lines in %s", args[0])
		}

		st, err := store.Open(cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Save(p); err != nil {
			return fmt.Errorf("save project: %w", err)
		}

		logger.Infow("project imported", "id", p.ID, "title", p.Title, "lines", len(p.Lines))
		fmt.Printf("Imported %q: %d lines (id %s)\n", p.Title, len(p.Lines), p.ID)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importTitle, "title", "", "Project title (default: file name)")
	importCmd.Flags().StringVar(&importArtist, "artist", "", "Artist name")
	importCmd.Flags().StringVar(&importAudio, "audio", "", "Audio file the timestamps refer to")
	rootCmd.AddCommand(importCmd)
}
