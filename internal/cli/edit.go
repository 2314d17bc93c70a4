package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/littletheworld/LyrPro/internal/app"
	"github.com/littletheworld/LyrPro/internal/audio"
	"github.com/littletheworld/LyrPro/internal/project"
	"github.com/littletheworld/LyrPro/internal/store"
	"github.com/littletheworld/LyrPro/internal/ui"
)

var editCmd = &cobra.Command{
	Use:   "edit <project-id|title>",
	Short: "Open the interactive sync editor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open(cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer st.Close()

		p, err := loadProject(st, args[0])
		if err != nil {
			return err
		}

		var duration float64
		if p.AudioPath != "" {
			duration, err = audio.Duration(p.AudioPath)
			if err != nil {
				// Editable without a probed duration; seeking is just unbounded.
				logger.Warnw("audio probe failed", "path", p.AudioPath, "error", err)
				duration = 0
			}
		}

		ui.SetAccent(cfg.AccentColor)
		m := app.New(cfg, logger, st, p, audio.NewTransport(duration))
		prog := tea.NewProgram(m, tea.WithAltScreen())
		if _, err := prog.Run(); err != nil {
			return fmt.Errorf("run editor: %w", err)
		}
		return nil
	},
}

// loadProject resolves the argument as an id first, then as a title.
func loadProject(st *store.Store, arg string) (*project.Project, error) {
	if p, err := st.Load(arg); err == nil {
		return p, nil
	}
	id, err := st.FindByTitle(arg)
	if err != nil {
		return nil, err
	}
	return st.Load(id)
}

func init() {
	rootCmd.AddCommand(editCmd)
}
