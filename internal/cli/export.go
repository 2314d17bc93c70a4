package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/littletheworld/LyrPro/internal/lrc"
	"github.com/littletheworld/LyrPro/internal/store"
)

var (
	exportEnhanced bool
	exportOutput   string
)

var exportCmd = &cobra.Command{
	Use:   "export <project-id|title>",
	Short: "Write the project as an LRC file",
	Long: `Renders line-level [mm:ss.xx] tags from the synced timestamps.
With --enhanced, inline <mm:ss.xx> word tags are added as well.`,
	Args: cobra.ExactArgs(1),
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

		out := exportOutput
		if out == "" {
			name := strings.ReplaceAll(p.Title, "/", "-") + ".lrc"
			out = filepath.Join(cfg.ExportDir, name)
		}

		w := lrc.Writer{Enhanced: exportEnhanced}
		if err := w.WriteFile(p, out); err != nil {
			return err
		}

		logger.Infow("project exported", "id", p.ID, "path", out, "enhanced", exportEnhanced)
		fmt.Printf("Exported %q to %s\n", p.Title, out)
		return nil
	},
}

func init() {
	exportCmd.Flags().BoolVar(&exportEnhanced, "enhanced", false, "Emit inline word timestamps")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path")
	rootCmd.AddCommand(exportCmd)
}
