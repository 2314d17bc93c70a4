package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/littletheworld/LyrPro/internal/store"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <project-id|title>",
	Short: "Remove a stored project",
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
		if err := st.Delete(p.ID); err != nil {
			return err
		}

		logger.Infow("project deleted", "id", p.ID, "title", p.Title)
		fmt.Printf("Deleted %q (id %s)\n", p.Title, p.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
