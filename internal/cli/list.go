package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/littletheworld/LyrPro/internal/store"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored projects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open(cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer st.Close()

		infos, err := st.List()
		if err != nil {
			return err
		}
		if len(infos) == 0 {
			fmt.Println("No projects. Create one with: lyrpro import <lyrics.txt>")
			return nil
		}

		for _, info := range infos {
			artist := info.Artist
			if artist == "" {
				artist = "-"
			}
			fmt.Printf("%s  %-30s  %-20s  %3d lines  %s\n",
				info.ID, info.Title, artist, info.Lines,
				info.UpdatedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
