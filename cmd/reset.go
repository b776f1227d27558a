package cmd

import (
	"fmt"

	"github.com/govassist/widget-agent/internal"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the persisted conversation and identity",
	Long: `Remove the persisted snapshot entirely, as a logout would: the
conversation log and the detected identity are gone, and the next page
load starts from the default state and re-enters identity detection.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, _, err := loadConfig()
		if err != nil {
			return err
		}

		if !paths.Exists() {
			fmt.Println(infoStyle.Render("no persisted state found"))
			return nil
		}

		store, err := internal.OpenStateStore(paths)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Reset(); err != nil {
			return err
		}
		fmt.Println(infoStyle.Render("persisted state cleared"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
