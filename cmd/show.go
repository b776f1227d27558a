package cmd

import (
	"fmt"
	"os"

	"github.com/govassist/widget-agent/internal"
	"github.com/govassist/widget-agent/internal/export"
	"github.com/spf13/cobra"
)

var showFormat string

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Inspect the persisted widget state",
	Long: `Print the persisted widget snapshot: resolved identity, open state,
position, and the conversation transcript.

With --format the transcript is exported instead (json, jsonl, md, yaml).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, _, err := loadConfig()
		if err != nil {
			return err
		}

		store, err := internal.OpenStateStore(paths)
		if err != nil {
			return err
		}
		defer store.Close()

		snap, err := store.Load()
		if err != nil {
			return err
		}

		if showFormat != "" {
			exporter, err := export.NewExporter(showFormat)
			if err != nil {
				return err
			}
			return exporter.Export(snap, os.Stdout)
		}

		user := snap.User
		if user == "" {
			user = "(unresolved)"
		}
		open := "closed"
		if snap.IsOpen {
			open = "open"
		}
		anchor := "absolute"
		if snap.Position.Anchored() {
			anchor = "corner-anchored"
		}

		fmt.Printf("%s %s\n", infoStyle.Render("session:"), snap.SessionID)
		fmt.Printf("%s %s\n", infoStyle.Render("identity:"), identityStyle.Render(user))
		fmt.Printf("%s %s\n", infoStyle.Render("widget:"), open)
		fmt.Printf("%s %s\n", infoStyle.Render("position:"), anchor)
		fmt.Printf("%s %d (revision %d)\n", infoStyle.Render("messages:"), len(snap.Messages), snap.Revision)

		if len(snap.Messages) > 0 {
			fmt.Println()
			for _, msg := range snap.Messages {
				printMessage(msg)
			}
		}
		return nil
	},
}

func init() {
	showCmd.Flags().StringVar(&showFormat, "format", "", "Export transcript format (json, jsonl, md, yaml)")
	rootCmd.AddCommand(showCmd)
}
