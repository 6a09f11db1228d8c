package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/inkpad-app/inkpad"
)

var (
	listJSON   bool
	listFolder string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all notes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		app, err := openApp(ctx)
		if err != nil {
			fatal("Failed to initialize inkpad", err)
		}
		defer app.Close()

		notes := app.Collection.Notes()

		var filtered []inkpad.Note
		for _, n := range notes {
			if listFolder != "" && n.FolderID != listFolder {
				continue
			}
			filtered = append(filtered, n)
		}

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(filtered); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		for _, n := range filtered {
			updated := time.UnixMilli(n.UpdatedAt).Format("2006-01-02 15:04")
			folder := n.FolderID
			if folder == "" {
				folder = "-"
			}
			fmt.Printf("%s  %-9s  %-16s  %-12s  %s\n", n.ID, n.Type, updated, folder, n.Title)
		}
	},
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	listCmd.Flags().StringVar(&listFolder, "folder", "", "Only notes in this folder")
	rootCmd.AddCommand(listCmd)
}
