package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a single note",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		app, err := openApp(ctx)
		if err != nil {
			fatal("Failed to initialize inkpad", err)
		}
		defer app.Close()

		note, ok := app.Collection.Note(args[0])
		if !ok {
			fmt.Fprintf(os.Stderr, "Note not found: %s\n", args[0])
			os.Exit(1)
		}

		if showJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(note); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		fmt.Printf("ID:      %s\n", note.ID)
		fmt.Printf("Title:   %s\n", note.Title)
		fmt.Printf("Type:    %s\n", note.Type)
		if note.FolderID != "" {
			fmt.Printf("Folder:  %s\n", note.FolderID)
		}
		fmt.Printf("Created: %s\n", time.UnixMilli(note.CreatedAt).Format(time.RFC3339))
		fmt.Printf("Updated: %s\n", time.UnixMilli(note.UpdatedAt).Format(time.RFC3339))
		fmt.Printf("\n%s\n", note.Content)
	},
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(showCmd)
}
