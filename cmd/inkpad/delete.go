package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a note",
	Long: `Delete permanently removes a note. Image notes have their assets
deleted in the background; run 'inkpad gc' to reclaim anything that slips.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		app, err := openApp(ctx)
		if err != nil {
			fatal("Failed to initialize inkpad", err)
		}
		defer app.Close()

		id := args[0]
		if _, ok := app.Collection.Note(id); !ok {
			fmt.Fprintf(os.Stderr, "Note not found: %s\n", id)
			os.Exit(1)
		}

		if err := app.Collection.DeleteNote(ctx, id); err != nil {
			fatal("Failed to delete note", err)
		}

		fmt.Printf("Note deleted: %s\n", id)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
