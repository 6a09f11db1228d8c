package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkpad-app/inkpad"
)

var (
	addType    string
	addFolder  string
	addTitle   string
	addContent string
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a note",
	Long:  `Create a note of the given type (text, checklist or image), optionally filed into a folder.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		app, err := openApp(ctx)
		if err != nil {
			fatal("Failed to initialize inkpad", err)
		}
		defer app.Close()

		note, err := app.Collection.AddNote(ctx, inkpad.NoteType(addType), addFolder)
		if err != nil {
			fatal("Failed to create note", err)
		}

		if addTitle != "" || addContent != "" {
			upd := inkpad.NoteUpdate{}
			if addTitle != "" {
				upd.Title = &addTitle
			}
			if addContent != "" {
				upd.Content = &addContent
			}
			if err := app.Collection.UpdateNote(ctx, note.ID, upd); err != nil {
				fatal("Failed to update note", err)
			}
		}

		fmt.Printf("Note created: %s\n", note.ID)
	},
}

func init() {
	addCmd.Flags().StringVar(&addType, "type", "text", "Note type (text, checklist, image)")
	addCmd.Flags().StringVar(&addFolder, "folder", "", "Folder id to file the note into")
	addCmd.Flags().StringVar(&addTitle, "title", "", "Note title")
	addCmd.Flags().StringVar(&addContent, "content", "", "Note content")
	rootCmd.AddCommand(addCmd)
}
