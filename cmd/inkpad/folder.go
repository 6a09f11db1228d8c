package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inkpad-app/inkpad"
)

var folderCmd = &cobra.Command{
	Use:   "folder",
	Short: "Manage folders",
}

var folderAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create a folder",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		app, err := openApp(ctx)
		if err != nil {
			fatal("Failed to initialize inkpad", err)
		}
		defer app.Close()

		folder, err := app.Collection.AddFolder(ctx, args[0])
		if err != nil {
			fatal("Failed to create folder", err)
		}
		fmt.Printf("Folder created: %s (%s)\n", folder.Name, folder.ID)
	},
}

var folderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List folders",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		app, err := openApp(ctx)
		if err != nil {
			fatal("Failed to initialize inkpad", err)
		}
		defer app.Close()

		for _, f := range app.Collection.Folders() {
			count := 0
			for _, n := range app.Collection.Notes() {
				if n.FolderID == f.ID {
					count++
				}
			}
			fmt.Printf("%s  %-20s  %d notes\n", f.ID, f.Name, count)
		}
	},
}

var folderRenameCmd = &cobra.Command{
	Use:   "rename [id] [name]",
	Short: "Rename a folder",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		app, err := openApp(ctx)
		if err != nil {
			fatal("Failed to initialize inkpad", err)
		}
		defer app.Close()

		name := args[1]
		if err := app.Collection.UpdateFolder(ctx, args[0], inkpad.FolderUpdate{Name: &name}); err != nil {
			fatal("Failed to rename folder", err)
		}
		fmt.Printf("Folder renamed: %s\n", args[0])
	},
}

var folderDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a folder",
	Long:  `Delete removes a folder. Notes inside it survive and become unfiled.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		app, err := openApp(ctx)
		if err != nil {
			fatal("Failed to initialize inkpad", err)
		}
		defer app.Close()

		id := args[0]
		found := false
		for _, f := range app.Collection.Folders() {
			if f.ID == id {
				found = true
				break
			}
		}
		if !found {
			fmt.Fprintf(os.Stderr, "Folder not found: %s\n", id)
			os.Exit(1)
		}

		if err := app.Collection.DeleteFolder(ctx, id); err != nil {
			fatal("Failed to delete folder", err)
		}
		fmt.Printf("Folder deleted: %s (notes kept)\n", id)
	},
}

func init() {
	folderCmd.AddCommand(folderAddCmd)
	folderCmd.AddCommand(folderListCmd)
	folderCmd.AddCommand(folderRenameCmd)
	folderCmd.AddCommand(folderDeleteCmd)
	rootCmd.AddCommand(folderCmd)
}
