package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var gcCmd = &cobra.Command{
	Use:   "gc",
	Short: "Reclaim orphaned image assets",
	Long: `Gc scans every note for asset references and deletes the stored images
no note mentions. Running it twice in a row deletes nothing the second time.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		app, err := openApp(ctx)
		if err != nil {
			fatal("Failed to initialize inkpad", err)
		}
		defer app.Close()

		report, err := app.Collection.GC(ctx)
		if err != nil {
			fatal("GC pass failed", err)
		}

		fmt.Printf("Scanned %d notes, %d live references, %d assets present.\n",
			report.Scanned, report.Live, report.Present)
		fmt.Printf("Deleted %d orphaned assets (%d failed).\n", report.Deleted, report.Failed)
	},
}

func init() {
	rootCmd.AddCommand(gcCmd)
}
