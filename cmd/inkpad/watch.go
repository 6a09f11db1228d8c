package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	lcadapter "github.com/inkpad-app/inkpad/pkg/adapters/lifecycle"
	"github.com/inkpad-app/inkpad/pkg/core"
)

var watchPattern string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the note namespace for external changes",
	Long: `Watch prints a line for every note created, modified or deleted on
disk by another process. Only the sandbox backend supports watching.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		app, err := openApp(ctx)
		if err != nil {
			fatal("Failed to initialize inkpad", err)
		}
		defer app.Close()

		watchable, ok := app.Store.(core.Watchable)
		if !ok {
			fmt.Fprintf(os.Stderr, "Backend %q does not support watching\n", app.Backend)
			os.Exit(1)
		}

		events, err := watchable.Watch(ctx, watchPattern)
		if err != nil {
			fatal("Failed to start watcher", err)
		}

		// Bridge into the generic lifecycle source so the stream is
		// tracked and panic-safe like every other background task.
		source := lcadapter.NewSource(events)
		if err := source.Start(ctx); err != nil {
			fatal("Failed to start event source", err)
		}

		fmt.Println("Watching for changes (Ctrl+C to stop)...")
		for e := range source.Events() {
			fmt.Println(e.String())
		}
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchPattern, "pattern", "", "Glob pattern of note ids to watch (empty for all)")
	rootCmd.AddCommand(watchCmd)
}
