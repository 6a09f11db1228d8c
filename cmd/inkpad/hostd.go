package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/inkpad-app/inkpad"
	"github.com/inkpad-app/inkpad/pkg/adapters/hostchan"
	"github.com/inkpad-app/inkpad/pkg/adapters/sandbox"
)

var hostdSocket string

var hostdCmd = &cobra.Command{
	Use:   "hostd",
	Short: "Run the privileged host storage daemon",
	Long: `Hostd serves storage calls on a unix socket on behalf of sandboxed
clients. It fronts the real data directory; point clients at the socket via
INKPAD_HOST_SOCKET or --socket.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		dir := cfg.DataDir
		if dir == "" {
			var err error
			dir, err = inkpad.DefaultDataDir()
			if err != nil {
				fatal("Failed to resolve data directory", err)
			}
		}

		store := sandbox.NewStore(sandbox.Config{
			Path:   dir,
			Logger: slog.Default(),
		})
		if err := store.Initialize(ctx); err != nil {
			fatal("Failed to initialize store", err)
		}
		defer store.Close()

		ln, err := hostchan.Listen(hostdSocket)
		if err != nil {
			fatal("Failed to listen", err)
		}

		slog.Info("host daemon listening", "socket", hostdSocket, "data_dir", dir)

		srv := hostchan.NewServer(store, slog.Default())
		if err := srv.Serve(ctx, ln); err != nil {
			fatal("Server failed", err)
		}
		fmt.Println("Host daemon stopped.")
	},
}

func init() {
	hostdCmd.Flags().StringVar(&hostdSocket, "listen", "/tmp/inkpad-host.sock", "Unix socket to serve on")
	rootCmd.AddCommand(hostdCmd)
}
