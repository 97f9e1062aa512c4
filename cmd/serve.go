package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/schedsim/server"
)

var listenAddr string // HTTP listen address

// serveCmd starts the JSON API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the simulator over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		srv := &http.Server{
			Addr:              listenAddr,
			Handler:           server.New(logrus.StandardLogger()).Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logrus.Errorf("Shutdown: %v", err)
			}
		}()

		logrus.Infof("Listening on %s", listenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("Server failed: %v", err)
		}
		logrus.Info("Server stopped")
	},
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "addr", ":8080", "HTTP listen address")

	rootCmd.AddCommand(serveCmd)
}
