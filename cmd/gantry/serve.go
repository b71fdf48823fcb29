package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	httpadapter "github.com/aretw0/gantry/internal/adapters/http"
	"github.com/aretw0/gantry/internal/cli"
	"github.com/aretw0/gantry/pkg/observability"
	"github.com/aretw0/gantry/pkg/scenario"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP planning server",
	Long:  `Starts the planning engine in server mode, exposing a JSON API over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetString("port")
		verbose, _ := cmd.Flags().GetBool("verbose")
		redisAddr, _ := cmd.Flags().GetString("redis")

		logger := cli.NewLogger(verbose)
		metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
		runner := cli.NewRunner(logger, cli.NewStore(redisAddr), metrics.Hooks())
		handler := httpadapter.NewHandler(runner, scenario.BuiltinNames,
			httpadapter.WithLogger(logger),
		)

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Gantry Server on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Gantry Server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
}
