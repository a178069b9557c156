package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/jesterworks/canopy"
	"github.com/jesterworks/canopy/internal/cli"
	httpAdapter "github.com/jesterworks/canopy/pkg/adapters/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Tick the system continuously and serve its debug API",
	Long:  `Builds the tree from the sheet, drives it at a fixed tick rate, and exposes state, history, graph, and block-list endpoints over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		sheet, _ := cmd.Flags().GetString("sheet")
		debug, _ := cmd.Flags().GetBool("debug")
		port, _ := cmd.Flags().GetString("port")
		rate, _ := cmd.Flags().GetFloat64("rate")
		metrics, _ := cmd.Flags().GetBool("metrics")
		redisAddr, _ := cmd.Flags().GetString("redis")
		historyLimit, _ := cmd.Flags().GetInt("history-limit")

		build, err := cli.NewSystem(cli.Options{
			SheetPath:    sheet,
			Debug:        debug,
			RedisAddr:    redisAddr,
			HistoryLimit: historyLimit,
			Metrics:      metrics,
		})
		if err != nil {
			fmt.Printf("Error initializing system: %v\n", err)
			os.Exit(1)
		}

		router := chi.NewRouter()
		router.Mount("/", httpAdapter.NewHandler(build.System,
			httpAdapter.WithHistory(build.Recorder),
			httpAdapter.WithVersion(canopy.Version),
		))
		if metrics {
			router.Handle("/metrics", promhttp.Handler())
		}

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: router,
		}

		// Drive the system at the configured tick rate until shutdown.
		if rate <= 0 {
			rate = 30
		}
		tickCtx, stopTicking := context.WithCancel(context.Background())
		defer stopTicking()
		go func() {
			dt := 1.0 / rate
			ticker := time.NewTicker(time.Duration(float64(time.Second) * dt))
			defer ticker.Stop()
			for {
				select {
				case <-tickCtx.Done():
					return
				case <-ticker.C:
					build.System.Tick(tickCtx, dt)
					build.Actions.EndTick()
				}
			}
		}()

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Canopy Server on %s\n", srv.Addr)
			fmt.Printf("Serving sheet: %s at %.0f ticks/s\n", sheet, rate)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			// Error when starting HTTP server.
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)
			stopTicking()

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			// Asking listener to shut down and shed load.
			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Canopy Server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().Float64("rate", 30, "Tick rate in ticks per second")
	serveCmd.Flags().Bool("metrics", false, "Expose Prometheus metrics on /metrics")
	serveCmd.Flags().String("redis", "", "Redis address for history storage (host:port)")
	serveCmd.Flags().Int("history-limit", 512, "Snapshots retained in history")
}
