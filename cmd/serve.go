package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sathvik70004-cmyk/mindfulmate/internal/config"
	"github.com/sathvik70004-cmyk/mindfulmate/internal/daemon"
	"github.com/sathvik70004-cmyk/mindfulmate/internal/shellcache"
	"github.com/sathvik70004-cmyk/mindfulmate/internal/validate"
)

// Serve command flags.
var (
	serveFlagAddr   string
	serveFlagOrigin string
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the app shell through the offline cache",
	Long: `Run a local proxy that serves the MindfulMate app shell through the
offline delivery cache.

Navigations are fetched network-first and fall back to the cached copy
when the origin is unreachable. Sub-resources are served from the cache
immediately and refreshed in the background.

Examples:
  mindfulmate serve --origin http://localhost:3000
  mindfulmate serve --origin http://localhost:3000 --addr 127.0.0.1:9000`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveFlagAddr, "addr", "",
		"Listen address (default from config)")
	serveCmd.Flags().StringVar(&serveFlagOrigin, "origin", "",
		"Upstream app shell origin to cache")

	rootCmd.AddCommand(serveCmd)
}

// runServe handles the serve command.
func runServe(cmd *cobra.Command, args []string) error {
	addr := serveFlagAddr
	if addr == "" {
		addr = config.Global.Cache.ListenAddr
	}

	origin := serveFlagOrigin
	if origin == "" {
		origin = config.Global.Cache.Origin
	}
	if origin == "" {
		return fmt.Errorf("no origin configured: pass --origin or set MINDFULMATE_SHELL_ORIGIN")
	}
	if err := validate.URL(origin); err != nil {
		return err
	}

	cache := shellcache.New(ctx.DB, config.Global.Cache.Generation)

	// Sweep entries left behind by previous generations before serving.
	if err := cache.Activate(); err != nil {
		return fmt.Errorf("failed to activate cache generation: %w", err)
	}

	health := daemon.NewHealthChecker(Version)
	health.AddCheck("cache", func() error {
		_, err := cache.Count()
		return err
	})

	mux := http.NewServeMux()
	mux.Handle("/", shellcache.NewHandler(cache, origin))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		data, err := health.JSON()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if !health.IsHealthy() {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		w.Write(data)
	})

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	count, _ := cache.Count()
	if !ctx.IsJSON() {
		ctx.Formatter.Printf("Serving %s on http://%s\n", origin, addr)
		ctx.Formatter.Printf("Cache generation: %s (%d entries)\n", cache.Generation(), count)
		ctx.Formatter.Println("Press Ctrl+C to stop")
	}

	// Shut down cleanly on interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-sigCh:
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if !ctx.IsJSON() {
			ctx.Formatter.Println("\nServer stopped")
		}
	}

	return nil
}
