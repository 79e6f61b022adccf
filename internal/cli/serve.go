package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/elenamtz/nubegen/internal/server"
	"github.com/elenamtz/nubegen/pkg/config"
)

// serveCommand creates the serve command running the interactive dashboard.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		storePath string
		seed      uint64
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive word-cloud dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Settings.Addr
			}
			if storePath == "" {
				storePath = defaultStorePath(c.Settings)
			}
			return c.runServe(cmd.Context(), addr, storePath, seed, noCache)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default from settings, localhost:8423)")
	cmd.Flags().StringVar(&storePath, "store", "", "snapshot store file (default in the config directory)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "pin the weight seed for the whole session (0 = random)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

// runServe starts the HTTP server and blocks until the context is cancelled
// or the listener fails.
func (c *CLI) runServe(ctx context.Context, addr, storePath string, seed uint64, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(storePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create store dir: %w", err)
		}
	}
	store := config.NewStore(storePath)

	srv := server.New(c.Logger, store, runner, seed, c.Settings.PreviewWidth)
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()

	c.Logger.Infof("Dashboard listening on http://%s", addr)
	printInfo("Dashboard running at %s", StyleHighlight.Render("http://"+addr))
	printDetail("Snapshots: %s", storePath)
	printNextStep("Stop the server", "ctrl+c")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		c.Logger.Info("Server stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
