package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/siherrmann/ranker/api"
	"github.com/siherrmann/ranker/api/handler"
	"github.com/siherrmann/ranker/helper"
	"github.com/spf13/cobra"
)

func newServeCommand(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the configured graphs over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.config.HTTP.Addr = addr
			}
			return a.serve(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides http.addr")

	return cmd
}

func (a *app) serve(ctx context.Context) error {
	if len(a.config.Graphs) == 0 {
		return helper.InvalidArgument("no graphs configured")
	}

	graphs := make(map[string]handler.Traverser, len(a.config.Graphs))
	for _, graphSpec := range a.config.Graphs {
		r, err := a.openGraph(graphSpec)
		if err != nil {
			return err
		}
		defer r.Close()
		graphs[graphSpec.Name] = r
	}

	gin.SetMode(gin.ReleaseMode)
	router := api.SetupRouter(graphs, a.version, a.log)
	server := api.NewServer(a.config.HTTP, router, a.log)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, 1)
	go func() {
		errs <- server.Start()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	a.log.Info("Received shutdown signal", slog.Duration("timeout", a.config.HTTP.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return helper.NewError("shutdown", err)
	}
	return <-errs
}
