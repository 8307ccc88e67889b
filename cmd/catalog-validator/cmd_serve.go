package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	api "github.com/rogerio-castellano/catalog-validator/internal/http"
	"github.com/rogerio-castellano/catalog-validator/internal/http/handlers"
	rl "github.com/rogerio-castellano/catalog-validator/internal/http/rate_limiter"
	"github.com/rogerio-castellano/catalog-validator/internal/logging"
	"github.com/spf13/cobra"
)

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve catalog reports over HTTP",
		Long:  "serve exposes GET /report, which runs a fresh check per request, and GET /healthz.",
		Args:  cobra.NoArgs,
		RunE:  a.runServe,
	}

	f := cmd.Flags()
	f.String("addr", ":8080", "listen address")
	f.Float64("rate", 1, "requests per second allowed per client")
	f.Int("burst", 3, "burst size per client")
	a.bind(f.Lookup, map[string]string{
		"server.addr":  "addr",
		"server.rate":  "rate",
		"server.burst": "burst",
	})
	return cmd
}

func (a *app) runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	src, release, err := buildSource(ctx, cfg)
	defer release()
	if err != nil {
		return err
	}

	handlers.SetCatalogSource(src)
	handlers.SetReportOptions(cfg.Catalog.Name, cfg.Report.Summary)

	limiter := rl.New(cfg.Server.Rate, cfg.Server.Burst)
	go limiter.StartVisitorCleanupLoop(ctx, time.Minute)

	srv := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: api.NewRouter(api.RouterOptions{
			JWTSecret: []byte(cfg.Server.JWTSecret),
			Limiter:   limiter,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.New("serve").Error("server shutdown failed", "error", err)
		}
	}()

	log.Printf("✅ Server running on %s", cfg.Server.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

