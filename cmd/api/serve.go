package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Tofuswang/journey/internal/config"
	"github.com/Tofuswang/journey/internal/handler"
	"github.com/Tofuswang/journey/internal/logging"
	"github.com/Tofuswang/journey/internal/storage"
	"github.com/Tofuswang/journey/internal/web"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownGrace = 10 * time.Second

func newServeCmd(loadConfig func() (config.Config, error)) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if port != "" {
				cfg.Port = port
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides PORT)")
	return cmd
}

func serve(ctx context.Context, cfg config.Config) error {
	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(ctx, cfg.StorageDriver, cfg.StorageDSN())
	if err != nil {
		return fmt.Errorf("open %s storage: %w", cfg.StorageDriver, err)
	}
	defer store.Close()

	tmpl, err := web.Load()
	if err != nil {
		return err
	}

	h := handler.New(store, logger, handler.Options{StatsTTL: cfg.StatsCacheTTL})
	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: h.Router(handler.RouterConfig{
			Templates:      tmpl,
			AllowOrigins:   cfg.AllowOrigins,
			TrustedProxies: cfg.TrustedProxies,
			SubmitPerMin:   cfg.SubmitPerMin,
			SubmitBurst:    cfg.SubmitBurst,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr), zap.String("storage", cfg.StorageDriver))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", zap.Duration("grace", shutdownGrace))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
