package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/valyala/fasthttp"

	"contribution-engine/internal/handler"
	"contribution-engine/internal/payroll"
)

func (app *App) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the contribution HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig()
			if err != nil {
				return err
			}
			logger := newLogger(os.Stderr, cfg.Log.Level)

			settingsSvc, db, err := openSettings(cfg, logger)
			if err != nil {
				logger.Error("failed to open database", "path", cfg.DB.Path, "error", err)
				return err
			}
			defer db.Close()

			summaries := payroll.NewClient(cfg.Payroll.URL, cfg.Payroll.Timeout, cfg.Payroll.Fallback.Summary(), logger)

			h := handler.New(handler.Config{
				Settings:   settingsSvc,
				Summaries:  summaries,
				Logger:     logger,
				CORSOrigin: cfg.Server.CORSOrigin,
			})

			server := &fasthttp.Server{
				Handler:      h.Handle,
				Name:         "contribution-engine",
				ReadTimeout:  10 * time.Second,
				WriteTimeout: 10 * time.Second,
			}

			addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
			errCh := make(chan error, 1)
			go func() {
				logger.Info("contribution engine listening", "addr", addr, "db", cfg.DB.Path, "payroll", cfg.Payroll.URL != "")
				errCh <- server.ListenAndServe(addr)
			}()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(stop)

			select {
			case err := <-errCh:
				if err != nil {
					logger.Error("server failed", "error", err)
				}
				return err
			case <-stop:
			}

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			logger.Info("shutting down")
			if err := server.ShutdownWithContext(ctx); err != nil {
				logger.Error("shutdown error", "error", err)
				return err
			}
			return nil
		},
	}
}
