package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/marketwire/marketwire-server/internal/app"
	"github.com/marketwire/marketwire-server/internal/config"
	"github.com/marketwire/marketwire-server/internal/log"
)

func main() {
	var (
		cfgPath  string
		addr     string
		logLevel string
	)

	root := &cobra.Command{
		Use:          "marketwire-server",
		Short:        "Realtime presence and messaging server for marketplace panels",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfgPath, addr, logLevel)
		},
	}
	root.Flags().StringVar(&cfgPath, "config", "", "path to config file")
	root.Flags().StringVar(&addr, "addr", "", "HTTP listen address (overrides config)")
	root.Flags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cfgPath, addr, logLevel string) error {
	bootLogger := log.New("info")

	cfg, cfgFile, err := config.Load(bootLogger, cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if addr != "" {
		cfg.Addr = addr
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	logger := log.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(&cfg, logger)
	if err != nil {
		return err
	}

	logger.Info().Str("addr", cfg.Addr).Str("config", cfgFile).Msg("starting marketwire server")
	if err := application.Run(ctx); err != nil {
		return err
	}

	logger.Info().Msg("server stopped")
	return nil
}
