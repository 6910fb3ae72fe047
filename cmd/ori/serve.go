package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/oriente/oriente/internal/integrity"
	"github.com/oriente/oriente/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the JSON API server",
		Long:  "Launches the board API. When a sweep schedule is configured, the integrity daemon runs alongside it.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath, port)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Oriente config file")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (overrides config)")
	return cmd
}

func runServe(cmd *cobra.Command, configPath string, port int) error {
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}
	if port == 0 {
		port = cfg.Server.Port
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(cmd.OutOrStdout(), "\nReceived %s, shutting down...\n", sig)
		cancel()
	}()

	if cfg.Sweep.Schedule != "" {
		go func() {
			err := integrity.RunSweep(ctx, gormDB, integrity.SweepOpts{
				Schedule: cfg.Sweep.Schedule,
				Repair:   cfg.Sweep.Repair,
				Out:      cmd.OutOrStdout(),
			})
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Integrity sweep stopped: %v\n", err)
			}
		}()
	}

	return server.Start(ctx, server.StartOpts{
		DB:     gormDB,
		Port:   port,
		Locale: localeOf(cfg),
		Out:    cmd.OutOrStdout(),
	})
}
