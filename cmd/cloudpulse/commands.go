package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pankaj-dahiya-devops/cloudpulse/internal/audit"
	"github.com/pankaj-dahiya-devops/cloudpulse/internal/config"
	"github.com/pankaj-dahiya-devops/cloudpulse/internal/export"
	"github.com/pankaj-dahiya-devops/cloudpulse/internal/monitor"
	"github.com/pankaj-dahiya-devops/cloudpulse/internal/providers/aws"
	"github.com/pankaj-dahiya-devops/cloudpulse/internal/server"
	"github.com/pankaj-dahiya-devops/cloudpulse/internal/version"
	"github.com/pankaj-dahiya-devops/cloudpulse/internal/visitors"
)

const shutdownGrace = 15 * time.Second

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cloudpulse",
		Short: "CloudPulse — host telemetry and AWS cost/security audit service",
	}
	root.AddCommand(newServeCmd())
	root.AddCommand(newAuditCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Production() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// newAuditor builds the orchestrator, or returns nil when no usable AWS
// credentials are present. The service keeps running without audit support.
func newAuditor(ctx context.Context, cfg *config.Config, logger *zap.Logger) *audit.Orchestrator {
	clients, err := aws.LoadClientSet(ctx, cfg.AWSRegion)
	if err != nil {
		logger.Warn("AWS credentials not configured, audit endpoints disabled", zap.Error(err))
		return nil
	}
	return audit.NewOrchestrator(clients, cfg.AWSRegion, logger)
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			sampler := monitor.NewSampler(cfg.SampleInterval(), cfg.Thresholds(), logger)
			go sampler.Run(ctx)

			counter := visitors.New(ctx, visitors.NewRedisKV(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword), logger)

			var auditor server.Auditor
			if orch := newAuditor(ctx, cfg, logger); orch != nil {
				auditor = orch
			}

			srv := server.New(cfg, sampler, counter, auditor, logger)

			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			}
		},
	}
}

func newAuditCmd() *cobra.Command {
	var (
		format string
		output string
		region string
	)

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Run one full audit and print the report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if region == "" {
				region = cfg.AWSRegion
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			clients, err := aws.LoadClientSet(cmd.Context(), region)
			if err != nil {
				return fmt.Errorf("load AWS clients: %w", err)
			}

			report, err := audit.NewOrchestrator(clients, region, logger).RunFull(cmd.Context())
			if err != nil {
				return fmt.Errorf("audit failed: %w", err)
			}

			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create output file %q: %w", output, err)
				}
				defer f.Close()
				return export.Write(f, report, format)
			}
			return export.Write(os.Stdout, report, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", export.FormatTable, "Output format: json, csv, text, or table")
	cmd.Flags().StringVar(&output, "output", "", "Write the report to this file instead of stdout")
	cmd.Flags().StringVar(&region, "region", "", "AWS region to audit (default: AWS_REGION from the environment)")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cloudpulse %s (%s)\n", version.Version, version.Commit)
		},
	}
}
