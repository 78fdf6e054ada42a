package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"arrearscli/internal/config"
	"arrearscli/internal/infrastructure"
	"arrearscli/internal/services"
)

type options struct {
	configPath string
	sourcePath string
	output     string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "arrears-report",
		Short: "Print the branch arrears-collection report",
		Long: `Reads the loan book export (xlsx, xls or csv), keeps loans maturing inside
the reporting window, and prints per-branch expected repayment, repayment,
arrears collected above the baseline and the commission earned.

Without flags or configuration this is the January 2026 collection challenge
over sample.xlsx.`,
		Version:      config.AppVersion,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file (default: $ARREARS_CONFIG or config.yaml)")
	cmd.Flags().StringVarP(&opts.sourcePath, "source", "s", "", "loan book file, overrides the configured source")
	cmd.Flags().StringVarP(&opts.output, "output", "o", outputTable, "output format: table or json")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log at debug level")

	return cmd
}

func runReport(cmd *cobra.Command, opts *options) error {
	if opts.output != outputTable && opts.output != outputJSON {
		return fmt.Errorf("unknown output format %q (want %s or %s)", opts.output, outputTable, outputJSON)
	}

	cfg, err := config.LoadFrom(opts.configPath)
	if err != nil {
		return err
	}
	if opts.sourcePath != "" {
		cfg.Report.SourceFile = opts.sourcePath
	}
	if opts.verbose {
		cfg.Logging.Level = "debug"
	}

	// Logs go to stderr so stdout carries only the report.
	cfg.Logging.Output = "console"
	logger, err := infrastructure.NewLogger(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	providers, err := infrastructure.InitializeOTel(config.TelemetryConfig{
		Environment:    cfg.Telemetry.Environment,
		TraceExporter:  "none",
		MetricExporter: "none",
	}, logger)
	if err != nil {
		return err
	}

	svc, err := services.NewReportServiceFromConfig(cfg.Report, providers, logger)
	if err != nil {
		return err
	}

	ctx := infrastructure.EnsureTraceID(cmd.Context())
	report, err := svc.Generate(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "arrears report failed",
			slog.String("source", cfg.Report.SourceFile),
			slog.String("error", err.Error()))
		return err
	}

	return renderReport(cmd.OutOrStdout(), report, opts.output)
}
