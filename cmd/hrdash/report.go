package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/hr-dashboard/internal/analytics"
	"github.com/jonathan/hr-dashboard/internal/observability"
)

var (
	reportConfigPath string
	reportTopN       int
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a one-shot analytics report",
	Long:  `Load the employee directory once, print department performance and top performers to stdout, and exit.`,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportConfigPath, "config", "", "Path to JSON config file")
	reportCmd.Flags().IntVar(&reportTopN, "top", 5, "Number of top performers to show")
	rootCmd.AddCommand(reportCmd)
}

func runReport(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(reportConfigPath)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	store, persisted, err := buildStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = persisted.Close() }()

	if err := store.Load(ctx); err != nil {
		return err
	}

	employees := store.Employees()
	printer := observability.NewPrinter(os.Stdout)
	printer.PrintDepartmentReport(analytics.DepartmentPerformance(employees))
	printer.PrintTopPerformers(analytics.TopPerformers(employees, reportTopN))
	return nil
}
