package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/JonnyWalker81/wellness/backend/internal/logger"
	"github.com/JonnyWalker81/wellness/backend/internal/repository"
	"github.com/JonnyWalker81/wellness/backend/internal/service"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a check-in insight report from a local SQLite store",
	Long: `Build the check-in insight report for one subject from a SQLite
store and print it as indented JSON.`,
	RunE: runReport,
}

var (
	reportSubject string
	reportNow     string
	reportTZ      string
	dbPath        string
)

func init() {
	reportCmd.Flags().StringVar(&reportSubject, "subject", "", "Subject (user) id")
	reportCmd.Flags().StringVar(&reportNow, "now", "", "Report time as RFC3339 (default: current time)")
	reportCmd.Flags().StringVar(&reportTZ, "tz", "UTC", "IANA time zone used for calendar days")
	reportCmd.MarkFlagRequired("subject")

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "wellness.db", "Path to the SQLite store")
}

// resolveNow parses an optional RFC3339 instant and moves it into tz
func resolveNow(value, tz string) (time.Time, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --tz %q: %w", tz, err)
	}

	now := time.Now()
	if value != "" {
		now, err = time.Parse(time.RFC3339, value)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --now %q: %w", value, err)
		}
	}
	return now.In(loc), nil
}

func runReport(cmd *cobra.Command, args []string) error {
	now, err := resolveNow(reportNow, reportTZ)
	if err != nil {
		return err
	}

	// Logs go to stderr so stdout stays valid JSON
	logger.SetDefault(logger.New(logger.Config{
		Level:  logger.LevelWarn,
		Format: "text",
		Output: cmd.ErrOrStderr(),
	}))

	store, err := repository.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	svc := service.NewInsightService(store.CheckIns(), store.PhaseTags(), nil)
	report, err := svc.BuildInsightReport(cmd.Context(), reportSubject, now)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
