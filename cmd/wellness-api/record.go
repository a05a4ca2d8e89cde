package main

import (
	"fmt"
	"time"

	"github.com/JonnyWalker81/wellness/backend/internal/models"
	"github.com/JonnyWalker81/wellness/backend/internal/repository"
	"github.com/JonnyWalker81/wellness/backend/internal/service"
	"github.com/spf13/cobra"
)

var checkInCmd = &cobra.Command{
	Use:   "checkin",
	Short: "Record a feeling check-in in a local SQLite store",
	RunE:  runCheckIn,
}

var phaseCmd = &cobra.Command{
	Use:   "phase <YYYY-MM-DD> <phase>",
	Short: "Tag a day with a cycle phase in a local SQLite store",
	Args:  cobra.ExactArgs(2),
	RunE:  runPhase,
}

var (
	recordSubject string
	checkInID     string
	checkInCat    string
	checkInLabel  string
	checkInAt     string
)

func init() {
	checkInCmd.Flags().StringVar(&recordSubject, "subject", "", "Subject (user) id")
	checkInCmd.Flags().StringVar(&checkInID, "id", "", "Optional UUIDv7 id")
	checkInCmd.Flags().StringVar(&checkInCat, "category", "", "Feeling category id")
	checkInCmd.Flags().StringVar(&checkInLabel, "label", "", "Display label (default: category)")
	checkInCmd.Flags().StringVar(&checkInAt, "at", "", "When it was felt, RFC3339 (default: now)")
	checkInCmd.MarkFlagRequired("subject")
	checkInCmd.MarkFlagRequired("category")

	phaseCmd.Flags().StringVar(&recordSubject, "subject", "", "Subject (user) id")
	phaseCmd.MarkFlagRequired("subject")
}

func runCheckIn(cmd *cobra.Command, args []string) error {
	occurredAt := time.Now()
	if checkInAt != "" {
		parsed, err := time.Parse(time.RFC3339, checkInAt)
		if err != nil {
			return fmt.Errorf("invalid --at %q: %w", checkInAt, err)
		}
		occurredAt = parsed
	}
	label := checkInLabel
	if label == "" {
		label = checkInCat
	}

	store, err := repository.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	created, err := service.NewCheckInService(store.CheckIns()).CreateCheckIn(cmd.Context(), recordSubject, &models.CreateCheckInRequest{
		ID:         checkInID,
		CategoryID: checkInCat,
		Label:      label,
		OccurredAt: occurredAt,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "recorded %s (%s) at %s\n", created.ID, created.CategoryID, created.OccurredAt.Format(time.RFC3339))
	return nil
}

func runPhase(cmd *cobra.Command, args []string) error {
	day, err := models.ParseDate(args[0])
	if err != nil {
		return err
	}

	store, err := repository.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	tag, err := service.NewPhaseTagService(store.PhaseTags()).SetPhaseTag(cmd.Context(), recordSubject, day, args[1])
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "tagged %s as %s\n", tag.Date, tag.Phase)
	return nil
}
