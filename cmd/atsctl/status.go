package main

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/talos/hvac-ats/internal/pipeline"
	"github.com/talos/hvac-ats/internal/types"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Update the pipeline status of one entry",
	RunE:  runStatus,
}

var (
	statusEntryID string
	statusTarget  string
	statusNote    string
)

func init() {
	statusCmd.Flags().StringVarP(&statusEntryID, "entry", "e", "", "Pipeline entry ID (required)")
	statusCmd.Flags().StringVarP(&statusTarget, "status", "s", "", "Target status: new|approved|contacted|backup|rejected (required)")
	statusCmd.Flags().StringVar(&statusNote, "note", "", "Note recorded on the audit trail")

	for _, flag := range []string{"entry", "status"} {
		if err := statusCmd.MarkFlagRequired(flag); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", flag, err))
		}
	}

	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	entryID, err := uuid.Parse(statusEntryID)
	if err != nil {
		return fmt.Errorf("invalid entry id %q: %w", statusEntryID, err)
	}
	target, err := types.ParsePipelineStatus(statusTarget)
	if err != nil {
		return err
	}

	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	svc := pipeline.NewService(rt.store, rt.log)
	entry, err := svc.UpdateStatus(ctx, entryID, target, rt.cfg.Actor, statusNote)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal pipeline entry: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
