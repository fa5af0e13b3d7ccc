package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/talos/hvac-ats/internal/pipeline"
	"github.com/talos/hvac-ats/internal/types"
)

var attachCmd = &cobra.Command{
	Use:   "attach",
	Short: "Attach an existing candidate to a job's pipeline",
	RunE:  runAttach,
}

var (
	attachCandidateID   string
	attachJobID         string
	attachVehicleStatus string
	attachNotes         string
)

func init() {
	attachCmd.Flags().StringVar(&attachCandidateID, "candidate", "", "Candidate ID (required)")
	attachCmd.Flags().StringVarP(&attachJobID, "job", "j", "", "Job ID (required)")
	attachCmd.Flags().StringVar(&attachVehicleStatus, "vehicle-status", "", "Vehicle status override (has_vehicle|no_vehicle|unknown)")
	attachCmd.Flags().StringVar(&attachNotes, "notes", "", "Internal notes for the pipeline entry")

	for _, flag := range []string{"candidate", "job"} {
		if err := attachCmd.MarkFlagRequired(flag); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", flag, err))
		}
	}

	rootCmd.AddCommand(attachCmd)
}

func runAttach(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	candidateID, err := uuid.Parse(attachCandidateID)
	if err != nil {
		return fmt.Errorf("invalid candidate id %q: %w", attachCandidateID, err)
	}
	jobID, err := uuid.Parse(attachJobID)
	if err != nil {
		return fmt.Errorf("invalid job id %q: %w", attachJobID, err)
	}

	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	svc := pipeline.NewService(rt.store, rt.log)
	entry, err := svc.AddCandidateToJob(ctx, candidateID, jobID,
		types.ParseVehicleStatus(attachVehicleStatus), attachNotes)
	if err != nil {
		var dup *types.DuplicateEntryError
		if errors.As(err, &dup) {
			fmt.Printf("candidate %s is already in the pipeline for job %s\n", dup.CandidateID, dup.JobID)
			return nil
		}
		return err
	}

	out, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal pipeline entry: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
