package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/talos/hvac-ats/internal/intake"
	"github.com/talos/hvac-ats/internal/pipeline"
	"github.com/talos/hvac-ats/internal/types"
	"go.uber.org/zap"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest an analysis result and optionally attach the candidate to a job",
	Long:  "Validates and sanitizes an analysis-result JSON file produced by the resume-analysis step, stores the candidate and analysis, and, when --job is given, creates a pipeline entry with derived tier, score, and star rating.",
	RunE:  runIngest,
}

var (
	ingestFile          string
	ingestJobID         string
	ingestVehicleStatus string
	ingestNotes         string
)

func init() {
	ingestCmd.Flags().StringVarP(&ingestFile, "file", "f", "", "Path to analysis-result JSON file (required)")
	ingestCmd.Flags().StringVarP(&ingestJobID, "job", "j", "", "Job ID to attach the candidate to")
	ingestCmd.Flags().StringVar(&ingestVehicleStatus, "vehicle-status", "", "Vehicle status override (has_vehicle|no_vehicle|unknown)")
	ingestCmd.Flags().StringVar(&ingestNotes, "notes", "", "Internal notes for the pipeline entry")

	if err := ingestCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	raw, err := os.ReadFile(ingestFile)
	if err != nil {
		return fmt.Errorf("failed to read analysis file %s: %w", ingestFile, err)
	}

	result, err := intake.Parse(raw)
	if err != nil {
		return err
	}

	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	if result.Candidate.Email != nil {
		existing, err := rt.store.FindCandidateByEmail(ctx, *result.Candidate.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			rt.log.Warn("candidate with this email already exists",
				zap.String("email", *result.Candidate.Email),
				zap.String("existing_id", existing.ID.String()))
		}
	}

	candidate, err := rt.store.CreateCandidate(ctx, &result.Candidate)
	if err != nil {
		return err
	}

	analysis := result.Analysis
	analysis.CandidateID = candidate.ID
	if err := rt.store.SaveAnalysis(ctx, &analysis); err != nil {
		return err
	}
	rt.log.Info("analysis ingested", zap.String("candidate_id", candidate.ID.String()))

	if ingestJobID == "" {
		fmt.Println(candidate.ID)
		return nil
	}

	jobID, err := uuid.Parse(ingestJobID)
	if err != nil {
		return fmt.Errorf("invalid job id %q: %w", ingestJobID, err)
	}

	svc := pipeline.NewService(rt.store, rt.log)
	entry, err := svc.AddCandidateToJob(ctx, candidate.ID, jobID,
		types.ParseVehicleStatus(ingestVehicleStatus), ingestNotes)
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
