package main

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/talos/hvac-ats/internal/matching"
)

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "Rank a candidate against every active job",
	Long:  "Evaluates the candidate's analysis against each active job posting and prints the matches ordered from best to worst fit.",
	RunE:  runMatches,
}

var matchesCandidate string

func init() {
	matchesCmd.Flags().StringVar(&matchesCandidate, "candidate", "", "Candidate ID (required)")

	if err := matchesCmd.MarkFlagRequired("candidate"); err != nil {
		panic(fmt.Sprintf("failed to mark candidate flag as required: %v", err))
	}

	rootCmd.AddCommand(matchesCmd)
}

func runMatches(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	candidateID, err := uuid.Parse(matchesCandidate)
	if err != nil {
		return fmt.Errorf("invalid candidate id: %w", err)
	}

	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	evaluator := matching.NewEvaluator(rt.store, rt.log)
	matches, err := evaluator.EvaluateAcrossJobs(ctx, candidateID)
	if err != nil {
		return err
	}

	if len(matches) == 0 {
		fmt.Println("no active jobs to match against")
		return nil
	}

	out, err := json.MarshalIndent(matches, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal matches: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
