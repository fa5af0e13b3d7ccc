package main

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "List the pipeline entries attached to a job",
	Long:  "Prints every pipeline entry for the job ordered by tier score from highest to lowest.",
	RunE:  runBoard,
}

var boardJob string

func init() {
	boardCmd.Flags().StringVarP(&boardJob, "job", "j", "", "Job ID (required)")

	if err := boardCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}

	rootCmd.AddCommand(boardCmd)
}

func runBoard(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	jobID, err := uuid.Parse(boardJob)
	if err != nil {
		return fmt.Errorf("invalid job id: %w", err)
	}

	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	entries, err := rt.store.ListEntriesByJob(ctx, jobID)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("no candidates in the pipeline for this job")
		return nil
	}

	out, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
