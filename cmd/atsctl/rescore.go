package main

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/talos/hvac-ats/internal/pipeline"
)

var rescoreCmd = &cobra.Command{
	Use:   "rescore",
	Short: "Recompute the derived score fields of a pipeline entry",
	Long:  "Re-derives tier score, tier, and star rating from the candidate's stored analysis and the job's current requirements. Useful after a job's vehicle requirement changes.",
	RunE:  runRescore,
}

var rescoreEntry string

func init() {
	rescoreCmd.Flags().StringVarP(&rescoreEntry, "entry", "e", "", "Pipeline entry ID (required)")

	if err := rescoreCmd.MarkFlagRequired("entry"); err != nil {
		panic(fmt.Sprintf("failed to mark entry flag as required: %v", err))
	}

	rootCmd.AddCommand(rescoreCmd)
}

func runRescore(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	entryID, err := uuid.Parse(rescoreEntry)
	if err != nil {
		return fmt.Errorf("invalid entry id: %w", err)
	}

	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	svc := pipeline.NewService(rt.store, rt.log)
	entry, err := svc.Rescore(ctx, entryID)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
