package main

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the status change history of a pipeline entry",
	RunE:  runHistory,
}

var historyEntry string

func init() {
	historyCmd.Flags().StringVarP(&historyEntry, "entry", "e", "", "Pipeline entry ID (required)")

	if err := historyCmd.MarkFlagRequired("entry"); err != nil {
		panic(fmt.Sprintf("failed to mark entry flag as required: %v", err))
	}

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	entryID, err := uuid.Parse(historyEntry)
	if err != nil {
		return fmt.Errorf("invalid entry id: %w", err)
	}

	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	events, err := rt.store.ListStatusEvents(ctx, entryID)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		fmt.Println("no status changes recorded")
		return nil
	}

	out, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal events: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
