package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/talos/hvac-ats/internal/pipeline"
	"github.com/talos/hvac-ats/internal/types"
)

var bulkStatusCmd = &cobra.Command{
	Use:   "bulk-status",
	Short: "Apply one status to a set of pipeline entries",
	Long:  "Applies the target status to every listed entry independently. Partial success is reported per entry; entries that fail (for example, unknown IDs) do not stop the rest.",
	RunE:  runBulkStatus,
}

var (
	bulkStatusEntries string
	bulkStatusTarget  string
)

func init() {
	bulkStatusCmd.Flags().StringVarP(&bulkStatusEntries, "entries", "e", "", "Comma-separated pipeline entry IDs (required)")
	bulkStatusCmd.Flags().StringVarP(&bulkStatusTarget, "status", "s", "", "Target status: new|approved|contacted|backup|rejected (required)")

	for _, flag := range []string{"entries", "status"} {
		if err := bulkStatusCmd.MarkFlagRequired(flag); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", flag, err))
		}
	}

	rootCmd.AddCommand(bulkStatusCmd)
}

func runBulkStatus(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	target, err := types.ParsePipelineStatus(bulkStatusTarget)
	if err != nil {
		return err
	}

	var ids []uuid.UUID
	for _, part := range strings.Split(bulkStatusEntries, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := uuid.Parse(part)
		if err != nil {
			return fmt.Errorf("invalid entry id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return fmt.Errorf("no entry ids given")
	}

	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	svc := pipeline.NewService(rt.store, rt.log)
	results, err := svc.BulkUpdateStatus(ctx, ids, target, rt.cfg.Actor)
	if err != nil {
		return err
	}

	succeeded := 0
	for _, r := range results {
		if r.OK {
			fmt.Printf("%s  ok\n", r.ID)
			succeeded++
		} else {
			fmt.Printf("%s  failed: %v\n", r.ID, r.Err)
		}
	}
	fmt.Printf("%d/%d entries moved to %s\n", succeeded, len(results), target)
	return nil
}
