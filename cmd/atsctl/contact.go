package main

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/talos/hvac-ats/internal/pipeline"
	"github.com/talos/hvac-ats/internal/types"
)

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Record or clear a contact attempt on a pipeline entry",
	Long:  "Records the contact channel and timestamp on an entry and moves it to contacted, or clears both contact fields with --clear.",
	RunE:  runContact,
}

var (
	contactEntry string
	contactVia   string
	contactClear bool
)

func init() {
	contactCmd.Flags().StringVarP(&contactEntry, "entry", "e", "", "Pipeline entry ID (required)")
	contactCmd.Flags().StringVarP(&contactVia, "via", "v", "", "Contact channel: manual|sms|email")
	contactCmd.Flags().BoolVar(&contactClear, "clear", false, "Clear the recorded contact instead of setting one")

	if err := contactCmd.MarkFlagRequired("entry"); err != nil {
		panic(fmt.Sprintf("failed to mark entry flag as required: %v", err))
	}

	rootCmd.AddCommand(contactCmd)
}

func runContact(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	entryID, err := uuid.Parse(contactEntry)
	if err != nil {
		return fmt.Errorf("invalid entry id: %w", err)
	}

	if contactClear == (contactVia != "") {
		return fmt.Errorf("exactly one of --via or --clear must be given")
	}

	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	svc := pipeline.NewService(rt.store, rt.log)

	var entry *types.PipelineEntry
	if contactClear {
		entry, err = svc.ClearContact(ctx, entryID)
	} else {
		var via types.ContactMethod
		via, err = types.ParseContactMethod(contactVia)
		if err != nil {
			return err
		}
		entry, err = svc.Contact(ctx, entryID, via, rt.cfg.Actor)
	}
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
