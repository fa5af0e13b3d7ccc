package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/talos/hvac-ats/internal/sanitize"
	"github.com/talos/hvac-ats/internal/types"
)

var createJobCmd = &cobra.Command{
	Use:   "create-job",
	Short: "Create a job opening",
	RunE:  runCreateJob,
}

var (
	createJobTitle        string
	createJobLocation     string
	createJobPositionType string
	createJobYears        float64
	createJobVehicle      bool
	createJobPayMin       float64
	createJobPayMax       float64
)

func init() {
	createJobCmd.Flags().StringVarP(&createJobTitle, "title", "t", "", "Job title (required)")
	createJobCmd.Flags().StringVarP(&createJobLocation, "location", "l", "", "Job location")
	createJobCmd.Flags().StringVar(&createJobPositionType, "position-type", "", "Position type (e.g. full_time)")
	createJobCmd.Flags().Float64VarP(&createJobYears, "required-years", "y", 0, "Required years of experience")
	createJobCmd.Flags().BoolVar(&createJobVehicle, "vehicle-required", false, "Whether the job requires a personal vehicle")
	createJobCmd.Flags().Float64Var(&createJobPayMin, "pay-min", 0, "Pay range minimum")
	createJobCmd.Flags().Float64Var(&createJobPayMax, "pay-max", 0, "Pay range maximum")

	if err := createJobCmd.MarkFlagRequired("title"); err != nil {
		panic(fmt.Sprintf("failed to mark title flag as required: %v", err))
	}

	rootCmd.AddCommand(createJobCmd)
}

func runCreateJob(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	title := sanitize.TrimString(createJobTitle)
	if title == nil {
		return fmt.Errorf("title must not be empty")
	}
	years := sanitize.NonNegativeNumber(createJobYears)
	if years == nil {
		return fmt.Errorf("required-years must be non-negative")
	}

	job := &types.Job{
		Title:            *title,
		RequiredYearsExp: *years,
		VehicleRequired:  createJobVehicle,
	}
	if loc := sanitize.TrimString(createJobLocation); loc != nil {
		job.Location = *loc
	}
	if pt := sanitize.TrimString(createJobPositionType); pt != nil {
		job.PositionType = *pt
	}
	if createJobPayMin > 0 {
		job.PayRangeMin = &createJobPayMin
	}
	if createJobPayMax > 0 {
		if createJobPayMax < createJobPayMin {
			return fmt.Errorf("pay-max must be >= pay-min")
		}
		job.PayRangeMax = &createJobPayMax
	}

	created, err := rt.store.CreateJob(ctx, job)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(created, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
