package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jmoreau/claimroute/internal/common"
	"github.com/jmoreau/claimroute/internal/model"

	"github.com/spf13/cobra"
)

func processCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process",
		Short: "Submit a claim and run it through the routing workflow",
		Long: `Create a claim from flags or a JSON file and process it: classification,
escalation check, and the routed workflow. Prints the result as JSON.`,
		RunE: runProcess,
	}

	cmd.Flags().String("file", "", "JSON file with the claim input (flags ignored when set)")
	cmd.Flags().String("policy", "", "policy number")
	cmd.Flags().String("vin", "", "vehicle identification number")
	cmd.Flags().Int("year", 0, "vehicle year")
	cmd.Flags().String("make", "", "vehicle make")
	cmd.Flags().String("model", "", "vehicle model")
	cmd.Flags().String("incident-date", "", "incident date (YYYY-MM-DD)")
	cmd.Flags().String("incident-description", "", "what happened")
	cmd.Flags().String("damage-description", "", "observed damage")
	cmd.Flags().Float64("estimated-damage", 0, "estimated damage amount")

	return cmd
}

func runProcess(cmd *cobra.Command, _ []string) error {
	input, err := claimInputFromFlags(cmd)
	if err != nil {
		return err
	}

	store, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(cmd.Context()); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	eng, err := buildEngine(store)
	if err != nil {
		return err
	}

	result, err := eng.Process(cmd.Context(), input)
	if err != nil {
		return err
	}
	return printJSON(result)
}

func claimInputFromFlags(cmd *cobra.Command) (model.ClaimInput, error) {
	var input model.ClaimInput

	if file, _ := cmd.Flags().GetString("file"); file != "" {
		data, err := os.ReadFile(file) // #nosec G304 -- user-supplied input path
		if err != nil {
			return input, common.NewUserError("failed to read claim file", err)
		}
		if err := json.Unmarshal(data, &input); err != nil {
			return input, common.NewUserError("claim file is not valid JSON", err)
		}
		return input, nil
	}

	input.PolicyNumber, _ = cmd.Flags().GetString("policy")
	input.VIN, _ = cmd.Flags().GetString("vin")
	input.VehicleYear, _ = cmd.Flags().GetInt("year")
	input.VehicleMake, _ = cmd.Flags().GetString("make")
	input.VehicleModel, _ = cmd.Flags().GetString("model")
	input.IncidentDate, _ = cmd.Flags().GetString("incident-date")
	input.IncidentDescription, _ = cmd.Flags().GetString("incident-description")
	input.DamageDescription, _ = cmd.Flags().GetString("damage-description")
	if cmd.Flags().Changed("estimated-damage") {
		amount, _ := cmd.Flags().GetFloat64("estimated-damage")
		input.EstimatedDamage = &amount
	}
	return input, nil
}
