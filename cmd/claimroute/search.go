package main

import (
	"fmt"

	"github.com/jmoreau/claimroute/internal/service"

	"github.com/spf13/cobra"
)

func searchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Find claims by VIN and/or incident date",
		RunE:  runSearch,
	}
	cmd.Flags().String("vin", "", "vehicle identification number")
	cmd.Flags().String("incident-date", "", "incident date (YYYY-MM-DD)")
	return cmd
}

func runSearch(cmd *cobra.Command, _ []string) error {
	vin, _ := cmd.Flags().GetString("vin")
	incidentDate, _ := cmd.Flags().GetString("incident-date")
	if vin == "" && incidentDate == "" {
		return fmt.Errorf("at least one of --vin or --incident-date is required")
	}

	store, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	claims, err := store.SearchClaims(cmd.Context(), service.SearchFilter{
		VIN:          vin,
		IncidentDate: incidentDate,
	})
	if err != nil {
		return err
	}
	return printJSON(claims)
}
