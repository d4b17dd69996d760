package main

import (
	"github.com/spf13/cobra"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <claim-id>",
		Short: "Show a claim's current record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			claim, err := store.GetClaim(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(claim)
		},
	}
}
