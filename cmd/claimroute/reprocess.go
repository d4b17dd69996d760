package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func reprocessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reprocess <claim-id>",
		Short: "Re-run the workflow for an existing claim",
		Long: `Re-enter processing for a claim that already exists. Prior workflow runs
and audit entries are preserved; the new run is appended.`,
		Args: cobra.ExactArgs(1),
		RunE: runReprocess,
	}
}

func runReprocess(cmd *cobra.Command, args []string) error {
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

	result, err := eng.Reprocess(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return printJSON(result)
}
