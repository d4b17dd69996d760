package main

import (
	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history <claim-id>",
		Short: "Show a claim's audit log and workflow runs",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistory,
	}
	cmd.Flags().Bool("runs", false, "show workflow runs instead of the audit log")
	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if runs, _ := cmd.Flags().GetBool("runs"); runs {
		workflowRuns, err := store.GetWorkflowRuns(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(workflowRuns)
	}

	entries, err := store.GetClaimHistory(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return printJSON(entries)
}
