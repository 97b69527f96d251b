package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ghostchase/internal/registry"
)

func newPoliciesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "policies",
		Short: "List ghost movement policies",
		Long:  `Shows every ghost policy that can be selected with --policy or the config file.`,
		Args:  cobra.NoArgs,
		RunE:  a.runPolicies,
	}
}

func (a *app) runPolicies(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	policies := registry.List()

	if len(policies) == 0 {
		fmt.Fprintln(out, "No policies available.")
		return nil
	}

	fmt.Fprintln(out, "Available ghost policies:")
	fmt.Fprintln(out)

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, p := range policies {
		if len(p.ID) > maxIDLen {
			maxIDLen = len(p.ID)
		}
	}

	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, p := range policies {
		fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, p.ID, p.Title)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'ghostchase --policy <id> <level>...' to use one.")
	return nil
}
