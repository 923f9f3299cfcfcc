package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/fieldguard/pkg/logger"
)

func newPoliciesCmd(policyFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "policies",
		Short: "List available policies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*policyFile)
			if err != nil {
				return err
			}
			registry, err := loadRegistry(cfg, logger.Discard())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, p := range registry.Policies() {
				if _, err := fmt.Fprintf(tw, "%s\t[%s]\n", p.Name(), p.CharClass()); err != nil {
					return err
				}
			}
			return tw.Flush()
		},
	}
}
