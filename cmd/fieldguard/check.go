package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/fieldguard/pkg/logger"
	"github.com/dmitrymomot/fieldguard/pkg/validator"
)

var errRejected = errors.New("one or more values rejected")

func newCheckCmd(policyFile *string) *cobra.Command {
	var policyName string

	cmd := &cobra.Command{
		Use:   "check --policy NAME VALUE...",
		Short: "Validate values against a policy",
		Long:  "Prints ok or rejected for each value and exits non-zero when any value is rejected.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*policyFile)
			if err != nil {
				return err
			}
			registry, err := loadRegistry(cfg, logger.Discard())
			if err != nil {
				return err
			}

			policy, ok := registry.Lookup(policyName)
			if !ok {
				return fmt.Errorf("%w: %q (known: %v)", validator.ErrInvalidPolicyReference, policyName, registry.Names())
			}

			rejected := 0
			for _, value := range args {
				verdict := "ok"
				if !policy.Validate(value) {
					verdict = "rejected"
					rejected++
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%q\n", verdict, value); err != nil {
					return err
				}
			}

			if rejected > 0 {
				return fmt.Errorf("%w: %d of %d", errRejected, rejected, len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&policyName, "policy", validator.AlphaNumeric.Name(), "Policy name")

	return cmd
}
