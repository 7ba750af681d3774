package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRegistryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Inspect registry files",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "validate <file>",
		Short: "Load a registry file and report whether it is valid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d trusted domains, %d brand tokens, %d suspicious TLDs)\n",
				args[0], len(reg.TrustedDomains()), len(reg.BrandTokens()), len(reg.SuspiciousTLDs()))
			return nil
		},
	})
	return cmd
}
