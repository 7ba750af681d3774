package main

import (
	"github.com/spf13/cobra"

	"phishshield/internal/urlrisk/registry"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "urlcheck",
		Short:         "Score URLs for phishing risk without running the server",
		SilenceUsage: true,
	}
	root.AddCommand(newAnalyzeCmd(), newRegistryCmd())
	return root
}

func loadRegistry(path string) (*registry.Registry, error) {
	if path == "" {
		return registry.Default(), nil
	}
	return registry.LoadFile(path)
}
