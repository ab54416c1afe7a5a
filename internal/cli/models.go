package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"procure-ai/client/internal/registry"
)

// newModelsCmd lists the model catalog. It needs no backend and no
// database: the catalog is static.
func newModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the available models",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, m := range registry.New().List() {
				kind := "cloud"
				if m.Local {
					kind = "local"
				}
				key := ""
				if m.Provider == registry.ProviderOpenAI || m.Provider == registry.ProviderAnthropic {
					key = " (API key required)"
				}
				fmt.Fprintf(out, "%-18s %-6s %s%s\n", m.ID, kind, m.Description, key)
			}
			return nil
		},
	}
}
