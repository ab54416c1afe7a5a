// Package cli defines the client's command surface. The root command runs
// the interactive chat loop; subcommands cover model listing, credentials,
// and account management.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the CLI and returns a process exit code.
func Execute() int {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "procure-chat",
		Short: "Chat with a procurement assistant backed by local or cloud models",
		Long: `procure-chat is a terminal client for the procurement assistant backend.
It manages multiple chat sessions, monitors backend availability, and can
query either local Ollama models or cloud models with a stored API key.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd)
		},
	}

	root.AddCommand(newModelsCmd())
	root.AddCommand(newAPIKeyCmd())
	root.AddCommand(newLoginCmd())
	root.AddCommand(newRegisterCmd())

	return root
}
