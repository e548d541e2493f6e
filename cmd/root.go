package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shaharia-lab/nomadweb/internal/config"
)

// NewRootCmd builds the command tree around an already-loaded config.
func NewRootCmd(cfg *config.AppConfig) *cobra.Command {
	root := &cobra.Command{
		Use:   "nomadweb",
		Short: "Digital nomads web server",
		Long: `Serve the digital nomads single-page application with its runtime
environment, falling back to index.html for client-side routes.`,
		SilenceUsage: true,
	}

	root.AddCommand(NewWebCmd(cfg))
	root.AddCommand(NewVersionCmd())
	root.AddCommand(NewUpdateCmd())
	return root
}

// Execute runs the root command.
func Execute(cfg *config.AppConfig) {
	if err := NewRootCmd(cfg).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
