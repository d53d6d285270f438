package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "viewkit",
		Short: "View tools for server-rendered Go template applications",
		Long: `viewkit serves template directories with a toolbox of view tools:

  • link   — immutable, chainable link builder with URL encoding
  • render — recursive template evaluation with a depth bound

Templates are evaluated with the Scriggo engine; tools are configured
through viewkit.yaml.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		renderCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("\033[36m•\033[0m %s\n", fmt.Sprintf(format, args...))
}
