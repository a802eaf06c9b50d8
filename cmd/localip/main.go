// localip - query the host's local network identity
//
// A small CLI over the localaddr library: prints the primary outbound
// IP address or the full interface table, as plain text, YAML, or JSON.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/fzdarsky/localaddr/internal/cli/config"
	"github.com/fzdarsky/localaddr/internal/cli/output"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	flagOutput  string
	flagVerbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "localip",
		Short:   "Query the host's local IP address and network interfaces",
		Version: Version,
		Long: `localip discovers the machine's primary outbound IP address and the
set of named network interfaces with their bound addresses, straight
from the kernel: netlink on Linux, the routing table on BSD/macOS,
and the adapter table on Windows.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
			if flagVerbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			// Flags win over config file and environment.
			if !cmd.Flags().Changed("output") {
				flagOutput = cfg.Output
			}
			if f := cmd.Flags().Lookup("family"); f != nil && !f.Changed {
				flagFamily = cfg.Family
			}
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "plain", "Output format: plain, yaml or json")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(ipCmd)
	rootCmd.AddCommand(interfacesCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// parseOutput resolves the effective output format from flag/config.
func parseOutput() (output.Format, error) {
	format, err := output.ParseFormat(flagOutput)
	if err != nil {
		return "", fmt.Errorf("parsing --output: %w", err)
	}
	return format, nil
}
