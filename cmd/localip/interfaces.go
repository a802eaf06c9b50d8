package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/fzdarsky/localaddr"
	"github.com/fzdarsky/localaddr/internal/cli/output"
)

// interfacesCmd prints the full interface snapshot.
var interfacesCmd = &cobra.Command{
	Use:     "interfaces",
	Aliases: []string{"ifs"},
	Short:   "List all network interfaces and their addresses",
	Long: `List every discovered (interface, address) pair, including loopback
and both address families, in kernel enumeration order.

Examples:
  localip interfaces
  localip interfaces -o yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := parseOutput()
		if err != nil {
			return err
		}

		log.Debug().Msg("querying interface snapshot")
		entries, err := localaddr.Interfaces()
		if err != nil {
			return err
		}
		log.Debug().Int("entries", len(entries)).Msg("snapshot complete")

		rendered, err := output.FormatInterfaces(entries, format)
		if err != nil {
			return err
		}
		fmt.Print(rendered)
		return nil
	},
}
