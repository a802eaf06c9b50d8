package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/fzdarsky/localaddr"
	"github.com/fzdarsky/localaddr/internal/cli/output"
	"github.com/fzdarsky/localaddr/pkg/netid"
)

var flagFamily string

// ipCmd prints the primary outbound address.
var ipCmd = &cobra.Command{
	Use:   "ip",
	Short: "Print the primary local IP address",
	Long: `Print the address the kernel would use as the source of general
outbound traffic.

Examples:
  localip ip
  localip ip --family ipv6
  localip ip -o json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := parseOutput()
		if err != nil {
			return err
		}
		family := netid.Family(flagFamily)
		if !family.Valid() {
			return fmt.Errorf("invalid --family %q: must be %q or %q", flagFamily, netid.FamilyIPv4, netid.FamilyIPv6)
		}

		log.Debug().Str("family", string(family)).Msg("querying primary local address")
		addr, err := localaddr.LocalIPByFamily(family)
		if err != nil {
			return err
		}

		rendered, err := output.FormatAddress(addr, format)
		if err != nil {
			return err
		}
		fmt.Print(rendered)
		return nil
	},
}

func init() {
	ipCmd.Flags().StringVarP(&flagFamily, "family", "f", string(netid.FamilyIPv4), "Address family: ipv4 or ipv6")
}
