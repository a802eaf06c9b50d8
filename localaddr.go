// Package localaddr discovers the host machine's local network
// identity: its primary outbound IPv4/IPv6 address and the set of named
// network interfaces with their bound addresses.
//
// Every call is a point-in-time snapshot taken directly from the
// kernel. Nothing is cached and no state is shared between calls, so
// concurrent callers are safe by isolation. The underlying query
// mechanism differs per operating system: Linux uses an rtnetlink route
// socket, BSD-based systems walk the interface routing information
// base, and Windows consumes the IP Helper adapter table.
package localaddr

import (
	"net/netip"

	"github.com/fzdarsky/localaddr/internal/decoder"
	"github.com/fzdarsky/localaddr/internal/selector"
	"github.com/fzdarsky/localaddr/pkg/netid"
)

// LocalIP returns the host's primary outbound IPv4 address.
func LocalIP() (netip.Addr, error) {
	return localIP(decoder.New(), netid.FamilyIPv4)
}

// LocalIPv6 returns the host's primary outbound IPv6 address.
func LocalIPv6() (netip.Addr, error) {
	return localIP(decoder.New(), netid.FamilyIPv6)
}

// LocalIPByFamily returns the host's primary outbound address for the
// given family.
func LocalIPByFamily(family netid.Family) (netip.Addr, error) {
	return localIP(decoder.New(), family)
}

// Interfaces returns all discovered interface address entries, including
// loopback and both families, in kernel enumeration order.
func Interfaces() ([]netid.InterfaceEntry, error) {
	return decoder.New().Snapshot()
}

func localIP(d decoder.Decoder, family netid.Family) (netip.Addr, error) {
	if !family.Valid() {
		return netip.Addr{}, netid.NewStrategyError("invalid address family: " + string(family))
	}
	return selector.Primary(d, family)
}
