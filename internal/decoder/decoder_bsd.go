//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package decoder

import (
	"fmt"
	"net/netip"

	"golang.org/x/net/route"
	"golang.org/x/sys/unix"

	"github.com/fzdarsky/localaddr/pkg/netid"
)

// bsdDecoder walks the kernel's interface table the getifaddrs way: one
// sysctl fetch of the routing information base, then a node-by-node walk
// of the heterogeneous records it contains. The fetched buffer is owned
// by this call and released with it.
type bsdDecoder struct{}

func newPlatform() Decoder {
	return &bsdDecoder{}
}

func (d *bsdDecoder) Snapshot() ([]netid.InterfaceEntry, error) {
	rib, err := route.FetchRIB(unix.AF_UNSPEC, route.RIBTypeInterface, 0)
	if err != nil {
		return nil, netid.NewStrategyError(fmt.Sprintf("fetching interface table: %v", err))
	}
	msgs, err := route.ParseRIB(route.RIBTypeInterface, rib)
	if err != nil {
		return nil, netid.NewStrategyError(fmt.Sprintf("parsing interface table: %v", err))
	}

	// Interface records announce the name and flags; the address records
	// that follow reference them by index.
	links := make(map[int]linkInfo)
	var entries []netid.InterfaceEntry
	for _, m := range msgs {
		switch m := m.(type) {
		case *route.InterfaceMessage:
			name, err := parseInterfaceName([]byte(m.Name))
			if err != nil {
				return nil, err
			}
			links[m.Index] = linkInfo{
				name:     name,
				loopback: m.Flags&unix.IFF_LOOPBACK != 0,
			}
		case *route.InterfaceAddrMessage:
			if len(m.Addrs) <= unix.RTAX_IFA {
				continue
			}
			sa := m.Addrs[unix.RTAX_IFA]
			if sa == nil {
				// Some virtual and tunnel interfaces carry no assigned
				// address; skip the record, not the walk.
				continue
			}
			link, known := links[m.Index]
			if !known {
				continue
			}
			switch sa := sa.(type) {
			case *route.Inet4Addr:
				entries = append(entries, netid.InterfaceEntry{
					Name:     link.name,
					Addr:     netip.AddrFrom4(sa.IP),
					Loopback: link.loopback,
				})
			case *route.Inet6Addr:
				// Zone identifiers are dropped from returned addresses.
				entries = append(entries, netid.InterfaceEntry{
					Name:     link.name,
					Addr:     ipv6FromBytes(sa.IP),
					Loopback: link.loopback,
				})
			}
		}
	}
	return entries, nil
}

type linkInfo struct {
	name     string
	loopback bool
}
