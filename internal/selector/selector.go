// Package selector picks the single "local IP" answer out of a decoder's
// output, one rule per platform signal.
package selector

import (
	"net/netip"

	"github.com/fzdarsky/localaddr/internal/decoder"
	"github.com/fzdarsky/localaddr/pkg/netid"
)

// Primary returns the primary local address for the requested family.
//
// Decoders that can ask the kernel for its preferred source address
// (Linux) are authoritative and their answer is surfaced verbatim.
// Otherwise the snapshot is scanned in kernel enumeration order:
// default-route-tagged entries first when the decoder produced that
// signal (Windows with a readable routing table), then the first
// non-loopback entry of the family. First-match over enumeration order
// is deliberate; it leans on OS-provided signals instead of guessing
// from interface naming conventions.
func Primary(d decoder.Decoder, family netid.Family) (netip.Addr, error) {
	if h, ok := d.(decoder.RouteHinter); ok {
		return h.PreferredSource(family)
	}

	entries, err := d.Snapshot()
	if err != nil {
		return netip.Addr{}, err
	}

	for _, e := range entries {
		if e.DefaultRoute && family.Matches(e.Addr) {
			return e.Addr, nil
		}
	}
	for _, e := range entries {
		if !e.Loopback && family.Matches(e.Addr) {
			return e.Addr, nil
		}
	}
	return netip.Addr{}, netid.NewNotFoundError()
}
