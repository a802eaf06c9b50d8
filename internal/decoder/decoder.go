// Package decoder queries the kernel's live network configuration and
// produces a uniform snapshot of interface address entries. One decoder
// exists per supported platform, selected at build time.
package decoder

import (
	"net/netip"

	"github.com/fzdarsky/localaddr/pkg/netid"
)

//go:generate go tool mockgen -destination=mocks/decoder.go -package=mocks github.com/fzdarsky/localaddr/internal/decoder Decoder,RouteHinter

// Decoder produces a point-in-time snapshot of the host's interface
// addresses. Implementations talk to the kernel directly; every call
// re-derives the snapshot and owns its buffers and sockets for the
// duration of the call only.
type Decoder interface {
	// Snapshot returns all interface address entries of both families,
	// in kernel enumeration order.
	Snapshot() ([]netid.InterfaceEntry, error)
}

// RouteHinter is implemented by decoders that can ask the kernel which
// source address it would choose for outbound traffic, without sending
// any packet. Where available this is the authoritative primary-address
// signal and takes precedence over snapshot scanning.
type RouteHinter interface {
	PreferredSource(family netid.Family) (netip.Addr, error)
}

// New returns the decoder for the current platform.
func New() Decoder {
	return newPlatform()
}
