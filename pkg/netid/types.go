// Package netid defines the shared data types and error codes for the
// localaddr library.
package netid

import "net/netip"

// Family represents an IP address family.
type Family string

// Address families.
const (
	// FamilyIPv4 selects AF_INET addresses.
	FamilyIPv4 Family = "ipv4"
	// FamilyIPv6 selects AF_INET6 addresses.
	FamilyIPv6 Family = "ipv6"
)

// Valid reports whether f is a known address family.
func (f Family) Valid() bool {
	return f == FamilyIPv4 || f == FamilyIPv6
}

// Matches reports whether addr belongs to the family. IPv4-mapped IPv6
// addresses count as IPv4 so that a family filter never buckets them
// under the wrong family.
func (f Family) Matches(addr netip.Addr) bool {
	switch f {
	case FamilyIPv4:
		return addr.Is4() || addr.Is4In6()
	case FamilyIPv6:
		return addr.Is6() && !addr.Is4In6()
	default:
		return false
	}
}

// FamilyOf returns the family of addr.
func FamilyOf(addr netip.Addr) Family {
	if addr.Is4() || addr.Is4In6() {
		return FamilyIPv4
	}
	return FamilyIPv6
}

// InterfaceEntry is one (interface name, address) pair from a kernel
// snapshot. Entries are produced fresh per query; the order in which a
// decoder emitted them is the kernel's enumeration order and must be
// preserved, not resorted.
type InterfaceEntry struct {
	// Name is the OS-assigned interface label, e.g. "eth0", "en0", "Ethernet".
	Name string `json:"name" yaml:"name"`
	// Addr is the address bound to the interface, zone identifier stripped.
	Addr netip.Addr `json:"addr" yaml:"-"`
	// Loopback is set if the entry belongs to a loopback interface.
	Loopback bool `json:"loopback" yaml:"loopback"`
	// DefaultRoute is set if the entry's interface carries the default
	// route. Only the Windows decoder produces this signal.
	DefaultRoute bool `json:"default_route,omitempty" yaml:"default_route,omitempty"`
}

// Family returns the address family of the entry.
func (e InterfaceEntry) Family() Family {
	return FamilyOf(e.Addr)
}
