package netid_test

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fzdarsky/localaddr/pkg/netid"
)

func TestFamilyValid(t *testing.T) {
	assert.True(t, netid.FamilyIPv4.Valid())
	assert.True(t, netid.FamilyIPv6.Valid())
	assert.False(t, netid.Family("").Valid())
	assert.False(t, netid.Family("ipx").Valid())
}

func TestFamilyMatches(t *testing.T) {
	v4 := netip.MustParseAddr("192.0.2.1")
	v6 := netip.MustParseAddr("2001:db8::1")
	mapped := netip.MustParseAddr("::ffff:192.0.2.1")

	assert.True(t, netid.FamilyIPv4.Matches(v4))
	assert.False(t, netid.FamilyIPv4.Matches(v6))
	assert.False(t, netid.FamilyIPv6.Matches(v4))
	assert.True(t, netid.FamilyIPv6.Matches(v6))

	// IPv4-mapped IPv6 addresses bucket under IPv4, never IPv6.
	assert.True(t, netid.FamilyIPv4.Matches(mapped))
	assert.False(t, netid.FamilyIPv6.Matches(mapped))

	assert.False(t, netid.Family("ipx").Matches(v4))
}

func TestFamilyOf(t *testing.T) {
	assert.Equal(t, netid.FamilyIPv4, netid.FamilyOf(netip.MustParseAddr("10.0.0.1")))
	assert.Equal(t, netid.FamilyIPv6, netid.FamilyOf(netip.MustParseAddr("fe80::1")))
	assert.Equal(t, netid.FamilyIPv4, netid.FamilyOf(netip.MustParseAddr("::ffff:10.0.0.1")))
}

func TestInterfaceEntryFamily(t *testing.T) {
	e := netid.InterfaceEntry{Name: "eth0", Addr: netip.MustParseAddr("192.0.2.1")}
	assert.Equal(t, netid.FamilyIPv4, e.Family())
}
