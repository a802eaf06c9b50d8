package selector_test

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fzdarsky/localaddr/internal/decoder/mocks"
	"github.com/fzdarsky/localaddr/internal/selector"
	"github.com/fzdarsky/localaddr/pkg/netid"
)

// hintedDecoder combines the two mocks into a decoder that also offers a
// kernel route hint, the shape of the Linux decoder.
type hintedDecoder struct {
	*mocks.MockDecoder
	*mocks.MockRouteHinter
}

func entry(name, ip string, loopback, defaultRoute bool) netid.InterfaceEntry {
	return netid.InterfaceEntry{
		Name:         name,
		Addr:         netip.MustParseAddr(ip),
		Loopback:     loopback,
		DefaultRoute: defaultRoute,
	}
}

func TestPrimary_RouteHintIsAuthoritative(t *testing.T) {
	ctrl := gomock.NewController(t)
	d := hintedDecoder{
		MockDecoder:     mocks.NewMockDecoder(ctrl),
		MockRouteHinter: mocks.NewMockRouteHinter(ctrl),
	}
	want := netip.MustParseAddr("10.0.0.42")
	d.MockRouteHinter.EXPECT().PreferredSource(netid.FamilyIPv4).Return(want, nil)
	// Snapshot must not be consulted when a hint exists.

	got, err := selector.Primary(d, netid.FamilyIPv4)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPrimary_RouteHintNotFoundIsSurfaced(t *testing.T) {
	ctrl := gomock.NewController(t)
	d := hintedDecoder{
		MockDecoder:     mocks.NewMockDecoder(ctrl),
		MockRouteHinter: mocks.NewMockRouteHinter(ctrl),
	}
	d.MockRouteHinter.EXPECT().PreferredSource(netid.FamilyIPv6).Return(netip.Addr{}, netid.NewNotFoundError())

	_, err := selector.Primary(d, netid.FamilyIPv6)
	assert.True(t, netid.IsNotFound(err))
}

func TestPrimary_FirstNonLoopbackMatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	d := mocks.NewMockDecoder(ctrl)
	d.EXPECT().Snapshot().Return([]netid.InterfaceEntry{
		entry("lo", "127.0.0.1", true, false),
		entry("eth0", "fe80::1", false, false),
		entry("eth0", "192.0.2.10", false, false),
		entry("eth1", "192.0.2.20", false, false),
	}, nil)

	got, err := selector.Primary(d, netid.FamilyIPv4)
	require.NoError(t, err)
	assert.Equal(t, netip.MustParseAddr("192.0.2.10"), got, "first non-loopback IPv4 in enumeration order wins")
}

func TestPrimary_DefaultRouteTagWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	d := mocks.NewMockDecoder(ctrl)
	d.EXPECT().Snapshot().Return([]netid.InterfaceEntry{
		entry("vEthernet", "172.16.0.5", false, false),
		entry("Ethernet", "192.0.2.10", false, true),
	}, nil)

	got, err := selector.Primary(d, netid.FamilyIPv4)
	require.NoError(t, err)
	assert.Equal(t, netip.MustParseAddr("192.0.2.10"), got, "default-route adapter beats earlier untagged entries")
}

func TestPrimary_FamilyFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	d := mocks.NewMockDecoder(ctrl)
	d.EXPECT().Snapshot().Return([]netid.InterfaceEntry{
		entry("eth0", "192.0.2.10", false, false),
		entry("eth0", "2001:db8::10", false, false),
	}, nil).Times(2)

	got, err := selector.Primary(d, netid.FamilyIPv6)
	require.NoError(t, err)
	assert.Equal(t, netip.MustParseAddr("2001:db8::10"), got)

	got, err = selector.Primary(d, netid.FamilyIPv4)
	require.NoError(t, err)
	assert.Equal(t, netip.MustParseAddr("192.0.2.10"), got)
}

func TestPrimary_LoopbackOnlyIsNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	d := mocks.NewMockDecoder(ctrl)
	d.EXPECT().Snapshot().Return([]netid.InterfaceEntry{
		entry("lo", "127.0.0.1", true, false),
		entry("lo", "::1", true, false),
	}, nil)

	_, err := selector.Primary(d, netid.FamilyIPv4)
	assert.True(t, netid.IsNotFound(err))
}

func TestPrimary_SnapshotErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	d := mocks.NewMockDecoder(ctrl)
	d.EXPECT().Snapshot().Return(nil, netid.NewStrategyError("kernel said no"))

	_, err := selector.Primary(d, netid.FamilyIPv4)
	require.Error(t, err)
	assert.Equal(t, netid.ErrCodeStrategyFailure, netid.CodeOf(err))
	assert.Contains(t, err.Error(), "kernel said no")
}
