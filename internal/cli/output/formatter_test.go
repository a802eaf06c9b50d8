package output_test

import (
	"encoding/json"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/fzdarsky/localaddr/internal/cli/output"
	"github.com/fzdarsky/localaddr/pkg/netid"
)

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]output.Format{
		"plain": output.FormatPlain,
		"text":  output.FormatPlain,
		"yaml":  output.FormatYAML,
		"yml":   output.FormatYAML,
		"json":  output.FormatJSON,
	} {
		got, err := output.ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := output.ParseFormat("xml")
	assert.Error(t, err)
}

func TestFormatAddress_Plain(t *testing.T) {
	s, err := output.FormatAddress(netip.MustParseAddr("192.0.2.1"), output.FormatPlain)
	require.NoError(t, err)
	assert.Equal(t, "192.0.2.1\n", s)
}

func TestFormatAddress_JSON(t *testing.T) {
	s, err := output.FormatAddress(netip.MustParseAddr("2001:db8::1"), output.FormatJSON)
	require.NoError(t, err)

	var report output.AddressReport
	require.NoError(t, json.Unmarshal([]byte(s), &report))
	assert.Equal(t, "2001:db8::1", report.IP)
	assert.Equal(t, "ipv6", report.Family)
}

func TestFormatAddress_YAML(t *testing.T) {
	s, err := output.FormatAddress(netip.MustParseAddr("10.1.2.3"), output.FormatYAML)
	require.NoError(t, err)

	var report output.AddressReport
	require.NoError(t, yaml.Unmarshal([]byte(s), &report))
	assert.Equal(t, "10.1.2.3", report.IP)
	assert.Equal(t, "ipv4", report.Family)
}

func testEntries() []netid.InterfaceEntry {
	return []netid.InterfaceEntry{
		{Name: "lo", Addr: netip.MustParseAddr("127.0.0.1"), Loopback: true},
		{Name: "eth0", Addr: netip.MustParseAddr("192.0.2.10"), DefaultRoute: true},
		{Name: "eth0", Addr: netip.MustParseAddr("2001:db8::10")},
	}
}

func TestFormatInterfaces_PlainPreservesOrder(t *testing.T) {
	s, err := output.FormatInterfaces(testEntries(), output.FormatPlain)
	require.NoError(t, err)
	assert.Equal(t, "lo\t127.0.0.1\neth0\t192.0.2.10\neth0\t2001:db8::10\n", s)
}

func TestFormatInterfaces_JSON(t *testing.T) {
	s, err := output.FormatInterfaces(testEntries(), output.FormatJSON)
	require.NoError(t, err)

	var reports []output.InterfaceReport
	require.NoError(t, json.Unmarshal([]byte(s), &reports))
	require.Len(t, reports, 3)
	assert.Equal(t, "lo", reports[0].Name)
	assert.True(t, reports[0].Loopback)
	assert.True(t, reports[1].DefaultRoute)
	assert.Equal(t, "ipv6", reports[2].Family)
}

func TestFormatInterfaces_YAML(t *testing.T) {
	s, err := output.FormatInterfaces(testEntries(), output.FormatYAML)
	require.NoError(t, err)

	var reports []output.InterfaceReport
	require.NoError(t, yaml.Unmarshal([]byte(s), &reports))
	require.Len(t, reports, 3)
	assert.Equal(t, "192.0.2.10", reports[1].IP)
}
