package decoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fzdarsky/localaddr/pkg/netid"
)

func TestParseInterfaceName_WithoutNul(t *testing.T) {
	name, err := parseInterfaceName([]byte("eth0"))
	require.NoError(t, err)
	assert.Equal(t, "eth0", name)
}

func TestParseInterfaceName_StripsOneTrailingNul(t *testing.T) {
	name, err := parseInterfaceName([]byte{'e', 't', 'h', '0', 0})
	require.NoError(t, err)
	assert.Equal(t, "eth0", name)
}

func TestParseInterfaceName_LoneNulIsEmpty(t *testing.T) {
	name, err := parseInterfaceName([]byte{0})
	require.NoError(t, err)
	assert.Equal(t, "", name)
}

func TestParseInterfaceName_InteriorNul(t *testing.T) {
	_, err := parseInterfaceName([]byte{'e', 0, 'h', '0'})
	require.Error(t, err)
	assert.Equal(t, netid.ErrCodeInvalidName, netid.CodeOf(err))
}

func TestParseInterfaceName_InvalidUTF8(t *testing.T) {
	_, err := parseInterfaceName([]byte{0xff, 0xfe, 'x'})
	require.Error(t, err)
	assert.Equal(t, netid.ErrCodeInvalidName, netid.CodeOf(err))
}

func TestParseInterfaceName_TwoTrailingNuls(t *testing.T) {
	// Only one terminator is stripped; the remaining interior NUL is invalid.
	_, err := parseInterfaceName([]byte{'e', 't', 'h', '0', 0, 0})
	require.Error(t, err)
	assert.Equal(t, netid.ErrCodeInvalidName, netid.CodeOf(err))
}
