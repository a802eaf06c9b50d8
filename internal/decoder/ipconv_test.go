package decoder

import (
	"encoding/binary"
	"math/bits"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIPv4FromNetworkOrder_LittleEndianSwapsOnce(t *testing.T) {
	// 192.0.2.1 in network byte order, loaded by a little-endian target.
	mem := []byte{192, 0, 2, 1}
	raw := binary.LittleEndian.Uint32(mem)

	addr := ipv4FromNetworkOrder(raw, binary.LittleEndian)
	assert.Equal(t, netip.AddrFrom4([4]byte{192, 0, 2, 1}), addr)

	// The conversion is exactly one byte reversal of the loaded value.
	swapped := bits.ReverseBytes32(raw)
	assert.Equal(t, netip.AddrFrom4([4]byte{
		byte(swapped >> 24), byte(swapped >> 16), byte(swapped >> 8), byte(swapped),
	}), addr)
}

func TestIPv4FromNetworkOrder_BigEndianDoesNotSwap(t *testing.T) {
	mem := []byte{192, 0, 2, 1}
	raw := binary.BigEndian.Uint32(mem)

	addr := ipv4FromNetworkOrder(raw, binary.BigEndian)
	assert.Equal(t, netip.AddrFrom4([4]byte{192, 0, 2, 1}), addr)
	// On a big-endian target the loaded value already reads in octet
	// order; no reversal happens.
	assert.Equal(t, uint32(0xc0000201), raw)
}

func TestIPv4NetworkOrder_RoundTrip(t *testing.T) {
	orders := []binary.ByteOrder{binary.LittleEndian, binary.BigEndian, binary.NativeEndian}
	values := []uint32{0, 1, 0x7f000001, 0xc0000201, 0xffffffff}
	for _, order := range orders {
		for _, v := range values {
			addr := ipv4FromNetworkOrder(v, order)
			assert.Equal(t, v, ipv4ToNetworkOrder(addr, order), "order=%v value=%#x", order, v)
		}
	}
}

func TestIPv6FromBytes(t *testing.T) {
	var b [16]byte
	b[0], b[1] = 0x20, 0x01
	b[2], b[3] = 0x0d, 0xb8
	b[15] = 1
	assert.Equal(t, netip.MustParseAddr("2001:db8::1"), ipv6FromBytes(b))
}
