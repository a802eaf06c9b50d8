package decoder

import (
	"encoding/binary"
	"net/netip"
)

// ipv4FromNetworkOrder converts a 32-bit IPv4 address field into an
// address. raw is the field as loaded into a native integer; the kernel
// stores the field in network (big-endian) byte order, so on a
// little-endian host the loaded value reads back-to-front and must be
// byte-swapped exactly once. Writing raw back out through the same byte
// order it was loaded with reproduces the original memory bytes, which
// are the address octets.
func ipv4FromNetworkOrder(raw uint32, native binary.ByteOrder) netip.Addr {
	var b [4]byte
	native.PutUint32(b[:], raw)
	return netip.AddrFrom4(b)
}

// ipv4ToNetworkOrder is the inverse of ipv4FromNetworkOrder: it returns
// the 32-bit value that a native-order load of the address octets would
// produce.
func ipv4ToNetworkOrder(addr netip.Addr, native binary.ByteOrder) uint32 {
	b := addr.As4()
	return native.Uint32(b[:])
}

// ipv6FromBytes converts a 16-byte IPv6 address. The field is already a
// byte array on every platform, so there is no word-order ambiguity.
func ipv6FromBytes(b [16]byte) netip.Addr {
	return netip.AddrFrom16(b)
}
