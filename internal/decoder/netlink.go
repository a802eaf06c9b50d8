package decoder

import (
	"encoding/binary"
	"fmt"
	"net/netip"

	"github.com/fzdarsky/localaddr/pkg/netid"
)

// rtnetlink wire constants. The netlink ABI is stable across kernel
// versions, and keeping the codec free of OS-specific imports lets the
// protocol layer be tested on any host.
const (
	nlmsgHdrLen  = 16
	nlmsgAlignTo = 4
	rtaHdrLen    = 4
	rtaAlignTo   = 4

	nlmsgNoop  = 0x1
	nlmsgError = 0x2
	nlmsgDone  = 0x3

	rtmNewLink  = 16
	rtmGetLink  = 18
	rtmNewAddr  = 20
	rtmGetAddr  = 22
	rtmNewRoute = 24
	rtmGetRoute = 26

	nlmFlagRequest = 0x1
	nlmFlagMulti   = 0x2
	nlmFlagRoot    = 0x100
	nlmFlagMatch   = 0x200
	nlmFlagDump    = nlmFlagRoot | nlmFlagMatch

	rtaDst     = 1
	rtaPrefSrc = 7

	ifaAddress = 1
	ifaLocal   = 2
	ifaLabel   = 3

	iflaIfname = 3

	rtScopeUniverse = 0

	afInet  = 2
	afInet6 = 10
)

const (
	rtMsgLen     = 12
	ifAddrMsgLen = 8
	ifInfoMsgLen = 16
)

// nlMsg is one decoded netlink message: the relevant header fields plus
// the raw payload following the 16-byte header.
type nlMsg struct {
	Type  uint16
	Flags uint16
	Seq   uint32
	Data  []byte
}

// Multi reports whether the message is part of a multipart reply, which
// is terminated by an NLMSG_DONE message.
func (m nlMsg) Multi() bool {
	return m.Flags&nlmFlagMulti != 0
}

// rtAttr is one decoded routing attribute (type tag plus payload).
type rtAttr struct {
	Type uint16
	Data []byte
}

// rtMsg mirrors struct rtmsg, the fixed header of route messages.
type rtMsg struct {
	Family   uint8
	DstLen   uint8
	SrcLen   uint8
	TOS      uint8
	Table    uint8
	Protocol uint8
	Scope    uint8
	RType    uint8
	Flags    uint32
}

// ifAddrMsg mirrors struct ifaddrmsg, the fixed header of address messages.
type ifAddrMsg struct {
	Family    uint8
	PrefixLen uint8
	Flags     uint8
	Scope     uint8
	Index     uint32
}

// ifInfoMsg mirrors struct ifinfomsg, the fixed header of link messages.
type ifInfoMsg struct {
	Family uint8
	Type   uint16
	Index  int32
	Flags  uint32
	Change uint32
}

func nlmsgAlign(n int) int {
	return (n + nlmsgAlignTo - 1) &^ (nlmsgAlignTo - 1)
}

func rtaAlign(n int) int {
	return (n + rtaAlignTo - 1) &^ (rtaAlignTo - 1)
}

// appendNetlinkMessage serializes a netlink message header plus payload.
// Netlink header fields are carried in host byte order.
func appendNetlinkMessage(buf []byte, typ, flags uint16, seq uint32, payload []byte) []byte {
	total := nlmsgHdrLen + len(payload)
	var hdr [nlmsgHdrLen]byte
	binary.NativeEndian.PutUint32(hdr[0:4], uint32(total))
	binary.NativeEndian.PutUint16(hdr[4:6], typ)
	binary.NativeEndian.PutUint16(hdr[6:8], flags)
	binary.NativeEndian.PutUint32(hdr[8:12], seq)
	binary.NativeEndian.PutUint32(hdr[12:16], 0) // pid: kernel fills in
	buf = append(buf, hdr[:]...)
	buf = append(buf, payload...)
	for len(buf)%nlmsgAlignTo != 0 {
		buf = append(buf, 0)
	}
	return buf
}

// parseNetlinkMessages walks a receive buffer and splits it into
// messages. A truncated header or a length field pointing outside the
// buffer fails the whole parse.
func parseNetlinkMessages(b []byte) ([]nlMsg, error) {
	var msgs []nlMsg
	for len(b) > 0 {
		if len(b) < nlmsgHdrLen {
			return nil, netid.NewStrategyError(fmt.Sprintf("truncated netlink header: %d bytes remaining", len(b)))
		}
		msgLen := int(binary.NativeEndian.Uint32(b[0:4]))
		if msgLen < nlmsgHdrLen || msgLen > len(b) {
			return nil, netid.NewStrategyError(fmt.Sprintf("netlink message length %d out of bounds (%d bytes remaining)", msgLen, len(b)))
		}
		msgs = append(msgs, nlMsg{
			Type:  binary.NativeEndian.Uint16(b[4:6]),
			Flags: binary.NativeEndian.Uint16(b[6:8]),
			Seq:   binary.NativeEndian.Uint32(b[8:12]),
			Data:  b[nlmsgHdrLen:msgLen],
		})
		next := nlmsgAlign(msgLen)
		if next > len(b) {
			next = len(b)
		}
		b = b[next:]
	}
	return msgs, nil
}

// netlinkErrno extracts the errno carried by an NLMSG_ERROR message.
// The payload starts with a negative errno as a 32-bit integer; zero
// means the message is an acknowledgment, not a failure.
func netlinkErrno(m nlMsg) (int32, error) {
	if len(m.Data) < 4 {
		return 0, netid.NewStrategyError("truncated NLMSG_ERROR payload")
	}
	return int32(binary.NativeEndian.Uint32(m.Data[0:4])), nil
}

// appendRouteAttr serializes one routing attribute, padding the buffer
// to the 4-byte attribute alignment.
func appendRouteAttr(buf []byte, typ uint16, data []byte) []byte {
	var h [rtaHdrLen]byte
	binary.NativeEndian.PutUint16(h[0:2], uint16(rtaHdrLen+len(data)))
	binary.NativeEndian.PutUint16(h[2:4], typ)
	buf = append(buf, h[:]...)
	buf = append(buf, data...)
	for len(buf)%rtaAlignTo != 0 {
		buf = append(buf, 0)
	}
	return buf
}

// parseRouteAttrs walks the attribute region of a routing message.
// Attributes are 4-byte aligned length/type/payload records; a malformed
// length aborts the parse rather than being skipped.
func parseRouteAttrs(b []byte) ([]rtAttr, error) {
	var attrs []rtAttr
	for len(b) > 0 {
		if len(b) < rtaHdrLen {
			return nil, netid.NewStrategyError(fmt.Sprintf("truncated route attribute header: %d bytes remaining", len(b)))
		}
		attrLen := int(binary.NativeEndian.Uint16(b[0:2]))
		if attrLen < rtaHdrLen || attrLen > len(b) {
			return nil, netid.NewStrategyError(fmt.Sprintf("route attribute length %d out of bounds (%d bytes remaining)", attrLen, len(b)))
		}
		attrs = append(attrs, rtAttr{
			Type: binary.NativeEndian.Uint16(b[2:4]),
			Data: b[rtaHdrLen:attrLen],
		})
		next := rtaAlign(attrLen)
		if next > len(b) {
			next = len(b)
		}
		b = b[next:]
	}
	return attrs, nil
}

// addrFromAttr decodes an address attribute payload for the given
// netlink address family. The kernel carries IPv4 addresses in network
// byte order; the payload is loaded into a native integer and converted
// with a single byte swap on little-endian hosts.
func addrFromAttr(family uint8, data []byte) (netip.Addr, error) {
	switch family {
	case afInet:
		if len(data) < 4 {
			return netip.Addr{}, netid.NewStrategyError(fmt.Sprintf("IPv4 attribute payload is %d bytes, want 4", len(data)))
		}
		raw := binary.NativeEndian.Uint32(data[0:4])
		return ipv4FromNetworkOrder(raw, binary.NativeEndian), nil
	case afInet6:
		if len(data) < 16 {
			return netip.Addr{}, netid.NewStrategyError(fmt.Sprintf("IPv6 attribute payload is %d bytes, want 16", len(data)))
		}
		var b [16]byte
		copy(b[:], data)
		return ipv6FromBytes(b), nil
	default:
		return netip.Addr{}, netid.NewStrategyError(fmt.Sprintf("unsupported netlink address family %d", family))
	}
}

func (m rtMsg) append(buf []byte) []byte {
	var b [rtMsgLen]byte
	b[0] = m.Family
	b[1] = m.DstLen
	b[2] = m.SrcLen
	b[3] = m.TOS
	b[4] = m.Table
	b[5] = m.Protocol
	b[6] = m.Scope
	b[7] = m.RType
	binary.NativeEndian.PutUint32(b[8:12], m.Flags)
	return append(buf, b[:]...)
}

// parseRtMsg splits a route message payload into its fixed header and
// the attribute region that follows it.
func parseRtMsg(b []byte) (rtMsg, []byte, error) {
	if len(b) < rtMsgLen {
		return rtMsg{}, nil, netid.NewStrategyError(fmt.Sprintf("truncated rtmsg: %d bytes, want %d", len(b), rtMsgLen))
	}
	m := rtMsg{
		Family:   b[0],
		DstLen:   b[1],
		SrcLen:   b[2],
		TOS:      b[3],
		Table:    b[4],
		Protocol: b[5],
		Scope:    b[6],
		RType:    b[7],
		Flags:    binary.NativeEndian.Uint32(b[8:12]),
	}
	return m, b[rtMsgLen:], nil
}

func (m ifAddrMsg) append(buf []byte) []byte {
	var b [ifAddrMsgLen]byte
	b[0] = m.Family
	b[1] = m.PrefixLen
	b[2] = m.Flags
	b[3] = m.Scope
	binary.NativeEndian.PutUint32(b[4:8], m.Index)
	return append(buf, b[:]...)
}

// parseIfAddrMsg splits an address message payload into its fixed header
// and the attribute region.
func parseIfAddrMsg(b []byte) (ifAddrMsg, []byte, error) {
	if len(b) < ifAddrMsgLen {
		return ifAddrMsg{}, nil, netid.NewStrategyError(fmt.Sprintf("truncated ifaddrmsg: %d bytes, want %d", len(b), ifAddrMsgLen))
	}
	m := ifAddrMsg{
		Family:    b[0],
		PrefixLen: b[1],
		Flags:     b[2],
		Scope:     b[3],
		Index:     binary.NativeEndian.Uint32(b[4:8]),
	}
	return m, b[ifAddrMsgLen:], nil
}

func (m ifInfoMsg) append(buf []byte) []byte {
	var b [ifInfoMsgLen]byte
	b[0] = m.Family
	// b[1] is padding
	binary.NativeEndian.PutUint16(b[2:4], m.Type)
	binary.NativeEndian.PutUint32(b[4:8], uint32(m.Index))
	binary.NativeEndian.PutUint32(b[8:12], m.Flags)
	binary.NativeEndian.PutUint32(b[12:16], m.Change)
	return append(buf, b[:]...)
}

// parseIfInfoMsg splits a link message payload into its fixed header and
// the attribute region.
func parseIfInfoMsg(b []byte) (ifInfoMsg, []byte, error) {
	if len(b) < ifInfoMsgLen {
		return ifInfoMsg{}, nil, netid.NewStrategyError(fmt.Sprintf("truncated ifinfomsg: %d bytes, want %d", len(b), ifInfoMsgLen))
	}
	m := ifInfoMsg{
		Family: b[0],
		Type:   binary.NativeEndian.Uint16(b[2:4]),
		Index:  int32(binary.NativeEndian.Uint32(b[4:8])),
		Flags:  binary.NativeEndian.Uint32(b[8:12]),
		Change: binary.NativeEndian.Uint32(b[12:16]),
	}
	return m, b[ifInfoMsgLen:], nil
}

// netlinkFamily maps a Family to its netlink address family constant.
func netlinkFamily(family netid.Family) (uint8, error) {
	switch family {
	case netid.FamilyIPv4:
		return afInet, nil
	case netid.FamilyIPv6:
		return afInet6, nil
	default:
		return 0, netid.NewStrategyError(fmt.Sprintf("invalid address family given: %q", family))
	}
}
