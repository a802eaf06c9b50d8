//go:build linux

package decoder

import (
	"errors"
	"fmt"
	"net/netip"

	"golang.org/x/sys/unix"

	"github.com/fzdarsky/localaddr/pkg/netid"
)

// Probe destinations for the preferred-source route lookup. Both blocks
// are reserved for documentation (RFC 5737 / RFC 3849), so the kernel
// resolves them like any external destination without a packet ever
// being sent.
var (
	probeIPv4 = netip.AddrFrom4([4]byte{192, 0, 2, 0})
	probeIPv6 = netip.MustParseAddr("2001:db8::")
)

// linuxDecoder resolves addresses over an rtnetlink route socket. Asking
// the kernel for the route toward a well-known external destination and
// reading back RTA_PREFSRC mirrors the source address the kernel itself
// would pick when originating a connection, which is more reliable than
// scanning the interface table.
type linuxDecoder struct{}

func newPlatform() Decoder {
	return &linuxDecoder{}
}

// PreferredSource implements RouteHinter. A route lookup toward the
// probe destination is attempted first; if the route carries no
// preferred source, the interface-address table is scanned for the first
// universe-scope address of the requested family.
func (d *linuxDecoder) PreferredSource(family netid.Family) (netip.Addr, error) {
	nlFam, err := netlinkFamily(family)
	if err != nil {
		return netip.Addr{}, err
	}

	conn, err := dialNetlink()
	if err != nil {
		return netip.Addr{}, err
	}
	defer conn.Close()

	addr, ok, err := conn.preferredSource(nlFam)
	if err != nil {
		return netip.Addr{}, err
	}
	if ok {
		return addr, nil
	}

	addr, ok, err = conn.firstGlobalAddr(nlFam)
	if err != nil {
		return netip.Addr{}, err
	}
	if ok {
		return addr, nil
	}
	return netip.Addr{}, netid.NewNotFoundError()
}

// Snapshot dumps the link table to map interface index to name and
// loopback flag, then dumps the address table and joins each record to
// its interface by index. A per-address IFA_LABEL wins over the joined
// name, and IFA_LOCAL wins over IFA_ADDRESS since it reflects the
// actually-assigned address on point-to-point links.
func (d *linuxDecoder) Snapshot() ([]netid.InterfaceEntry, error) {
	conn, err := dialNetlink()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	links, err := conn.linkTable()
	if err != nil {
		return nil, err
	}

	payload := ifAddrMsg{}.append(nil)
	msgs, err := conn.roundTrip(rtmGetAddr, nlmFlagRequest|nlmFlagDump, payload)
	if err != nil {
		return nil, asNetidError(err)
	}

	var entries []netid.InterfaceEntry
	for _, msg := range msgs {
		if msg.Type != rtmNewAddr {
			return nil, netid.NewStrategyError(fmt.Sprintf("unexpected netlink message type %d in address dump", msg.Type))
		}
		hdr, attrRegion, err := parseIfAddrMsg(msg.Data)
		if err != nil {
			return nil, err
		}
		if hdr.Family != afInet && hdr.Family != afInet6 {
			return nil, netid.NewStrategyError(fmt.Sprintf("address record has unsupported family %d", hdr.Family))
		}
		attrs, err := parseRouteAttrs(attrRegion)
		if err != nil {
			return nil, err
		}

		var (
			addr      netip.Addr
			haveAddr  bool
			haveLocal bool
			label     string
		)
		for _, attr := range attrs {
			switch attr.Type {
			case ifaLabel:
				label, err = parseInterfaceName(attr.Data)
				if err != nil {
					return nil, err
				}
			case ifaAddress:
				// IFA_LOCAL takes precedence when both appear.
				if haveLocal {
					continue
				}
				addr, err = addrFromAttr(hdr.Family, attr.Data)
				if err != nil {
					return nil, err
				}
				haveAddr = true
			case ifaLocal:
				addr, err = addrFromAttr(hdr.Family, attr.Data)
				if err != nil {
					return nil, err
				}
				haveLocal = true
			}
		}
		if !haveAddr && !haveLocal {
			continue
		}

		link, known := links[hdr.Index]
		name := label
		if name == "" {
			if !known {
				continue
			}
			name = link.name
		}
		entries = append(entries, netid.InterfaceEntry{
			Name:     name,
			Addr:     addr,
			Loopback: link.loopback,
		})
	}
	return entries, nil
}

type linkInfo struct {
	name     string
	loopback bool
}

// netlinkConn is one rtnetlink conversation. Each query dials its own
// socket and closes it when done; nothing is shared between calls.
type netlinkConn struct {
	fd  int
	seq uint32
}

func dialNetlink() (*netlinkConn, error) {
	fd, err := unix.Socket(unix.AF_NETLINK, unix.SOCK_RAW|unix.SOCK_CLOEXEC, unix.NETLINK_ROUTE)
	if err != nil {
		return nil, netid.NewStrategyError(fmt.Sprintf("opening netlink route socket: %v", err))
	}
	if err := unix.Bind(fd, &unix.SockaddrNetlink{Family: unix.AF_NETLINK}); err != nil {
		unix.Close(fd)
		return nil, netid.NewStrategyError(fmt.Sprintf("binding netlink route socket: %v", err))
	}
	return &netlinkConn{fd: fd}, nil
}

func (c *netlinkConn) Close() {
	unix.Close(c.fd)
}

// kernelError carries the errno reported by an NLMSG_ERROR reply so call
// sites can distinguish specific kernel verdicts (ENETUNREACH) before
// the code is folded into the error taxonomy.
type kernelError struct {
	errno unix.Errno
}

func (e *kernelError) Error() string {
	return fmt.Sprintf("netlink request failed: %v", e.errno)
}

// asNetidError folds any remaining decoder-internal error into the
// closed taxonomy. Raw OS error values never travel past this package.
func asNetidError(err error) error {
	var ne *netid.Error
	if errors.As(err, &ne) {
		return ne
	}
	return netid.NewStrategyError(err.Error())
}

// roundTrip sends one request and collects the reply messages belonging
// to it: a single message for plain requests, everything up to NLMSG_DONE
// for multipart dumps. Kernel-reported failures surface as *kernelError.
func (c *netlinkConn) roundTrip(typ, flags uint16, payload []byte) ([]nlMsg, error) {
	c.seq++
	req := appendNetlinkMessage(nil, typ, flags, c.seq, payload)
	if err := unix.Sendto(c.fd, req, 0, &unix.SockaddrNetlink{Family: unix.AF_NETLINK}); err != nil {
		return nil, netid.NewStrategyError(fmt.Sprintf("sending netlink request: %v", err))
	}

	var collected []nlMsg
	for {
		// A fresh buffer per datagram: collected messages alias the
		// buffer they were parsed from, so it must not be reused.
		buf := make([]byte, 1<<16)
		n, _, err := unix.Recvfrom(c.fd, buf, 0)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return nil, netid.NewStrategyError(fmt.Sprintf("receiving netlink response: %v", err))
		}
		msgs, err := parseNetlinkMessages(buf[:n])
		if err != nil {
			return nil, err
		}
		for _, m := range msgs {
			if m.Seq != c.seq {
				continue
			}
			switch m.Type {
			case nlmsgNoop:
				continue
			case nlmsgDone:
				return collected, nil
			case nlmsgError:
				errno, err := netlinkErrno(m)
				if err != nil {
					return nil, err
				}
				if errno == 0 {
					// Acknowledgment, not a failure.
					return collected, nil
				}
				return nil, &kernelError{errno: unix.Errno(-errno)}
			default:
				collected = append(collected, m)
				if !m.Multi() {
					return collected, nil
				}
			}
		}
	}
}

// preferredSource performs the RTM_GETROUTE probe lookup. The boolean
// reports whether the route carried an RTA_PREFSRC attribute.
func (c *netlinkConn) preferredSource(nlFam uint8) (netip.Addr, bool, error) {
	var probe []byte
	switch nlFam {
	case afInet:
		b := probeIPv4.As4()
		probe = b[:]
	case afInet6:
		b := probeIPv6.As16()
		probe = b[:]
	}

	payload := rtMsg{Family: nlFam, Scope: rtScopeUniverse}.append(nil)
	payload = appendRouteAttr(payload, rtaDst, probe)

	msgs, err := c.roundTrip(rtmGetRoute, nlmFlagRequest, payload)
	if err != nil {
		var ke *kernelError
		if errors.As(err, &ke) && ke.errno == unix.ENETUNREACH {
			// No route to the probe destination at all.
			return netip.Addr{}, false, netid.NewNotFoundError()
		}
		return netip.Addr{}, false, asNetidError(err)
	}

	for _, msg := range msgs {
		if msg.Type != rtmNewRoute {
			return netip.Addr{}, false, netid.NewStrategyError(fmt.Sprintf("unexpected netlink message type %d in route lookup", msg.Type))
		}
		hdr, attrRegion, err := parseRtMsg(msg.Data)
		if err != nil {
			return netip.Addr{}, false, err
		}
		if hdr.Scope != rtScopeUniverse {
			continue
		}
		if hdr.Family != nlFam {
			return netip.Addr{}, false, netid.NewStrategyError(fmt.Sprintf("route reply family %d does not match requested family %d", hdr.Family, nlFam))
		}
		attrs, err := parseRouteAttrs(attrRegion)
		if err != nil {
			return netip.Addr{}, false, err
		}
		for _, attr := range attrs {
			if attr.Type != rtaPrefSrc {
				continue
			}
			addr, err := addrFromAttr(hdr.Family, attr.Data)
			if err != nil {
				return netip.Addr{}, false, err
			}
			return addr, true, nil
		}
	}
	return netip.Addr{}, false, nil
}

// firstGlobalAddr scans the interface-address table for the first
// universe-scope IFA_LOCAL address of the requested family.
func (c *netlinkConn) firstGlobalAddr(nlFam uint8) (netip.Addr, bool, error) {
	payload := ifAddrMsg{Family: nlFam}.append(nil)
	msgs, err := c.roundTrip(rtmGetAddr, nlmFlagRequest|nlmFlagRoot, payload)
	if err != nil {
		return netip.Addr{}, false, asNetidError(err)
	}

	for _, msg := range msgs {
		if msg.Type != rtmNewAddr {
			return netip.Addr{}, false, netid.NewStrategyError(fmt.Sprintf("unexpected netlink message type %d in address dump", msg.Type))
		}
		hdr, attrRegion, err := parseIfAddrMsg(msg.Data)
		if err != nil {
			return netip.Addr{}, false, err
		}
		if hdr.Scope != rtScopeUniverse {
			continue
		}
		if hdr.Family != nlFam {
			return netip.Addr{}, false, netid.NewStrategyError(fmt.Sprintf("address reply family %d does not match requested family %d", hdr.Family, nlFam))
		}
		attrs, err := parseRouteAttrs(attrRegion)
		if err != nil {
			return netip.Addr{}, false, err
		}
		for _, attr := range attrs {
			if attr.Type != ifaLocal {
				continue
			}
			addr, err := addrFromAttr(hdr.Family, attr.Data)
			if err != nil {
				return netip.Addr{}, false, err
			}
			return addr, true, nil
		}
	}
	return netip.Addr{}, false, nil
}

// linkTable dumps RTM_GETLINK and returns interface index mapped to name
// and loopback flag.
func (c *netlinkConn) linkTable() (map[uint32]linkInfo, error) {
	payload := ifInfoMsg{}.append(nil)
	msgs, err := c.roundTrip(rtmGetLink, nlmFlagRequest|nlmFlagDump, payload)
	if err != nil {
		return nil, asNetidError(err)
	}

	links := make(map[uint32]linkInfo)
	for _, msg := range msgs {
		if msg.Type != rtmNewLink {
			return nil, netid.NewStrategyError(fmt.Sprintf("unexpected netlink message type %d in link dump", msg.Type))
		}
		hdr, attrRegion, err := parseIfInfoMsg(msg.Data)
		if err != nil {
			return nil, err
		}
		attrs, err := parseRouteAttrs(attrRegion)
		if err != nil {
			return nil, err
		}
		for _, attr := range attrs {
			if attr.Type != iflaIfname {
				continue
			}
			name, err := parseInterfaceName(attr.Data)
			if err != nil {
				return nil, err
			}
			links[uint32(hdr.Index)] = linkInfo{
				name:     name,
				loopback: hdr.Flags&unix.IFF_LOOPBACK != 0,
			}
			break
		}
	}
	return links, nil
}
