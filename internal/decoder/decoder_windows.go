//go:build windows

package decoder

import (
	"fmt"
	"net/netip"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/fzdarsky/localaddr/pkg/netid"
)

// windowsDecoder walks the adapter table returned by
// GetAdaptersAddresses: a linked list of adapters, each carrying a
// nested linked list of unicast addresses. The IPv4 routing table is
// cross-referenced to tag which adapters carry the default route.
type windowsDecoder struct{}

func newPlatform() Decoder {
	return &windowsDecoder{}
}

// Number of buffer-growth attempts before the adapter query gives up.
const adapterQueryAttempts = 3

func (d *windowsDecoder) Snapshot() ([]netid.InterfaceEntry, error) {
	head, err := adapterAddresses()
	if err != nil {
		return nil, err
	}

	// Best effort: a missing routing table leaves entries untagged and
	// the selector falls back to first-non-loopback.
	defaults := defaultRouteIndexes()

	var entries []netid.InterfaceEntry
	for aa := head; aa != nil; aa = aa.Next {
		if aa.FriendlyName == nil {
			return nil, netid.NewInvalidNameError(fmt.Sprintf("adapter %d has no display name", aa.IfIndex))
		}
		name := windows.UTF16PtrToString(aa.FriendlyName)
		loopback := aa.IfType == windows.IF_TYPE_SOFTWARE_LOOPBACK
		onDefaultRoute := defaults[aa.IfIndex]

		for ua := aa.FirstUnicastAddress; ua != nil; ua = ua.Next {
			sa := ua.Address.Sockaddr
			if sa == nil {
				continue
			}
			var addr netip.Addr
			switch sa.Addr.Family {
			case windows.AF_INET:
				// The 4-byte field is stored pre-arranged in octet
				// order; no swap, unlike the Unix paths.
				sa4 := (*syscall.RawSockaddrInet4)(unsafe.Pointer(sa))
				addr = netip.AddrFrom4(sa4.Addr)
			case windows.AF_INET6:
				sa6 := (*syscall.RawSockaddrInet6)(unsafe.Pointer(sa))
				addr = ipv6FromBytes(sa6.Addr)
			default:
				continue
			}
			entries = append(entries, netid.InterfaceEntry{
				Name:         name,
				Addr:         addr,
				Loopback:     loopback,
				DefaultRoute: onDefaultRoute,
			})
		}
	}
	return entries, nil
}

// adapterAddresses calls GetAdaptersAddresses into a caller-allocated
// buffer, growing it to the kernel-reported size on ERROR_BUFFER_OVERFLOW
// for a bounded number of attempts. The returned list aliases the Go
// buffer, so its lifetime is the caller's and release is automatic.
func adapterAddresses() (*windows.IpAdapterAddresses, error) {
	size := uint32(15000)
	var buf []byte
	for attempt := 0; ; attempt++ {
		buf = make([]byte, size)
		err := windows.GetAdaptersAddresses(
			windows.AF_UNSPEC,
			windows.GAA_FLAG_INCLUDE_PREFIX,
			0,
			(*windows.IpAdapterAddresses)(unsafe.Pointer(&buf[0])),
			&size,
		)
		if err == nil {
			if size == 0 {
				return nil, nil
			}
			return (*windows.IpAdapterAddresses)(unsafe.Pointer(&buf[0])), nil
		}
		errno, ok := err.(syscall.Errno)
		if !ok || errno != windows.ERROR_BUFFER_OVERFLOW {
			return nil, netid.NewStrategyError(fmt.Sprintf("querying adapter addresses: %v", err))
		}
		if attempt == adapterQueryAttempts-1 {
			return nil, netid.NewStrategyError(fmt.Sprintf("adapter table did not fit in %d bytes after %d attempts", size, adapterQueryAttempts))
		}
	}
}

var (
	modiphlpapi           = windows.NewLazySystemDLL("iphlpapi.dll")
	procGetIpForwardTable = modiphlpapi.NewProc("GetIpForwardTable")
)

// ipForwardRow mirrors MIB_IPFORWARDROW.
type ipForwardRow struct {
	Dest      uint32
	Mask      uint32
	Policy    uint32
	NextHop   uint32
	IfIndex   uint32
	Type      uint32
	Proto     uint32
	Age       uint32
	NextHopAS uint32
	Metric1   uint32
	Metric2   uint32
	Metric3   uint32
	Metric4   uint32
	Metric5   uint32
}

// defaultRouteIndexes returns the interface indexes that carry a default
// route (zero destination and mask) in the IPv4 forward table. Any
// failure yields an empty result rather than aborting the snapshot.
func defaultRouteIndexes() map[uint32]bool {
	size := uint32(4096)
	for attempt := 0; attempt < adapterQueryAttempts; attempt++ {
		buf := make([]byte, size)
		ret, _, _ := procGetIpForwardTable.Call(
			uintptr(unsafe.Pointer(&buf[0])),
			uintptr(unsafe.Pointer(&size)),
			0,
		)
		switch syscall.Errno(ret) {
		case 0:
			n := *(*uint32)(unsafe.Pointer(&buf[0]))
			if n == 0 || len(buf) < 4+int(n)*int(unsafe.Sizeof(ipForwardRow{})) {
				return nil
			}
			rows := unsafe.Slice((*ipForwardRow)(unsafe.Pointer(&buf[4])), n)
			out := make(map[uint32]bool)
			for _, row := range rows {
				if row.Dest == 0 && row.Mask == 0 {
					out[row.IfIndex] = true
				}
			}
			return out
		case windows.ERROR_INSUFFICIENT_BUFFER:
			continue
		default:
			return nil
		}
	}
	return nil
}
