//go:build !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd && !windows

package decoder

import (
	"runtime"

	"github.com/fzdarsky/localaddr/pkg/netid"
)

// unsupportedDecoder stands in on platforms with no implemented
// strategy. Both operations report the OS identifier; none panic or
// invent a default address.
type unsupportedDecoder struct{}

func newPlatform() Decoder {
	return &unsupportedDecoder{}
}

func (d *unsupportedDecoder) Snapshot() ([]netid.InterfaceEntry, error) {
	return nil, netid.NewPlatformNotSupportedError(runtime.GOOS)
}
