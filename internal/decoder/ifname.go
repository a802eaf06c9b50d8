package decoder

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/fzdarsky/localaddr/pkg/netid"
)

// parseInterfaceName converts the raw bytes of a kernel-provided interface
// name into a string. The kernel hands names over as NUL-terminated byte
// strings; exactly one trailing NUL is stripped when present. A lone NUL
// yields the empty string. Interior NUL bytes or invalid UTF-8 fail the
// current decode rather than producing a partial snapshot with an
// unreadable name.
func parseInterfaceName(b []byte) (string, error) {
	b = bytes.TrimSuffix(b, []byte{0})
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return "", netid.NewInvalidNameError(fmt.Sprintf("interface name contains NUL at offset %d", i))
	}
	if !utf8.Valid(b) {
		return "", netid.NewInvalidNameError(fmt.Sprintf("interface name %q is not valid UTF-8", b))
	}
	return string(b), nil
}
