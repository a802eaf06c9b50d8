// Package output provides output formatting utilities for the localip CLI tool.
package output

import (
	"encoding/json"
	"fmt"
	"net/netip"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fzdarsky/localaddr/pkg/netid"
)

// Format represents an output format.
type Format string

const (
	// FormatPlain represents bare-text output (default).
	FormatPlain Format = "plain"
	// FormatYAML represents YAML output format.
	FormatYAML Format = "yaml"
	// FormatJSON represents JSON output format.
	FormatJSON Format = "json"
)

// ParseFormat parses a format string into a Format value.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "plain", "text":
		return FormatPlain, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("invalid output format '%s': must be 'plain', 'yaml' or 'json'", s)
	}
}

// AddressReport is the printable form of a primary-address answer.
type AddressReport struct {
	IP     string `json:"ip" yaml:"ip"`
	Family string `json:"family" yaml:"family"`
}

// InterfaceReport is the printable form of one interface entry.
type InterfaceReport struct {
	Name         string `json:"name" yaml:"name"`
	IP           string `json:"ip" yaml:"ip"`
	Family       string `json:"family" yaml:"family"`
	Loopback     bool   `json:"loopback" yaml:"loopback"`
	DefaultRoute bool   `json:"default_route,omitempty" yaml:"default_route,omitempty"`
}

// FormatAddress renders a primary-address answer in the given format.
func FormatAddress(addr netip.Addr, format Format) (string, error) {
	if format == FormatPlain {
		return addr.String() + "\n", nil
	}
	return marshal(AddressReport{
		IP:     addr.String(),
		Family: string(netid.FamilyOf(addr)),
	}, format)
}

// FormatInterfaces renders an interface snapshot in the given format,
// preserving the order the entries were decoded in.
func FormatInterfaces(entries []netid.InterfaceEntry, format Format) (string, error) {
	if format == FormatPlain {
		var b strings.Builder
		for _, e := range entries {
			fmt.Fprintf(&b, "%s\t%s\n", e.Name, e.Addr)
		}
		return b.String(), nil
	}

	reports := make([]InterfaceReport, 0, len(entries))
	for _, e := range entries {
		reports = append(reports, InterfaceReport{
			Name:         e.Name,
			IP:           e.Addr.String(),
			Family:       string(e.Family()),
			Loopback:     e.Loopback,
			DefaultRoute: e.DefaultRoute,
		})
	}
	return marshal(reports, format)
}

// marshal formats data as YAML or indented JSON.
func marshal(data any, format Format) (string, error) {
	switch format {
	case FormatYAML:
		bytes, err := yaml.Marshal(data)
		if err != nil {
			return "", fmt.Errorf("failed to format as YAML: %w", err)
		}
		return string(bytes), nil
	case FormatJSON:
		bytes, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to format as JSON: %w", err)
		}
		return string(bytes) + "\n", nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}
