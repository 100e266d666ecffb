// internal/site/host.go
//
// Host normalisation shared by the content cache and the HTTPS redirect.

package site

import (
	"net"
	"strings"
)

// StripPort removes a :port suffix, keeping bracketed IPv6 literals intact.
func StripPort(h string) string {
	if host, _, err := net.SplitHostPort(h); err == nil {
		return host
	}
	return h
}

// LookupHost maps a raw Host header to the value stored in site.host.
// The host is lower-cased and stripped of its port; "localhost" and
// loopback addresses resolve to alias when one is configured so local
// development can masquerade as a real site row.
func LookupHost(raw, alias string) string {
	h := strings.ToLower(strings.TrimSuffix(StripPort(strings.TrimSpace(raw)), "."))
	if alias != "" && IsLocal(h) {
		return alias
	}
	return h
}

// IsLocal reports whether h names the local machine.
func IsLocal(h string) bool {
	switch h {
	case "localhost", "127.0.0.1", "::1", "[::1]":
		return true
	}
	return false
}
