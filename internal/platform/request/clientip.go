// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package requestutil

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// clientIPHeaders lists proxy headers in the order they are trusted.
var clientIPHeaders = []string{
	"CF-Connecting-IP",
	"X-Client-IP",
	"X-Forwarded-For",
	"X-Forwarded",
	"X-Cluster-Client-IP",
	"Forwarded-For",
	"Forwarded",
}

// ClientIP derives the caller's address from proxy headers, falling back to
// the socket peer. Only the first value of a list header is considered, and
// values that are not IP literals are skipped.
func ClientIP(request *http.Request) string {
	for _, header := range clientIPHeaders {
		raw := request.Header.Get(header)
		if raw == "" {
			continue
		}

		first := strings.TrimSpace(strings.Split(raw, ",")[0])
		if address, ok := parseAddress(first); ok {
			return address
		}
	}

	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		host = request.RemoteAddr
	}
	if address, ok := parseAddress(host); ok {
		return address
	}

	return "unknown"
}

// parseAddress accepts bare IPs and the `for=` form of the Forwarded header.
func parseAddress(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if forwarded, ok := strings.CutPrefix(strings.ToLower(value), "for="); ok {
		if semicolon := strings.IndexByte(forwarded, ';'); semicolon >= 0 {
			forwarded = forwarded[:semicolon]
		}
		value = strings.Trim(forwarded, `"[]`)
	}

	if address, err := netip.ParseAddr(value); err == nil && address.IsValid() && !address.IsUnspecified() {
		return address.Unmap().String(), true
	}

	if addrPort, err := netip.ParseAddrPort(value); err == nil {
		return addrPort.Addr().Unmap().String(), true
	}

	return "", false
}
