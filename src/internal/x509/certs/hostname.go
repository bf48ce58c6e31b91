// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// CheckHostname reports whether cert identifies host.
//
// IP literals are matched against iPAddress entries. Names are matched
// against dNSName entries, where a left-most "*" label matches exactly one
// label; the subject common name is consulted only when the certificate has
// no dNSName entries. A subjectAltName that cannot be fully decoded matches
// nothing, and the error wraps both [ErrHostnameMismatch] and the decoding
// error.
func CheckHostname(cert *Certificate, host string) error {
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	if host == "" {
		return fmt.Errorf("%w: empty host", ErrHostnameMismatch)
	}

	names, err := cert.Extensions().SubjectAltNames()
	switch {
	case errors.Is(err, ErrDataNotAvailable):
		names = nil
	case err != nil:
		return fmt.Errorf("%w: %s: %w", ErrHostnameMismatch, host, err)
	}

	if ip := net.ParseIP(host); ip != nil {
		for _, n := range names {
			if n.Kind == AltNameIP && ip.Equal(net.IP(n.Raw)) {
				return nil
			}
		}
		return fmt.Errorf("%w: %s", ErrHostnameMismatch, host)
	}

	hasDNS := false
	for _, n := range names {
		if n.Kind != AltNameDNS {
			continue
		}
		hasDNS = true
		if matchHostname(n.Value, host) {
			return nil
		}
	}
	if !hasDNS && matchHostname(cert.subject.CommonName, host) {
		return nil
	}

	return fmt.Errorf("%w: %s", ErrHostnameMismatch, host)
}

func matchHostname(pattern, host string) bool {
	pattern = strings.TrimSuffix(strings.ToLower(pattern), ".")
	if pattern == "" {
		return false
	}

	if rest, ok := strings.CutPrefix(pattern, "*."); ok {
		label, hostRest, found := strings.Cut(host, ".")
		// The wildcard must cover a whole label and leave at least two labels.
		return found && label != "" && strings.Contains(rest, ".") && hostRest == rest
	}
	return pattern == host
}
