// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"fmt"
	"strings"
)

// Status is the bitmask produced by chain verification.
//
// Bit values are stable and may be inspected directly by callers.
type Status uint

const (
	StatusTrusted        Status = 1 << iota // chain is trusted
	StatusInvalid                           // a signature or CA rule failed
	StatusSignerNotFound                    // no trust anchor issued the chain
	StatusSignerNotCA                       // a signer is not a CA
	StatusNotActivated                      // a certificate is not yet valid
	StatusExpired                           // a certificate has expired
	StatusRevoked                           // a certificate is revoked
	StatusNone                              // no certificate was presented
)

// failureBits are the bits that prevent [StatusTrusted].
const failureBits = StatusInvalid | StatusSignerNotFound | StatusSignerNotCA |
	StatusNotActivated | StatusExpired | StatusRevoked

var statusNames = []struct {
	bit  Status
	name string
}{
	{StatusTrusted, "TRUSTED"},
	{StatusInvalid, "INVALID"},
	{StatusSignerNotFound, "SIGNER_NOT_FOUND"},
	{StatusSignerNotCA, "SIGNER_NOT_CA"},
	{StatusNotActivated, "NOT_ACTIVATED"},
	{StatusExpired, "EXPIRED"},
	{StatusRevoked, "REVOKED"},
	{StatusNone, "NONE"},
}

// Has reports whether every bit of bits is set in s.
func (s Status) Has(bits Status) bool { return s&bits == bits }

// Trusted reports whether s carries [StatusTrusted] and no failure bit.
func (s Status) Trusted() bool { return s.Has(StatusTrusted) && s&failureBits == 0 }

// Failures returns only the failure bits of s.
func (s Status) Failures() Status { return s & failureBits }

// String renders s as "|"-joined bit names, for example "INVALID|EXPIRED".
func (s Status) String() string {
	if s == 0 {
		return "0"
	}

	var parts []string
	rest := s
	for _, n := range statusNames {
		if s&n.bit != 0 {
			parts = append(parts, n.name)
			rest &^= n.bit
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint(rest)))
	}
	return strings.Join(parts, "|")
}

// Flags alter chain verification.
type Flags uint

const (
	// FlagDisableCASign skips the CA flag check on signers.
	FlagDisableCASign Flags = 1
	// FlagAllowX509V1CACrt accepts version 1 and 2 certificates as signers.
	FlagAllowX509V1CACrt Flags = 2
)

// Has reports whether f includes flag.
func (f Flags) Has(flag Flags) bool { return f&flag == flag }

// ParseFlags maps flag names to [Flags]. Accepted names are
// "disable-ca-sign" and "allow-x509-v1-ca-crt".
func ParseFlags(names []string) (Flags, error) {
	var f Flags
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "disable-ca-sign":
			f |= FlagDisableCASign
		case "allow-x509-v1-ca-crt":
			f |= FlagAllowX509V1CACrt
		case "":
		default:
			return 0, fmt.Errorf("%w: %q", ErrUnknownFlag, name)
		}
	}
	return f, nil
}
