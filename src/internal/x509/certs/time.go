// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"errors"
	"fmt"
	"time"

	asn1tree "github.com/H0llyW00dzZ/tls-cert-verifier/src/internal/asn1/tree"
)

// Instant is a point in time decoded from an ASN.1 Time. The zero Instant
// is the invalid sentinel produced when decoding fails.
type Instant struct {
	t     time.Time
	valid bool
}

// NewInstant wraps t as a valid instant, including the zero time.
func NewInstant(t time.Time) Instant { return Instant{t: t, valid: true} }

// Valid reports whether the instant was decoded successfully.
func (i Instant) Valid() bool { return i.valid }

// Time returns the decoded time, or the zero time for an invalid instant.
func (i Instant) Time() time.Time { return i.t }

func (i Instant) String() string {
	if !i.Valid() {
		return "invalid"
	}
	return i.t.UTC().Format(time.RFC3339)
}

// ValidityPeriod is the notBefore/notAfter pair of a certificate.
type ValidityPeriod struct {
	NotBefore Instant
	NotAfter  Instant
}

// Validity field names accepted by [ExtractTime].
const (
	NotBefore = "notBefore"
	NotAfter  = "notAfter"
)

const (
	utcTimeLayout         = "060102150405Z0700"
	utcTimeLayoutNoSecs   = "0601021504Z0700"
	generalizedTimeLayout = "20060102150405Z0700"
)

// ExtractTime decodes the validity field which ([NotBefore] or [NotAfter]) of
// the certificate at root. Any failure yields the invalid Instant.
func ExtractTime(tree Tree, root, which string) Instant {
	path := join(root, "tbsCertificate", "validity", which)

	alt, err := tree.ReadChoice(path)
	if err != nil {
		return Instant{}
	}
	s, err := tree.ReadString(path + "." + alt)
	if err != nil {
		return Instant{}
	}

	var t time.Time
	switch alt {
	case "utcTime":
		t, err = parseUTCTime(s)
	case "generalTime":
		t, err = time.Parse(generalizedTimeLayout, s)
	default:
		return Instant{}
	}
	if err != nil {
		return Instant{}
	}
	return NewInstant(t.UTC())
}

// parseUTCTime parses a UTCTime, mapping two-digit years of 50 and above to
// the 1900s and the rest to the 2000s.
func parseUTCTime(s string) (time.Time, error) {
	t, err := time.Parse(utcTimeLayout, s)
	if err != nil {
		if t, err = time.Parse(utcTimeLayoutNoSecs, s); err != nil {
			return time.Time{}, err
		}
	}
	yy := t.Year() % 100
	year := 2000 + yy
	if yy >= 50 {
		year = 1900 + yy
	}
	return t.AddDate(year-t.Year(), 0, 0), nil
}

// ExtractVersion returns the one-based certificate version. An absent
// version field is version 1.
func ExtractVersion(tree Tree, root string) (int, error) {
	path := join(root, "tbsCertificate", "version")
	v, err := tree.ReadInteger(path)
	if errors.Is(err, asn1tree.ErrValueNotFound) {
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrASN1Parsing, path, err)
	}
	if !v.IsInt64() || v.Int64() < 0 || v.Int64() > 2 {
		return 0, fmt.Errorf("%w: unsupported version %s", ErrASN1Parsing, v)
	}
	return int(v.Int64()) + 1, nil
}
