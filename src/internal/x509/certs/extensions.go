// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	asn1tree "github.com/H0llyW00dzZ/tls-cert-verifier/src/internal/asn1/tree"
)

// Extension OIDs with dedicated extractors.
const (
	OIDSubjectAltName   = "2.5.29.17"
	OIDKeyUsage         = "2.5.29.15"
	OIDBasicConstraints = "2.5.29.19"
)

// KeyUsage is the keyUsage bit set. Values are stable and match GnuTLS.
type KeyUsage uint16

const (
	KeyUsageDigitalSignature KeyUsage = 256
	KeyUsageNonRepudiation   KeyUsage = 128
	KeyUsageKeyEncipherment  KeyUsage = 64
	KeyUsageDataEncipherment KeyUsage = 32
	KeyUsageKeyAgreement     KeyUsage = 16
	KeyUsageKeyCertSign      KeyUsage = 8
	KeyUsageCRLSign          KeyUsage = 4
	KeyUsageEncipherOnly     KeyUsage = 2
	KeyUsageDecipherOnly     KeyUsage = 1
)

var keyUsageNames = []struct {
	flag KeyUsage
	name string
}{
	{KeyUsageDigitalSignature, "digitalSignature"},
	{KeyUsageNonRepudiation, "nonRepudiation"},
	{KeyUsageKeyEncipherment, "keyEncipherment"},
	{KeyUsageDataEncipherment, "dataEncipherment"},
	{KeyUsageKeyAgreement, "keyAgreement"},
	{KeyUsageKeyCertSign, "keyCertSign"},
	{KeyUsageCRLSign, "cRLSign"},
	{KeyUsageEncipherOnly, "encipherOnly"},
	{KeyUsageDecipherOnly, "decipherOnly"},
}

// Has reports whether every flag in f is set.
func (k KeyUsage) Has(f KeyUsage) bool { return k&f == f }

func (k KeyUsage) String() string {
	var names []string
	for _, n := range keyUsageNames {
		if k.Has(n.flag) {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, ",")
}

// AltNameKind is the GeneralName type of a subjectAltName entry.
type AltNameKind int

const (
	AltNameDNS AltNameKind = iota + 1
	AltNameRFC822
	AltNameURI
	AltNameIP
)

func (k AltNameKind) String() string {
	switch k {
	case AltNameDNS:
		return "DNS"
	case AltNameRFC822:
		return "email"
	case AltNameURI:
		return "URI"
	case AltNameIP:
		return "IP"
	}
	return "unknown"
}

var altNameKinds = map[string]AltNameKind{
	"dNSName":                   AltNameDNS,
	"rfc822Name":                AltNameRFC822,
	"uniformResourceIdentifier": AltNameURI,
	"iPAddress":                 AltNameIP,
}

// AltName is one subjectAltName entry. Raw holds the undecoded content octets.
type AltName struct {
	Kind  AltNameKind
	Value string
	Raw   []byte
}

// Extension is a certificate extension kept in its encoded form.
type Extension struct {
	OID      string
	Critical bool
	Value    []byte
}

// ExtensionSet holds the decoded extensions of a certificate.
type ExtensionSet struct {
	all []Extension

	sanPresent  bool
	sanCritical bool
	altNames    []AltName
	sanErr      error

	kuPresent  bool
	kuCritical bool
	keyUsage   KeyUsage

	bcPresent  bool
	bcCritical bool
	isCA       bool
	pathLen    int
}

// ExtractExtensions decodes the extensions of the certificate at root. A
// certificate without extensions yields an empty set.
//
// A subjectAltName that cannot be decoded does not fail extraction; the
// error is reported by [ExtensionSet.SubjectAltNames] instead.
func ExtractExtensions(tree Tree, root string) (*ExtensionSet, error) {
	set := &ExtensionSet{pathLen: -1}

	base := join(root, "tbsCertificate", "extensions")
	n, err := tree.Count(base)
	if errors.Is(err, asn1tree.ErrValueNotFound) {
		return set, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrASN1Parsing, base, err)
	}

	for k := 1; k <= n; k++ {
		p := base + ".?" + strconv.Itoa(k)

		oid, err := tree.ReadOID(p + ".extnID")
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrASN1Parsing, p, err)
		}
		critical, err := tree.ReadBool(p + ".critical")
		if err != nil && !errors.Is(err, asn1tree.ErrValueNotFound) {
			return nil, fmt.Errorf("%w: %s: %w", ErrASN1Parsing, p, err)
		}
		value, err := tree.ReadValue(p + ".extnValue")
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrASN1Parsing, p, err)
		}

		set.all = append(set.all, Extension{OID: oid, Critical: critical, Value: value})

		switch oid {
		case OIDSubjectAltName:
			set.parseSubjectAltName(value, critical)
		case OIDKeyUsage:
			if err := set.parseKeyUsage(value, critical); err != nil {
				return nil, err
			}
		case OIDBasicConstraints:
			if err := set.parseBasicConstraints(value, critical); err != nil {
				return nil, err
			}
		}
	}

	return set, nil
}

func (s *ExtensionSet) parseSubjectAltName(value []byte, critical bool) {
	s.sanPresent, s.sanCritical = true, critical
	s.altNames, s.sanErr = nil, nil

	tree, err := asn1tree.Decode(asn1tree.SubjectAltName, value)
	if err != nil {
		s.sanErr = fmt.Errorf("%w: subjectAltName: %w", ErrASN1Parsing, err)
		return
	}
	n, err := tree.Count("")
	if err != nil {
		s.sanErr = fmt.Errorf("%w: subjectAltName: %w", ErrASN1Parsing, err)
		return
	}

	for i := 1; i <= n; i++ {
		p := "?" + strconv.Itoa(i)
		alt, err := tree.ReadChoice(p)
		if err != nil {
			s.sanErr = fmt.Errorf("%w: subjectAltName %s: %w", ErrASN1Parsing, p, err)
			return
		}
		kind, ok := altNameKinds[alt]
		if !ok {
			s.sanErr = fmt.Errorf("%w: %s at index %d", ErrUnknownSAN, alt, i-1)
			return
		}

		p += "." + alt
		raw, err := tree.ReadValue(p)
		if err != nil {
			s.sanErr = fmt.Errorf("%w: subjectAltName %s: %w", ErrASN1Parsing, p, err)
			return
		}
		var v string
		if kind == AltNameIP {
			v = net.IP(raw).String()
		} else if v, err = tree.ReadString(p); err != nil {
			s.sanErr = fmt.Errorf("%w: subjectAltName %s: %w", ErrASN1Parsing, p, err)
			return
		}
		s.altNames = append(s.altNames, AltName{Kind: kind, Value: v, Raw: raw})
	}
}

func (s *ExtensionSet) parseKeyUsage(value []byte, critical bool) error {
	tree, err := asn1tree.Decode(asn1tree.KeyUsage, value)
	if err != nil {
		return fmt.Errorf("%w: keyUsage: %w", ErrASN1Parsing, err)
	}
	bits, err := tree.ReadBitString("")
	if err != nil {
		return fmt.Errorf("%w: keyUsage: %w", ErrASN1Parsing, err)
	}

	var ku KeyUsage
	for i := 0; i < 9; i++ {
		if bits.At(i) != 0 {
			ku |= 1 << (8 - i)
		}
	}
	s.kuPresent, s.kuCritical, s.keyUsage = true, critical, ku
	return nil
}

func (s *ExtensionSet) parseBasicConstraints(value []byte, critical bool) error {
	tree, err := asn1tree.Decode(asn1tree.BasicConstraints, value)
	if err != nil {
		return fmt.Errorf("%w: basicConstraints: %w", ErrASN1Parsing, err)
	}

	isCA, err := tree.ReadBool("cA")
	if err != nil && !errors.Is(err, asn1tree.ErrValueNotFound) {
		return fmt.Errorf("%w: basicConstraints: %w", ErrASN1Parsing, err)
	}

	pathLen := -1
	v, err := tree.ReadInteger("pathLenConstraint")
	switch {
	case errors.Is(err, asn1tree.ErrValueNotFound):
	case err != nil:
		return fmt.Errorf("%w: basicConstraints: %w", ErrASN1Parsing, err)
	case !v.IsInt64() || v.Sign() < 0 || v.Int64() > 1<<30:
		return fmt.Errorf("%w: basicConstraints: pathLenConstraint out of range", ErrASN1Parsing)
	default:
		pathLen = int(v.Int64())
	}

	s.bcPresent, s.bcCritical, s.isCA, s.pathLen = true, critical, isCA, pathLen
	return nil
}

// SubjectAltNames returns the subjectAltName entries in encoded order. It
// returns [ErrDataNotAvailable] when the extension is absent and
// [ErrUnknownSAN] when an entry has an unsupported type.
func (s *ExtensionSet) SubjectAltNames() ([]AltName, error) {
	if !s.sanPresent {
		return nil, ErrDataNotAvailable
	}
	if s.sanErr != nil {
		return nil, s.sanErr
	}
	return cloneAltNames(s.altNames), nil
}

// AltName returns the subjectAltName entry at the zero-based index.
func (s *ExtensionSet) AltName(index int) (AltName, error) {
	if !s.sanPresent || index < 0 {
		return AltName{}, ErrDataNotAvailable
	}
	if index < len(s.altNames) {
		return cloneAltNames(s.altNames[index : index+1])[0], nil
	}
	if s.sanErr != nil {
		return AltName{}, s.sanErr
	}
	return AltName{}, ErrDataNotAvailable
}

// SubjectAltNameCritical reports the critical flag of the subjectAltName extension.
func (s *ExtensionSet) SubjectAltNameCritical() bool { return s.sanCritical }

// KeyUsage returns the keyUsage flags and critical flag, or
// [ErrDataNotAvailable] when the extension is absent.
func (s *ExtensionSet) KeyUsage() (KeyUsage, bool, error) {
	if !s.kuPresent {
		return 0, false, ErrDataNotAvailable
	}
	return s.keyUsage, s.kuCritical, nil
}

// BasicConstraints returns the CA flag, the path length constraint (-1 when
// absent) and the critical flag, or [ErrDataNotAvailable] when the extension
// is absent.
func (s *ExtensionSet) BasicConstraints() (isCA bool, pathLen int, critical bool, err error) {
	if !s.bcPresent {
		return false, -1, false, ErrDataNotAvailable
	}
	return s.isCA, s.pathLen, s.bcCritical, nil
}

// IsCA reports whether basicConstraints marks the subject as a CA.
func (s *ExtensionSet) IsCA() bool { return s.bcPresent && s.isCA }

// ExtensionByOID returns the value and critical flag of the index-th
// (zero-based) extension carrying oid.
func (s *ExtensionSet) ExtensionByOID(oid string, index int) ([]byte, bool, error) {
	seen := 0
	for _, ext := range s.all {
		if ext.OID != oid {
			continue
		}
		if seen == index {
			return append([]byte(nil), ext.Value...), ext.Critical, nil
		}
		seen++
	}
	return nil, false, ErrDataNotAvailable
}

// All returns every extension in encoded order.
func (s *ExtensionSet) All() []Extension {
	out := make([]Extension, len(s.all))
	for i, ext := range s.all {
		out[i] = Extension{OID: ext.OID, Critical: ext.Critical, Value: append([]byte(nil), ext.Value...)}
	}
	return out
}

// Others returns the extensions without a dedicated extractor.
func (s *ExtensionSet) Others() []Extension {
	var out []Extension
	for _, ext := range s.All() {
		switch ext.OID {
		case OIDSubjectAltName, OIDKeyUsage, OIDBasicConstraints:
			continue
		}
		out = append(out, ext)
	}
	return out
}

// Len returns the number of extensions.
func (s *ExtensionSet) Len() int { return len(s.all) }

func cloneAltNames(in []AltName) []AltName {
	out := make([]AltName, len(in))
	for i, n := range in {
		out[i] = AltName{Kind: n.Kind, Value: n.Value, Raw: append([]byte(nil), n.Raw...)}
	}
	return out
}
