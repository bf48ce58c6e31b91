// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	asn1tree "github.com/H0llyW00dzZ/tls-cert-verifier/src/internal/asn1/tree"
)

// Field capacities of a [DistinguishedName]. Longer values are truncated on a
// UTF-8 boundary.
const (
	MaxCountryLen   = 2
	MaxNameFieldLen = 255
)

// DistinguishedName holds the subset of X.500 name attributes this package
// recognizes. When an attribute repeats, the last occurrence wins.
type DistinguishedName struct {
	Country            string
	Organization       string
	OrganizationalUnit string
	CommonName         string
	Locality           string
	StateOrProvince    string
	Email              string
}

// String renders the name in the familiar "CN=...,O=..." order.
func (dn DistinguishedName) String() string {
	var parts []string
	add := func(key, value string) {
		if value != "" {
			parts = append(parts, key+"="+value)
		}
	}
	add("CN", dn.CommonName)
	add("EMAIL", dn.Email)
	add("OU", dn.OrganizationalUnit)
	add("O", dn.Organization)
	add("L", dn.Locality)
	add("ST", dn.StateOrProvince)
	add("C", dn.Country)
	return strings.Join(parts, ",")
}

// nameAttribute binds an attribute OID to the structure its value is decoded
// with and the field it fills.
type nameAttribute struct {
	structure string
	limit     int
	set       func(*DistinguishedName, string)
}

var nameAttributes = map[string]nameAttribute{
	"2.5.4.6": {asn1tree.CountryName, MaxCountryLen,
		func(dn *DistinguishedName, v string) { dn.Country = v }},
	"2.5.4.10": {asn1tree.DirectoryString, MaxNameFieldLen,
		func(dn *DistinguishedName, v string) { dn.Organization = v }},
	"2.5.4.11": {asn1tree.DirectoryString, MaxNameFieldLen,
		func(dn *DistinguishedName, v string) { dn.OrganizationalUnit = v }},
	"2.5.4.3": {asn1tree.DirectoryString, MaxNameFieldLen,
		func(dn *DistinguishedName, v string) { dn.CommonName = v }},
	"2.5.4.7": {asn1tree.DirectoryString, MaxNameFieldLen,
		func(dn *DistinguishedName, v string) { dn.Locality = v }},
	"2.5.4.8": {asn1tree.DirectoryString, MaxNameFieldLen,
		func(dn *DistinguishedName, v string) { dn.StateOrProvince = v }},
	"1.2.840.113549.1.9.1": {asn1tree.EmailAddress, MaxNameFieldLen,
		func(dn *DistinguishedName, v string) { dn.Email = v }},
}

// decode returns the attribute value as UTF-8, or false when the value does
// not follow the attribute's syntax.
func (a nameAttribute) decode(raw []byte) (string, bool) {
	tree, err := asn1tree.Decode(a.structure, raw)
	if err != nil {
		return "", false
	}
	path := ""
	if a.structure == asn1tree.DirectoryString {
		if path, err = tree.ReadChoice(""); err != nil {
			return "", false
		}
	}
	s, err := tree.ReadString(path)
	if err != nil {
		return "", false
	}
	return s, true
}

// ExtractName walks the rdnSequence below root and fills a DistinguishedName.
//
// Attributes with unknown OIDs, and values that cannot be decoded with the
// attribute's syntax, are skipped. A malformed sequence returns [ErrASN1Parsing].
func ExtractName(tree Tree, root string) (DistinguishedName, error) {
	var dn DistinguishedName

	seq := join(root, "rdnSequence")
	sets, err := tree.Count(seq)
	if err != nil {
		return dn, fmt.Errorf("%w: %s: %w", ErrASN1Parsing, seq, err)
	}

	for k := 1; k <= sets; k++ {
		set := seq + ".?" + strconv.Itoa(k)
		atvs, err := tree.Count(set)
		if err != nil {
			return dn, fmt.Errorf("%w: %s: %w", ErrASN1Parsing, set, err)
		}

		for j := 1; j <= atvs; j++ {
			atv := set + ".?" + strconv.Itoa(j)
			oid, err := tree.ReadOID(atv + ".type")
			if err != nil {
				return dn, fmt.Errorf("%w: %s: %w", ErrASN1Parsing, atv, err)
			}

			attr, ok := nameAttributes[oid]
			if !ok {
				continue
			}

			raw, err := tree.ReadRaw(atv + ".value")
			if err != nil {
				return dn, fmt.Errorf("%w: %s: %w", ErrASN1Parsing, atv, err)
			}
			if value, ok := attr.decode(raw); ok {
				attr.set(&dn, truncate(value, attr.limit))
			}
		}
	}

	return dn, nil
}

// ParseName decodes a DER Name on its own, as found in a peer's list of
// acceptable certificate authorities.
func ParseName(der []byte) (DistinguishedName, error) {
	tree, err := asn1tree.Decode(asn1tree.Name, der)
	if err != nil {
		return DistinguishedName{}, fmt.Errorf("%w: %w", ErrASN1Parsing, err)
	}
	return ExtractName(tree, "")
}

// truncate shortens s to at most limit bytes without splitting a rune.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
