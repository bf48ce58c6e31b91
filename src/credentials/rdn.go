// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package credentials

import (
	"bytes"
	"fmt"
	"math"

	"golang.org/x/crypto/cryptobyte"

	"github.com/H0llyW00dzZ/tls-cert-verifier/src/internal/helper/gc"
	x509certs "github.com/H0llyW00dzZ/tls-cert-verifier/src/internal/x509/certs"
)

// buildRDNSequence concatenates, for every CA in order, a 2-byte big-endian
// length and the DER subject name. This is the certificate_authorities list
// sent in a CertificateRequest.
func buildRDNSequence(cas []*x509certs.Certificate) ([]byte, error) {
	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	for _, ca := range cas {
		subject := ca.RawSubject()
		if len(subject) > math.MaxUint16 {
			return nil, fmt.Errorf("%w: %s is %d bytes", ErrRDNTooLarge, ca.Subject(), len(subject))
		}
		buf.WriteByte(byte(len(subject) >> 8))
		buf.WriteByte(byte(len(subject)))
		buf.Write(subject)
	}

	return bytes.Clone(buf.Bytes()), nil
}

// ParseRDNSequence splits a certificate_authorities list, as produced by
// [Store.RDNSequence], back into DER subject names.
//
// Parameters:
//   - data: Concatenated 2-byte length prefixed names
//
// Returns:
//   - [][]byte: Subject names in order
//   - error: [ErrMalformedRDNSequence] if a length runs past the end of data
func ParseRDNSequence(data []byte) ([][]byte, error) {
	s := cryptobyte.String(data)

	var names [][]byte
	for !s.Empty() {
		var name cryptobyte.String
		if !s.ReadUint16LengthPrefixed(&name) {
			return nil, fmt.Errorf("%w: %d trailing bytes", ErrMalformedRDNSequence, len(s))
		}
		names = append(names, bytes.Clone(name))
	}
	return names, nil
}

// ParseRDNNames is like [ParseRDNSequence] but decodes each subject.
func ParseRDNNames(data []byte) ([]x509certs.DistinguishedName, error) {
	raw, err := ParseRDNSequence(data)
	if err != nil {
		return nil, err
	}

	names := make([]x509certs.DistinguishedName, 0, len(raw))
	for _, der := range raw {
		dn, err := x509certs.ParseName(der)
		if err != nil {
			return nil, err
		}
		names = append(names, dn)
	}
	return names, nil
}
