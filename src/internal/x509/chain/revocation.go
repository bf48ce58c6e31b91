// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"bytes"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"time"

	x509certs "github.com/H0llyW00dzZ/tls-cert-verifier/src/internal/x509/certs"
)

// Revocation states reported per certificate.
const (
	RevocationGood    = "Good"
	RevocationRevoked = "Revoked"
	RevocationUnknown = "Unknown"
)

// crlBlockType is the PEM block type of a certificate revocation list.
const crlBlockType = "X509 CRL"

// RevocationList is a parsed [CRL] reduced to what chain verification needs:
// the issuer name and the set of revoked serial numbers.
//
// [CRL]: https://grokipedia.com/page/Certificate_revocation_list
type RevocationList struct {
	issuer     []byte
	revoked    map[string]time.Time
	thisUpdate time.Time
	nextUpdate time.Time
}

// ParseRevocationList parses a CRL from PEM or DER data.
//
// Parameters:
//   - data: A single "X509 CRL" PEM block or raw DER
//
// Returns:
//   - *RevocationList: Parsed list
//   - error: [ErrParseCRL] wrapping the decoder error
func ParseRevocationList(data []byte) (*RevocationList, error) {
	if block, _ := pem.Decode(data); block != nil {
		if block.Type != crlBlockType {
			return nil, fmt.Errorf("%w: unexpected PEM block %q", ErrParseCRL, block.Type)
		}
		data = block.Bytes
	}

	crl, err := x509.ParseRevocationList(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseCRL, err)
	}

	l := &RevocationList{
		issuer:     bytes.Clone(crl.RawIssuer),
		revoked:    make(map[string]time.Time, len(crl.RevokedCertificateEntries)),
		thisUpdate: crl.ThisUpdate,
		nextUpdate: crl.NextUpdate,
	}
	for _, entry := range crl.RevokedCertificateEntries {
		l.revoked[serialKey(entry.SerialNumber.Bytes())] = entry.RevocationTime
	}

	return l, nil
}

// ParseRevocationLists parses every "X509 CRL" block in a PEM bundle.
// Data without PEM markers is parsed as a single DER list.
func ParseRevocationLists(data []byte) ([]*RevocationList, error) {
	chunks := x509certs.SplitPEM(data)
	if len(chunks) == 0 {
		l, err := ParseRevocationList(data)
		if err != nil {
			return nil, err
		}
		return []*RevocationList{l}, nil
	}

	lists := make([]*RevocationList, 0, len(chunks))
	for _, chunk := range chunks {
		l, err := ParseRevocationList(chunk)
		if err != nil {
			return nil, err
		}
		lists = append(lists, l)
	}
	return lists, nil
}

// Issuer returns the DER encoded issuer name of the list.
func (l *RevocationList) Issuer() []byte { return bytes.Clone(l.issuer) }

// ThisUpdate returns the issue date of the list.
func (l *RevocationList) ThisUpdate() time.Time { return l.thisUpdate }

// NextUpdate returns the date by which a newer list is expected, or the zero
// time when the list does not say.
func (l *RevocationList) NextUpdate() time.Time { return l.nextUpdate }

// Len returns the number of revoked serial numbers.
func (l *RevocationList) Len() int { return len(l.revoked) }

// IsRevoked reports whether the list covers cert and names its serial number.
//
// The issuer is compared byte for byte against the certificate's issuer
// name; serial numbers are compared without leading zero octets.
func (l *RevocationList) IsRevoked(cert *x509certs.Certificate) bool {
	if !bytes.Equal(l.issuer, cert.RawIssuer()) {
		return false
	}
	_, ok := l.revoked[serialKey(cert.SerialNumber())]
	return ok
}

// Covers reports whether the list was issued by the issuer of cert.
func (l *RevocationList) Covers(cert *x509certs.Certificate) bool {
	return bytes.Equal(l.issuer, cert.RawIssuer())
}

func serialKey(serial []byte) string {
	return string(bytes.TrimLeft(serial, "\x00"))
}

// RevocationStatus returns [RevocationRevoked] when any list revokes cert,
// [RevocationGood] when at least one list covers it, and
// [RevocationUnknown] otherwise.
func RevocationStatus(cert *x509certs.Certificate, crls []*RevocationList) string {
	status := RevocationUnknown
	for _, l := range crls {
		if !l.Covers(cert) {
			continue
		}
		if l.IsRevoked(cert) {
			return RevocationRevoked
		}
		status = RevocationGood
	}
	return status
}
