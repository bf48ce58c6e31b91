// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"errors"
	"fmt"
)

// KeyExchange identifies a TLS key exchange method.
type KeyExchange int

const (
	KeyExchangeRSA KeyExchange = iota + 1
	KeyExchangeDHERSA
	KeyExchangeDHEDSS
	KeyExchangeRSAExport
	KeyExchangeSRPRSA
	KeyExchangeSRPDSS
	KeyExchangeDHAnon
	KeyExchangeSRP
	KeyExchangePSK
)

var keyExchangeNames = map[KeyExchange]string{
	KeyExchangeRSA:       "RSA",
	KeyExchangeDHERSA:    "DHE_RSA",
	KeyExchangeDHEDSS:    "DHE_DSS",
	KeyExchangeRSAExport: "RSA_EXPORT",
	KeyExchangeSRPRSA:    "SRP_RSA",
	KeyExchangeSRPDSS:    "SRP_DSS",
	KeyExchangeDHAnon:    "DH_ANON",
	KeyExchangeSRP:       "SRP",
	KeyExchangePSK:       "PSK",
}

func (kx KeyExchange) String() string {
	if name, ok := keyExchangeNames[kx]; ok {
		return name
	}
	return fmt.Sprintf("KeyExchange(%d)", int(kx))
}

// ParseKeyExchange returns the key exchange named name, as printed by String.
func ParseKeyExchange(name string) (KeyExchange, bool) {
	for kx, n := range keyExchangeNames {
		if n == name {
			return kx, true
		}
	}
	return 0, false
}

// CertificateBased reports whether kx authenticates the server with a certificate.
func (kx KeyExchange) CertificateBased() bool {
	return kx.PublicKeyAlgorithm() != UnknownPublicKeyAlgorithm
}

// PublicKeyAlgorithm returns the server key algorithm kx requires.
func (kx KeyExchange) PublicKeyAlgorithm() PublicKeyAlgorithm {
	switch kx {
	case KeyExchangeRSA, KeyExchangeDHERSA, KeyExchangeRSAExport, KeyExchangeSRPRSA:
		return RSA
	case KeyExchangeDHEDSS, KeyExchangeSRPDSS:
		return DSA
	}
	return UnknownPublicKeyAlgorithm
}

// CheckKeyUsage reports whether cert may be used for kx.
//
// RSA key transport needs keyEncipherment and the ephemeral Diffie-Hellman
// exchanges need digitalSignature. The check only applies when the
// certificate asserts at least one keyUsage bit; an absent extension and one
// with every bit clear are both unrestricted. Other certificate-based
// exchanges are rejected under a restricting keyUsage; exchanges that do not
// use a certificate always pass.
func CheckKeyUsage(cert *Certificate, kx KeyExchange) error {
	if !kx.CertificateBased() {
		return nil
	}

	ku, _, err := cert.extensions.KeyUsage()
	if errors.Is(err, ErrDataNotAvailable) || ku == 0 {
		return nil
	}

	var want KeyUsage
	switch kx {
	case KeyExchangeRSA:
		want = KeyUsageKeyEncipherment
	case KeyExchangeDHERSA, KeyExchangeDHEDSS:
		want = KeyUsageDigitalSignature
	default:
		return fmt.Errorf("%w: %s with keyUsage %q", ErrKeyUsageViolation, kx, ku)
	}

	if !ku.Has(want) {
		return fmt.Errorf("%w: %s requires %s, certificate allows %q", ErrKeyUsageViolation, kx, want, ku)
	}
	return nil
}
