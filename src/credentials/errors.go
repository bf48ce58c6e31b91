// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package credentials

import (
	"errors"

	"github.com/H0llyW00dzZ/tls-cert-verifier/src/internal/helper/gc"
)

var (
	// ErrCertificateKeyMismatch is returned when a leaf certificate and a private key do not belong together.
	ErrCertificateKeyMismatch = errors.New("credentials: certificate and private key do not match")
	// ErrRDNTooLarge is returned when a CA subject does not fit the 2-byte length prefix.
	ErrRDNTooLarge = errors.New("credentials: CA subject too large for RDN sequence")
	// ErrMalformedRDNSequence is returned by [ParseRDNSequence] for truncated input.
	ErrMalformedRDNSequence = errors.New("credentials: malformed RDN sequence")
	// ErrNoCertificates is returned when a PEM blob holds no certificate.
	ErrNoCertificates = errors.New("credentials: no certificates found")
	// ErrInvalidPrivateKey is returned when a private key cannot be decoded.
	ErrInvalidPrivateKey = errors.New("credentials: invalid private key")
	// ErrNoKeyPair is returned when no stored pair suits a key exchange.
	ErrNoKeyPair = errors.New("credentials: no suitable key pair")

	// ErrFileTooLarge is returned when a credential file exceeds [MaxFileSize].
	ErrFileTooLarge = gc.ErrFileTooLarge
)
