// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package credentials

import (
	"bytes"
	"crypto"
	"crypto/dsa"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"math/big"

	asn1tree "github.com/H0llyW00dzZ/tls-cert-verifier/src/internal/asn1/tree"
	x509certs "github.com/H0llyW00dzZ/tls-cert-verifier/src/internal/x509/certs"
)

// dsaMarker selects the DSA decoder when found in a PEM header.
var dsaMarker = []byte("DSA PRIVATE")

// PrivateKey is a decoded RSA or DSA private key.
type PrivateKey struct {
	algorithm x509certs.PublicKeyAlgorithm
	rsa       *rsa.PrivateKey
	dsa       *dsa.PrivateKey
}

// Algorithm returns the key algorithm.
func (k *PrivateKey) Algorithm() x509certs.PublicKeyAlgorithm { return k.algorithm }

// RSA returns the RSA key, or nil for a DSA key.
func (k *PrivateKey) RSA() *rsa.PrivateKey { return k.rsa }

// DSA returns the DSA key, or nil for an RSA key.
func (k *PrivateKey) DSA() *dsa.PrivateKey { return k.dsa }

// Signer returns the key as a [crypto.Signer]. DSA keys have no signer in
// the standard library and yield nil.
func (k *PrivateKey) Signer() crypto.Signer {
	if k.rsa != nil {
		return k.rsa
	}
	return nil
}

// ParsePrivateKeyPEM decodes the first PEM block of data.
//
// The block is treated as a DSA key when the PEM text before its body
// contains "DSA PRIVATE"; otherwise it must be a PKCS #1 RSA key, or an RSA
// key wrapped in PKCS #8.
//
// Parameters:
//   - data: PEM encoded private key
//
// Returns:
//   - *PrivateKey: Decoded key
//   - error: [ErrInvalidPrivateKey] wrapping the decoder failure
func ParsePrivateKeyPEM(data []byte) (*PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block", ErrInvalidPrivateKey)
	}

	if isDSAKey(data) {
		key, err := parseDSAPrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidPrivateKey, err)
		}
		return &PrivateKey{algorithm: x509certs.DSA, dsa: key}, nil
	}

	key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		parsed, err8 := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err8 != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidPrivateKey, err)
		}
		var ok bool
		if key, ok = parsed.(*rsa.PrivateKey); !ok {
			return nil, fmt.Errorf("%w: unsupported PKCS #8 key type %T", ErrInvalidPrivateKey, parsed)
		}
	}
	return &PrivateKey{algorithm: x509certs.RSA, rsa: key}, nil
}

// isDSAKey looks for the DSA marker in the header line of the first block.
func isDSAKey(data []byte) bool {
	begin := bytes.Index(data, []byte("-----BEGIN"))
	if begin < 0 {
		return false
	}
	header := data[begin:]
	if end := bytes.IndexByte(header, '\n'); end >= 0 {
		header = header[:end]
	}
	return bytes.Contains(header, dsaMarker)
}

// parseDSAPrivateKey decodes the OpenSSL DSAPrivateKey structure.
func parseDSAPrivateKey(der []byte) (*dsa.PrivateKey, error) {
	tree, err := asn1tree.Decode(asn1tree.DSAPrivateKey, der)
	if err != nil {
		return nil, err
	}

	var key dsa.PrivateKey
	for _, f := range []struct {
		path string
		dst  **big.Int
	}{
		{"p", &key.P},
		{"q", &key.Q},
		{"g", &key.G},
		{"Y", &key.Y},
		{"priv", &key.X},
	} {
		if *f.dst, err = tree.ReadInteger(f.path); err != nil {
			return nil, fmt.Errorf("DSA %s: %w", f.path, err)
		}
	}
	return &key, nil
}

// Matches reports whether cert carries the public half of k.
//
// Returns:
//   - error: [ErrCertificateKeyMismatch] when the algorithms or public values differ
func (k *PrivateKey) Matches(cert *x509certs.Certificate) error {
	if cert.PublicKeyAlgorithm() != k.algorithm {
		return fmt.Errorf("%w: certificate key is %s, private key is %s",
			ErrCertificateKeyMismatch, cert.PublicKeyAlgorithm(), k.algorithm)
	}

	switch params := cert.PublicKey().(type) {
	case *x509certs.RSAParameters:
		if params.Modulus.Cmp(k.rsa.N) != 0 || params.Exponent.Int64() != int64(k.rsa.E) {
			return fmt.Errorf("%w: RSA public key differs", ErrCertificateKeyMismatch)
		}
	case *x509certs.DSAParameters:
		if params.Y.Cmp(k.dsa.Y) != 0 || params.P.Cmp(k.dsa.P) != 0 {
			return fmt.Errorf("%w: DSA public key differs", ErrCertificateKeyMismatch)
		}
	}
	return nil
}
