// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package credentials

import (
	"bytes"
	"crypto/rsa"
	"crypto/x509"
	"fmt"

	"software.sslmate.com/src/go-pkcs12"

	"github.com/H0llyW00dzZ/tls-cert-verifier/src/internal/helper/gc"
	x509certs "github.com/H0llyW00dzZ/tls-cert-verifier/src/internal/x509/certs"
	x509chain "github.com/H0llyW00dzZ/tls-cert-verifier/src/internal/x509/chain"
	"github.com/H0llyW00dzZ/tls-cert-verifier/src/logger"
)

// MaxFileSize bounds every credential file read by a [Store].
const MaxFileSize = 10 << 20

// Pair is a certificate chain, leaf first, and the private key of its leaf.
type Pair struct {
	Chain []*x509certs.Certificate
	Key   *PrivateKey
}

// Leaf returns the first certificate of the chain.
func (p *Pair) Leaf() *x509certs.Certificate { return p.Chain[0] }

// Store accumulates key pairs, trusted CAs and revocation lists.
type Store struct {
	pairs  []*Pair
	cas    []*x509certs.Certificate
	crls   []*x509chain.RevocationList
	rdnSeq []byte
	rdnErr error

	verifier *x509chain.Verifier
	decoder  *x509certs.Decoder
	log      logger.Logger
}

// New creates an empty Store.
//
// Parameters:
//   - log: Destination for loading and verification messages; nil discards them
//
// Returns:
//   - *Store: Store with no credentials and default verification flags
func New(log logger.Logger) *Store {
	if log == nil {
		log = logger.NewJSONLogger(nil, true)
	}
	v := x509chain.NewVerifier(0)
	v.Logger = log
	return &Store{
		verifier: v,
		decoder:  x509certs.New(),
		log:      log,
	}
}

// SetVerifyFlags replaces the flags used by [Store.VerifyPeers].
func (s *Store) SetVerifyFlags(flags x509chain.Flags) { s.verifier.Flags = flags }

// VerifyFlags returns the flags used by [Store.VerifyPeers].
func (s *Store) VerifyFlags() x509chain.Flags { return s.verifier.Flags }

// Verifier exposes the verifier used by the store, for example to pin its clock.
func (s *Store) Verifier() *x509chain.Verifier { return s.verifier }

// SetKeyPairPEM loads a private key and the certificate chain it belongs to.
//
// The key is decoded first, then every block of certPEM is built in order
// with the leaf first. The pair is stored only when both decode and the
// leaf carries the public half of the key.
//
// Parameters:
//   - certPEM: One or more CERTIFICATE blocks, leaf first
//   - keyPEM: An RSA or DSA private key
//
// Returns:
//   - error: Decoding error, [ErrNoCertificates], or [ErrCertificateKeyMismatch]
func (s *Store) SetKeyPairPEM(certPEM, keyPEM []byte) error {
	key, err := ParsePrivateKeyPEM(keyPEM)
	if err != nil {
		return err
	}

	chain, err := s.decodeChain(certPEM)
	if err != nil {
		return err
	}

	if err := key.Matches(chain[0]); err != nil {
		return err
	}

	s.pairs = append(s.pairs, &Pair{Chain: chain, Key: key})
	s.log.Printf("loaded %s key pair for %s with %d certificate(s)",
		key.Algorithm(), chain[0].Subject(), len(chain))
	return nil
}

// SetKeyPairFile is [Store.SetKeyPairPEM] reading both inputs from files.
func (s *Store) SetKeyPairFile(certFile, keyFile string) error {
	keyPEM, err := gc.ReadFile(keyFile, MaxFileSize)
	if err != nil {
		return err
	}
	certPEM, err := gc.ReadFile(certFile, MaxFileSize)
	if err != nil {
		return err
	}
	return s.SetKeyPairPEM(certPEM, keyPEM)
}

// SetKeyPairPKCS12 loads a key pair from a PKCS #12 (PFX) archive.
//
// The leaf certificate comes first, followed by the CA certificates in the
// order they appear in the archive. Only RSA keys are accepted.
//
// Parameters:
//   - data: DER encoded PFX archive
//   - password: Archive password; empty for passwordless archives
//
// Returns:
//   - error: [ErrInvalidPrivateKey] for an unreadable archive or key type, or [ErrCertificateKeyMismatch]
func (s *Store) SetKeyPairPKCS12(data []byte, password string) error {
	priv, leaf, caCerts, err := pkcs12.DecodeChain(data, password)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPrivateKey, err)
	}

	rsaKey, ok := priv.(*rsa.PrivateKey)
	if !ok {
		return fmt.Errorf("%w: unsupported PKCS #12 key type %T", ErrInvalidPrivateKey, priv)
	}
	key := &PrivateKey{algorithm: x509certs.RSA, rsa: rsaKey}

	chain := make([]*x509certs.Certificate, 0, 1+len(caCerts))
	for i, c := range append([]*x509.Certificate{leaf}, caCerts...) {
		cert, err := x509certs.Build(c.Raw)
		if err != nil {
			return fmt.Errorf("PKCS #12 certificate %d: %w", i, err)
		}
		chain = append(chain, cert)
	}

	if err := key.Matches(chain[0]); err != nil {
		return err
	}

	s.pairs = append(s.pairs, &Pair{Chain: chain, Key: key})
	s.log.Printf("loaded %s key pair for %s from PKCS #12 with %d certificate(s)",
		key.Algorithm(), chain[0].Subject(), len(chain))
	return nil
}

// SetKeyPairPKCS12File is [Store.SetKeyPairPKCS12] reading from a file.
func (s *Store) SetKeyPairPKCS12File(path, password string) error {
	data, err := gc.ReadFile(path, MaxFileSize)
	if err != nil {
		return err
	}
	return s.SetKeyPairPKCS12(data, password)
}

// decodeChain builds every PEM block of data, in order.
func (s *Store) decodeChain(data []byte) ([]*x509certs.Certificate, error) {
	if !bytes.Contains(data, []byte("-----BEGIN")) {
		return nil, ErrNoCertificates
	}
	chain, err := s.decoder.DecodeMultiple(data)
	if err != nil {
		return nil, err
	}
	if len(chain) == 0 {
		return nil, ErrNoCertificates
	}
	return chain, nil
}

// AddTrustPEM appends every certificate in data to the trusted CA list.
//
// Either all certificates are added or, on a decoding error, none. The RDN
// sequence is rebuilt afterwards; if a subject is too large for it the CAs
// stay trusted and the error is returned here and by [Store.RDNSequence].
//
// Returns:
//   - int: Number of certificates added
//   - error: Decoding error, [ErrNoCertificates] or [ErrRDNTooLarge]
func (s *Store) AddTrustPEM(data []byte) (int, error) {
	cas, err := s.decodeChain(data)
	if err != nil {
		return 0, err
	}

	s.cas = append(s.cas, cas...)
	s.log.Printf("added %d trusted CA(s), %d total", len(cas), len(s.cas))

	s.rdnSeq, s.rdnErr = buildRDNSequence(s.cas)
	return len(cas), s.rdnErr
}

// AddTrustFile is [Store.AddTrustPEM] reading from a file.
func (s *Store) AddTrustFile(path string) (int, error) {
	data, err := gc.ReadFile(path, MaxFileSize)
	if err != nil {
		return 0, err
	}
	return s.AddTrustPEM(data)
}

// AddCRLPEM appends every revocation list in data.
//
// Returns:
//   - int: Number of lists added
//   - error: [x509chain.ErrParseCRL] on the first undecodable list; nothing is added
func (s *Store) AddCRLPEM(data []byte) (int, error) {
	lists, err := x509chain.ParseRevocationLists(data)
	if err != nil {
		return 0, err
	}

	s.crls = append(s.crls, lists...)
	s.log.Printf("added %d revocation list(s), %d total", len(lists), len(s.crls))
	return len(lists), nil
}

// AddCRLFile is [Store.AddCRLPEM] reading from a file.
func (s *Store) AddCRLFile(path string) (int, error) {
	data, err := gc.ReadFile(path, MaxFileSize)
	if err != nil {
		return 0, err
	}
	return s.AddCRLPEM(data)
}

// RDNSequence returns the encoded subjects of all trusted CAs, each prefixed
// by its 2-byte big-endian length, in the order the CAs were added.
func (s *Store) RDNSequence() ([]byte, error) {
	if s.rdnErr != nil {
		return nil, s.rdnErr
	}
	return bytes.Clone(s.rdnSeq), nil
}

// Pairs returns the stored key pairs in load order.
func (s *Store) Pairs() []*Pair { return append([]*Pair(nil), s.pairs...) }

// TrustedCAs returns the trusted CA list in load order.
func (s *Store) TrustedCAs() []*x509certs.Certificate {
	return append([]*x509certs.Certificate(nil), s.cas...)
}

// CRLs returns the revocation lists in load order.
func (s *Store) CRLs() []*x509chain.RevocationList {
	return append([]*x509chain.RevocationList(nil), s.crls...)
}

// String summarises the store contents.
func (s *Store) String() string {
	return fmt.Sprintf("credentials: %d key pair(s), %d trusted CA(s), %d CRL(s)",
		len(s.pairs), len(s.cas), len(s.crls))
}
