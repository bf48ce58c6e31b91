// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package credentials

import (
	"fmt"

	x509certs "github.com/H0llyW00dzZ/tls-cert-verifier/src/internal/x509/certs"
	x509chain "github.com/H0llyW00dzZ/tls-cert-verifier/src/internal/x509/chain"
)

// VerifyPeers verifies a peer chain, leaf first, against the trusted CAs and
// revocation lists of the store.
//
// An empty chain yields [x509chain.StatusNone]. Trust failures are reported
// in the returned status only. The leaf's identity is not checked; use
// [x509certs.CheckHostname] for that.
func (s *Store) VerifyPeers(chain []*x509certs.Certificate) x509chain.Status {
	return s.VerifyPeersDetailed(chain).Status
}

// VerifyPeersDetailed is like [Store.VerifyPeers] but returns the full result.
func (s *Store) VerifyPeersDetailed(chain []*x509certs.Certificate) *x509chain.Result {
	res := s.verifier.VerifyDetailed(chain, s.cas, s.crls)
	if len(chain) > 0 {
		s.log.Printf("verified %s: %s", chain[0].Subject(), res.Status)
	}
	return res
}

// VerifyPeersDER builds each DER certificate as received on the wire and
// verifies the resulting chain.
//
// Returns:
//   - x509chain.Status: Verification status
//   - error: Build error for the first certificate that cannot be decoded
func (s *Store) VerifyPeersDER(raw [][]byte) (x509chain.Status, error) {
	if len(raw) == 0 {
		return x509chain.StatusNone, nil
	}

	chain := make([]*x509certs.Certificate, 0, len(raw))
	for i, der := range raw {
		cert, err := x509certs.Build(der)
		if err != nil {
			return 0, fmt.Errorf("peer certificate %d: %w", i, err)
		}
		chain = append(chain, cert)
	}
	return s.VerifyPeers(chain), nil
}

// VerifyPeersPEM decodes a PEM bundle, leaf first, and verifies it.
func (s *Store) VerifyPeersPEM(data []byte) (*x509chain.Result, error) {
	chain, err := s.decodeChain(data)
	if err != nil {
		return nil, err
	}
	return s.VerifyPeersDetailed(chain), nil
}

// SelectPair returns the first key pair whose leaf suits kx: the key
// algorithm must match and the leaf's key usage must permit the exchange.
//
// Returns:
//   - *Pair: Selected key pair
//   - error: [ErrNoKeyPair] if kx does not use certificates or nothing fits
func (s *Store) SelectPair(kx x509certs.KeyExchange) (*Pair, error) {
	if !kx.CertificateBased() {
		return nil, fmt.Errorf("%w: %s does not use certificates", ErrNoKeyPair, kx)
	}

	for _, p := range s.pairs {
		leaf := p.Leaf()
		if leaf.PublicKeyAlgorithm() != kx.PublicKeyAlgorithm() {
			continue
		}
		if err := x509certs.CheckKeyUsage(leaf, kx); err != nil {
			s.log.Printf("skipping %s for %s: %v", leaf.Subject(), kx, err)
			continue
		}
		return p, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNoKeyPair, kx)
}
