// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"crypto/dsa"
	"crypto/rsa"
	"fmt"
	"math/big"

	asn1tree "github.com/H0llyW00dzZ/tls-cert-verifier/src/internal/asn1/tree"
)

// Public key algorithm OIDs.
const (
	OIDPublicKeyRSA = "1.2.840.113549.1.1.1"
	OIDPublicKeyDSA = "1.2.840.10040.4.1"
)

// MaxPublicParams is the number of numeric parameter slots provisioned per key.
const MaxPublicParams = 4

// PublicKeyAlgorithm identifies the algorithm of a subject public key.
type PublicKeyAlgorithm int

const (
	UnknownPublicKeyAlgorithm PublicKeyAlgorithm = iota
	RSA
	DSA
)

func (a PublicKeyAlgorithm) String() string {
	switch a {
	case RSA:
		return "RSA"
	case DSA:
		return "DSA"
	}
	return "Unknown"
}

// paramSlots is the number of numeric parameters each algorithm carries.
var paramSlots = map[PublicKeyAlgorithm]int{
	RSA: 2,
	DSA: 4,
}

// reserveParams returns n empty parameter slots, or [ErrInternalLimits] when
// n exceeds [MaxPublicParams].
func reserveParams(n int) ([]*big.Int, error) {
	if n > MaxPublicParams {
		return nil, fmt.Errorf("%w: %d public key parameters requested, %d provisioned", ErrInternalLimits, n, MaxPublicParams)
	}
	return make([]*big.Int, n), nil
}

// PublicKeyParameters are the numeric parameters of a subject public key.
type PublicKeyParameters interface {
	Algorithm() PublicKeyAlgorithm
	// Count returns the number of numeric parameters.
	Count() int
}

// RSAParameters hold an RSA modulus and public exponent.
type RSAParameters struct {
	Modulus  *big.Int
	Exponent *big.Int
}

func (*RSAParameters) Algorithm() PublicKeyAlgorithm { return RSA }
func (*RSAParameters) Count() int                    { return paramSlots[RSA] }

// PublicKey converts the parameters to a [rsa.PublicKey].
func (p *RSAParameters) PublicKey() (*rsa.PublicKey, error) {
	if !p.Exponent.IsInt64() || p.Exponent.Int64() > 1<<31-1 || p.Exponent.Sign() <= 0 {
		return nil, fmt.Errorf("%w: RSA exponent out of range", ErrUnsupportedAlgorithm)
	}
	return &rsa.PublicKey{N: new(big.Int).Set(p.Modulus), E: int(p.Exponent.Int64())}, nil
}

// DSAParameters hold DSA domain parameters and the public value.
type DSAParameters struct {
	P, Q, G, Y *big.Int
}

func (*DSAParameters) Algorithm() PublicKeyAlgorithm { return DSA }
func (*DSAParameters) Count() int                    { return paramSlots[DSA] }

// PublicKey converts the parameters to a [dsa.PublicKey].
func (p *DSAParameters) PublicKey() *dsa.PublicKey {
	return &dsa.PublicKey{
		Parameters: dsa.Parameters{P: p.P, Q: p.Q, G: p.G},
		Y:          p.Y,
	}
}

// UnknownParameters record the OID of an algorithm without an extractor.
type UnknownParameters struct {
	OID string
}

func (*UnknownParameters) Algorithm() PublicKeyAlgorithm { return UnknownPublicKeyAlgorithm }
func (*UnknownParameters) Count() int                    { return 0 }

// ExtractPublicKey reads the subjectPublicKeyInfo of the certificate at root.
//
// For algorithms other than RSA and DSA it returns [UnknownParameters]
// together with [ErrUnsupportedAlgorithm].
func ExtractPublicKey(tree Tree, root string) (PublicKeyParameters, error) {
	spki := join(root, "tbsCertificate", "subjectPublicKeyInfo")
	oid, err := tree.ReadOID(spki + ".algorithm.algorithm")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrASN1Parsing, spki, err)
	}

	switch oid {
	case OIDPublicKeyRSA:
		return extractRSA(tree, spki)
	case OIDPublicKeyDSA:
		return extractDSA(tree, spki)
	}
	return &UnknownParameters{OID: oid}, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, oid)
}

func subjectKeyBytes(tree Tree, spki string) ([]byte, error) {
	bs, err := tree.ReadBitString(spki + ".subjectPublicKey")
	if err != nil {
		return nil, fmt.Errorf("%w: subjectPublicKey: %w", ErrASN1Parsing, err)
	}
	if bs.BitLength%8 != 0 {
		return nil, fmt.Errorf("%w: subjectPublicKey is not byte aligned", ErrASN1Parsing)
	}
	return bs.Bytes, nil
}

func readIntegers(tree Tree, slots []*big.Int, paths ...string) error {
	for i, p := range paths {
		v, err := tree.ReadInteger(p)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrASN1Parsing, p, err)
		}
		slots[i] = v
	}
	return nil
}

func extractRSA(tree Tree, spki string) (PublicKeyParameters, error) {
	slots, err := reserveParams(paramSlots[RSA])
	if err != nil {
		return nil, err
	}
	der, err := subjectKeyBytes(tree, spki)
	if err != nil {
		return nil, err
	}
	key, err := asn1tree.Decode(asn1tree.RSAPublicKey, der)
	if err != nil {
		return nil, fmt.Errorf("%w: RSAPublicKey: %w", ErrASN1Parsing, err)
	}
	if err := readIntegers(key, slots, "modulus", "publicExponent"); err != nil {
		return nil, err
	}
	return &RSAParameters{Modulus: slots[0], Exponent: slots[1]}, nil
}

func extractDSA(tree Tree, spki string) (PublicKeyParameters, error) {
	slots, err := reserveParams(paramSlots[DSA])
	if err != nil {
		return nil, err
	}

	der, err := subjectKeyBytes(tree, spki)
	if err != nil {
		return nil, err
	}
	pub, err := asn1tree.Decode(asn1tree.DSAPublicKey, der)
	if err != nil {
		return nil, fmt.Errorf("%w: DSAPublicKey: %w", ErrASN1Parsing, err)
	}
	if err := readIntegers(pub, slots[3:], ""); err != nil {
		return nil, err
	}

	raw, err := tree.ReadRaw(spki + ".algorithm.parameters")
	if err != nil {
		return nil, fmt.Errorf("%w: DSA parameters: %w", ErrASN1Parsing, err)
	}
	params, err := asn1tree.Decode(asn1tree.DSSParms, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: Dss-Parms: %w", ErrASN1Parsing, err)
	}
	if err := readIntegers(params, slots, "p", "q", "g"); err != nil {
		return nil, err
	}

	return &DSAParameters{P: slots[0], Q: slots[1], G: slots[2], Y: slots[3]}, nil
}
