// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"bytes"
	"errors"
	"fmt"

	asn1tree "github.com/H0llyW00dzZ/tls-cert-verifier/src/internal/asn1/tree"
)

// Certificate is an immutable, fully decoded X.509 certificate.
//
// Byte slices returned by accessors are copies; a Certificate may be shared
// freely between goroutines once built.
type Certificate struct {
	raw        []byte
	rawTBS     []byte
	rawSubject []byte
	rawIssuer  []byte

	subject  DistinguishedName
	issuer   DistinguishedName
	validity ValidityPeriod
	version  int
	serial   []byte

	publicKeyOID string
	publicKey    PublicKeyParameters

	signatureAlgorithm string
	signature          []byte

	extensions *ExtensionSet
	usable     bool
}

// Build decodes der into a Certificate.
//
// Every extraction step must succeed; on failure the step's error is
// returned and no certificate is produced. The only exception is an
// unsupported public key algorithm, which yields [UnknownParameters] so that
// name, validity and extension data remain available.
func Build(der []byte) (*Certificate, error) {
	tree, err := asn1tree.Decode(asn1tree.Certificate, der)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrASN1Parsing, err)
	}

	c := &Certificate{raw: bytes.Clone(der)}

	for _, f := range []struct {
		path string
		dst  *[]byte
	}{
		{"tbsCertificate", &c.rawTBS},
		{"tbsCertificate.subject", &c.rawSubject},
		{"tbsCertificate.issuer", &c.rawIssuer},
	} {
		if *f.dst, err = tree.ReadRaw(f.path); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrASN1Parsing, f.path, err)
		}
	}
	if c.serial, err = tree.ReadValue("tbsCertificate.serialNumber"); err != nil {
		return nil, fmt.Errorf("%w: serialNumber: %w", ErrASN1Parsing, err)
	}

	if c.subject, err = ExtractName(tree, "tbsCertificate.subject"); err != nil {
		return nil, err
	}
	if c.issuer, err = ExtractName(tree, "tbsCertificate.issuer"); err != nil {
		return nil, err
	}

	c.validity = ValidityPeriod{
		NotBefore: ExtractTime(tree, "", NotBefore),
		NotAfter:  ExtractTime(tree, "", NotAfter),
	}

	if c.version, err = ExtractVersion(tree, ""); err != nil {
		return nil, err
	}

	if c.publicKeyOID, err = tree.ReadOID("tbsCertificate.subjectPublicKeyInfo.algorithm.algorithm"); err != nil {
		return nil, fmt.Errorf("%w: public key algorithm: %w", ErrASN1Parsing, err)
	}
	c.publicKey, err = ExtractPublicKey(tree, "")
	if err != nil && !errors.Is(err, ErrUnsupportedAlgorithm) {
		return nil, err
	}

	if c.signatureAlgorithm, err = tree.ReadOID("signatureAlgorithm.algorithm"); err != nil {
		return nil, fmt.Errorf("%w: signature algorithm: %w", ErrASN1Parsing, err)
	}
	sig, err := tree.ReadBitString("signature")
	if err != nil {
		return nil, fmt.Errorf("%w: signature: %w", ErrASN1Parsing, err)
	}
	if sig.BitLength%8 != 0 {
		return nil, fmt.Errorf("%w: signature of %d bits is not byte aligned", ErrUnimplementedFeature, sig.BitLength)
	}
	c.signature = sig.Bytes

	if c.extensions, err = ExtractExtensions(tree, ""); err != nil {
		return nil, err
	}

	c.usable = true
	return c, nil
}

// Raw returns the complete DER encoding.
func (c *Certificate) Raw() []byte { return bytes.Clone(c.raw) }

// RawTBSCertificate returns the DER of the signed portion.
func (c *Certificate) RawTBSCertificate() []byte { return bytes.Clone(c.rawTBS) }

// RawSubject returns the DER of the subject Name.
func (c *Certificate) RawSubject() []byte { return bytes.Clone(c.rawSubject) }

// RawIssuer returns the DER of the issuer Name.
func (c *Certificate) RawIssuer() []byte { return bytes.Clone(c.rawIssuer) }

// Subject returns the decoded subject name.
func (c *Certificate) Subject() DistinguishedName { return c.subject }

// Issuer returns the decoded issuer name.
func (c *Certificate) Issuer() DistinguishedName { return c.issuer }

// Validity returns the validity period.
func (c *Certificate) Validity() ValidityPeriod { return c.validity }

// Version returns the one-based version (1, 2 or 3).
func (c *Certificate) Version() int { return c.version }

// SerialNumber returns the serial number exactly as encoded. It is an opaque
// byte string and may exceed any fixed-width integer.
func (c *Certificate) SerialNumber() []byte { return bytes.Clone(c.serial) }

// PublicKeyAlgorithm returns the subject key algorithm.
func (c *Certificate) PublicKeyAlgorithm() PublicKeyAlgorithm { return c.publicKey.Algorithm() }

// PublicKeyOID returns the subject key algorithm OID in dotted form.
func (c *Certificate) PublicKeyOID() string { return c.publicKeyOID }

// PublicKey returns the subject key parameters.
func (c *Certificate) PublicKey() PublicKeyParameters { return c.publicKey }

// SignatureAlgorithm returns the signature algorithm OID in dotted form.
func (c *Certificate) SignatureAlgorithm() string { return c.signatureAlgorithm }

// Signature returns the raw signature bytes.
func (c *Certificate) Signature() []byte { return bytes.Clone(c.signature) }

// Extensions returns the decoded extension set.
func (c *Certificate) Extensions() *ExtensionSet { return c.extensions }

// Usable reports whether every extraction step succeeded.
func (c *Certificate) Usable() bool { return c != nil && c.usable }

// IsCA reports whether basicConstraints marks the certificate as a CA.
func (c *Certificate) IsCA() bool { return c.extensions.IsCA() }

// IsSelfIssued reports whether subject and issuer are byte-identical.
func (c *Certificate) IsSelfIssued() bool { return bytes.Equal(c.rawSubject, c.rawIssuer) }

// Equal reports whether c and other have the same DER encoding.
func (c *Certificate) Equal(other *Certificate) bool {
	if c == nil || other == nil {
		return c == other
	}
	return bytes.Equal(c.raw, other.raw)
}
