// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"crypto"
	"crypto/dsa"
	_ "crypto/md5"
	"crypto/rsa"
	_ "crypto/sha1"
	_ "crypto/sha256"
	_ "crypto/sha512"
	"fmt"

	asn1tree "github.com/H0llyW00dzZ/tls-cert-verifier/src/internal/asn1/tree"
	x509certs "github.com/H0llyW00dzZ/tls-cert-verifier/src/internal/x509/certs"
)

// SignatureChecker verifies that signer issued cert.
type SignatureChecker interface {
	CheckSignature(cert, signer *x509certs.Certificate) error
}

type signatureAlgorithm struct {
	name string
	hash crypto.Hash
	key  x509certs.PublicKeyAlgorithm
}

var signatureAlgorithms = map[string]signatureAlgorithm{
	"1.2.840.113549.1.1.4":   {"md5WithRSAEncryption", crypto.MD5, x509certs.RSA},
	"1.2.840.113549.1.1.5":   {"sha1WithRSAEncryption", crypto.SHA1, x509certs.RSA},
	"1.2.840.113549.1.1.14":  {"sha224WithRSAEncryption", crypto.SHA224, x509certs.RSA},
	"1.2.840.113549.1.1.11":  {"sha256WithRSAEncryption", crypto.SHA256, x509certs.RSA},
	"1.2.840.113549.1.1.12":  {"sha384WithRSAEncryption", crypto.SHA384, x509certs.RSA},
	"1.2.840.113549.1.1.13":  {"sha512WithRSAEncryption", crypto.SHA512, x509certs.RSA},
	"1.2.840.10040.4.3":      {"dsaWithSHA1", crypto.SHA1, x509certs.DSA},
	"2.16.840.1.101.3.4.3.1": {"dsaWithSHA224", crypto.SHA224, x509certs.DSA},
	"2.16.840.1.101.3.4.3.2": {"dsaWithSHA256", crypto.SHA256, x509certs.DSA},
}

// SignatureAlgorithmName returns the conventional name of a dotted signature
// OID, or the OID itself when unknown.
func SignatureAlgorithmName(oid string) string {
	if alg, ok := signatureAlgorithms[oid]; ok {
		return alg.name
	}
	return oid
}

// PublicKeyChecker verifies RSA PKCS #1 v1.5 and DSA signatures.
type PublicKeyChecker struct{}

// CheckSignature verifies the signature of cert under the public key of signer.
//
// Parameters:
//   - cert: Certificate whose signature is checked
//   - signer: Certificate holding the candidate issuer key
//
// Returns:
//   - error: [ErrUnsupportedSignature] when the algorithm is unknown or does not
//     match the signer key, [ErrSignatureMismatch] when verification fails
func (PublicKeyChecker) CheckSignature(cert, signer *x509certs.Certificate) error {
	oid := cert.SignatureAlgorithm()
	alg, ok := signatureAlgorithms[oid]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedSignature, oid)
	}
	if signer.PublicKeyAlgorithm() != alg.key {
		return fmt.Errorf("%w: %s with %s key", ErrUnsupportedSignature, alg.name, signer.PublicKeyAlgorithm())
	}

	h := alg.hash.New()
	h.Write(cert.RawTBSCertificate())
	digest := h.Sum(nil)

	switch params := signer.PublicKey().(type) {
	case *x509certs.RSAParameters:
		pub, err := params.PublicKey()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrSignatureMismatch, err)
		}
		if err := rsa.VerifyPKCS1v15(pub, alg.hash, digest, cert.Signature()); err != nil {
			return fmt.Errorf("%w: %w", ErrSignatureMismatch, err)
		}
		return nil
	case *x509certs.DSAParameters:
		return verifyDSA(params.PublicKey(), digest, cert.Signature())
	}

	return fmt.Errorf("%w: %s", ErrUnsupportedSignature, oid)
}

func verifyDSA(pub *dsa.PublicKey, digest, sig []byte) error {
	tree, err := asn1tree.Decode(asn1tree.DSASignature, sig)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSignatureMismatch, err)
	}
	r, err := tree.ReadInteger("r")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSignatureMismatch, err)
	}
	s, err := tree.ReadInteger("s")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSignatureMismatch, err)
	}

	// The digest is truncated to the byte length of q.
	if n := (pub.Q.BitLen() + 7) / 8; len(digest) > n {
		digest = digest[:n]
	}
	if !dsa.Verify(pub, digest, r, s) {
		return ErrSignatureMismatch
	}
	return nil
}
