// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package testutil generates certificates, keys and revocation lists for tests.
//
// RSA material is produced with [crypto/x509]. Structures that the standard
// library refuses to emit (version 1 certificates, DSA subjects or signers)
// are assembled with [encoding/asn1] and signed by hand.
package testutil

import (
	"crypto"
	"crypto/dsa"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/asn1"
	"encoding/pem"
	"math/big"
	"net"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// Well-known OIDs used when hand-assembling certificates.
var (
	OIDRSAEncryption    = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 1}
	OIDSHA256WithRSA    = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 11}
	OIDDSA              = asn1.ObjectIdentifier{1, 2, 840, 10040, 4, 1}
	OIDDSAWithSHA1      = asn1.ObjectIdentifier{1, 2, 840, 10040, 4, 3}
	OIDSubjectAltName   = asn1.ObjectIdentifier{2, 5, 29, 17}
	OIDKeyUsage         = asn1.ObjectIdentifier{2, 5, 29, 15}
	OIDBasicConstraints = asn1.ObjectIdentifier{2, 5, 29, 19}
)

var (
	rsaKeys    [4]*rsa.PrivateKey
	rsaKeysMu  sync.Mutex
	nextSerial atomic.Int64

	dsaOnce sync.Once
	dsaKey  *dsa.PrivateKey
)

func init() { nextSerial.Store(1000) }

// RSAKey returns the i-th cached 2048-bit test key. Keys are generated lazily
// and shared across tests to keep the suite fast.
func RSAKey(tb testing.TB, i int) *rsa.PrivateKey {
	tb.Helper()
	rsaKeysMu.Lock()
	defer rsaKeysMu.Unlock()
	if rsaKeys[i] == nil {
		k, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			tb.Fatalf("rsa.GenerateKey: %v", err)
		}
		rsaKeys[i] = k
	}
	return rsaKeys[i]
}

// DSAKey returns a cached L1024N160 DSA key.
func DSAKey(tb testing.TB) *dsa.PrivateKey {
	tb.Helper()
	var err error
	dsaOnce.Do(func() {
		k := new(dsa.PrivateKey)
		if err = dsa.GenerateParameters(&k.Parameters, rand.Reader, dsa.L1024N160); err != nil {
			return
		}
		if err = dsa.GenerateKey(k, rand.Reader); err != nil {
			return
		}
		dsaKey = k
	})
	if dsaKey == nil {
		tb.Fatalf("dsa key generation failed: %v", err)
	}
	return dsaKey
}

// Serial returns a fresh positive serial number.
func Serial() *big.Int { return big.NewInt(nextSerial.Add(1)) }

// Options describes a certificate issued with [Issue] or [SelfSigned].
type Options struct {
	Subject   pkix.Name
	DNSNames  []string
	Emails    []string
	IPs       []net.IP
	IsCA      bool
	KeyUsage  x509.KeyUsage
	NotBefore time.Time
	NotAfter  time.Time
	Serial    *big.Int
	// KeyIndex selects the cached RSA key used as the subject key.
	KeyIndex int
	// NoBasicConstraints omits the basicConstraints extension entirely.
	NoBasicConstraints bool
	MaxPathLen         int
}

// Issued is a certificate together with the key that certifies it.
type Issued struct {
	Cert *x509.Certificate
	DER  []byte
	Key  crypto.Signer
	// DSAKey is set instead of Key for DSA-signed certificates.
	DSAKey *dsa.PrivateKey
}

// PEM returns the certificate in PEM form.
func (i *Issued) PEM() []byte { return CertPEM(i.DER) }

func (o Options) template() *x509.Certificate {
	notBefore, notAfter := o.NotBefore, o.NotAfter
	if notBefore.IsZero() {
		notBefore = time.Now().Add(-time.Hour).UTC().Truncate(time.Second)
	}
	if notAfter.IsZero() {
		notAfter = time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	}
	serial := o.Serial
	if serial == nil {
		serial = Serial()
	}
	tmpl := &x509.Certificate{
		SerialNumber:          serial,
		Subject:               o.Subject,
		NotBefore:             notBefore,
		NotAfter:              notAfter,
		DNSNames:              o.DNSNames,
		EmailAddresses:        o.Emails,
		IPAddresses:           o.IPs,
		KeyUsage:              o.KeyUsage,
		IsCA:                  o.IsCA,
		BasicConstraintsValid: !o.NoBasicConstraints,
		MaxPathLen:            o.MaxPathLen,
	}
	if !o.IsCA {
		tmpl.MaxPathLen = -1
	}
	return tmpl
}

// SelfSigned creates a self-signed RSA certificate.
func SelfSigned(tb testing.TB, o Options) *Issued {
	tb.Helper()
	key := RSAKey(tb, o.KeyIndex)
	tmpl := o.template()
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		tb.Fatalf("CreateCertificate: %v", err)
	}
	return parsed(tb, der, key)
}

// Issue creates an RSA certificate for o signed by parent.
func Issue(tb testing.TB, o Options, parent *Issued) *Issued {
	tb.Helper()
	key := RSAKey(tb, o.KeyIndex)
	der, err := x509.CreateCertificate(rand.Reader, o.template(), parent.Cert, &key.PublicKey, parent.Key)
	if err != nil {
		tb.Fatalf("CreateCertificate: %v", err)
	}
	return parsed(tb, der, key)
}

func parsed(tb testing.TB, der []byte, key crypto.Signer) *Issued {
	tb.Helper()
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		tb.Fatalf("ParseCertificate: %v", err)
	}
	return &Issued{Cert: cert, DER: der, Key: key}
}

// CertPEM wraps each DER certificate in a CERTIFICATE block.
func CertPEM(ders ...[]byte) []byte {
	var out []byte
	for _, der := range ders {
		out = append(out, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})...)
	}
	return out
}

// RSAKeyPEM encodes key as a PKCS#1 "RSA PRIVATE KEY" block.
func RSAKeyPEM(key *rsa.PrivateKey) []byte {
	return pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
}

type dsaPrivateKey struct {
	Version       int
	P, Q, G, Y, X *big.Int
}

// DSAKeyPEM encodes key in the OpenSSL "DSA PRIVATE KEY" layout.
func DSAKeyPEM(tb testing.TB, key *dsa.PrivateKey) []byte {
	tb.Helper()
	der, err := asn1.Marshal(dsaPrivateKey{P: key.P, Q: key.Q, G: key.G, Y: key.Y, X: key.X})
	if err != nil {
		tb.Fatalf("marshal DSA key: %v", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "DSA PRIVATE KEY", Bytes: der})
}

type validity struct {
	NotBefore, NotAfter time.Time
}

type publicKeyInfo struct {
	Algorithm pkix.AlgorithmIdentifier
	PublicKey asn1.BitString
}

type tbsCertificate struct {
	Version            int `asn1:"optional,explicit,default:0,tag:0"`
	SerialNumber       *big.Int
	SignatureAlgorithm pkix.AlgorithmIdentifier
	Issuer             asn1.RawValue
	Validity           asn1.RawValue
	Subject            asn1.RawValue
	PublicKey          publicKeyInfo
	Extensions         []pkix.Extension `asn1:"optional,explicit,tag:3"`
}

type certificate struct {
	TBSCertificate     asn1.RawValue
	SignatureAlgorithm pkix.AlgorithmIdentifier
	SignatureValue     asn1.BitString
}

// Raw describes a certificate assembled field by field.
type Raw struct {
	// Version is the encoded (zero-based) version: 0 for v1, 2 for v3.
	Version    int
	Serial     *big.Int
	Issuer     pkix.Name
	Subject    pkix.Name
	NotBefore  time.Time
	NotAfter   time.Time
	Extensions []pkix.Extension

	// RawIssuer and RawSubject override Issuer and Subject when set.
	RawIssuer  []byte
	RawSubject []byte
	// RawValidity overrides NotBefore and NotAfter with an encoded Validity.
	RawValidity []byte
}

// RawRSA assembles a certificate for the RSA subject key and signs it with
// signer using sha256WithRSAEncryption.
func RawRSA(tb testing.TB, r Raw, subject *rsa.PublicKey, signer *rsa.PrivateKey) *Issued {
	tb.Helper()
	spki := publicKeyInfo{
		Algorithm: pkix.AlgorithmIdentifier{Algorithm: OIDRSAEncryption, Parameters: asn1.NullRawValue},
		PublicKey: bitString(x509.MarshalPKCS1PublicKey(subject)),
	}
	return assemble(tb, r, spki, signer)
}

type dssParms struct {
	P, Q, G *big.Int
}

// RawDSA assembles a certificate carrying the DSA subject key and signs it
// with the RSA signer.
func RawDSA(tb testing.TB, r Raw, subject *dsa.PublicKey, signer *rsa.PrivateKey) *Issued {
	tb.Helper()
	spki := dsaSPKI(tb, subject)
	return assemble(tb, r, spki, signer)
}

// SelfSignedDSA assembles a self-signed DSA certificate using dsaWithSHA1.
func SelfSignedDSA(tb testing.TB, r Raw, key *dsa.PrivateKey) *Issued {
	tb.Helper()
	spki := dsaSPKI(tb, &key.PublicKey)
	sigAlg := pkix.AlgorithmIdentifier{Algorithm: OIDDSAWithSHA1}
	tbs := marshalTBS(tb, r, spki, sigAlg)

	digest := sha1.Sum(tbs)
	rr, ss, err := dsa.Sign(rand.Reader, key, digest[:])
	if err != nil {
		tb.Fatalf("dsa.Sign: %v", err)
	}
	sig, err := asn1.Marshal(struct{ R, S *big.Int }{rr, ss})
	if err != nil {
		tb.Fatalf("marshal DSA signature: %v", err)
	}
	issued := finish(tb, tbs, sigAlg, sig, nil)
	issued.DSAKey = key
	return issued
}

func dsaSPKI(tb testing.TB, pub *dsa.PublicKey) publicKeyInfo {
	tb.Helper()
	params, err := asn1.Marshal(dssParms{P: pub.P, Q: pub.Q, G: pub.G})
	if err != nil {
		tb.Fatalf("marshal Dss-Parms: %v", err)
	}
	y, err := asn1.Marshal(pub.Y)
	if err != nil {
		tb.Fatalf("marshal DSA public key: %v", err)
	}
	return publicKeyInfo{
		Algorithm: pkix.AlgorithmIdentifier{Algorithm: OIDDSA, Parameters: asn1.RawValue{FullBytes: params}},
		PublicKey: bitString(y),
	}
}

func assemble(tb testing.TB, r Raw, spki publicKeyInfo, signer *rsa.PrivateKey) *Issued {
	tb.Helper()
	sigAlg := pkix.AlgorithmIdentifier{Algorithm: OIDSHA256WithRSA, Parameters: asn1.NullRawValue}
	tbs := marshalTBS(tb, r, spki, sigAlg)

	digest := sha256.Sum256(tbs)
	sig, err := rsa.SignPKCS1v15(rand.Reader, signer, crypto.SHA256, digest[:])
	if err != nil {
		tb.Fatalf("SignPKCS1v15: %v", err)
	}
	return finish(tb, tbs, sigAlg, sig, signer)
}

func marshalTBS(tb testing.TB, r Raw, spki publicKeyInfo, sigAlg pkix.AlgorithmIdentifier) []byte {
	tb.Helper()
	issuer, subject := r.RawIssuer, r.RawSubject
	if issuer == nil {
		issuer = marshalName(tb, r.Issuer)
	}
	if subject == nil {
		subject = marshalName(tb, r.Subject)
	}
	serial := r.Serial
	if serial == nil {
		serial = Serial()
	}
	validityDER := r.RawValidity
	if validityDER == nil {
		notBefore, notAfter := r.NotBefore, r.NotAfter
		if notBefore.IsZero() {
			notBefore = time.Now().Add(-time.Hour).UTC().Truncate(time.Second)
		}
		if notAfter.IsZero() {
			notAfter = time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
		}
		var err error
		if validityDER, err = asn1.Marshal(validity{NotBefore: notBefore, NotAfter: notAfter}); err != nil {
			tb.Fatalf("marshal Validity: %v", err)
		}
	}

	tbs, err := asn1.Marshal(tbsCertificate{
		Version:            r.Version,
		SerialNumber:       serial,
		SignatureAlgorithm: sigAlg,
		Issuer:             asn1.RawValue{FullBytes: issuer},
		Validity:           asn1.RawValue{FullBytes: validityDER},
		Subject:            asn1.RawValue{FullBytes: subject},
		PublicKey:          spki,
		Extensions:         r.Extensions,
	})
	if err != nil {
		tb.Fatalf("marshal TBSCertificate: %v", err)
	}
	return tbs
}

func finish(tb testing.TB, tbs []byte, sigAlg pkix.AlgorithmIdentifier, sig []byte, key crypto.Signer) *Issued {
	tb.Helper()
	der, err := asn1.Marshal(certificate{
		TBSCertificate:     asn1.RawValue{FullBytes: tbs},
		SignatureAlgorithm: sigAlg,
		SignatureValue:     bitString(sig),
	})
	if err != nil {
		tb.Fatalf("marshal Certificate: %v", err)
	}
	// crypto/x509 refuses DSA keys in some configurations; the raw DER is
	// what callers rely on.
	cert, _ := x509.ParseCertificate(der)
	return &Issued{Cert: cert, DER: der, Key: key}
}

func marshalName(tb testing.TB, n pkix.Name) []byte {
	tb.Helper()
	der, err := asn1.Marshal(n.ToRDNSequence())
	if err != nil {
		tb.Fatalf("marshal Name: %v", err)
	}
	return der
}

func bitString(b []byte) asn1.BitString {
	return asn1.BitString{Bytes: b, BitLength: 8 * len(b)}
}

// UTCTime returns a UTCTime value carrying s verbatim, malformed or not.
func UTCTime(s string) asn1.RawValue {
	return asn1.RawValue{Class: asn1.ClassUniversal, Tag: asn1.TagUTCTime, Bytes: []byte(s)}
}

// GeneralizedTime returns a GeneralizedTime value carrying s verbatim.
func GeneralizedTime(s string) asn1.RawValue {
	return asn1.RawValue{Class: asn1.ClassUniversal, Tag: asn1.TagGeneralizedTime, Bytes: []byte(s)}
}

// Validity encodes a Validity from two pre-built Time values, for use as
// [Raw.RawValidity].
func Validity(tb testing.TB, notBefore, notAfter asn1.RawValue) []byte {
	tb.Helper()
	der, err := asn1.Marshal(struct{ NotBefore, NotAfter asn1.RawValue }{notBefore, notAfter})
	if err != nil {
		tb.Fatalf("marshal Validity: %v", err)
	}
	return der
}

// Extension marshals value and wraps it as an extension.
func Extension(tb testing.TB, oid asn1.ObjectIdentifier, critical bool, value any) pkix.Extension {
	tb.Helper()
	der, err := asn1.Marshal(value)
	if err != nil {
		tb.Fatalf("marshal extension %v: %v", oid, err)
	}
	return pkix.Extension{Id: oid, Critical: critical, Value: der}
}

// CRL issues a revocation list signed by issuer that revokes serials.
func CRL(tb testing.TB, issuer *Issued, serials ...*big.Int) []byte {
	tb.Helper()
	entries := make([]x509.RevocationListEntry, 0, len(serials))
	for _, s := range serials {
		entries = append(entries, x509.RevocationListEntry{SerialNumber: s, RevocationTime: time.Now().Add(-time.Minute)})
	}
	der, err := x509.CreateRevocationList(rand.Reader, &x509.RevocationList{
		Number:                    Serial(),
		ThisUpdate:                time.Now().Add(-time.Hour),
		NextUpdate:                time.Now().Add(time.Hour),
		RevokedCertificateEntries: entries,
	}, issuer.Cert, issuer.Key)
	if err != nil {
		tb.Fatalf("CreateRevocationList: %v", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "X509 CRL", Bytes: der})
}
