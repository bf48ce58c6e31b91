// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain_test

import (
	"crypto/x509"
	"crypto/x509/pkix"
	"testing"

	"github.com/H0llyW00dzZ/tls-cert-verifier/src/internal/testutil"
	x509certs "github.com/H0llyW00dzZ/tls-cert-verifier/src/internal/x509/certs"
	x509chain "github.com/H0llyW00dzZ/tls-cert-verifier/src/internal/x509/chain"
)

func benchCerts(b *testing.B, issued ...*testutil.Issued) []*x509certs.Certificate {
	b.Helper()
	out := make([]*x509certs.Certificate, 0, len(issued))
	for _, i := range issued {
		cert, err := x509certs.Build(i.DER)
		if err != nil {
			b.Fatalf("Build() error = %v", err)
		}
		out = append(out, cert)
	}
	return out
}

func BenchmarkVerify(b *testing.B) {
	root := testutil.SelfSigned(b, testutil.Options{Subject: pkix.Name{CommonName: "Bench Root"}, IsCA: true})
	intermediate := testutil.Issue(b, testutil.Options{Subject: pkix.Name{CommonName: "Bench Intermediate"}, IsCA: true, KeyIndex: 1}, root)
	leaf := testutil.Issue(b, testutil.Options{Subject: pkix.Name{CommonName: "bench.example.com"}, KeyIndex: 2}, intermediate)

	chain := benchCerts(b, leaf, intermediate)
	anchors := benchCerts(b, root)
	v := x509chain.NewVerifier(0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if status := v.Verify(chain, anchors, nil); status != x509chain.StatusTrusted {
			b.Fatalf("Verify() = %s", status)
		}
	}
}

func BenchmarkVerifyWithRevocation(b *testing.B) {
	root := testutil.SelfSigned(b, testutil.Options{
		Subject:  pkix.Name{CommonName: "Bench Root"},
		IsCA:     true,
		KeyUsage: x509.KeyUsageCertSign | x509.KeyUsageCRLSign,
	})
	leaf := testutil.Issue(b, testutil.Options{Subject: pkix.Name{CommonName: "bench.example.com"}, KeyIndex: 1}, root)

	crl, err := x509chain.ParseRevocationList(testutil.CRL(b, root, testutil.Serial(), testutil.Serial()))
	if err != nil {
		b.Fatalf("ParseRevocationList() error = %v", err)
	}

	chain := benchCerts(b, leaf)
	anchors := benchCerts(b, root)
	crls := []*x509chain.RevocationList{crl}
	v := x509chain.NewVerifier(0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if status := v.Verify(chain, anchors, crls); status != x509chain.StatusTrusted {
			b.Fatalf("Verify() = %s", status)
		}
	}
}

func BenchmarkBuild(b *testing.B) {
	root := testutil.SelfSigned(b, testutil.Options{Subject: pkix.Name{CommonName: "Bench Root"}, IsCA: true})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := x509certs.Build(root.DER); err != nil {
			b.Fatalf("Build() error = %v", err)
		}
	}
}
