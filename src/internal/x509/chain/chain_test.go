// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain_test

import (
	"bytes"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/json"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/jmhodges/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/tls-cert-verifier/src/internal/testutil"
	x509certs "github.com/H0llyW00dzZ/tls-cert-verifier/src/internal/x509/certs"
	x509chain "github.com/H0llyW00dzZ/tls-cert-verifier/src/internal/x509/chain"
	"github.com/H0llyW00dzZ/tls-cert-verifier/src/logger"
)

// Test certificate from www.google.com (valid until December 15, 2025)
// Retrieved: October 16, 2025
const testCertPEM = `
-----BEGIN CERTIFICATE-----
MIIEVzCCAz+gAwIBAgIQXEsKucZT6MwJr/NcaQmnozANBgkqhkiG9w0BAQsFADA7
MQswCQYDVQQGEwJVUzEeMBwGA1UEChMVR29vZ2xlIFRydXN0IFNlcnZpY2VzMQww
CgYDVQQDEwNXUjIwHhcNMjUwOTIyMDg0MjQwWhcNMjUxMjE1MDg0MjM5WjAZMRcw
FQYDVQQDEw53d3cuZ29vZ2xlLmNvbTBZMBMGByqGSM49AgEGCCqGSM49AwEHA0IA
BM3QmmV89za/vDWm/Ctodj6J5s0RLy5fo5QsoGRdMlzItH3jBRpmdWEMysalvQtm
aLGUUvJv5ASJHKfixPD3LWijggJCMIICPjAOBgNVHQ8BAf8EBAMCB4AwEwYDVR0l
BAwwCgYIKwYBBQUHAwEwDAYDVR0TAQH/BAIwADAdBgNVHQ4EFgQUUYk76ccIt4qc
kyjMh0xUc5iMmTIwHwYDVR0jBBgwFoAU3hse7XkV1D43JMMhu+w0OW1CsjAwWAYI
KwYBBQUHAQEETDBKMCEGCCsGAQUFBzABhhVodHRwOi8vby5wa2kuZ29vZy93cjIw
JQYIKwYBBQUHMAKGGWh0dHA6Ly9pLnBraS5nb29nL3dyMi5jcnQwGQYDVR0RBBIw
EIIOd3d3Lmdvb2dsZS5jb20wEwYDVR0gBAwwCjAIBgZngQwBAgEwNgYDVR0fBC8w
LTAroCmgJ4YlaHR0cDovL2MucGtpLmdvb2cvd3IyL0dTeVQxTjRQQnJnLmNybDCC
AQUGCisGAQQB1nkCBAIEgfYEgfMA8QB2AN3cyjSV1+EWBeeVMvrHn/g9HFDf2wA6
FBJ2Ciysu8gqAAABmXDN1WkAAAQDAEcwRQIgdH62Tub0woIi1sa+gQHvdMpNlfa6
WQgVn2Ov2CM0ktkCIQDyivdzECaAyaCq8GG+EtKWge4nLJ8FM++Q5WVQD9kCUgB3
AMz7D2qFcQll/pWbU87psnwi6YVcDZeNtql+VMD+TA2wAAABmXDN1WgAAAQDAEgw
RgIhAPNnKBAUSFiPjBYsu9A+UlI8ykhnoaZiFMhaDvrHGMKvAiEA02wfQcWu2753
HW54J/Iyeak0ni5z8jqayf1Rd5518Q0wDQYJKoZIhvcNAQELBQADggEBAAqYHEc6
CiVjrSPb0E4QSHYZIbqpHSYnOs8OQ7T54QM8yoMWOb4tWaMZGwdZayaL6ehyYKzS
8lhyxL4OPN9E51//mScXtemV4EbgrDm0fk3uH0gAX3oP+0DZH4X7t7L9aO8nalSl
KGJvEoHrphu2HbkAJY9OUqUo804OjXHeiY3FLUkoER7hb89w1qcaWxjRrVfflJ/Q
0pJCjtltJFSBTZbM6t0Y0uir9/XNPHcec4nMSyp3W/UEmcAoKc3kDJrT6CE2l2lI
Dd4Zns+bUA5A9z1Qy5c9MKX6I3rsHmUNUhGRz/lCyJDdc6UNoGKPmilI98JSRZYY
tXHHbX1dudpKfHM=
-----END CERTIFICATE-----
`

func build(t *testing.T, issued *testutil.Issued) *x509certs.Certificate {
	t.Helper()
	cert, err := x509certs.Build(issued.DER)
	require.NoError(t, err)
	return cert
}

func certs(t *testing.T, issued ...*testutil.Issued) []*x509certs.Certificate {
	t.Helper()
	out := make([]*x509certs.Certificate, 0, len(issued))
	for _, i := range issued {
		out = append(out, build(t, i))
	}
	return out
}

// pki is a three level hierarchy: root, intermediate and leaf.
type pki struct {
	root, intermediate, leaf *testutil.Issued
}

func newPKI(t *testing.T) pki {
	t.Helper()
	root := testutil.SelfSigned(t, testutil.Options{
		Subject:  pkix.Name{CommonName: "Test Root CA", Organization: []string{"Verifier Tests"}},
		IsCA:     true,
		KeyUsage: x509.KeyUsageCertSign | x509.KeyUsageCRLSign,
		KeyIndex: 0,
	})
	intermediate := testutil.Issue(t, testutil.Options{
		Subject:  pkix.Name{CommonName: "Test Intermediate CA"},
		IsCA:     true,
		KeyUsage: x509.KeyUsageCertSign | x509.KeyUsageCRLSign,
		KeyIndex: 1,
	}, root)
	leaf := testutil.Issue(t, testutil.Options{
		Subject:  pkix.Name{CommonName: "www.example.com"},
		DNSNames: []string{"www.example.com"},
		KeyUsage: x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment,
		KeyIndex: 2,
	}, intermediate)
	return pki{root: root, intermediate: intermediate, leaf: leaf}
}

func TestVerify(t *testing.T) {
	p := newPKI(t)

	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Empty Chain",
			testFunc: func(t *testing.T) {
				status := x509chain.Verify(nil, certs(t, p.root), nil, 0)
				assert.Equal(t, x509chain.StatusNone, status)
				assert.False(t, status.Trusted())
			},
		},
		{
			name: "Self-Signed Anchor",
			testFunc: func(t *testing.T) {
				root := certs(t, p.root)
				status := x509chain.Verify(root, root, nil, 0)
				assert.Equal(t, x509chain.StatusTrusted, status)
			},
		},
		{
			name: "Full Chain",
			testFunc: func(t *testing.T) {
				status := x509chain.Verify(certs(t, p.leaf, p.intermediate), certs(t, p.root), nil, 0)
				assert.Equal(t, x509chain.StatusTrusted, status)
			},
		},
		{
			name: "Leaf Only With Intermediate Anchor",
			testFunc: func(t *testing.T) {
				status := x509chain.Verify(certs(t, p.leaf), certs(t, p.intermediate), nil, 0)
				assert.Equal(t, x509chain.StatusTrusted, status)
			},
		},
		{
			name: "Missing Issuer",
			testFunc: func(t *testing.T) {
				status := x509chain.Verify(certs(t, p.leaf, p.intermediate), nil, nil, 0)
				assert.True(t, status.Has(x509chain.StatusSignerNotFound))
				assert.False(t, status.Has(x509chain.StatusTrusted))
			},
		},
		{
			name: "Unrelated Anchor",
			testFunc: func(t *testing.T) {
				other := testutil.SelfSigned(t, testutil.Options{
					Subject: pkix.Name{CommonName: "Other Root"},
					IsCA:    true,
				})
				status := x509chain.Verify(certs(t, p.leaf, p.intermediate), certs(t, other), nil, 0)
				assert.Equal(t, x509chain.StatusSignerNotFound, status)
			},
		},
		{
			name: "Broken Link In Chain",
			testFunc: func(t *testing.T) {
				// The leaf is not issued by the root, so the link leaf -> root fails.
				status := x509chain.Verify(certs(t, p.leaf, p.root), certs(t, p.root), nil, 0)
				assert.True(t, status.Has(x509chain.StatusInvalid))
				assert.False(t, status.Has(x509chain.StatusTrusted))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

func TestVerifyValidity(t *testing.T) {
	p := newPKI(t)
	chain := certs(t, p.leaf, p.intermediate)
	anchors := certs(t, p.root)

	tests := []struct {
		name  string
		shift time.Duration
		want  x509chain.Status
	}{
		{name: "Current", want: x509chain.StatusTrusted},
		{name: "Expired", shift: 72 * time.Hour, want: x509chain.StatusExpired},
		{name: "Not Yet Active", shift: -72 * time.Hour, want: x509chain.StatusNotActivated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := clock.NewFake()
			fc.Set(time.Now().Add(tt.shift))
			v := x509chain.NewVerifier(0)
			v.Clock = fc
			assert.Equal(t, tt.want, v.Verify(chain, anchors, nil))
		})
	}

	t.Run("Expired Leaf Only", func(t *testing.T) {
		issued := testutil.Issue(t, testutil.Options{
			Subject:   pkix.Name{CommonName: "expired.example.com"},
			NotBefore: time.Now().Add(-48 * time.Hour),
			NotAfter:  time.Now().Add(-24 * time.Hour),
			KeyIndex:  2,
		}, p.intermediate)

		res := x509chain.NewVerifier(0).VerifyDetailed(certs(t, issued, p.intermediate), anchors, nil)
		assert.Equal(t, x509chain.StatusExpired, res.Status)
		assert.Equal(t, x509chain.StatusExpired, res.Certificates[0])
		assert.Zero(t, res.Certificates[1])
	})

	t.Run("Malformed Validity", func(t *testing.T) {
		key := testutil.RSAKey(t, 0)
		name := pkix.Name{CommonName: "Malformed Validity CA"}
		bc := testutil.Extension(t, testutil.OIDBasicConstraints, true, struct{ IsCA bool }{true})

		tests := []struct {
			name      string
			notBefore string
			notAfter  string
		}{
			{name: "Not Before", notBefore: "261301000000Z", notAfter: "361019000000Z"},
			{name: "Not After", notBefore: "160101000000Z", notAfter: "361332000000Z"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				issued := testutil.RawRSA(t, testutil.Raw{
					Version:     2,
					Issuer:      name,
					Subject:     name,
					Extensions:  []pkix.Extension{bc},
					RawValidity: testutil.Validity(t, testutil.UTCTime(tt.notBefore), testutil.UTCTime(tt.notAfter)),
				}, &key.PublicKey, key)

				root := certs(t, issued)
				res := x509chain.NewVerifier(0).VerifyDetailed(root, root, nil)
				assert.Equal(t, x509chain.StatusNotActivated|x509chain.StatusExpired, res.Status)
				assert.Equal(t, x509chain.StatusNotActivated|x509chain.StatusExpired, res.Certificates[0])
			})
		}
	})

	t.Run("Failures Combine", func(t *testing.T) {
		fc := clock.NewFake()
		fc.Set(time.Now())
		fc.Add(72 * time.Hour)
		v := x509chain.NewVerifier(0)
		v.Clock = fc
		status := v.Verify(chain, nil, nil)
		assert.Equal(t, x509chain.StatusExpired|x509chain.StatusSignerNotFound, status)
	})
}

func TestVerifyCAChecks(t *testing.T) {
	root := testutil.SelfSigned(t, testutil.Options{
		Subject: pkix.Name{CommonName: "CA Checks Root"},
		IsCA:    true,
	})
	notCA := testutil.Issue(t, testutil.Options{
		Subject:  pkix.Name{CommonName: "Not A CA"},
		KeyIndex: 1,
	}, root)
	noConstraints := testutil.Issue(t, testutil.Options{
		Subject:            pkix.Name{CommonName: "No Basic Constraints"},
		NoBasicConstraints: true,
		KeyIndex:           1,
	}, root)
	leafOfNotCA := testutil.Issue(t, testutil.Options{Subject: pkix.Name{CommonName: "leaf-a"}, KeyIndex: 2}, notCA)
	leafOfNoConstraints := testutil.Issue(t, testutil.Options{Subject: pkix.Name{CommonName: "leaf-b"}, KeyIndex: 2}, noConstraints)

	tests := []struct {
		name   string
		chain  []*testutil.Issued
		anchor *testutil.Issued
		flags  x509chain.Flags
		want   x509chain.Status
	}{
		{name: "Signer Not CA", chain: []*testutil.Issued{leafOfNotCA, notCA}, anchor: root, want: x509chain.StatusSignerNotCA},
		{name: "Signer Without Basic Constraints", chain: []*testutil.Issued{leafOfNoConstraints, noConstraints}, anchor: root, want: x509chain.StatusSignerNotCA},
		{name: "Disable CA Sign", chain: []*testutil.Issued{leafOfNotCA, notCA}, anchor: root, flags: x509chain.FlagDisableCASign, want: x509chain.StatusTrusted},
		{name: "Non-CA Anchor", chain: []*testutil.Issued{leafOfNotCA}, anchor: notCA, want: x509chain.StatusSignerNotCA},
		{name: "Non-CA Anchor Allowed", chain: []*testutil.Issued{leafOfNotCA}, anchor: notCA, flags: x509chain.FlagDisableCASign, want: x509chain.StatusTrusted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := x509chain.Verify(certs(t, tt.chain...), certs(t, tt.anchor), nil, tt.flags)
			assert.Equal(t, tt.want, status)
		})
	}
}

func TestVerifyVersion1CA(t *testing.T) {
	caKey := testutil.RSAKey(t, 0)
	leafKey := testutil.RSAKey(t, 1)
	caName := pkix.Name{CommonName: "Legacy V1 CA"}

	ca := testutil.RawRSA(t, testutil.Raw{Version: 0, Issuer: caName, Subject: caName}, &caKey.PublicKey, caKey)
	leaf := testutil.RawRSA(t, testutil.Raw{
		Version: 2,
		Issuer:  caName,
		Subject: pkix.Name{CommonName: "legacy.example.com"},
	}, &leafKey.PublicKey, caKey)

	chain := certs(t, leaf)
	anchors := certs(t, ca)
	require.Equal(t, 1, anchors[0].Version())

	assert.Equal(t, x509chain.StatusInvalid, x509chain.Verify(chain, anchors, nil, 0))
	assert.Equal(t, x509chain.StatusTrusted, x509chain.Verify(chain, anchors, nil, x509chain.FlagAllowX509V1CACrt))
	assert.Equal(t, x509chain.StatusInvalid, x509chain.Verify(chain, anchors, nil, x509chain.FlagDisableCASign))
}

func TestVerifySignatures(t *testing.T) {
	p := newPKI(t)

	t.Run("Anchor With Same Name Different Key", func(t *testing.T) {
		impostor := testutil.SelfSigned(t, testutil.Options{
			Subject:  p.root.Cert.Subject,
			IsCA:     true,
			KeyIndex: 3,
		})
		chain := certs(t, p.leaf, p.intermediate)

		status := x509chain.Verify(chain, certs(t, impostor), nil, 0)
		assert.Equal(t, x509chain.StatusInvalid, status)

		res := x509chain.NewVerifier(0).VerifyDetailed(chain, certs(t, impostor, p.root), nil)
		assert.Equal(t, x509chain.StatusTrusted, res.Status)
		require.NotNil(t, res.Anchor)
		assert.True(t, res.Anchor.Equal(build(t, p.root)))
	})

	t.Run("Tampered Signature", func(t *testing.T) {
		der := bytes.Clone(p.leaf.DER)
		der[len(der)-1] ^= 0xff
		tampered, err := x509certs.Build(der)
		require.NoError(t, err)

		status := x509chain.Verify([]*x509certs.Certificate{tampered}, certs(t, p.intermediate), nil, 0)
		assert.Equal(t, x509chain.StatusInvalid, status)
	})

	t.Run("DSA Self-Signed", func(t *testing.T) {
		key := testutil.DSAKey(t)
		name := pkix.Name{CommonName: "DSA Root"}
		issued := testutil.SelfSignedDSA(t, testutil.Raw{
			Version: 2,
			Issuer:  name,
			Subject: name,
			Extensions: []pkix.Extension{
				testutil.Extension(t, testutil.OIDBasicConstraints, true, struct{ IsCA bool }{true}),
			},
		}, key)

		assert.Same(t, key, issued.DSAKey)
		assert.Nil(t, issued.Key)

		root := certs(t, issued)
		require.Equal(t, x509certs.DSA, root[0].PublicKeyAlgorithm())
		assert.NoError(t, x509chain.PublicKeyChecker{}.CheckSignature(root[0], root[0]))
		assert.Equal(t, x509chain.StatusTrusted, x509chain.Verify(root, root, nil, 0))
	})

	t.Run("Unsupported Signer Key", func(t *testing.T) {
		google, err := x509certs.New().Decode([]byte(testCertPEM))
		require.NoError(t, err)

		err = x509chain.PublicKeyChecker{}.CheckSignature(google, google)
		assert.ErrorIs(t, err, x509chain.ErrUnsupportedSignature)
	})
}

func TestVerifyRevocation(t *testing.T) {
	p := newPKI(t)
	chain := certs(t, p.leaf, p.intermediate)
	anchors := certs(t, p.root)

	revokeLeaf, err := x509chain.ParseRevocationList(testutil.CRL(t, p.intermediate, p.leaf.Cert.SerialNumber))
	require.NoError(t, err)
	revokeOther, err := x509chain.ParseRevocationList(testutil.CRL(t, p.intermediate, big.NewInt(1)))
	require.NoError(t, err)
	revokeIntermediate, err := x509chain.ParseRevocationList(testutil.CRL(t, p.root, p.intermediate.Cert.SerialNumber))
	require.NoError(t, err)

	tests := []struct {
		name     string
		crls     []*x509chain.RevocationList
		want     x509chain.Status
		wantLeaf string
	}{
		{name: "No Lists", want: x509chain.StatusTrusted, wantLeaf: x509chain.RevocationUnknown},
		{name: "Leaf Revoked", crls: []*x509chain.RevocationList{revokeLeaf}, want: x509chain.StatusRevoked, wantLeaf: x509chain.RevocationRevoked},
		{name: "Other Serial Revoked", crls: []*x509chain.RevocationList{revokeOther}, want: x509chain.StatusTrusted, wantLeaf: x509chain.RevocationGood},
		{name: "Intermediate Revoked", crls: []*x509chain.RevocationList{revokeOther, revokeIntermediate}, want: x509chain.StatusRevoked, wantLeaf: x509chain.RevocationGood},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := x509chain.NewVerifier(0).VerifyDetailed(chain, anchors, tt.crls)
			assert.Equal(t, tt.want, res.Status)
			assert.Equal(t, tt.wantLeaf, res.Revocation[0])
		})
	}
}

func TestRevocationList(t *testing.T) {
	p := newPKI(t)
	crlPEM := testutil.CRL(t, p.root, p.intermediate.Cert.SerialNumber, big.NewInt(42))

	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Parse PEM",
			testFunc: func(t *testing.T) {
				l, err := x509chain.ParseRevocationList(crlPEM)
				require.NoError(t, err)
				assert.Equal(t, 2, l.Len())
				assert.Equal(t, p.root.Cert.RawSubject, l.Issuer())
				assert.True(t, l.NextUpdate().After(l.ThisUpdate()))
				assert.True(t, l.IsRevoked(build(t, p.intermediate)))
				assert.False(t, l.IsRevoked(build(t, p.leaf)))
			},
		},
		{
			name: "Parse Bundle",
			testFunc: func(t *testing.T) {
				bundle := append(bytes.Clone(crlPEM), testutil.CRL(t, p.intermediate)...)
				lists, err := x509chain.ParseRevocationLists(bundle)
				require.NoError(t, err)
				assert.Len(t, lists, 2)
				assert.Zero(t, lists[1].Len())
			},
		},
		{
			name: "Wrong Block Type",
			testFunc: func(t *testing.T) {
				_, err := x509chain.ParseRevocationList(p.root.PEM())
				assert.ErrorIs(t, err, x509chain.ErrParseCRL)
			},
		},
		{
			name: "Garbage",
			testFunc: func(t *testing.T) {
				_, err := x509chain.ParseRevocationList([]byte("not a crl"))
				assert.ErrorIs(t, err, x509chain.ErrParseCRL)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

func TestStatusAndFlags(t *testing.T) {
	assert.Equal(t, x509chain.Status(1), x509chain.StatusTrusted)
	assert.Equal(t, x509chain.Status(128), x509chain.StatusNone)
	assert.Equal(t, "INVALID|EXPIRED", (x509chain.StatusInvalid | x509chain.StatusExpired).String())
	assert.Equal(t, "TRUSTED", x509chain.StatusTrusted.String())
	assert.Equal(t, "0", x509chain.Status(0).String())
	assert.Equal(t, "NONE|0x100", (x509chain.StatusNone | 256).String())
	assert.False(t, (x509chain.StatusTrusted | x509chain.StatusRevoked).Trusted())

	flags, err := x509chain.ParseFlags([]string{"disable-ca-sign", " ALLOW-X509-V1-CA-CRT "})
	require.NoError(t, err)
	assert.Equal(t, x509chain.Flags(3), flags)

	_, err = x509chain.ParseFlags([]string{"strict"})
	assert.ErrorIs(t, err, x509chain.ErrUnknownFlag)
}

func TestVerifierLogsFailures(t *testing.T) {
	p := newPKI(t)

	var buf bytes.Buffer
	log := logger.NewCLILogger()
	log.SetOutput(&buf)

	v := x509chain.NewVerifier(0)
	v.Logger = log
	v.Verify(certs(t, p.leaf, p.intermediate), nil, nil)

	assert.Contains(t, buf.String(), "no trusted issuer")
	assert.Contains(t, buf.String(), "Test Intermediate CA")
}

func TestVisualization(t *testing.T) {
	p := newPKI(t)
	res := x509chain.NewVerifier(0).VerifyDetailed(certs(t, p.leaf, p.intermediate), certs(t, p.root), nil)
	require.Equal(t, x509chain.StatusTrusted, res.Status)
	require.Len(t, res.Path(), 3)

	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "ASCII Tree",
			testFunc: func(t *testing.T) {
				tree := res.RenderASCIITree()
				lines := strings.Split(strings.TrimSpace(tree), "\n")
				require.Len(t, lines, 3)
				assert.True(t, strings.HasPrefix(lines[0], "├── [✓] www.example.com"))
				assert.Contains(t, lines[1], "Intermediate CA Certificate")
				assert.True(t, strings.HasPrefix(lines[2], "└── [✓] Test Root CA (Trust Anchor)"))
			},
		},
		{
			name: "Table",
			testFunc: func(t *testing.T) {
				table := res.RenderTable()
				assert.Contains(t, table, "End-Entity (Server/Leaf) Certificate")
				assert.Contains(t, table, "2048-bit RSA")
				assert.Contains(t, table, "Trust Anchor")
			},
		},
		{
			name: "JSON",
			testFunc: func(t *testing.T) {
				data, err := res.ToVisualizationJSON()
				require.NoError(t, err)

				var decoded struct {
					Status       string `json:"status"`
					ChainLength  int    `json:"chainLength"`
					Certificates []struct {
						Role               string   `json:"role"`
						SignatureAlgorithm string   `json:"signatureAlgorithm"`
						KeySize            int      `json:"keySize"`
						Anchor             bool     `json:"anchor"`
						Status             []string `json:"status"`
					} `json:"certificates"`
					Relationships []struct {
						FromIndex int `json:"fromIndex"`
						ToIndex   int `json:"toIndex"`
					} `json:"relationships"`
				}
				require.NoError(t, json.Unmarshal(data, &decoded))
				assert.Equal(t, "TRUSTED", decoded.Status)
				assert.Equal(t, 2, decoded.ChainLength)
				require.Len(t, decoded.Certificates, 3)
				assert.Equal(t, "sha256WithRSAEncryption", decoded.Certificates[0].SignatureAlgorithm)
				assert.Equal(t, 2048, decoded.Certificates[0].KeySize)
				assert.True(t, decoded.Certificates[2].Anchor)
				assert.Empty(t, decoded.Certificates[0].Status)
				assert.Len(t, decoded.Relationships, 2)
			},
		},
		{
			name: "Failed Chain",
			testFunc: func(t *testing.T) {
				failed := x509chain.NewVerifier(0).VerifyDetailed(certs(t, p.leaf, p.intermediate), nil, nil)
				tree := failed.RenderASCIITree()
				assert.Contains(t, tree, "[✗] Test Intermediate CA")
				assert.Contains(t, tree, "SIGNER_NOT_FOUND")
			},
		},
		{
			name: "Empty",
			testFunc: func(t *testing.T) {
				empty := x509chain.NewVerifier(0).VerifyDetailed(nil, nil, nil)
				assert.Equal(t, "No certificates in chain", empty.RenderASCIITree())
				assert.Equal(t, "No certificates to display", empty.RenderTable())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

var _ x509chain.SignatureChecker = x509chain.PublicKeyChecker{}
