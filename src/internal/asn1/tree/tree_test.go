// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package asn1tree_test

import (
	"crypto/x509/pkix"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	asn1tree "github.com/H0llyW00dzZ/tls-cert-verifier/src/internal/asn1/tree"
	"github.com/H0llyW00dzZ/tls-cert-verifier/src/internal/testutil"
)

func TestDecodeCertificate(t *testing.T) {
	issued := testutil.SelfSigned(t, testutil.Options{
		Subject:  pkix.Name{CommonName: "tree.example", Country: []string{"ID"}},
		DNSNames: []string{"tree.example"},
		IsCA:     true,
	})

	tree, err := asn1tree.Decode(asn1tree.Certificate, issued.DER)
	require.NoError(t, err, "Decode() error")
	assert.Equal(t, asn1tree.Certificate, tree.Structure())

	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Version And Serial",
			testFunc: func(t *testing.T) {
				v, err := tree.ReadInteger("tbsCertificate.version")
				require.NoError(t, err)
				assert.EqualValues(t, 2, v.Int64(), "expected encoded version 2 (v3)")

				serial, err := tree.ReadInteger("tbsCertificate.serialNumber")
				require.NoError(t, err)
				assert.Equal(t, 0, serial.Cmp(issued.Cert.SerialNumber))
			},
		},
		{
			name: "Algorithm OID",
			testFunc: func(t *testing.T) {
				oid, err := tree.ReadOID("tbsCertificate.subjectPublicKeyInfo.algorithm.algorithm")
				require.NoError(t, err)
				assert.Equal(t, "1.2.840.113549.1.1.1", oid)
			},
		},
		{
			name: "Validity Choice",
			testFunc: func(t *testing.T) {
				alt, err := tree.ReadChoice("tbsCertificate.validity.notBefore")
				require.NoError(t, err)
				assert.Equal(t, "utcTime", alt)

				s, err := tree.ReadString("tbsCertificate.validity.notBefore.utcTime")
				require.NoError(t, err)
				assert.Len(t, s, len("YYMMDDhhmmssZ"))

				_, err = tree.ReadString("tbsCertificate.validity.notBefore.generalTime")
				assert.ErrorIs(t, err, asn1tree.ErrValueNotFound)
			},
		},
		{
			name: "RDN Navigation",
			testFunc: func(t *testing.T) {
				n, err := tree.Count("tbsCertificate.subject.rdnSequence")
				require.NoError(t, err)
				assert.Equal(t, 2, n)

				oid, err := tree.ReadOID("tbsCertificate.subject.rdnSequence.?1.?1.type")
				require.NoError(t, err)
				assert.Equal(t, "2.5.4.6", oid)

				raw, err := tree.ReadRaw("tbsCertificate.subject.rdnSequence.?2.?1.value")
				require.NoError(t, err)
				value, err := asn1tree.Decode(asn1tree.DirectoryString, raw)
				require.NoError(t, err)
				cn, err := value.ReadString("printableString")
				require.NoError(t, err)
				assert.Equal(t, "tree.example", cn)
			},
		},
		{
			name: "Missing Elements",
			testFunc: func(t *testing.T) {
				_, err := tree.ReadValue("tbsCertificate.issuerUniqueID")
				assert.ErrorIs(t, err, asn1tree.ErrValueNotFound)

				_, err = tree.ReadValue("tbsCertificate.nonsense")
				assert.ErrorIs(t, err, asn1tree.ErrElementNotFound)

				_, err = tree.ReadValue("tbsCertificate.subject.rdnSequence.?99")
				assert.ErrorIs(t, err, asn1tree.ErrElementNotFound)

				assert.True(t, tree.Exists("tbsCertificate.extensions.?1.extnID"))
				assert.False(t, tree.Exists("tbsCertificate.subjectUniqueID"))
			},
		},
		{
			name: "Type Mismatch",
			testFunc: func(t *testing.T) {
				_, err := tree.ReadOID("tbsCertificate.serialNumber")
				assert.ErrorIs(t, err, asn1tree.ErrTypeMismatch)

				_, err = tree.Count("tbsCertificate.serialNumber")
				assert.ErrorIs(t, err, asn1tree.ErrTypeMismatch)
			},
		},
		{
			name: "Signature Bit String",
			testFunc: func(t *testing.T) {
				bs, err := tree.ReadBitString("signature")
				require.NoError(t, err)
				assert.Equal(t, issued.Cert.Signature, bs.Bytes)
				assert.Equal(t, 8*len(bs.Bytes), bs.BitLength)
			},
		},
		{
			name: "Raw TBS",
			testFunc: func(t *testing.T) {
				raw, err := tree.ReadRaw("tbsCertificate")
				require.NoError(t, err)
				assert.Equal(t, issued.Cert.RawTBSCertificate, raw)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

func TestDecodeSubjectAltName(t *testing.T) {
	issued := testutil.SelfSigned(t, testutil.Options{
		Subject:  pkix.Name{CommonName: "san"},
		DNSNames: []string{"a.example", "b.example"},
		Emails:   []string{"ops@example.com"},
		IPs:      []net.IP{net.IPv4(192, 0, 2, 1)},
	})

	var sanDER []byte
	for _, ext := range issued.Cert.Extensions {
		if ext.Id.String() == "2.5.29.17" {
			sanDER = ext.Value
		}
	}
	require.NotNil(t, sanDER, "certificate must carry a SAN extension")

	tree, err := asn1tree.Decode(asn1tree.SubjectAltName, sanDER)
	require.NoError(t, err)

	n, err := tree.Count("")
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	want := []struct {
		choice string
		value  string
	}{
		{"dNSName", "a.example"},
		{"dNSName", "b.example"},
		{"rfc822Name", "ops@example.com"},
	}
	for i, w := range want {
		path := "?" + string(rune('1'+i))
		alt, err := tree.ReadChoice(path)
		require.NoError(t, err)
		assert.Equal(t, w.choice, alt)

		s, err := tree.ReadString(path + "." + alt)
		require.NoError(t, err)
		assert.Equal(t, w.value, s)
	}

	alt, err := tree.ReadChoice("?4")
	require.NoError(t, err)
	assert.Equal(t, "iPAddress", alt)
	ip, err := tree.ReadValue("?4.iPAddress")
	require.NoError(t, err)
	assert.Equal(t, []byte{192, 0, 2, 1}, ip)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name      string
		structure string
		input     []byte
		expected  error
	}{
		{
			name:      "Unknown Structure",
			structure: "PKIX1.Nope",
			input:     []byte{0x02, 0x01, 0x01},
			expected:  asn1tree.ErrUnknownStructure,
		},
		{
			name:      "Trailing Data",
			structure: asn1tree.DSAPublicKey,
			input:     []byte{0x02, 0x01, 0x01, 0x00},
			expected:  asn1tree.ErrDecoding,
		},
		{
			name:      "Wrong Tag",
			structure: asn1tree.DSAPublicKey,
			input:     []byte{0x04, 0x01, 0x01},
			expected:  asn1tree.ErrDecoding,
		},
		{
			name:      "Truncated",
			structure: asn1tree.RSAPublicKey,
			input:     []byte{0x30, 0x05, 0x02, 0x01},
			expected:  asn1tree.ErrDecoding,
		},
		{
			name:      "Empty",
			structure: asn1tree.Name,
			input:     nil,
			expected:  asn1tree.ErrDecoding,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := asn1tree.Decode(tt.structure, tt.input)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestReadString_Encodings(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		choice   string
		expected string
		wantErr  bool
	}{
		{
			name:     "UTF8String",
			input:    []byte{0x0c, 0x03, 'a', 0xc3, 0xa9},
			choice:   "utf8String",
			expected: "aé",
		},
		{
			name:     "BMPString",
			input:    []byte{0x1e, 0x04, 0x00, 'H', 0x00, 0xe9},
			choice:   "bmpString",
			expected: "Hé",
		},
		{
			name:     "UniversalString",
			input:    []byte{0x1c, 0x04, 0x00, 0x00, 0x00, 'A'},
			choice:   "universalString",
			expected: "A",
		},
		{
			name:     "TeletexString",
			input:    []byte{0x14, 0x02, 'c', 0xe9},
			choice:   "teletexString",
			expected: "cé",
		},
		{
			name:    "Invalid PrintableString",
			input:   []byte{0x13, 0x01, '@'},
			choice:  "printableString",
			wantErr: true,
		},
		{
			name:    "Odd BMPString",
			input:   []byte{0x1e, 0x03, 0x00, 'H', 0x00},
			choice:  "bmpString",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := asn1tree.Decode(asn1tree.DirectoryString, tt.input)
			require.NoError(t, err)

			alt, err := tree.ReadChoice("")
			require.NoError(t, err)
			assert.Equal(t, tt.choice, alt)

			s, err := tree.ReadString(alt)
			if tt.wantErr {
				assert.ErrorIs(t, err, asn1tree.ErrDecoding)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, s)
		})
	}
}

func TestOIDForms(t *testing.T) {
	assert.Equal(t, "2 5 4 3", asn1tree.ArcForm("2.5.4.3"))
	assert.Equal(t, "2.5.4.3", asn1tree.DottedForm("2 5 4 3"))
	assert.Equal(t, "1.2.840.113549.1.1.1", asn1tree.DottedForm(asn1tree.ArcForm("1.2.840.113549.1.1.1")))
	assert.True(t, asn1tree.Registered(asn1tree.Certificate))
	assert.False(t, asn1tree.Registered("PKIX1.Unknown"))
}
