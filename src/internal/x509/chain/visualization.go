// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	x509certs "github.com/H0llyW00dzZ/tls-cert-verifier/src/internal/x509/certs"
)

// RenderASCIITree renders the verified path as an ASCII tree diagram.
//
// It displays the certificate hierarchy with visual connectors showing the
// relationship between leaf, intermediate, and anchor certificates.
//
// Returns:
//   - string: ASCII tree representation of the certificate path
func (r *Result) RenderASCIITree() string {
	path := r.Path()
	if len(path) == 0 {
		return "No certificates in chain"
	}

	var result strings.Builder
	for i, cert := range path {
		isLast := i == len(path)-1

		connector := "├── "
		if isLast {
			connector = "└── "
		}

		statusIcon := "✓"
		if r.certificateStatus(i).Failures() != 0 {
			statusIcon = "✗"
		}

		certInfo := fmt.Sprintf("[%s] %s", statusIcon, displayName(cert))
		if role := r.certificateRole(i); role != "" {
			certInfo += fmt.Sprintf(" (%s)", role)
		}
		if failures := r.certificateStatus(i).Failures(); failures != 0 {
			certInfo += " " + failures.String()
		}

		result.WriteString(connector + certInfo + "\n")
	}

	return result.String()
}

// RenderTable renders the verified path as a formatted markdown table.
//
// It displays certificate details including role, subject, issuer, validity dates,
// key size, and verification status in a tabular format using tablewriter.
//
// Returns:
//   - string: Markdown table representation of the certificate path
func (r *Result) RenderTable() string {
	path := r.Path()
	if len(path) == 0 {
		return "No certificates to display"
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)

	headers := []string{"🔢 #", "🏷️ Role", "📛 Subject", "🏢 Issuer", "📅 Valid Until", "🔐 Key Size", "🚫 Revocation", "✅ Status"}
	table.Header(headers)

	var rows [][]string
	for i, cert := range path {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			r.certificateRole(i),
			displayName(cert),
			cert.Issuer().CommonName,
			formatInstant(cert.Validity().NotAfter, "2006-01-02"),
			keySize(cert),
			r.revocation(i),
			r.certificateVerdict(i),
		})
	}

	table.Bulk(rows)
	table.Render()
	return buf.String()
}

// ToVisualizationJSON converts the verified path to structured JSON for external tools.
//
// It creates a comprehensive data structure including certificate details,
// hierarchical relationships, and per-certificate status suitable for
// visualization tools or programmatic processing.
//
// Returns:
//   - []byte: JSON representation of the certificate path
//   - error: Error if JSON marshaling fails
func (r *Result) ToVisualizationJSON() ([]byte, error) {
	type CertificateVizData struct {
		Index              int      `json:"index"`
		Role               string   `json:"role"`
		Subject            string   `json:"subject"`
		Issuer             string   `json:"issuer"`
		SerialNumber       string   `json:"serialNumber"`
		Version            int      `json:"version"`
		SignatureAlgorithm string   `json:"signatureAlgorithm"`
		PublicKeyAlgorithm string   `json:"publicKeyAlgorithm"`
		KeySize            int      `json:"keySize"`
		NotBefore          string   `json:"notBefore"`
		NotAfter           string   `json:"notAfter"`
		IsCA               bool     `json:"isCA"`
		Anchor             bool     `json:"anchor"`
		RevocationStatus   string   `json:"revocationStatus"`
		Status             []string `json:"status"`
	}

	type RelationshipData struct {
		FromIndex int    `json:"fromIndex"`
		ToIndex   int    `json:"toIndex"`
		Type      string `json:"type"`
	}

	type VisualizationData struct {
		Timestamp     string               `json:"timestamp"`
		Status        string               `json:"status"`
		StatusBits    uint                 `json:"statusBits"`
		ChainLength   int                  `json:"chainLength"`
		Certificates  []CertificateVizData `json:"certificates"`
		Relationships []RelationshipData   `json:"relationships"`
	}

	path := r.Path()
	data := VisualizationData{
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		Status:        r.Status.String(),
		StatusBits:    uint(r.Status),
		ChainLength:   len(r.Chain),
		Certificates:  make([]CertificateVizData, len(path)),
		Relationships: make([]RelationshipData, 0, len(path)),
	}

	for i, cert := range path {
		data.Certificates[i] = CertificateVizData{
			Index:              i,
			Role:               r.certificateRole(i),
			Subject:            cert.Subject().String(),
			Issuer:             cert.Issuer().String(),
			SerialNumber:       hex.EncodeToString(cert.SerialNumber()),
			Version:            cert.Version(),
			SignatureAlgorithm: SignatureAlgorithmName(cert.SignatureAlgorithm()),
			PublicKeyAlgorithm: cert.PublicKeyAlgorithm().String(),
			KeySize:            keyBits(cert),
			NotBefore:          formatInstant(cert.Validity().NotBefore, time.RFC3339),
			NotAfter:           formatInstant(cert.Validity().NotAfter, time.RFC3339),
			IsCA:               cert.IsCA(),
			Anchor:             r.Anchor != nil && i == len(path)-1,
			RevocationStatus:   r.revocation(i),
			Status:             statusNamesOf(r.certificateStatus(i).Failures()),
		}
	}

	// Each certificate is signed by the next one in the path.
	for i := 0; i < len(path)-1; i++ {
		data.Relationships = append(data.Relationships, RelationshipData{
			FromIndex: i,
			ToIndex:   i + 1,
			Type:      "signed_by",
		})
	}

	return json.MarshalIndent(data, "", "  ")
}

// certificateRole determines the role of a certificate in the path.
//
// Parameters:
//   - index: Zero-based position of the certificate in [Result.Path]
//
// Returns:
//   - string: Role description
func (r *Result) certificateRole(index int) string {
	total := len(r.Chain)
	isAnchor := r.Anchor != nil && index == total
	switch {
	case isAnchor && total == 1 && r.Chain[0].Equal(r.Anchor):
		return "Trusted Self-Signed Certificate"
	case isAnchor:
		return "Trust Anchor"
	case total == 1 && r.Chain[0].IsSelfIssued():
		return "Self-Signed Certificate"
	case index == 0:
		return "End-Entity (Server/Leaf) Certificate"
	default:
		return "Intermediate CA Certificate"
	}
}

func (r *Result) certificateStatus(index int) Status {
	if index < len(r.Certificates) {
		return r.Certificates[index]
	}
	return 0
}

func (r *Result) certificateVerdict(index int) string {
	if failures := r.certificateStatus(index).Failures(); failures != 0 {
		return failures.String()
	}
	return "OK"
}

func (r *Result) revocation(index int) string {
	if index < len(r.Revocation) {
		return r.Revocation[index]
	}
	return RevocationUnknown
}

func statusNamesOf(s Status) []string {
	if s == 0 {
		return []string{}
	}
	return strings.Split(s.String(), "|")
}

// displayName prefers the common name and falls back to the full DN.
func displayName(cert *x509certs.Certificate) string {
	if cn := cert.Subject().CommonName; cn != "" {
		return cn
	}
	return cert.Subject().String()
}

func formatInstant(i x509certs.Instant, layout string) string {
	if !i.Valid() {
		return i.String()
	}
	return i.Time().UTC().Format(layout)
}

func keyBits(cert *x509certs.Certificate) int {
	switch params := cert.PublicKey().(type) {
	case *x509certs.RSAParameters:
		return params.Modulus.BitLen()
	case *x509certs.DSAParameters:
		return params.P.BitLen()
	}
	return 0
}

func keySize(cert *x509certs.Certificate) string {
	bits := keyBits(cert)
	if bits == 0 {
		return "unknown"
	}
	return fmt.Sprintf("%d-bit %s", bits, cert.PublicKeyAlgorithm())
}
