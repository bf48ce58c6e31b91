// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/tls-cert-verifier/src/internal/helper/gc"
	x509certs "github.com/H0llyW00dzZ/tls-cert-verifier/src/internal/x509/certs"
	x509chain "github.com/H0llyW00dzZ/tls-cert-verifier/src/internal/x509/chain"
)

// certificateInfo is the JSON form of one inspected certificate.
type certificateInfo struct {
	Index              int      `json:"index"`
	Subject            string   `json:"subject"`
	Issuer             string   `json:"issuer"`
	Version            int      `json:"version"`
	Serial             string   `json:"serial"`
	NotBefore          string   `json:"notBefore"`
	NotAfter           string   `json:"notAfter"`
	PublicKeyAlgorithm string   `json:"publicKeyAlgorithm"`
	SignatureAlgorithm string   `json:"signatureAlgorithm"`
	IsCA               bool     `json:"isCA"`
	SelfIssued         bool     `json:"selfIssued"`
	KeyUsage           string   `json:"keyUsage,omitempty"`
	SubjectAltNames    []string `json:"subjectAltNames,omitempty"`
	Extensions         int      `json:"extensions"`
}

func newInspectCommand(opts *options) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "inspect [INPUT_FILE]",
		Short: "Decode certificates and print their fields",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(file, args)
			if err != nil {
				return err
			}
			cfg, err := opts.config()
			if err != nil {
				return err
			}

			begin()
			return finish(opts.inspect(cmd, data, cfg.Output.Format))
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "input certificate file (PEM bundle or DER)")
	return cmd
}

func (o *options) inspect(cmd *cobra.Command, data []byte, format string) error {
	decoder := x509certs.New()
	certs, err := decoder.DecodeMultiple(data)
	if err != nil {
		return fmt.Errorf("error decoding certificate: %w", err)
	}
	o.logf("decoded %d certificate(s)", len(certs))

	var out []byte
	switch format {
	case FormatText:
		out = renderText(certs)
	case FormatJSON:
		infos := make([]certificateInfo, len(certs))
		for i, c := range certs {
			infos[i] = describe(i, c)
		}
		if out, err = json.MarshalIndent(infos, "", "  "); err != nil {
			return err
		}
		out = append(out, '\n')
	case FormatPEM:
		out = decoder.EncodeMultiplePEM(certs)
	case FormatDER:
		out = decoder.EncodeMultipleDER(certs)
	default:
		return fmt.Errorf("%w: %q for inspect", ErrUnknownFormat, format)
	}
	return o.writeOutput(cmd, out)
}

func describe(index int, c *x509certs.Certificate) certificateInfo {
	info := certificateInfo{
		Index:              index,
		Subject:            c.Subject().String(),
		Issuer:             c.Issuer().String(),
		Version:            c.Version(),
		Serial:             strings.ToUpper(hex.EncodeToString(c.SerialNumber())),
		NotBefore:          c.Validity().NotBefore.String(),
		NotAfter:           c.Validity().NotAfter.String(),
		PublicKeyAlgorithm: c.PublicKeyAlgorithm().String(),
		SignatureAlgorithm: x509chain.SignatureAlgorithmName(c.SignatureAlgorithm()),
		IsCA:               c.IsCA(),
		SelfIssued:         c.IsSelfIssued(),
		Extensions:         c.Extensions().Len(),
	}
	if ku, ok, err := c.Extensions().KeyUsage(); err == nil && ok {
		info.KeyUsage = ku.String()
	}
	if names, err := c.Extensions().SubjectAltNames(); err == nil {
		for _, n := range names {
			info.SubjectAltNames = append(info.SubjectAltNames, n.Kind.String()+":"+n.Value)
		}
	}
	return info
}

func renderText(certs []*x509certs.Certificate) []byte {
	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	for i, c := range certs {
		info := describe(i, c)
		if i > 0 {
			buf.WriteString("\n")
		}
		fmt.Fprintf(buf, "Certificate %d\n", info.Index)
		fmt.Fprintf(buf, "  Subject:     %s\n", info.Subject)
		fmt.Fprintf(buf, "  Issuer:      %s\n", info.Issuer)
		fmt.Fprintf(buf, "  Version:     %d\n", info.Version)
		fmt.Fprintf(buf, "  Serial:      %s\n", info.Serial)
		fmt.Fprintf(buf, "  Not Before:  %s\n", info.NotBefore)
		fmt.Fprintf(buf, "  Not After:   %s\n", info.NotAfter)
		fmt.Fprintf(buf, "  Public Key:  %s\n", info.PublicKeyAlgorithm)
		fmt.Fprintf(buf, "  Signature:   %s\n", info.SignatureAlgorithm)
		fmt.Fprintf(buf, "  CA:          %t\n", info.IsCA)
		if info.KeyUsage != "" {
			fmt.Fprintf(buf, "  Key Usage:   %s\n", info.KeyUsage)
		}
		for _, name := range info.SubjectAltNames {
			fmt.Fprintf(buf, "  Alt Name:    %s\n", name)
		}
	}
	return []byte(buf.String())
}
