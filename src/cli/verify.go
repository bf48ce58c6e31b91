// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/tls-cert-verifier/src/internal/helper/gc"
	x509certs "github.com/H0llyW00dzZ/tls-cert-verifier/src/internal/x509/certs"
	x509chain "github.com/H0llyW00dzZ/tls-cert-verifier/src/internal/x509/chain"
)

func newVerifyCommand(opts *options) *cobra.Command {
	var (
		file     string
		hostname string
	)

	cmd := &cobra.Command{
		Use:   "verify [INPUT_FILE]",
		Short: "Verify a certificate chain, leaf first, against trusted CAs",
		Long: `Verify a certificate chain, leaf first, against the CAs given with --ca
and the revocation lists given with --crl.

The command fails when the resulting status is not TRUSTED, or when --host is
set and the leaf does not match it. The status is printed in every case.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(file, args)
			if err != nil {
				return err
			}
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			if hostname != "" {
				cfg.Verify.Hostname = hostname
			}

			begin()
			return finish(opts.verify(cmd.Context(), cmd, data, cfg))
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "input chain file (PEM bundle or DER)")
	cmd.Flags().StringVar(&hostname, "host", "", "expected hostname of the leaf certificate")
	return cmd
}

func (o *options) verify(ctx context.Context, cmd *cobra.Command, data []byte, cfg *Config) error {
	switch cfg.Output.Format {
	case FormatText, FormatJSON, FormatTree, FormatTable:
	default:
		return fmt.Errorf("%w: %q for verify", ErrUnknownFormat, cfg.Output.Format)
	}

	store, err := o.store(ctx, cfg)
	if err != nil {
		return err
	}

	chain, err := x509certs.New().DecodeMultiple(data)
	if err != nil {
		return fmt.Errorf("error decoding certificate: %w", err)
	}

	res := store.VerifyPeersDetailed(chain)
	if err := o.renderResult(cmd, res, cfg.Output.Format); err != nil {
		return err
	}

	if !res.Status.Trusted() {
		return fmt.Errorf("%w: %s", ErrNotTrusted, res.Status)
	}
	if cfg.Verify.Hostname != "" {
		if err := x509certs.CheckHostname(chain[0], cfg.Verify.Hostname); err != nil {
			return err
		}
	}
	return nil
}

func (o *options) renderResult(cmd *cobra.Command, res *x509chain.Result, format string) error {
	var out []byte
	switch format {
	case FormatJSON:
		data, err := res.ToVisualizationJSON()
		if err != nil {
			return err
		}
		out = append(data, '\n')
	case FormatTree:
		out = []byte(res.RenderASCIITree() + "\n")
	case FormatTable:
		out = []byte(res.RenderTable() + "\n")
	default:
		out = renderStatus(res)
	}
	return o.writeOutput(cmd, out)
}

func renderStatus(res *x509chain.Result) []byte {
	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	fmt.Fprintf(buf, "Status: %s (0x%x)\n", res.Status, uint(res.Status))
	for i, c := range res.Path() {
		role := "chain"
		if res.Anchor != nil && i == len(res.Chain) {
			role = "anchor"
		}
		bits := "ok"
		if i < len(res.Certificates) && res.Certificates[i] != 0 {
			bits = res.Certificates[i].String()
		}
		revocation := x509chain.RevocationUnknown
		if i < len(res.Revocation) {
			revocation = res.Revocation[i]
		}
		fmt.Fprintf(buf, "  [%d] %s %s (%s, revocation %s)\n", i, role, c.Subject(), bits, revocation)
	}
	return []byte(buf.String())
}
