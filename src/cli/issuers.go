// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/tls-cert-verifier/src/credentials"
	"github.com/H0llyW00dzZ/tls-cert-verifier/src/internal/helper/gc"
)

// issuerInfo is the JSON form of one certificate_authorities entry.
type issuerInfo struct {
	Subject string `json:"subject"`
	Length  int    `json:"length"`
}

func newIssuersCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "issuers",
		Short: "Print the certificate_authorities list built from the trusted CAs",
		Long: `Print the distinguished names a server would advertise in a TLS
CertificateRequest, built from the CAs given with --ca.

With --format der the raw list is written: each subject DER prefixed by its
2-byte big-endian length.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			if len(cfg.Trust.CAFiles) == 0 {
				return fmt.Errorf("%w: at least one --ca", ErrInputFileRequired)
			}

			begin()
			return finish(opts.issuers(cmd.Context(), cmd, cfg))
		},
	}
}

func (o *options) issuers(ctx context.Context, cmd *cobra.Command, cfg *Config) error {
	store, err := o.store(ctx, cfg)
	if err != nil {
		return err
	}

	seq, err := store.RDNSequence()
	if err != nil {
		return err
	}

	if cfg.Output.Format == FormatDER {
		return o.writeOutput(cmd, seq)
	}

	raw, err := credentials.ParseRDNSequence(seq)
	if err != nil {
		return err
	}
	names, err := credentials.ParseRDNNames(seq)
	if err != nil {
		return err
	}

	switch cfg.Output.Format {
	case FormatText:
		buf := gc.Default.Get()
		defer func() {
			buf.Reset()
			gc.Default.Put(buf)
		}()
		for _, n := range names {
			buf.WriteString(n.String())
			buf.WriteByte('\n')
		}
		return o.writeOutput(cmd, []byte(buf.String()))
	case FormatJSON:
		infos := make([]issuerInfo, len(names))
		for i, n := range names {
			infos[i] = issuerInfo{Subject: n.String(), Length: len(raw[i])}
		}
		out, err := json.MarshalIndent(infos, "", "  ")
		if err != nil {
			return err
		}
		return o.writeOutput(cmd, append(out, '\n'))
	default:
		return fmt.Errorf("%w: %q for issuers", ErrUnknownFormat, cfg.Output.Format)
	}
}
