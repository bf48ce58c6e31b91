// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/tls-cert-verifier/src/credentials"
	x509certs "github.com/H0llyW00dzZ/tls-cert-verifier/src/internal/x509/certs"
)

type keyPairOptions struct {
	certFile string
	keyFile  string
	pkcs12   string
	password string
	kx       []string
}

func newKeyPairCommand(opts *options) *cobra.Command {
	kp := &keyPairOptions{}

	cmd := &cobra.Command{
		Use:   "keypair",
		Short: "Load a certificate chain with its private key and check it",
		Long: `Load a certificate chain and the private key of its leaf, either from a
PEM certificate and key (--cert, --key) or from a PKCS #12 archive (--pkcs12).

With --kx the pair is checked against each named key exchange, for example
RSA or DHE_DSS, as a server would when selecting a certificate.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if kp.pkcs12 == "" && (kp.certFile == "" || kp.keyFile == "") {
				return fmt.Errorf("%w: --cert and --key, or --pkcs12", ErrInputFileRequired)
			}

			begin()
			return finish(opts.keyPair(cmd, kp))
		},
	}

	f := cmd.Flags()
	f.StringVar(&kp.certFile, "cert", "", "PEM certificate chain, leaf first")
	f.StringVar(&kp.keyFile, "key", "", "PEM private key of the leaf (RSA or DSA)")
	f.StringVar(&kp.pkcs12, "pkcs12", "", "PKCS #12 archive holding the chain and key")
	f.StringVar(&kp.password, "password", "", "PKCS #12 archive password")
	f.StringSliceVar(&kp.kx, "kx", nil, "key exchange to select the pair for (repeatable)")
	return cmd
}

func (o *options) keyPair(cmd *cobra.Command, kp *keyPairOptions) error {
	store := credentials.New(o.storeLogger())

	var err error
	if kp.pkcs12 != "" {
		err = store.SetKeyPairPKCS12File(kp.pkcs12, kp.password)
	} else {
		err = store.SetKeyPairFile(kp.certFile, kp.keyFile)
	}
	if err != nil {
		return err
	}

	pair := store.Pairs()[0]
	var b strings.Builder
	fmt.Fprintf(&b, "Key Pair: %s key for %s (%d certificate(s))\n",
		pair.Key.Algorithm(), pair.Leaf().Subject(), len(pair.Chain))

	var failed []string
	for _, name := range kp.kx {
		kx, ok := x509certs.ParseKeyExchange(strings.ToUpper(strings.TrimSpace(name)))
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownKeyExchange, name)
		}
		if _, err := store.SelectPair(kx); err != nil {
			fmt.Fprintf(&b, "  %s: %v\n", kx, err)
			failed = append(failed, kx.String())
			continue
		}
		fmt.Fprintf(&b, "  %s: usable\n", kx)
	}

	if err := o.writeOutput(cmd, []byte(b.String())); err != nil {
		return err
	}
	if len(failed) > 0 {
		return fmt.Errorf("%w: %s", credentials.ErrNoKeyPair, strings.Join(failed, ", "))
	}
	return nil
}
