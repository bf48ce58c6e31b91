// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/tls-cert-verifier/src/credentials"
	"github.com/H0llyW00dzZ/tls-cert-verifier/src/internal/helper/gc"
	"github.com/H0llyW00dzZ/tls-cert-verifier/src/internal/helper/posix"
	x509chain "github.com/H0llyW00dzZ/tls-cert-verifier/src/internal/x509/chain"
	"github.com/H0llyW00dzZ/tls-cert-verifier/src/logger"
)

// Output formats accepted by --format.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatTree  = "tree"
	FormatTable = "table"
	FormatPEM   = "pem"
	FormatDER   = "der"
)

var (
	// ErrInputFileRequired is returned when a subcommand is run without its input.
	ErrInputFileRequired = errors.New("cli: input file is required")
	// ErrUnknownFormat is returned for a --format value the subcommand cannot render.
	ErrUnknownFormat = errors.New("cli: unsupported output format")
	// ErrNotTrusted is returned by verify when the chain status is not trusted.
	ErrNotTrusted = errors.New("cli: certificate chain is not trusted")
	// ErrUnknownKeyExchange is returned for a --kx value that names no key exchange.
	ErrUnknownKeyExchange = errors.New("cli: unknown key exchange")
)

var (
	// OperationPerformed is set once a subcommand starts processing its input.
	OperationPerformed bool
	// OperationPerformedSuccessfully is set when that processing completed without error.
	OperationPerformedSuccessfully bool
)

// options holds the persistent flags shared by every subcommand.
type options struct {
	log        logger.Logger
	verbose    bool
	configPath string
	caFiles    []string
	crlFiles   []string
	flags      []string
	format     string
	outputFile string
}

// Execute runs the root command with the process arguments.
//
// Parameters:
//   - ctx: Cancelled on interrupt; checked between loading steps
//   - version: Reported by --version
//   - log: Destination for progress messages
//
// Returns:
//   - error: The first error of the executed subcommand
func Execute(ctx context.Context, version string, log logger.Logger) error {
	return NewRootCommand(version, log).ExecuteContext(ctx)
}

// NewRootCommand builds the tls-cert-verifier command tree.
func NewRootCommand(version string, log logger.Logger) *cobra.Command {
	if log == nil {
		log = logger.NewCLILogger()
	}
	opts := &options{log: log}

	rootCmd := &cobra.Command{
		Use:           posix.ExecutableName(os.Args, "tls-cert-verifier"),
		Short:         "X.509 certificate inspection and chain verification",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.verbose {
				opts.log.SetOutput(cmd.ErrOrStderr())
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "log loading and verification details to stderr")
	pf.StringVarP(&opts.configPath, "config", "c", "", "configuration file (.json, .yaml, .yml); defaults to $"+ConfigEnv)
	pf.StringSliceVar(&opts.caFiles, "ca", nil, "PEM bundle of trusted CA certificates (repeatable)")
	pf.StringSliceVar(&opts.crlFiles, "crl", nil, "certificate revocation list, PEM or DER (repeatable)")
	pf.StringSliceVar(&opts.flags, "flag", nil, "verification flag: disable-ca-sign, allow-x509-v1-ca-crt (repeatable)")
	pf.StringVarP(&opts.format, "format", "F", "", "output format: text, json, tree, table, pem, der")
	pf.StringVarP(&opts.outputFile, "output", "o", "", "output to OUTPUT_FILE (default: stdout)")

	rootCmd.AddCommand(
		newInspectCommand(opts),
		newVerifyCommand(opts),
		newIssuersCommand(opts),
		newKeyPairCommand(opts),
	)
	return rootCmd
}

// config loads the configuration file and merges the command-line flags into it.
func (o *options) config() (*Config, error) {
	cfg, err := LoadConfig(o.configPath)
	if err != nil {
		return nil, err
	}
	cfg.Trust.CAFiles = append(cfg.Trust.CAFiles, o.caFiles...)
	cfg.Trust.CRLFiles = append(cfg.Trust.CRLFiles, o.crlFiles...)
	cfg.Verify.Flags = append(cfg.Verify.Flags, o.flags...)
	if o.format != "" {
		cfg.Output.Format = o.format
	}
	return cfg, nil
}

// store loads the trusted CAs and revocation lists named by cfg.
func (o *options) store(ctx context.Context, cfg *Config) (*credentials.Store, error) {
	flags, err := x509chain.ParseFlags(cfg.Verify.Flags)
	if err != nil {
		return nil, err
	}

	s := credentials.New(o.storeLogger())
	s.SetVerifyFlags(flags)

	for _, path := range cfg.Trust.CAFiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, err := s.AddTrustFile(path); err != nil {
			return nil, fmt.Errorf("loading CA file %s: %w", path, err)
		}
	}
	for _, path := range cfg.Trust.CRLFiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, err := s.AddCRLFile(path); err != nil {
			return nil, fmt.Errorf("loading CRL file %s: %w", path, err)
		}
	}
	return s, nil
}

// storeLogger returns the logger handed to credential stores; nil keeps them silent.
func (o *options) storeLogger() logger.Logger {
	if o.verbose {
		return o.log
	}
	return nil
}

// logf logs a progress message when --verbose is set.
func (o *options) logf(format string, args ...any) {
	if o.verbose {
		o.log.Printf(format, args...)
	}
}

// readInput returns the contents of the file named by the -f flag or the first argument.
func readInput(file string, args []string) ([]byte, error) {
	if file == "" && len(args) > 0 {
		file = args[0]
	}
	if file == "" {
		return nil, ErrInputFileRequired
	}

	data, err := gc.ReadFile(file, credentials.MaxFileSize)
	if err != nil {
		return nil, fmt.Errorf("error reading input file: %w", err)
	}
	return data, nil
}

// writeOutput sends data to the --output file, or to the command's stdout.
func (o *options) writeOutput(cmd *cobra.Command, data []byte) error {
	if o.outputFile != "" {
		if err := os.WriteFile(o.outputFile, data, 0644); err != nil {
			return fmt.Errorf("error writing to output file: %w", err)
		}
		return nil
	}
	_, err := cmd.OutOrStdout().Write(data)
	return err
}

// begin marks the start of a subcommand's work.
func begin() {
	OperationPerformed = true
	OperationPerformedSuccessfully = false
}

// finish records the outcome of a subcommand.
func finish(err error) error {
	OperationPerformedSuccessfully = err == nil
	return err
}
