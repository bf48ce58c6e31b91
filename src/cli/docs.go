// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the command-line interface for the TLS certificate verifier.
// It implements a Cobra-based CLI with subcommands to inspect certificates, verify
// chains against trusted CAs and revocation lists, print the certificate_authorities
// list advertised to clients, and check key pairs against TLS key exchanges.
//
// Trusted CAs, revocation lists, verification flags and the output format can be
// given on the command line or in a JSON or YAML configuration file named by
// --config or the TLS_CERT_VERIFIER_CONFIG environment variable. Output is written
// as text, JSON, an ASCII tree, a markdown table, PEM or DER depending on the
// subcommand.
package cli
