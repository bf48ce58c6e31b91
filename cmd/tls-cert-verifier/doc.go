// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// tls-cert-verifier is a command-line tool for inspecting X.509 certificates,
// verifying certificate chains against trusted CAs and revocation lists, and
// checking server key pairs.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/H0llyW00dzZ/tls-cert-verifier/cmd/tls-cert-verifier@latest
//
// # Usage
//
//	tls-cert-verifier <inspect|verify|issuers|keypair> [FLAGS]
//
// # Global Flags
//
//	-c, --config   Configuration file (.json, .yaml, .yml); defaults to $TLS_CERT_VERIFIER_CONFIG
//	    --ca       PEM bundle of trusted CA certificates (repeatable)
//	    --crl      Certificate revocation list, PEM or DER (repeatable)
//	    --flag     Verification flag: disable-ca-sign, allow-x509-v1-ca-crt (repeatable)
//	-F, --format   Output format: text, json, tree, table, pem, der
//	-o, --output   Destination file (default: stdout)
//
// # Examples
//
// Print the fields of every certificate in a bundle:
//
//	tls-cert-verifier inspect -f chain.pem
//
// Verify a chain and its hostname, with revocation checking:
//
//	tls-cert-verifier verify chain.pem --ca roots.pem --crl intermediate.crl --host example.com
//
// Visualize the verified chain as an ASCII tree:
//
//	tls-cert-verifier verify chain.pem --ca roots.pem --format tree
//
// Print the certificate_authorities list a server would advertise:
//
//	tls-cert-verifier issuers --ca roots.pem --ca partners.pem
//
// Check that a PKCS #12 archive can serve RSA and DHE_RSA handshakes:
//
//	tls-cert-verifier keypair --pkcs12 server.p12 --password secret --kx RSA --kx DHE_RSA
//
// The command exits with status 1 when verification does not yield TRUSTED
// and with 130 when interrupted. Diagnostics are written to stderr.
package main
