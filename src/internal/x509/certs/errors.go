// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import "errors"

var (
	// ErrInvalidPEMBlock indicates that the provided data does not contain a valid PEM block.
	ErrInvalidPEMBlock = errors.New("x509certs: invalid PEM block")

	// ErrInvalidBlockType indicates that the PEM block type is not the expected certificate type.
	ErrInvalidBlockType = errors.New("x509certs: invalid block type")

	// ErrParseCertificate indicates a failure to parse the certificate from the provided data.
	ErrParseCertificate = errors.New("x509certs: failed to parse certificate")

	// ErrASN1Parsing indicates malformed DER, a missing required field or an unsupported CHOICE.
	ErrASN1Parsing = errors.New("x509certs: ASN.1 parsing error")

	// ErrUnknownSAN indicates a subjectAltName entry of an unsupported GeneralName type.
	ErrUnknownSAN = errors.New("x509certs: unknown subject alternative name type")

	// ErrUnsupportedAlgorithm indicates a public key algorithm without a parameter extractor.
	ErrUnsupportedAlgorithm = errors.New("x509certs: unsupported public key algorithm")

	// ErrInternalLimits indicates an algorithm needing more parameter slots than provisioned.
	ErrInternalLimits = errors.New("x509certs: internal limits exceeded")

	// ErrUnimplementedFeature indicates an encoding this package does not handle,
	// such as a signature that is not byte aligned.
	ErrUnimplementedFeature = errors.New("x509certs: unimplemented feature")

	// ErrDataNotAvailable indicates a requested optional field that is not present.
	ErrDataNotAvailable = errors.New("x509certs: requested data not available")

	// ErrKeyUsageViolation indicates a certificate whose keyUsage forbids the key exchange.
	ErrKeyUsageViolation = errors.New("x509certs: key usage violation")

	// ErrHostnameMismatch indicates a certificate that does not identify the requested host.
	ErrHostnameMismatch = errors.New("x509certs: hostname does not match certificate")
)
