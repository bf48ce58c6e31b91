// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import "errors"

var (
	// ErrUnsupportedSignature is returned for signature algorithms without a verifier.
	ErrUnsupportedSignature = errors.New("x509chain: unsupported signature algorithm")
	// ErrSignatureMismatch is returned when a signature does not verify.
	ErrSignatureMismatch = errors.New("x509chain: signature verification failed")
	// ErrParseCRL is returned when a revocation list cannot be decoded.
	ErrParseCRL = errors.New("x509chain: failed to parse revocation list")
	// ErrUnknownFlag is returned by [ParseFlags] for unrecognised names.
	ErrUnknownFlag = errors.New("x509chain: unknown verification flag")
)
