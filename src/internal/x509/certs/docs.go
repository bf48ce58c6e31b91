// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509certs builds immutable [X.509] certificates from DER and [PEM] input.
// It extracts distinguished names, validity periods, versions, RSA and DSA
// public key parameters and the subjectAltName, keyUsage and basicConstraints
// extensions from a generic ASN.1 parse tree, and provides utilities for
// splitting certificate bundles and encoding certificates back to PEM or DER.
// It also carries the key-usage and hostname checks a TLS peer applies to a
// leaf certificate.
//
// [X.509]: https://grokipedia.com/page/X.509
// [PEM]: https://grokipedia.com/page/PEM#privacy-enhanced-mail
package x509certs
