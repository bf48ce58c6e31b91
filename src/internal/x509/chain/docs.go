// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509chain implements [X.509] certificate chain verification.
// It provides capabilities to:
//   - Verify a presented chain against trust anchors, returning a [Status] bitmask.
//   - Check RSA PKCS #1 v1.5 and DSA signatures between adjacent certificates.
//   - Apply CA and version rules to signers, controlled by [Flags].
//   - Check revocation against parsed [CRL] data.
//   - Render a verified path as an ASCII tree, a markdown table or JSON.
//
// Verification never returns an error for a trust failure; every problem
// found is recorded as a bit in the returned [Status].
//
// [X.509]: https://grokipedia.com/page/X.509
// [CRL]: https://grokipedia.com/page/Certificate_revocation_list
package x509chain
