// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package credentials holds the certificate material of a TLS endpoint:
// its own certificate chains with their private keys, the trusted CA list
// advertised to peers, and the revocation lists used when verifying them.
//
// Key pairs are read from PEM (RSA in PKCS #1 or PKCS #8 form, or DSA) or from
// PKCS #12 archives; CA certificates and revocation lists are read from PEM.
//
// A [Store] is filled by repeated Set and Add calls and then used to verify
// peer chains and to pick a key pair for a key exchange. It is not safe for
// concurrent mutation; finish loading before verification starts, or guard
// the store with an external lock.
package credentials
