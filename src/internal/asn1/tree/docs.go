// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package asn1tree decodes DER input against a named structure template and
// exposes the result as a navigable tree.
//
// Values are addressed by dotted paths built from the template field names,
// for example "tbsCertificate.subject.rdnSequence.?1.?1.type". The "?N"
// component selects the N-th (1-based) element of a SEQUENCE OF or SET OF,
// and CHOICE nodes are traversed through the name of the alternative that
// was actually encoded.
//
// Decoding is strict DER and is performed with [cryptobyte]. Callers
// distinguish a path that names nothing ([ErrElementNotFound]) from a path
// naming an OPTIONAL or DEFAULT element that is not present
// ([ErrValueNotFound]).
//
// [cryptobyte]: https://pkg.go.dev/golang.org/x/crypto/cryptobyte
package asn1tree
