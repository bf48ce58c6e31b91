// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"encoding/asn1"
	"math/big"
	"strings"
)

// Tree is the read-only view of a decoded ASN.1 structure used by the
// extractors. It is satisfied by *asn1tree.Tree.
type Tree interface {
	Exists(path string) bool
	Count(path string) (int, error)
	ReadValue(path string) ([]byte, error)
	ReadRaw(path string) ([]byte, error)
	ReadChoice(path string) (string, error)
	ReadOID(path string) (string, error)
	ReadInteger(path string) (*big.Int, error)
	ReadBool(path string) (bool, error)
	ReadBitString(path string) (asn1.BitString, error)
	ReadString(path string) (string, error)
}

// join builds a tree path from its components, ignoring empty ones so that
// an empty root addresses the top of the tree.
func join(parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ".")
}
