// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package asn1tree

import "strings"

// ArcForm converts a dotted-decimal OID ("1.2.840.113549.1.1.1") to the
// space-separated arc form ("1 2 840 113549 1 1 1").
func ArcForm(dotted string) string {
	return strings.ReplaceAll(dotted, ".", " ")
}

// DottedForm converts an arc-form OID back to dotted-decimal form.
func DottedForm(arcs string) string {
	return strings.Join(strings.Fields(arcs), ".")
}
