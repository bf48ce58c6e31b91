// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

// ReserveParams exposes the parameter capacity check to external tests.
var ReserveParams = reserveParams

// Truncate exposes rune-safe truncation to external tests.
var Truncate = truncate
