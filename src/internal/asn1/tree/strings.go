// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package asn1tree

import (
	"errors"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

var (
	errInvalidUTF8      = errors.New("invalid UTF-8")
	errInvalidPrintable = errors.New("invalid PrintableString")
	errInvalidIA5       = errors.New("invalid IA5String")
	errOddLength        = errors.New("length is not a multiple of the code unit size")
)

// decodeString converts the content octets of a character string of the
// given kind to UTF-8.
func decodeString(kind Kind, b []byte) (string, error) {
	switch kind {
	case KindUTF8String:
		if !utf8.Valid(b) {
			return "", errInvalidUTF8
		}
		return string(b), nil
	case KindPrintableString:
		for _, c := range b {
			if !isPrintable(c) {
				return "", errInvalidPrintable
			}
		}
		return string(b), nil
	case KindIA5String, KindUTCTime, KindGeneralizedTime:
		for _, c := range b {
			if c >= utf8.RuneSelf {
				return "", errInvalidIA5
			}
		}
		return string(b), nil
	case KindTeletexString:
		// T.61 is treated as Latin-1, matching what most CAs actually emit.
		out, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
		return string(out), err
	case KindBMPString:
		if len(b)%2 != 0 {
			return "", errOddLength
		}
		out, err := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder().Bytes(b)
		return string(out), err
	case KindUniversalString:
		if len(b)%4 != 0 {
			return "", errOddLength
		}
		out, err := utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM).NewDecoder().Bytes(b)
		return string(out), err
	}
	return "", errInvalidUTF8
}

// isPrintable reports whether c belongs to the PrintableString alphabet.
// '*' and '&' are accepted since they are common in deployed certificates.
func isPrintable(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case ' ', '\'', '(', ')', '+', ',', '-', '.', '/', ':', '=', '?', '*', '&':
		return true
	}
	return false
}
