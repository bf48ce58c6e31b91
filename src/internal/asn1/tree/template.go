// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package asn1tree

import (
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"
)

// Kind identifies the ASN.1 type described by a [Template].
type Kind int

const (
	// KindAny matches any single element and keeps it undecoded.
	KindAny Kind = iota
	KindSequence
	KindSequenceOf
	KindSetOf
	KindChoice
	KindBoolean
	KindInteger
	KindBitString
	KindOctetString
	KindNull
	KindOID
	KindUTF8String
	KindPrintableString
	KindTeletexString
	KindIA5String
	KindUniversalString
	KindBMPString
	KindUTCTime
	KindGeneralizedTime
)

// universalTags maps each concrete kind to its UNIVERSAL tag.
var universalTags = map[Kind]cbasn1.Tag{
	KindSequence:        cbasn1.SEQUENCE,
	KindSequenceOf:      cbasn1.SEQUENCE,
	KindSetOf:           cbasn1.SET,
	KindBoolean:         cbasn1.BOOLEAN,
	KindInteger:         cbasn1.INTEGER,
	KindBitString:       cbasn1.BIT_STRING,
	KindOctetString:     cbasn1.OCTET_STRING,
	KindNull:            cbasn1.NULL,
	KindOID:             cbasn1.OBJECT_IDENTIFIER,
	KindUTF8String:      cbasn1.UTF8String,
	KindPrintableString: cbasn1.PrintableString,
	KindTeletexString:   cbasn1.T61String,
	KindIA5String:       cbasn1.IA5String,
	KindUniversalString: cbasn1.Tag(28),
	KindBMPString:       cbasn1.Tag(30),
	KindUTCTime:         cbasn1.UTCTime,
	KindGeneralizedTime: cbasn1.GeneralizedTime,
}

// isString reports whether values of kind k can be read with ReadString.
func (k Kind) isString() bool {
	switch k {
	case KindUTF8String, KindPrintableString, KindTeletexString,
		KindIA5String, KindUniversalString, KindBMPString,
		KindUTCTime, KindGeneralizedTime:
		return true
	}
	return false
}

// Template describes one element of an ASN.1 structure.
//
// Templates are immutable once registered; helper constructors return fresh
// copies so a shared definition (for example Name) can be placed under
// several field names.
type Template struct {
	Name     string
	Kind     Kind
	Optional bool
	Explicit bool
	// Tagged marks a context-specific tag; TagNumber holds its number.
	Tagged    bool
	TagNumber int
	Fields    []*Template // SEQUENCE fields or CHOICE alternatives
	Elem      *Template   // element of SEQUENCE OF / SET OF
}

func (t *Template) clone() *Template {
	c := *t
	return &c
}

// As returns a copy of t placed under a different field name.
func (t *Template) As(name string) *Template {
	c := t.clone()
	c.Name = name
	return c
}

// Opt returns an OPTIONAL (or DEFAULT) copy of t.
func (t *Template) Opt() *Template {
	c := t.clone()
	c.Optional = true
	return c
}

// Implicit returns a copy of t carrying an IMPLICIT context-specific tag.
func (t *Template) Implicit(n int) *Template {
	c := t.clone()
	c.Tagged, c.TagNumber, c.Explicit = true, n, false
	return c
}

// ExplicitTag returns a copy of t wrapped in an EXPLICIT context-specific tag.
func (t *Template) ExplicitTag(n int) *Template {
	c := t.clone()
	c.Tagged, c.TagNumber, c.Explicit = true, n, true
	return c
}

// Prim builds a primitive (or ANY) template.
func Prim(name string, kind Kind) *Template { return &Template{Name: name, Kind: kind} }

// Seq builds a SEQUENCE template.
func Seq(name string, fields ...*Template) *Template {
	return &Template{Name: name, Kind: KindSequence, Fields: fields}
}

// SeqOf builds a SEQUENCE OF template.
func SeqOf(name string, elem *Template) *Template {
	return &Template{Name: name, Kind: KindSequenceOf, Elem: elem}
}

// SetOf builds a SET OF template.
func SetOf(name string, elem *Template) *Template {
	return &Template{Name: name, Kind: KindSetOf, Elem: elem}
}

// Choice builds a CHOICE template.
func Choice(name string, alts ...*Template) *Template {
	return &Template{Name: name, Kind: KindChoice, Fields: alts}
}

// matches reports whether an element carrying tag can be decoded by t.
// For implicitly tagged templates the constructed bit is ignored so that
// ANY-typed alternatives such as otherName still match.
func (t *Template) matches(tag cbasn1.Tag) bool {
	if t.Tagged {
		want := cbasn1.Tag(t.TagNumber).ContextSpecific()
		if t.Explicit {
			return tag == want.Constructed()
		}
		return tag&^0x20 == want
	}
	switch t.Kind {
	case KindAny:
		return true
	case KindChoice:
		for _, alt := range t.Fields {
			if alt.matches(tag) {
				return true
			}
		}
		return false
	}
	return tag == universalTags[t.Kind]
}

// alternative returns the CHOICE alternative matching tag.
func (t *Template) alternative(tag cbasn1.Tag) *Template {
	for _, alt := range t.Fields {
		if alt.matches(tag) {
			return alt
		}
	}
	return nil
}

// field returns the index of the SEQUENCE field or CHOICE alternative named name.
func (t *Template) field(name string) int {
	for i, f := range t.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}
