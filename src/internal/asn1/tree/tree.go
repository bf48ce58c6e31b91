// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package asn1tree

import (
	"encoding/asn1"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"
)

var (
	// ErrUnknownStructure indicates that no template is registered under the requested name.
	ErrUnknownStructure = errors.New("asn1tree: unknown structure")

	// ErrDecoding indicates malformed DER or input that does not follow the template.
	ErrDecoding = errors.New("asn1tree: DER decoding error")

	// ErrElementNotFound indicates a path that does not name any element of the tree.
	ErrElementNotFound = errors.New("asn1tree: element not found")

	// ErrValueNotFound indicates a path naming an OPTIONAL or DEFAULT element that is absent.
	ErrValueNotFound = errors.New("asn1tree: value not found")

	// ErrTypeMismatch indicates a typed read against an element of another type.
	ErrTypeMismatch = errors.New("asn1tree: type mismatch")
)

// Node is one decoded element of a [Tree].
type Node struct {
	name     string
	tmpl     *Template
	tag      cbasn1.Tag
	raw      []byte
	content  []byte
	children []*Node
}

// Tree is a decoded DER structure.
type Tree struct {
	structure string
	root      *Node
}

// Decode parses der according to the template registered as structure.
// The input must hold exactly one element.
func Decode(structure string, der []byte) (*Tree, error) {
	tmpl, ok := registry[structure]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStructure, structure)
	}

	in := cryptobyte.String(der)
	root, err := decodeField(&in, tmpl)
	if err != nil {
		return nil, err
	}
	if !in.Empty() {
		return nil, fmt.Errorf("%w: trailing data after %s", ErrDecoding, structure)
	}

	return &Tree{structure: structure, root: root}, nil
}

// Structure returns the template name the tree was decoded with.
func (t *Tree) Structure() string { return t.structure }

func peekTag(s cryptobyte.String) (cbasn1.Tag, bool) {
	var el cryptobyte.String
	var tag cbasn1.Tag
	if !s.ReadAnyASN1Element(&el, &tag) {
		return 0, false
	}
	return tag, true
}

// decodeField consumes the next element of s as t. An absent optional element
// yields a nil node and no error.
func decodeField(s *cryptobyte.String, t *Template) (*Node, error) {
	if s.Empty() {
		if t.Optional {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: missing %q", ErrDecoding, t.Name)
	}

	tag, ok := peekTag(*s)
	if !ok {
		return nil, fmt.Errorf("%w: malformed element at %q", ErrDecoding, t.Name)
	}
	if !t.matches(tag) {
		if t.Optional {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: unexpected tag 0x%02x for %q", ErrDecoding, uint8(tag), t.Name)
	}

	var el cryptobyte.String
	s.ReadAnyASN1Element(&el, &tag)
	return decodeNode(el, tag, t)
}

func decodeNode(el []byte, tag cbasn1.Tag, t *Template) (*Node, error) {
	if t.Tagged && t.Explicit {
		return decodeExplicit(el, tag, t)
	}

	if t.Kind == KindChoice {
		alt := t.alternative(tag)
		if alt == nil {
			return nil, fmt.Errorf("%w: no alternative of %q for tag 0x%02x", ErrDecoding, t.Name, uint8(tag))
		}
		child, err := decodeNode(el, tag, alt)
		if err != nil {
			return nil, err
		}
		return &Node{name: t.Name, tmpl: t, tag: tag, raw: el, content: child.content, children: []*Node{child}}, nil
	}

	in := cryptobyte.String(el)
	var content cryptobyte.String
	if !in.ReadAnyASN1(&content, &tag) {
		return nil, fmt.Errorf("%w: malformed %q", ErrDecoding, t.Name)
	}
	n := &Node{name: t.Name, tmpl: t, tag: tag, raw: el, content: content}

	switch t.Kind {
	case KindSequence:
		rest := content
		n.children = make([]*Node, len(t.Fields))
		for i, f := range t.Fields {
			child, err := decodeField(&rest, f)
			if err != nil {
				return nil, err
			}
			n.children[i] = child
		}
		if !rest.Empty() {
			return nil, fmt.Errorf("%w: trailing data in %q", ErrDecoding, t.Name)
		}
	case KindSequenceOf, KindSetOf:
		rest := content
		for i := 1; !rest.Empty(); i++ {
			child, err := decodeField(&rest, t.Elem.As("?"+strconv.Itoa(i)))
			if err != nil {
				return nil, err
			}
			n.children = append(n.children, child)
		}
	}

	return n, nil
}

func decodeExplicit(el []byte, tag cbasn1.Tag, t *Template) (*Node, error) {
	in := cryptobyte.String(el)
	var wrapped cryptobyte.String
	if !in.ReadASN1(&wrapped, tag) {
		return nil, fmt.Errorf("%w: malformed explicit tag on %q", ErrDecoding, t.Name)
	}

	inner := t.clone()
	inner.Tagged, inner.Explicit, inner.Optional = false, false, false

	var innerEl cryptobyte.String
	var innerTag cbasn1.Tag
	if !wrapped.ReadAnyASN1Element(&innerEl, &innerTag) || !wrapped.Empty() {
		return nil, fmt.Errorf("%w: malformed content of %q", ErrDecoding, t.Name)
	}
	if !inner.matches(innerTag) {
		return nil, fmt.Errorf("%w: unexpected tag 0x%02x inside %q", ErrDecoding, uint8(innerTag), t.Name)
	}

	return decodeNode(innerEl, innerTag, inner)
}

func (n *Node) child(name string) (*Node, error) {
	switch n.tmpl.Kind {
	case KindSequence:
		i := n.tmpl.field(name)
		if i < 0 {
			return nil, ErrElementNotFound
		}
		if n.children[i] == nil {
			return nil, ErrValueNotFound
		}
		return n.children[i], nil
	case KindSequenceOf, KindSetOf:
		if !strings.HasPrefix(name, "?") {
			return nil, ErrElementNotFound
		}
		idx, err := strconv.Atoi(name[1:])
		if err != nil || idx < 1 || idx > len(n.children) {
			return nil, ErrElementNotFound
		}
		return n.children[idx-1], nil
	case KindChoice:
		if n.tmpl.field(name) < 0 {
			return nil, ErrElementNotFound
		}
		if n.children[0].name != name {
			return nil, ErrValueNotFound
		}
		return n.children[0], nil
	}
	return nil, ErrElementNotFound
}

// Lookup returns the node at path. The empty path names the root.
func (t *Tree) Lookup(path string) (*Node, error) {
	n := t.root
	if path == "" {
		return n, nil
	}
	for _, comp := range strings.Split(path, ".") {
		next, err := n.child(comp)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", err, path)
		}
		n = next
	}
	return n, nil
}

// Exists reports whether path names an element present in the input.
func (t *Tree) Exists(path string) bool {
	_, err := t.Lookup(path)
	return err == nil
}

// Count returns the number of elements of the SEQUENCE OF or SET OF at path.
func (t *Tree) Count(path string) (int, error) {
	n, err := t.Lookup(path)
	if err != nil {
		return 0, err
	}
	if n.tmpl.Kind != KindSequenceOf && n.tmpl.Kind != KindSetOf {
		return 0, fmt.Errorf("%w: %s is not a list", ErrTypeMismatch, path)
	}
	return len(n.children), nil
}

// ReadValue returns a copy of the content octets of the element at path.
func (t *Tree) ReadValue(path string) ([]byte, error) {
	n, err := t.Lookup(path)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), n.content...), nil
}

// ReadRaw returns a copy of the complete encoding (tag, length and content)
// of the element at path.
func (t *Tree) ReadRaw(path string) ([]byte, error) {
	n, err := t.Lookup(path)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), n.raw...), nil
}

// ReadChoice returns the name of the alternative encoded at the CHOICE at path.
func (t *Tree) ReadChoice(path string) (string, error) {
	n, err := t.typed(path, KindChoice)
	if err != nil {
		return "", err
	}
	return n.children[0].name, nil
}

// ReadOID returns the OBJECT IDENTIFIER at path in dotted-decimal form.
func (t *Tree) ReadOID(path string) (string, error) {
	n, err := t.typed(path, KindOID)
	if err != nil {
		return "", err
	}
	var oid asn1.ObjectIdentifier
	s := retag(n.content, cbasn1.OBJECT_IDENTIFIER)
	if !s.ReadASN1ObjectIdentifier(&oid) {
		return "", fmt.Errorf("%w: invalid OID at %s", ErrDecoding, path)
	}
	return oid.String(), nil
}

// ReadInteger returns the INTEGER at path.
func (t *Tree) ReadInteger(path string) (*big.Int, error) {
	n, err := t.typed(path, KindInteger)
	if err != nil {
		return nil, err
	}
	v := new(big.Int)
	s := retag(n.content, cbasn1.INTEGER)
	if !s.ReadASN1Integer(v) {
		return nil, fmt.Errorf("%w: invalid INTEGER at %s", ErrDecoding, path)
	}
	return v, nil
}

// ReadBool returns the BOOLEAN at path.
func (t *Tree) ReadBool(path string) (bool, error) {
	n, err := t.typed(path, KindBoolean)
	if err != nil {
		return false, err
	}
	var v bool
	s := retag(n.content, cbasn1.BOOLEAN)
	if !s.ReadASN1Boolean(&v) {
		return false, fmt.Errorf("%w: invalid BOOLEAN at %s", ErrDecoding, path)
	}
	return v, nil
}

// ReadBitString returns the BIT STRING at path.
func (t *Tree) ReadBitString(path string) (asn1.BitString, error) {
	n, err := t.typed(path, KindBitString)
	if err != nil {
		return asn1.BitString{}, err
	}
	var v asn1.BitString
	s := retag(n.content, cbasn1.BIT_STRING)
	if !s.ReadASN1BitString(&v) {
		return asn1.BitString{}, fmt.Errorf("%w: invalid BIT STRING at %s", ErrDecoding, path)
	}
	return v, nil
}

// ReadString decodes the character string at path to UTF-8.
func (t *Tree) ReadString(path string) (string, error) {
	n, err := t.Lookup(path)
	if err != nil {
		return "", err
	}
	if !n.tmpl.Kind.isString() {
		return "", fmt.Errorf("%w: %s is not a character string", ErrTypeMismatch, path)
	}
	s, err := decodeString(n.tmpl.Kind, n.content)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrDecoding, path, err)
	}
	return s, nil
}

func (t *Tree) typed(path string, kind Kind) (*Node, error) {
	n, err := t.Lookup(path)
	if err != nil {
		return nil, err
	}
	if n.tmpl.Kind != kind {
		return nil, fmt.Errorf("%w: %s", ErrTypeMismatch, path)
	}
	return n, nil
}

// retag re-wraps implicitly tagged content under its universal tag so the
// cryptobyte readers can validate it.
func retag(content []byte, tag cbasn1.Tag) cryptobyte.String {
	b := cryptobyte.NewBuilder(nil)
	b.AddASN1(tag, func(c *cryptobyte.Builder) { c.AddBytes(content) })
	out, err := b.Bytes()
	if err != nil {
		return nil
	}
	return cryptobyte.String(out)
}
