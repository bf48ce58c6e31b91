// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"bytes"
	"encoding/pem"
	"fmt"

	"github.com/H0llyW00dzZ/tls-cert-verifier/src/internal/helper/gc"
)

// pemBoundary marks the start of every PEM block in a bundle.
var pemBoundary = []byte("-----BEGIN")

// Decoder provides methods to decode and encode [X.509] certificates.
// It maintains internal configuration such as the certificate block type.
//
// [X.509]: https://en.wikipedia.org/wiki/X.509
type Decoder struct {
	certBlockType string
}

// New creates a new Decoder with default settings.
func New() *Decoder {
	return &Decoder{
		certBlockType: "CERTIFICATE",
	}
}

// IsPEM checks if the data is in PEM format.
func (d *Decoder) IsPEM(data []byte) bool {
	block, _ := pem.Decode(data)
	return block != nil
}

// decodePEMBlock decodes a PEM block and checks its type.
func (d *Decoder) decodePEMBlock(data []byte) (*pem.Block, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, ErrInvalidPEMBlock
	}
	if block.Type != d.certBlockType {
		return nil, ErrInvalidBlockType
	}
	return block, nil
}

// SplitPEM splits a bundle at each "-----BEGIN" marker. Text before the
// first marker is discarded; every returned chunk starts with a marker.
func SplitPEM(data []byte) [][]byte {
	var chunks [][]byte

	i := bytes.Index(data, pemBoundary)
	for i >= 0 {
		data = data[i:]
		next := bytes.Index(data[len(pemBoundary):], pemBoundary)
		if next < 0 {
			chunks = append(chunks, data)
			break
		}
		end := next + len(pemBoundary)
		chunks = append(chunks, data[:end])
		data = data[end:]
		i = 0
	}

	return chunks
}

// DecodeMultiple decodes one or more certificates from data, which holds
// either a PEM bundle or a single DER certificate.
//
// Certificates are built in input order; the first failure stops decoding
// and no certificates are returned.
func (d *Decoder) DecodeMultiple(data []byte) ([]*Certificate, error) {
	if !d.IsPEM(data) {
		cert, err := Build(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParseCertificate, err)
		}
		return []*Certificate{cert}, nil
	}

	var certs []*Certificate
	for _, chunk := range SplitPEM(data) {
		block, err := d.decodePEMBlock(chunk)
		if err != nil {
			return nil, err
		}

		cert, err := Build(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParseCertificate, err)
		}

		certs = append(certs, cert)
	}

	return certs, nil
}

// Decode decodes a single certificate from PEM or DER data.
func (d *Decoder) Decode(data []byte) (*Certificate, error) {
	if d.IsPEM(data) {
		block, err := d.decodePEMBlock(data)
		if err != nil {
			return nil, err
		}

		data = block.Bytes
	}

	cert, err := Build(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseCertificate, err)
	}

	return cert, nil
}

// EncodePEM encodes a certificate to PEM format.
func (d *Decoder) EncodePEM(cert *Certificate) []byte {
	block := pem.Block{
		Type:  d.certBlockType,
		Bytes: cert.raw,
	}
	return pem.EncodeToMemory(&block)
}

// EncodeDER encodes a certificate to DER format.
func (d *Decoder) EncodeDER(cert *Certificate) []byte { return cert.Raw() }

// EncodeMultiplePEM encodes multiple certificates to PEM format.
func (d *Decoder) EncodeMultiplePEM(certs []*Certificate) []byte {
	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	for _, cert := range certs {
		buf.Write(d.EncodePEM(cert))
	}

	return bytes.Clone(buf.Bytes())
}

// EncodeMultipleDER concatenates the DER encodings of certs.
func (d *Decoder) EncodeMultipleDER(certs []*Certificate) []byte {
	var data []byte

	for _, cert := range certs {
		data = append(data, cert.raw...)
	}

	return data
}
