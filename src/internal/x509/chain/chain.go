// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"bytes"
	"time"

	"github.com/jmhodges/clock"

	x509certs "github.com/H0llyW00dzZ/tls-cert-verifier/src/internal/x509/certs"
	"github.com/H0llyW00dzZ/tls-cert-verifier/src/logger"
)

// Verifier checks presented [X.509] chains against a set of trust anchors.
//
// The zero value is ready to use: it reads the wall clock, verifies RSA and
// DSA signatures and logs nothing.
//
// [X.509]: https://grokipedia.com/page/X.509
type Verifier struct {
	Flags   Flags
	Clock   clock.Clock // used for validity checks
	Checker SignatureChecker
	Logger  logger.Logger // optional; receives one line per failure
}

// NewVerifier creates a Verifier with the given flags and default settings.
func NewVerifier(flags Flags) *Verifier {
	return &Verifier{
		Flags:   flags,
		Clock:   clock.New(),
		Checker: PublicKeyChecker{},
	}
}

// Verify is shorthand for NewVerifier(flags).Verify.
func Verify(chain, anchors []*x509certs.Certificate, crls []*RevocationList, flags Flags) Status {
	return NewVerifier(flags).Verify(chain, anchors, crls)
}

// Result is the detailed outcome of a chain verification.
type Result struct {
	Status Status
	// Chain is the presented chain, leaf first.
	Chain []*x509certs.Certificate
	// Anchor is the trust anchor that signed the last certificate, if any.
	Anchor *x509certs.Certificate
	// Certificates holds the bits attributed to each element of [Result.Path].
	Certificates []Status
	// Revocation holds the revocation state of each element of [Result.Path].
	Revocation []string
}

// Path returns the chain followed by the matched anchor, when one was found.
func (r *Result) Path() []*x509certs.Certificate {
	if r.Anchor == nil {
		return r.Chain
	}
	path := make([]*x509certs.Certificate, 0, len(r.Chain)+1)
	path = append(path, r.Chain...)
	return append(path, r.Anchor)
}

// Verify evaluates chain against anchors and returns the status bitmask.
//
// Parameters:
//   - chain: Presented certificates, leaf first
//   - anchors: Trusted CA certificates
//   - crls: Optional revocation lists
//
// Returns:
//   - Status: Bitwise OR of every condition found; [StatusTrusted] only when no failure bit is set
//
// Trust failures are reported as bits, never as errors. The caller still has
// to bind the leaf to the expected identity, for example with
// [x509certs.CheckHostname].
func (v *Verifier) Verify(chain, anchors []*x509certs.Certificate, crls []*RevocationList) Status {
	return v.VerifyDetailed(chain, anchors, crls).Status
}

// VerifyDetailed is like [Verifier.Verify] but also reports which certificate
// caused each bit and which anchor completed the chain.
func (v *Verifier) VerifyDetailed(chain, anchors []*x509certs.Certificate, crls []*RevocationList) *Result {
	res := &Result{Chain: chain}
	if len(chain) == 0 {
		res.Status = StatusNone
		return res
	}

	res.Certificates = make([]Status, len(chain), len(chain)+1)
	mark := func(i int, bit Status, format string, args ...any) {
		res.Certificates[i] |= bit
		res.Status |= bit
		v.logf(format, args...)
	}

	// Each certificate must be signed by its successor.
	for i := 0; i < len(chain)-1; i++ {
		v.checkSigner(chain[i], chain[i+1], func(bit Status, format string, args ...any) {
			mark(i+1, bit, format, args...)
		})
		if err := v.checker().CheckSignature(chain[i], chain[i+1]); err != nil {
			mark(i, StatusInvalid, "certificate %d (%s): %v", i, chain[i].Subject().CommonName, err)
		}
	}

	// The last certificate must be signed by a trust anchor.
	last := chain[len(chain)-1]
	anchor, err := v.findAnchor(last, anchors)
	switch {
	case anchor == nil:
		mark(len(chain)-1, StatusSignerNotFound, "certificate %d (%s): no trusted issuer %s",
			len(chain)-1, last.Subject().CommonName, last.Issuer())
	default:
		res.Anchor = anchor
		res.Certificates = append(res.Certificates, 0)
		ai := len(res.Certificates) - 1
		v.checkSigner(last, anchor, func(bit Status, format string, args ...any) {
			mark(ai, bit, format, args...)
		})
		if err != nil {
			mark(len(chain)-1, StatusInvalid, "certificate %d (%s): %v", len(chain)-1, last.Subject().CommonName, err)
		}
	}

	now := v.now()
	for i, cert := range chain {
		v.checkValidity(cert, now, func(bit Status, format string, args ...any) {
			mark(i, bit, "certificate %d (%s): "+format, append([]any{i, cert.Subject().CommonName}, args...)...)
		})
	}

	path := res.Path()
	res.Revocation = make([]string, len(path))
	for i, cert := range path {
		res.Revocation[i] = RevocationStatus(cert, crls)
		if i < len(chain) && res.Revocation[i] == RevocationRevoked {
			mark(i, StatusRevoked, "certificate %d (%s): revoked", i, cert.Subject().CommonName)
		}
	}

	if res.Status&failureBits == 0 {
		res.Status |= StatusTrusted
	}
	return res
}

// checkSigner applies the CA rules to a certificate used as issuer of cert.
func (v *Verifier) checkSigner(cert, signer *x509certs.Certificate, mark func(Status, string, ...any)) {
	name := signer.Subject().CommonName
	if signer.Version() < 3 {
		if !v.Flags.Has(FlagAllowX509V1CACrt) {
			mark(StatusInvalid, "signer %s: version %d certificate used as CA", name, signer.Version())
		}
		return
	}
	if v.Flags.Has(FlagDisableCASign) {
		return
	}
	if !signer.IsCA() {
		mark(StatusSignerNotCA, "signer %s: not a CA, cannot sign %s", name, cert.Subject().CommonName)
	}
}

// checkValidity compares the validity period of cert with now. An invalid
// instant fails both checks.
func (v *Verifier) checkValidity(cert *x509certs.Certificate, now time.Time, mark func(Status, string, ...any)) {
	validity := cert.Validity()
	if !validity.NotBefore.Valid() || !validity.NotAfter.Valid() {
		mark(StatusNotActivated|StatusExpired, "undecodable validity (%s, %s)", validity.NotBefore, validity.NotAfter)
		return
	}
	if now.Before(validity.NotBefore.Time()) {
		mark(StatusNotActivated, "not valid before %s", validity.NotBefore)
	}
	if now.After(validity.NotAfter.Time()) {
		mark(StatusExpired, "not valid after %s", validity.NotAfter)
	}
}

// findAnchor returns the first anchor whose subject equals the issuer of cert.
//
// Anchors are tried in order; an anchor whose signature check fails is
// skipped in favour of later candidates. When candidates exist but none
// verifies, the first one is returned together with its error.
func (v *Verifier) findAnchor(cert *x509certs.Certificate, anchors []*x509certs.Certificate) (*x509certs.Certificate, error) {
	issuer := cert.RawIssuer()

	var (
		first    *x509certs.Certificate
		firstErr error
	)
	for _, anchor := range anchors {
		if !anchor.Usable() || !bytes.Equal(anchor.RawSubject(), issuer) {
			continue
		}
		err := v.checker().CheckSignature(cert, anchor)
		if err == nil {
			return anchor, nil
		}
		if first == nil {
			first, firstErr = anchor, err
		}
	}
	return first, firstErr
}

func (v *Verifier) checker() SignatureChecker {
	if v.Checker == nil {
		return PublicKeyChecker{}
	}
	return v.Checker
}

func (v *Verifier) now() time.Time {
	if v.Clock == nil {
		return time.Now()
	}
	return v.Clock.Now()
}

func (v *Verifier) logf(format string, args ...any) {
	if v.Logger != nil {
		v.Logger.Printf(format, args...)
	}
}
