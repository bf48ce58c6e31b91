// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package asn1tree

// Structure names accepted by [Decode].
const (
	Certificate      = "PKIX1.Certificate"
	Name             = "PKIX1.Name"
	SubjectAltName   = "PKIX1.SubjectAltName"
	RSAPublicKey     = "PKIX1.RSAPublicKey"
	DSAPublicKey     = "PKIX1.DSAPublicKey"
	DSSParms         = "PKIX1.Dss-Parms"
	DSASignature     = "PKIX1.Dss-Sig-Value"
	KeyUsage         = "PKIX1.KeyUsage"
	BasicConstraints = "PKIX1.BasicConstraints"
	DirectoryString  = "PKIX1.DirectoryString"
	CountryName      = "PKIX1.X520countryName"
	EmailAddress     = "PKIX1.Pkcs9email"
	DSAPrivateKey    = "PKIX1.DSAPrivateKey"
)

var registry = map[string]*Template{}

func register(structure string, t *Template) { registry[structure] = t }

// Registered reports whether structure names a known template.
func Registered(structure string) bool {
	_, ok := registry[structure]
	return ok
}

func init() {
	algorithmIdentifier := Seq("",
		Prim("algorithm", KindOID),
		Prim("parameters", KindAny).Opt(),
	)
	attributeTypeAndValue := Seq("",
		Prim("type", KindOID),
		Prim("value", KindAny),
	)
	name := Choice("",
		SeqOf("rdnSequence", SetOf("", attributeTypeAndValue)),
	)
	instant := Choice("",
		Prim("utcTime", KindUTCTime),
		Prim("generalTime", KindGeneralizedTime),
	)
	extension := Seq("",
		Prim("extnID", KindOID),
		Prim("critical", KindBoolean).Opt(),
		Prim("extnValue", KindOctetString),
	)

	tbs := Seq("tbsCertificate",
		Prim("version", KindInteger).ExplicitTag(0).Opt(),
		Prim("serialNumber", KindInteger),
		algorithmIdentifier.As("signature"),
		name.As("issuer"),
		Seq("validity", instant.As("notBefore"), instant.As("notAfter")),
		name.As("subject"),
		Seq("subjectPublicKeyInfo",
			algorithmIdentifier.As("algorithm"),
			Prim("subjectPublicKey", KindBitString),
		),
		Prim("issuerUniqueID", KindBitString).Implicit(1).Opt(),
		Prim("subjectUniqueID", KindBitString).Implicit(2).Opt(),
		SeqOf("extensions", extension).ExplicitTag(3).Opt(),
	)
	register(Certificate, Seq("certificate",
		tbs,
		algorithmIdentifier.As("signatureAlgorithm"),
		Prim("signature", KindBitString),
	))
	register(Name, name.As("name"))

	generalName := Choice("",
		Prim("otherName", KindAny).Implicit(0),
		Prim("rfc822Name", KindIA5String).Implicit(1),
		Prim("dNSName", KindIA5String).Implicit(2),
		Prim("x400Address", KindAny).Implicit(3),
		name.ExplicitTag(4).As("directoryName"),
		Prim("ediPartyName", KindAny).Implicit(5),
		Prim("uniformResourceIdentifier", KindIA5String).Implicit(6),
		Prim("iPAddress", KindOctetString).Implicit(7),
		Prim("registeredID", KindOID).Implicit(8),
	)
	register(SubjectAltName, SeqOf("subjectAltName", generalName))

	register(RSAPublicKey, Seq("rsaPublicKey",
		Prim("modulus", KindInteger),
		Prim("publicExponent", KindInteger),
	))
	register(DSAPublicKey, Prim("dsaPublicKey", KindInteger))
	register(DSSParms, Seq("dssParms",
		Prim("p", KindInteger),
		Prim("q", KindInteger),
		Prim("g", KindInteger),
	))
	register(DSASignature, Seq("dssSigValue",
		Prim("r", KindInteger),
		Prim("s", KindInteger),
	))
	register(DSAPrivateKey, Seq("dsaPrivateKey",
		Prim("version", KindInteger),
		Prim("p", KindInteger),
		Prim("q", KindInteger),
		Prim("g", KindInteger),
		Prim("Y", KindInteger),
		Prim("priv", KindInteger),
	))

	register(KeyUsage, Prim("keyUsage", KindBitString))
	register(BasicConstraints, Seq("basicConstraints",
		Prim("cA", KindBoolean).Opt(),
		Prim("pathLenConstraint", KindInteger).Opt(),
	))

	register(DirectoryString, Choice("directoryString",
		Prim("teletexString", KindTeletexString),
		Prim("printableString", KindPrintableString),
		Prim("universalString", KindUniversalString),
		Prim("utf8String", KindUTF8String),
		Prim("bmpString", KindBMPString),
	))
	register(CountryName, Prim("countryName", KindPrintableString))
	register(EmailAddress, Prim("emailAddress", KindIA5String))
}
