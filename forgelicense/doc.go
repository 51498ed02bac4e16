// Package forgelicense fabricates and validates vendor-style software
// license tokens for two product families.
//
// Install with:
//
//	go get github.com/ForgeOps/forge-license-sdk/forgelicense
//
// It implements two token formats:
//
//   - Sealed tokens: zlib-compressed license text, DSA-signed over its
//     SHA-1 digest, packed into a length-checksummed base64 wire format.
//     Sealed tokens round-trip: they can be decoded and verified.
//   - Derived tokens: a license key deterministically derived from the
//     license fields via a multiplicative string hash, substituted into a
//     fixed license-object literal and base64-encoded. Write-only.
//
// # Quick Start
//
// To fabricate a sealed token:
//
//	key, err := dsasig.LoadPrivateKey("issuer.pem", dsasig.Passphrase("secret"))
//	enc := forgelicense.NewSealedEncoder(key)
//	token, err := enc.Encode(licenseText)
//
// To decode and verify one:
//
//	pub, err := dsasig.LoadPublicKey("issuer_pub.pem")
//	dec := forgelicense.NewSealedDecoder(forgelicense.WithVerifier(pub))
//	result, err := dec.Decode(token)
//	// result.Text, result.Trust
//
// # Derived tokens
//
//	gen := forgelicense.NewDerivedGenerator()
//	text, err := gen.Generate("jira", "Example Corp", nil)
//	token := forgelicense.EncodeDerived(text)
package forgelicense
