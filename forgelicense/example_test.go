package forgelicense_test

import (
	"fmt"

	"github.com/ForgeOps/forge-license-sdk/forgelicense"
	"github.com/ForgeOps/forge-license-sdk/forgelicense/dsasig"
)

func ExampleNewSealedEncoder() {
	key, err := dsasig.LoadPrivateKey("issuer.pem", dsasig.Passphrase("secret"))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	enc := forgelicense.NewSealedEncoder(key)
	token, err := enc.Encode("Organisation=Example Corp\n")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println(token)
}

func ExampleNewSealedDecoder() {
	pub, err := dsasig.LoadPublicKey("issuer_pub.pem")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	dec := forgelicense.NewSealedDecoder(forgelicense.WithVerifier(pub))
	result, err := dec.Decode("AAAA...X02xy")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Text: %s, Trust: %s\n", result.Text, result.Trust)
}

func ExampleNewDerivedGenerator() {
	gen := forgelicense.NewDerivedGenerator()
	text, err := gen.Generate("jira", "Example Corp", nil)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	token := forgelicense.EncodeDerived(text)
	fmt.Println(token)
}

func ExampleDeriveKey() {
	key, err := forgelicense.DeriveKey(map[string]any{
		"quantity_users":  -1,
		"license_type":    "COMMERCIAL_ENTERPRISE",
		"name":            "Gliffy JIRA Plugin",
		"organisation":    "Example Corp",
		"expiration_date": "12/31/32",
		"quantity_nodes":  -1,
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println(key)
	// Output: 276013136-1356791416-1269058844-1696654698
}
