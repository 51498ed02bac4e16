package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ForgeOps/forge-license-sdk/forgelicense"
	"github.com/ForgeOps/forge-license-sdk/forgelicense/dsasig"
	"github.com/ForgeOps/forge-license-sdk/forgelicense/template"
)

func newEncodeCommand() *cobra.Command {
	var (
		output       string
		showRaw      bool
		keyPath      string
		passphrase   string
		varDefs      []string
		autoServerID bool
		record       bool
	)

	cmd := &cobra.Command{
		Use:   "encode TEMPLATE ORGANISATION [SERVER_ID]",
		Short: "Generate and seal a license token from a product template",
		Long: `Generate license text from a YAML product template, sign it with a DSA
private key, and pack it into a sealed license token.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			templatePath, organisation := args[0], args[1]

			serverID := ""
			if len(args) == 3 {
				serverID = args[2]
			}
			if serverID == "" && autoServerID {
				id, err := forgelicense.GenerateServerID()
				if err != nil {
					return fmt.Errorf("generate server id: %w", err)
				}
				serverID = id
			}

			product, err := template.LoadProduct(templatePath)
			if err != nil {
				return err
			}
			overrides, err := parseVarDefs(varDefs)
			if err != nil {
				return err
			}
			licenseText, err := product.Generate(organisation, serverID, overrides)
			if err != nil {
				return err
			}
			if showRaw {
				fmt.Fprintln(os.Stderr, licenseText)
			}

			passFunc := dsasig.PromptPassphrase(fmt.Sprintf("Enter passphrase for %s: ", keyPath))
			if passphrase != "" {
				passFunc = dsasig.Passphrase(passphrase)
			}
			key, err := dsasig.LoadPrivateKey(keyPath, passFunc)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			opts := []forgelicense.FabricatorOption{
				forgelicense.WithSealedEncoder(forgelicense.NewSealedEncoder(key)),
			}
			if record {
				reg, cleanup, err := openRegistry(ctx)
				if err != nil {
					return err
				}
				defer cleanup(ctx)
				opts = append(opts, forgelicense.WithRegistry(reg))
			}
			fab := forgelicense.NewFabricator(opts...)

			token, err := fab.Seal(ctx, productName(product, templatePath), organisation, licenseText)
			if err != nil {
				return err
			}
			return writeOutput(output, token)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", stdioMark,
		`where to save the token ("-" means stdout)`)
	cmd.Flags().BoolVar(&showRaw, "show-raw", false,
		"also print the plaintext license to stderr")
	cmd.Flags().StringVarP(&keyPath, "key", "k", "issuer.pem",
		"DSA private key used to sign the license")
	cmd.Flags().StringVar(&passphrase, "passphrase", "",
		"private key passphrase (prompted interactively when needed and not given)")
	cmd.Flags().StringArrayVarP(&varDefs, "var", "v", nil,
		"custom template variable, e.g. -v number_of_users=200")
	cmd.Flags().BoolVar(&autoServerID, "auto-server-id", false,
		"derive the server id from this machine when not given")
	cmd.Flags().BoolVar(&record, "record", false,
		"record the issued license in the configured registry")
	return cmd
}

// productName picks the registry label for a product: its declared name,
// or the template path as a fallback.
func productName(p *template.Product, path string) string {
	if name, ok := p.Defaults["name"].(string); ok && name != "" {
		return name
	}
	return path
}
