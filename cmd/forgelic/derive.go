package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ForgeOps/forge-license-sdk/forgelicense"
)

func newDeriveCommand() *cobra.Command {
	var (
		output       string
		showRaw      bool
		varDefs      []string
		templatePath string
		record       bool
	)

	cmd := &cobra.Command{
		Use:   "derive PRODUCT ORGANISATION",
		Short: "Fabricate a derived-format license token",
		Long: `Fabricate a derived-format license: the license key is computed from the
field values themselves, so there is no signing key. Known products:
jira, confluence. Other products need a -v name=... override or a custom
template.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			product, organisation := args[0], args[1]

			overrides, err := parseVarDefs(varDefs)
			if err != nil {
				return err
			}

			var genOpts []forgelicense.DerivedOption
			if templatePath != "" {
				tmpl, err := readInput(templatePath)
				if err != nil {
					return err
				}
				genOpts = append(genOpts, forgelicense.WithDerivedTemplate(tmpl))
			}
			gen := forgelicense.NewDerivedGenerator(genOpts...)

			if showRaw {
				text, err := gen.Generate(product, organisation, overrides)
				if err != nil {
					return err
				}
				fmt.Fprintln(os.Stderr, text)
				fmt.Fprintln(os.Stderr)
			}

			ctx := cmd.Context()
			opts := []forgelicense.FabricatorOption{
				forgelicense.WithDerivedGenerator(gen),
			}
			if record {
				reg, cleanup, err := openRegistry(ctx)
				if err != nil {
					return err
				}
				defer cleanup(ctx)
				opts = append(opts, forgelicense.WithRegistry(reg))
			}

			token, err := forgelicense.NewFabricator(opts...).Derive(ctx, product, organisation, overrides)
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
	cmd.Flags().StringArrayVarP(&varDefs, "var", "v", nil,
		"custom template variable, e.g. -v quantity_users=200")
	cmd.Flags().StringVarP(&templatePath, "template", "t", "",
		`custom license template file ("-" means stdin)`)
	cmd.Flags().BoolVar(&record, "record", false,
		"record the issued license in the configured registry")
	return cmd
}
