package main

import (
	"github.com/spf13/cobra"

	log "github.com/sirupsen/logrus"

	"github.com/ForgeOps/forge-license-sdk/forgelicense"
	"github.com/ForgeOps/forge-license-sdk/forgelicense/dsasig"
)

func newDecodeCommand() *cobra.Command {
	var (
		keyPath  string
		noVerify bool
		input    string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode (and verify) a sealed license token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := readInput(input)
			if err != nil {
				return err
			}

			var opts []forgelicense.SealedDecoderOption
			if !noVerify && keyPath != "" {
				pub, err := dsasig.LoadPublicKey(keyPath)
				if err != nil {
					return err
				}
				opts = append(opts, forgelicense.WithVerifier(pub))
			}

			result, err := forgelicense.NewSealedDecoder(opts...).Decode(token)
			if err != nil {
				return err
			}
			if err := writeOutput(output, result.Text); err != nil {
				return err
			}

			// A failed verification is advisory: the text is still
			// emitted, the caller decides how much to trust it.
			if result.Trust == forgelicense.TrustInvalid {
				log.Warn("the license can NOT be verified by the given public key")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&keyPath, "key", "k", "issuer_pub.pem",
		"DSA public key used to verify the license")
	cmd.Flags().BoolVarP(&noVerify, "no-verify", "V", false,
		"skip the license verification step")
	cmd.Flags().StringVarP(&input, "input", "i", stdioMark,
		`from where to read the token ("-" means stdin)`)
	cmd.Flags().StringVarP(&output, "output", "o", stdioMark,
		`where to save the decoded license ("-" means stdout)`)
	return cmd
}
