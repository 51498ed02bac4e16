package main

import (
	"github.com/spf13/cobra"

	log "github.com/sirupsen/logrus"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "forgelic",
		Short: "Fabricates and decodes vendor-style license tokens",

		// Subcommands print their own errors via the Execute return,
		// so silence cobra's duplicates.
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	rootCmd.AddCommand(
		newEncodeCommand(),
		newDecodeCommand(),
		newDeriveCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
