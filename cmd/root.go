package cmd

import (
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "mtgproxy",
	Short: "Print proxy sheets of Magic cards",
	Long: `Mtgproxy turns a deck list of card names into a print-ready PDF of card
images fetched from Scryfall. Downloaded images are cached on disk, so
repeated runs of the same deck stay offline.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}
