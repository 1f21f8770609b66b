package cmd

import (
	"fmt"
	"os"

	"github.com/chrisi5700/mtgproxy/internal/config"
	"github.com/chrisi5700/mtgproxy/internal/decklist"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [deck_file]",
	Short: "Validate a deck list and the layout configuration offline",
	Long: `Check parses a deck list and validates the configured page geometry
without touching the network. It reports malformed entries, impossible
card/page dimensions, and names whose lookup key differs from the
written name (multi-face separators are truncated to the front face).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deckPath := args[0]

		if _, err := os.Stat(deckPath); os.IsNotExist(err) {
			return fmt.Errorf("deck list not found: %s", deckPath)
		}

		var errors []string
		var warnings []string

		deck, err := decklist.Load(deckPath)
		if err != nil {
			errors = append(errors, err.Error())
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			errors = append(errors, err.Error())
		} else {
			geo, err := geometryFromConfig(cfg)
			if err != nil {
				errors = append(errors, err.Error())
			} else if err := geo.Validate(); err != nil {
				errors = append(errors, err.Error())
			}
			if cfg.Quality != "png" {
				warnings = append(warnings,
					fmt.Sprintf("quality tier %q is below print quality (png)", cfg.Quality))
			}
		}

		if deck != nil {
			// A single "/" is truncated like a face separator, which
			// also hits names containing a literal slash.
			for _, name := range deck.Truncated {
				warnings = append(warnings,
					fmt.Sprintf("%q will be looked up as %q", name, decklist.FrontFaceName(name)))
			}
		}

		fmt.Println("Check Results:")
		fmt.Println("--------------")

		if len(errors) == 0 {
			fmt.Printf("%s Deck list '%s' parsed: %d cards across %d entries.\n",
				colorize.GreenString("✓"), deckPath, deck.Size(), len(deck.Entries))
		} else {
			fmt.Printf("%s Deck list '%s' has %d problems:\n",
				colorize.RedString("✗"), deckPath, len(errors))
			for i, e := range errors {
				fmt.Printf("%d. %s\n", i+1, e)
			}
		}

		if len(warnings) > 0 {
			fmt.Println("\nWarnings:")
			for i, w := range warnings {
				fmt.Printf("%d. %s\n", i+1, w)
			}
		}

		if len(errors) > 0 {
			return fmt.Errorf("check failed")
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(checkCmd)
}
