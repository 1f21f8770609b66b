package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/chrisi5700/mtgproxy/internal/assemble"
	"github.com/chrisi5700/mtgproxy/internal/config"
	"github.com/chrisi5700/mtgproxy/internal/decklist"
	"github.com/chrisi5700/mtgproxy/internal/fetch"
	"github.com/chrisi5700/mtgproxy/internal/layout"
	"github.com/chrisi5700/mtgproxy/internal/pdf"
	"github.com/chrisi5700/mtgproxy/internal/resolve"
	"github.com/chrisi5700/mtgproxy/internal/scryfall"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
)

var printCmd = &cobra.Command{
	Use:   "print [deck_file]",
	Short: "Render a deck list into a printable PDF of card images",
	Long: `Print reads a deck list and produces a paginated PDF of card images.

The deck list is either line-oriented text, one "<count>[x] <name>" per
line (blank lines and #/// comments ignored, an optional SB: sideboard
prefix stripped), or a JSON mapping of card name to count when the file
ends in .json.

Card geometry, page size, margins and DPI come from the config file at
$XDG_CONFIG_HOME/mtgproxy/config.toml, created with defaults on first
run.

Examples:
  mtgproxy print deck.txt
  mtgproxy print deck.txt -o burn.pdf
  mtgproxy print deck.json --quality large`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deckPath := args[0]

		output, _ := cmd.Flags().GetString("output")
		quality, _ := cmd.Flags().GetString("quality")

		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("error loading config: %v", err)
		}
		if quality != "" {
			cfg.Quality = quality
		}

		geo, err := geometryFromConfig(cfg)
		if err != nil {
			return err
		}
		if err := geo.Validate(); err != nil {
			return fmt.Errorf("invalid layout configuration: %v", err)
		}

		deck, err := decklist.Load(deckPath)
		if err != nil {
			return err
		}
		if len(deck.Entries) == 0 {
			return fmt.Errorf("deck list %s contains no entries", deckPath)
		}

		// One limiter shared by the lookup client and the image
		// fetcher: the request budget is per process, not per
		// component.
		limiter := scryfall.NewLimiter(cfg.RatePerSec)
		client := scryfall.NewClient(limiter)

		fetcher, err := fetch.New(filepath.Join(cfg.CacheDir, cfg.Quality), cfg.Quality, limiter)
		if err != nil {
			return err
		}
		resolver := resolve.New(fetcher, cfg.Quality, func(cardID string) string {
			return client.CardImageURL(cardID, cfg.Quality)
		})

		asm := assemble.New(client, resolver, printProgress)
		images, err := asm.Assemble(context.Background(), deck)
		if err != nil {
			fmt.Println()
			return err
		}
		fmt.Println()

		engine := layout.NewEngine(geo)
		for _, ic := range images {
			engine.Add(ic.Image, ic.Copies)
		}
		pages := engine.Pages()

		writer := &pdf.Writer{
			PageWidthMM:  cfg.PageWidthMM,
			PageHeightMM: cfg.PageHeightMM,
		}
		if err := writer.Write(pages, output); err != nil {
			return err
		}

		fmt.Printf("%s %s cards on %s → %s\n",
			colorize.GreenString("✓"),
			colorize.HiWhiteString("%d", deck.Size()),
			colorize.HiWhiteString("%d pages", len(pages)),
			output)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(printCmd)

	printCmd.Flags().StringP("output", "o", "cards.pdf", "Output PDF path")
	printCmd.Flags().StringP("quality", "q", "", "Image quality tier (png, large, normal, small)")
}

// geometryFromConfig converts the physical-units config to pixel space
func geometryFromConfig(cfg *config.Config) (layout.Geometry, error) {
	bg, err := cfg.BackgroundColor()
	if err != nil {
		return layout.Geometry{}, err
	}
	return layout.Geometry{
		CardW:      cfg.PixelsOf(cfg.CardWidthMM),
		CardH:      cfg.PixelsOf(cfg.CardHeightMM),
		PageW:      cfg.PixelsOf(cfg.PageWidthMM),
		PageH:      cfg.PixelsOf(cfg.PageHeightMM),
		Gap:        cfg.PixelsOf(cfg.GapMM),
		TopMargin:  cfg.PixelsOf(cfg.TopMarginMM),
		SideMargin: cfg.PixelsOf(cfg.SideMarginMM),
		Background: bg,
	}, nil
}

// printProgress rewrites a single progress line as cards resolve
func printProgress(done, total int) {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = 80
	}

	label := fmt.Sprintf(" %d/%d", done, total)
	barWidth := width - len("Downloading [] ") - len(label)
	if barWidth > 40 {
		barWidth = 40
	}
	if barWidth < 4 {
		fmt.Printf("\rDownloading%s", label)
		return
	}

	filled := barWidth * done / total
	bar := strings.Repeat("█", filled) + strings.Repeat(" ", barWidth-filled)
	fmt.Printf("\rDownloading [%s]%s", bar, label)
}
