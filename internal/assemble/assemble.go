// Package assemble orchestrates the deck download: batched name lookups
// against Scryfall, face resolution per record, and expansion into the
// ordered (image, copies) stream the layout engine consumes.
package assemble

import (
	"context"
	"fmt"
	"image"

	"github.com/chrisi5700/mtgproxy/internal/decklist"
	"github.com/chrisi5700/mtgproxy/internal/resolve"
	"github.com/chrisi5700/mtgproxy/internal/scryfall"
)

// ImageCount is one face image and the number of copies to place. A
// double-faced card requested four times yields two entries, each with
// Copies = 4.
type ImageCount struct {
	Image  image.Image
	Copies int
}

// ProgressFunc is called after each resolved record with the number of
// deck entries completed so far and the total.
type ProgressFunc func(done, total int)

// Assembler drives the lookup and resolution pipeline for a whole deck.
type Assembler struct {
	client   *scryfall.Client
	resolver *resolve.Resolver
	progress ProgressFunc
}

// New creates an Assembler. progress may be nil.
func New(client *scryfall.Client, resolver *resolve.Resolver, progress ProgressFunc) *Assembler {
	return &Assembler{client: client, resolver: resolver, progress: progress}
}

// Assemble resolves every deck entry and returns the ImageCount stream
// in deck order: batch order, then record order within the batch, then
// face order within the record. Any unresolved name fails the whole run
// with a *scryfall.NotFoundError listing every missing name; there is
// no partial result.
func (a *Assembler) Assemble(ctx context.Context, deck *decklist.Deck) ([]ImageCount, error) {
	entries := deck.Entries
	total := len(entries)
	done := 0

	var out []ImageCount
	for start := 0; start < len(entries); start += scryfall.MaxBatchSize {
		end := start + scryfall.MaxBatchSize
		if end > len(entries) {
			end = len(entries)
		}
		batch := entries[start:end]

		names := make([]string, len(batch))
		for i, e := range batch {
			names[i] = e.Name
		}

		cards, notFound, err := a.client.Collection(ctx, names)
		if err != nil {
			return nil, fmt.Errorf("batch %d: %w", start/scryfall.MaxBatchSize+1, err)
		}
		if len(notFound) > 0 {
			return nil, &scryfall.NotFoundError{Names: notFound}
		}
		if len(cards) != len(batch) {
			return nil, fmt.Errorf("batch %d: got %d cards for %d names", start/scryfall.MaxBatchSize+1, len(cards), len(batch))
		}

		// With no names missing, resolved cards line up positionally
		// with the batch entries.
		for i := range batch {
			faces, err := a.resolver.Faces(ctx, &cards[i])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", batch[i].Name, err)
			}
			for _, face := range faces {
				out = append(out, ImageCount{Image: face.Image, Copies: batch[i].Count})
			}
			done++
			if a.progress != nil {
				a.progress(done, total)
			}
		}
	}

	return out, nil
}
