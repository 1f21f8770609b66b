// Package resolve turns a Scryfall card record into its printable face
// images. Resolution is a chain of strategies tried in priority order:
// explicit card faces, then the record's own image URIs, then the
// generic card-image redirect as a last resort. The chain never yields
// an empty result for a resolvable card.
package resolve

import (
	"bytes"
	"context"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/chrisi5700/mtgproxy/internal/fetch"
	"github.com/chrisi5700/mtgproxy/internal/scryfall"
)

// Face is one printable card face: the decoded image and the stable
// cache key it was stored under.
type Face struct {
	Key   string
	Image image.Image
}

// RenderURLFunc builds the generic "render this card as an image" URL
// for a card ID.
type RenderURLFunc func(cardID string) string

type strategy func(ctx context.Context, card *scryfall.Card) ([]Face, error)

// Resolver resolves cards to face images through a Fetcher.
type Resolver struct {
	fetcher    *fetch.Fetcher
	tier       string
	renderURL  RenderURLFunc
	strategies []strategy
}

// New creates a Resolver downloading images at the given quality tier.
func New(fetcher *fetch.Fetcher, tier string, renderURL RenderURLFunc) *Resolver {
	r := &Resolver{
		fetcher:   fetcher,
		tier:      tier,
		renderURL: renderURL,
	}
	r.strategies = []strategy{
		r.explicitFaces,
		r.directImage,
		r.renderRedirect,
	}
	return r
}

// Faces returns the ordered face images for card, one entry per
// printable face. The result is never empty on success; a download
// failure at any step fails the whole resolution.
func (r *Resolver) Faces(ctx context.Context, card *scryfall.Card) ([]Face, error) {
	for _, s := range r.strategies {
		faces, err := s(ctx, card)
		if err != nil {
			return nil, err
		}
		if len(faces) > 0 {
			return faces, nil
		}
	}
	// Unreachable: renderRedirect always yields a face or an error.
	return nil, fmt.Errorf("card %s (%s) resolved to no faces", card.Name, card.ID)
}

// explicitFaces downloads every face of a multi-faced record, in the
// record's order. Faces without image URIs (e.g. a meld back) are
// skipped.
func (r *Resolver) explicitFaces(ctx context.Context, card *scryfall.Card) ([]Face, error) {
	if len(card.CardFaces) == 0 {
		return nil, nil
	}

	var faces []Face
	for i, cf := range card.CardFaces {
		if cf.ImageURIs == nil {
			continue
		}
		key := cf.IllustrationID
		if key == "" {
			key = fmt.Sprintf("%s-%d", card.ID, i)
		}
		face, err := r.download(ctx, cf.ImageURIs.Tier(r.tier), key)
		if err != nil {
			return nil, err
		}
		faces = append(faces, face)
	}
	return faces, nil
}

// directImage downloads the record's own image, keyed by the card ID
func (r *Resolver) directImage(ctx context.Context, card *scryfall.Card) ([]Face, error) {
	if card.ImageURIs == nil {
		return nil, nil
	}
	face, err := r.download(ctx, card.ImageURIs.Tier(r.tier), card.ID)
	if err != nil {
		return nil, err
	}
	return []Face{face}, nil
}

// renderRedirect falls back to the generic card-image endpoint
func (r *Resolver) renderRedirect(ctx context.Context, card *scryfall.Card) ([]Face, error) {
	face, err := r.download(ctx, r.renderURL(card.ID), card.ID)
	if err != nil {
		return nil, err
	}
	return []Face{face}, nil
}

func (r *Resolver) download(ctx context.Context, url, key string) (Face, error) {
	data, err := r.fetcher.Fetch(ctx, url, key)
	if err != nil {
		return Face{}, err
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return Face{}, fmt.Errorf("error decoding image %s: %w", key, err)
	}
	return Face{Key: key, Image: img}, nil
}
