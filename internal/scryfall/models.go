package scryfall

import (
	"fmt"
	"strings"
)

// Card represents a Magic card as returned by Scryfall.
type Card struct {
	ID        string     `json:"id"`
	OracleID  string     `json:"oracle_id"`
	Name      string     `json:"name"`
	Layout    string     `json:"layout"`
	TypeLine  string     `json:"type_line"`
	SetCode   string     `json:"set"`
	ImageURIs *ImageURIs `json:"image_uris,omitempty"`

	// Card faces (for DFCs, MDFCs, split cards)
	CardFaces []CardFace `json:"card_faces,omitempty"`
}

// CardFace represents one face of a multi-faced card. Faces have no ID
// of their own; IllustrationID is the closest stable identifier.
type CardFace struct {
	Name           string     `json:"name"`
	TypeLine       string     `json:"type_line"`
	IllustrationID string     `json:"illustration_id,omitempty"`
	ImageURIs      *ImageURIs `json:"image_uris,omitempty"`
}

// ImageURIs contains URLs for card images in various quality tiers.
type ImageURIs struct {
	Small      string `json:"small"`
	Normal     string `json:"normal"`
	Large      string `json:"large"`
	PNG        string `json:"png"`
	ArtCrop    string `json:"art_crop"`
	BorderCrop string `json:"border_crop"`
}

// Tier returns the image URL for a named quality tier. The "png" tier is
// the maximum quality and the one used for print output.
func (u *ImageURIs) Tier(name string) string {
	switch strings.ToLower(name) {
	case "small":
		return u.Small
	case "normal":
		return u.Normal
	case "large":
		return u.Large
	default:
		return u.PNG
	}
}

// APIError represents an error response from the Scryfall API.
type APIError struct {
	Object  string `json:"object"`
	Code    string `json:"code"`
	Status  int    `json:"status"`
	Details string `json:"details"`
}

// Error implements the error interface for APIError.
func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("Scryfall API error (HTTP %d): %s", e.Status, e.Details)
	}
	return fmt.Sprintf("Scryfall API error (HTTP %d): %s", e.Status, e.Code)
}

// NotFoundError reports card names the collection endpoint could not
// resolve. The whole lookup fails; there is no partial result.
type NotFoundError struct {
	Names []string
}

// Error implements the error interface for NotFoundError.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("cards not found: %s", strings.Join(e.Names, ", "))
}
