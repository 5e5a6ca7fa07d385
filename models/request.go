package models

import "fmt"

// AspectRatio is a width:height proportion for a generated image. Each
// provider translates it into its own wire encoding (pixel dimensions,
// ratio strings, and so on).
type AspectRatio string

const (
	AspectSquare    AspectRatio = "1:1"
	AspectWide      AspectRatio = "16:9"
	AspectTall      AspectRatio = "9:16"
	AspectLandscape AspectRatio = "4:3"
	AspectPortrait  AspectRatio = "3:4"
)

// DefaultAspectRatio is applied when a caller does not ask for one.
const DefaultAspectRatio = AspectSquare

// AspectRatios lists every supported ratio in a stable order.
var AspectRatios = []AspectRatio{
	AspectSquare,
	AspectWide,
	AspectTall,
	AspectLandscape,
	AspectPortrait,
}

// Valid reports whether a is one of the supported ratios.
func (a AspectRatio) Valid() bool {
	for _, known := range AspectRatios {
		if a == known {
			return true
		}
	}
	return false
}

// ParseAspectRatio resolves a caller-supplied ratio string. An empty string
// resolves to DefaultAspectRatio; anything else must match a known ratio.
func ParseAspectRatio(s string) (AspectRatio, error) {
	if s == "" {
		return DefaultAspectRatio, nil
	}
	ratio := AspectRatio(s)
	if !ratio.Valid() {
		return "", fmt.Errorf("unsupported aspect ratio %q", s)
	}
	return ratio, nil
}

// Style presets recognized by the studio UI. Providers treat the style as an
// opaque descriptor, so unknown values pass through untouched; these constants
// are the canonical set the frontend offers.
const (
	StylePhotorealistic = "photorealistic"
	StyleAnime          = "anime"
	StyleDigitalArt     = "digital-art"
	StyleWatercolor     = "watercolor"
	StyleOilPainting    = "oil-painting"
	StyleCyberpunk      = "cyberpunk"
)

// GenerationRequest is the normalized form of one generation ask. It is built
// once by the orchestration layer and not mutated afterwards; Prompt and Model
// are always non-empty and AspectRatio always holds a known ratio.
type GenerationRequest struct {
	Prompt         string      `json:"prompt"`
	Model          string      `json:"model"`
	AspectRatio    AspectRatio `json:"aspectRatio"`
	Style          string      `json:"style,omitempty"`
	NegativePrompt string      `json:"negativePrompt,omitempty"`
}
