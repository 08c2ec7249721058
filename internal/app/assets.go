package app

import (
	"path"

	"pions/internal/domain"
)

// AssetNames maps pion colors and sizes to the image names used by the
// renderer. Images live at "<size>/<color>.png".
type AssetNames struct {
	Colors map[domain.Color]string
	Sizes  map[domain.Size]string
}

// DefaultAssetNames matches the bundled image set.
var DefaultAssetNames = AssetNames{
	Colors: map[domain.Color]string{
		domain.ColorRed:    "rouge",
		domain.ColorYellow: "jaune",
		domain.ColorGreen:  "vert",
		domain.ColorBlue:   "bleu",
	},
	Sizes: map[domain.Size]string{
		domain.SizeSmall:  "petit",
		domain.SizeMedium: "moyen",
		domain.SizeLarge:  "grand",
	},
}

// ImagePath returns the image for t. Unmapped values fall back to the
// English names.
func (n AssetNames) ImagePath(t domain.Token) string {
	color, ok := n.Colors[t.Color]
	if !ok {
		color = t.Color.String()
	}
	size, ok := n.Sizes[t.Size]
	if !ok {
		size = t.Size.String()
	}
	return path.Join(size, color+".png")
}

// Palette lists every pion, sizes first then colors.
func (n AssetNames) Palette() []PaletteOption {
	out := make([]PaletteOption, 0, len(domain.Sizes)*len(domain.Colors))
	for _, s := range domain.Sizes {
		for _, c := range domain.Colors {
			t := domain.Token{Color: c, Size: s}
			out = append(out, PaletteOption{Color: c.String(), Size: s.String(), Image: n.ImagePath(t)})
		}
	}
	return out
}

// Palette is the binding the placement panel is built from.
func (a *App) Palette() []PaletteOption {
	return a.assets.Palette()
}

// ImagePath resolves the image for a pion given its English names.
func (a *App) ImagePath(color, size string) (string, error) {
	t, err := domain.ParseToken(color, size)
	if err != nil {
		return "", err
	}
	return a.assets.ImagePath(t), nil
}
