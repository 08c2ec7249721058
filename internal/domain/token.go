package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrUnknownColor = errors.New("unknown color")
	ErrUnknownSize  = errors.New("unknown size")
)

// Color is the closed set of pion colors.
type Color int

const (
	ColorRed Color = iota
	ColorYellow
	ColorGreen
	ColorBlue
)

// Colors lists every color in palette order.
var Colors = []Color{ColorRed, ColorYellow, ColorGreen, ColorBlue}

var colorNames = map[Color]string{
	ColorRed:    "red",
	ColorYellow: "yellow",
	ColorGreen:  "green",
	ColorBlue:   "blue",
}

func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Color(%d)", int(c))
}

func (c Color) Valid() bool {
	_, ok := colorNames[c]
	return ok
}

// ParseColor resolves an English color name ("red", "blue", ...).
func ParseColor(name string) (Color, error) {
	for c, n := range colorNames {
		if n == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownColor, name)
}

func (c Color) MarshalJSON() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownColor, int(c))
	}
	return json.Marshal(c.String())
}

func (c *Color) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("decode color: %w", err)
	}
	parsed, err := ParseColor(name)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Size is the closed set of pion sizes.
type Size int

const (
	SizeSmall Size = iota
	SizeMedium
	SizeLarge
)

// Sizes lists every size from smallest to largest.
var Sizes = []Size{SizeSmall, SizeMedium, SizeLarge}

var sizeNames = map[Size]string{
	SizeSmall:  "small",
	SizeMedium: "medium",
	SizeLarge:  "large",
}

func (s Size) String() string {
	if name, ok := sizeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Size(%d)", int(s))
}

func (s Size) Valid() bool {
	_, ok := sizeNames[s]
	return ok
}

// ParseSize resolves an English size name ("small", "medium", "large").
func ParseSize(name string) (Size, error) {
	for s, n := range sizeNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSize, name)
}

func (s Size) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSize, int(s))
	}
	return json.Marshal(s.String())
}

func (s *Size) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("decode size: %w", err)
	}
	parsed, err := ParseSize(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Token is a single pion. It is a value type; cells hold their own copy.
type Token struct {
	Color Color `json:"color"`
	Size  Size  `json:"size"`
}

// UnmarshalJSON requires both color and size; a partial cell is an error,
// never a default pion.
func (t *Token) UnmarshalJSON(data []byte) error {
	var raw struct {
		Color *Color `json:"color"`
		Size  *Size  `json:"size"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode token: %w", err)
	}
	if raw.Color == nil {
		return fmt.Errorf("%w: missing color", ErrUnknownColor)
	}
	if raw.Size == nil {
		return fmt.Errorf("%w: missing size", ErrUnknownSize)
	}
	*t = Token{Color: *raw.Color, Size: *raw.Size}
	return nil
}

func (t Token) String() string {
	return t.Color.String() + "-" + t.Size.String()
}

// ParseToken builds a Token from English color and size names.
func ParseToken(color, size string) (Token, error) {
	c, err := ParseColor(color)
	if err != nil {
		return Token{}, err
	}
	s, err := ParseSize(size)
	if err != nil {
		return Token{}, err
	}
	return Token{Color: c, Size: s}, nil
}
