package model

import (
	"strconv"
	"strings"
)

// ColorKind distinguishes the two forms a stored color can take.
type ColorKind int

const (
	// ColorSymbolic is a named palette entry, e.g. "blue".
	ColorSymbolic ColorKind = iota
	// ColorLiteral is a literal hex color, e.g. "#ea6b6b".
	ColorLiteral
)

// Color is a tag or group color as stored: either a symbolic palette
// key or a literal hex string.
type Color struct {
	Value string
	Kind  ColorKind
}

// ParseColor classifies a stored color string.
func ParseColor(s string) Color {
	if strings.HasPrefix(s, "#") {
		return Color{Kind: ColorLiteral, Value: s}
	}
	return Color{Kind: ColorSymbolic, Value: s}
}

// String returns the stored form of the color.
func (c Color) String() string { return c.Value }

// ColorPair is a resolved background/foreground pairing ready for display.
type ColorPair struct {
	Background string
	Foreground string
}

// palette maps symbolic color names to display pairs.
var palette = map[string]ColorPair{
	"default": {Background: "#e3e2e0", Foreground: "#32302c"},
	"gray":    {Background: "#e3e2e0", Foreground: "#32302c"},
	"brown":   {Background: "#eee0da", Foreground: "#442a1e"},
	"orange":  {Background: "#fadec9", Foreground: "#49290e"},
	"yellow":  {Background: "#fdecc8", Foreground: "#402c1b"},
	"green":   {Background: "#dbeddb", Foreground: "#1c3829"},
	"blue":    {Background: "#d3e5ef", Foreground: "#183347"},
	"purple":  {Background: "#e8deee", Foreground: "#412454"},
	"pink":    {Background: "#f5e0e9", Foreground: "#4c2337"},
	"red":     {Background: "#ffe2dd", Foreground: "#5d1715"},
}

// Resolve maps a color to its display pair. Literal hex colors get a
// luminance-contrasted foreground; unknown symbolic keys fall back to
// the default palette entry.
func (c Color) Resolve() ColorPair {
	if c.Kind == ColorLiteral {
		return ColorPair{Background: c.Value, Foreground: contrastColor(c.Value)}
	}
	if pair, ok := palette[c.Value]; ok {
		return pair
	}
	return palette["default"]
}

// contrastColor picks black or white text for a hex background using
// the YIQ luminance formula: (R*299 + G*587 + B*114) / 1000.
func contrastColor(hex string) string {
	if len(hex) != 7 || !strings.HasPrefix(hex, "#") {
		return "#000000"
	}
	r, errR := strconv.ParseInt(hex[1:3], 16, 32)
	g, errG := strconv.ParseInt(hex[3:5], 16, 32)
	b, errB := strconv.ParseInt(hex[5:7], 16, 32)
	if errR != nil || errG != nil || errB != nil {
		return "#000000"
	}
	yiq := (r*299 + g*587 + b*114) / 1000
	if yiq >= 128 {
		return "#000000"
	}
	return "#ffffff"
}
