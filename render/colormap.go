package render

import (
	"image/color"
	"math"
)

// RGB is one palette control point.
type RGB struct {
	R, G, B uint8
}

// Palette is an ordered list of RGB control points. Colors are produced by
// linear interpolation between the two control points adjacent to a
// normalized value in [0, 1].
type Palette struct {
	Name   string
	Points []RGB
}

// The fixed palette set.
var (
	Viridis = Palette{Name: "viridis", Points: []RGB{
		{68, 1, 84}, {71, 44, 122}, {59, 81, 139}, {44, 113, 142},
		{33, 144, 141}, {39, 173, 129}, {92, 200, 99}, {170, 220, 50},
		{253, 231, 37},
	}}
	Jet = Palette{Name: "jet", Points: []RGB{
		{0, 0, 131}, {0, 60, 170}, {5, 255, 255}, {255, 255, 0},
		{250, 0, 0}, {128, 0, 0},
	}}
	Hot = Palette{Name: "hot", Points: []RGB{
		{0, 0, 0}, {230, 0, 0}, {255, 210, 0}, {255, 255, 255},
	}}
	Grayscale = Palette{Name: "grayscale", Points: []RGB{
		{0, 0, 0}, {255, 255, 255},
	}}
)

var palettes = []Palette{Viridis, Jet, Hot, Grayscale}

// PaletteByName looks up a palette by name.
func PaletteByName(name string) (Palette, bool) {
	for _, p := range palettes {
		if p.Name == name {
			return p, true
		}
	}
	return Palette{}, false
}

// PaletteNames returns the available palette names.
func PaletteNames() []string {
	names := make([]string, len(palettes))
	for i, p := range palettes {
		names[i] = p.Name
	}
	return names
}

// At maps a normalized value in [0, 1] to a color. Values outside the range
// (or NaN) clamp to the nearest endpoint; NaN maps to the first control point.
func (p Palette) At(t float64) color.RGBA {
	if len(p.Points) == 0 {
		return color.RGBA{A: 255}
	}
	if math.IsNaN(t) || t <= 0 {
		pt := p.Points[0]
		return color.RGBA{R: pt.R, G: pt.G, B: pt.B, A: 255}
	}
	if t >= 1 {
		pt := p.Points[len(p.Points)-1]
		return color.RGBA{R: pt.R, G: pt.G, B: pt.B, A: 255}
	}

	pos := t * float64(len(p.Points)-1)
	i := int(pos)
	frac := pos - float64(i)
	a, b := p.Points[i], p.Points[i+1]

	return color.RGBA{
		R: lerpByte(a.R, b.R, frac),
		G: lerpByte(a.G, b.G, frac),
		B: lerpByte(a.B, b.B, frac),
		A: 255,
	}
}

func lerpByte(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + t*(float64(b)-float64(a)) + 0.5)
}
