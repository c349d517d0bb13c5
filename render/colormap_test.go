package render

import (
	"image/color"
	"math"
	"testing"
)

func TestPaletteAtEndpoints(t *testing.T) {
	for _, p := range []Palette{Viridis, Jet, Hot, Grayscale} {
		first := p.Points[0]
		last := p.Points[len(p.Points)-1]

		if got := p.At(0); got != (color.RGBA{first.R, first.G, first.B, 255}) {
			t.Errorf("%s.At(0) = %v, want first control point", p.Name, got)
		}
		if got := p.At(1); got != (color.RGBA{last.R, last.G, last.B, 255}) {
			t.Errorf("%s.At(1) = %v, want last control point", p.Name, got)
		}
	}
}

func TestPaletteAtClampsAndRejectsNaN(t *testing.T) {
	first := Viridis.Points[0]
	want := color.RGBA{first.R, first.G, first.B, 255}

	if got := Viridis.At(-5); got != want {
		t.Errorf("At(-5) = %v, want first control point", got)
	}
	if got := Viridis.At(math.NaN()); got != want {
		t.Errorf("At(NaN) = %v, want first control point", got)
	}

	last := Viridis.Points[len(Viridis.Points)-1]
	if got := Viridis.At(7); got != (color.RGBA{last.R, last.G, last.B, 255}) {
		t.Errorf("At(7) = %v, want last control point", got)
	}
}

func TestPaletteAtMidpoint(t *testing.T) {
	// Grayscale at 0.5 lands halfway between black and white.
	got := Grayscale.At(0.5)
	if got.R != 128 || got.G != 128 || got.B != 128 {
		t.Errorf("grayscale.At(0.5) = %v, want (128, 128, 128)", got)
	}
}

func TestPaletteByName(t *testing.T) {
	for _, name := range PaletteNames() {
		p, ok := PaletteByName(name)
		if !ok || p.Name != name {
			t.Errorf("PaletteByName(%q) = (%v, %v)", name, p.Name, ok)
		}
	}
	if _, ok := PaletteByName("plasma"); ok {
		t.Error("unknown palette name resolved")
	}
}
