package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Surface is the renderer's drawing target: an addressable pixel grid with
// rectangle fill and text overlay. The abstraction keeps the raster loop
// portable between a headless bitmap (tests, PNG export) and any other 2D
// drawing context.
type Surface interface {
	Size() (width, height int)
	Fill(c color.RGBA)
	FillRect(x, y, w, h int, c color.RGBA)
	DrawText(x, y int, text string, c color.RGBA)
}

// ImageSurface draws onto an in-memory RGBA bitmap.
type ImageSurface struct {
	img  *image.RGBA
	face font.Face
}

// NewImageSurface allocates a bitmap surface of the given dimensions.
func NewImageSurface(width, height int) *ImageSurface {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &ImageSurface{
		img:  image.NewRGBA(image.Rect(0, 0, width, height)),
		face: basicfont.Face7x13,
	}
}

// Image exposes the backing bitmap.
func (s *ImageSurface) Image() *image.RGBA {
	return s.img
}

// EncodePNG writes the current raster as a PNG.
func (s *ImageSurface) EncodePNG(w io.Writer) error {
	return png.Encode(w, s.img)
}

// At returns the pixel color at (x, y).
func (s *ImageSurface) At(x, y int) color.RGBA {
	return s.img.RGBAAt(x, y)
}

func (s *ImageSurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *ImageSurface) Fill(c color.RGBA) {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

func (s *ImageSurface) FillRect(x, y, w, h int, c color.RGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	rect := image.Rect(x, y, x+w, y+h).Intersect(s.img.Bounds())
	if rect.Empty() {
		return
	}
	draw.Draw(s.img, rect, image.NewUniform(c), image.Point{}, draw.Src)
}

// DrawText draws text with (x, y) at the baseline's left edge.
func (s *ImageSurface) DrawText(x, y int, text string, c color.RGBA) {
	d := font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(c),
		Face: s.face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
