package visual

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/teranos/qntx-braket/errors"
)

const rasterMargin = 8

var (
	rasterBackground = color.RGBA{R: 0x28, G: 0x28, B: 0x28, A: 0xff}
	rasterForeground = color.RGBA{R: 0xeb, G: 0xdb, B: 0xb2, A: 0xff}
)

// The bitmap face only covers Latin-1; diagram glyphs are mapped onto ASCII
// stand-ins before drawing.
var rasterGlyphs = strings.NewReplacer(
	"─", "-",
	"│", "|",
	"║", "#",
	"●", "*",
	"█", "#",
	"⟩", ">",
)

// RasterizePNG draws text onto a dark canvas with a fixed 7x13 bitmap font
// and returns the encoded PNG.
func RasterizePNG(text string) ([]byte, error) {
	face := basicfont.Face7x13
	lines := strings.Split(rasterGlyphs.Replace(text), "\n")

	cols := 1
	for _, l := range lines {
		if w := len([]rune(l)); w > cols {
			cols = w
		}
	}
	w := cols*face.Advance + 2*rasterMargin
	h := len(lines)*face.Height + 2*rasterMargin

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: rasterBackground}, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{C: rasterForeground},
		Face: face,
	}
	for i, l := range lines {
		d.Dot = fixed.P(rasterMargin, rasterMargin+face.Ascent+i*face.Height)
		d.DrawString(l)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.MarkVisualization(errors.Wrap(err, "failed to encode png"))
	}
	return buf.Bytes(), nil
}
