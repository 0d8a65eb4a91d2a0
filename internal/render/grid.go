package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const captionHeight = 28

// Grid lays panels out left to right, top to bottom, under an optional
// caption. Every cell is sized to the largest panel.
type Grid struct {
	Caption string
	Columns int
	Panels  []image.Image
}

// Image composes the grid.
func (g Grid) Image() (*image.RGBA, error) {
	if len(g.Panels) == 0 {
		return nil, ErrNoData
	}
	cols := g.Columns
	if cols <= 0 || cols > len(g.Panels) {
		cols = len(g.Panels)
	}
	rows := (len(g.Panels) + cols - 1) / cols

	var cellW, cellH int
	for _, p := range g.Panels {
		b := p.Bounds()
		cellW = max(cellW, b.Dx())
		cellH = max(cellH, b.Dy())
	}

	top := 0
	if g.Caption != "" {
		top = captionHeight
	}
	canvas := image.NewRGBA(image.Rect(0, 0, cols*cellW, top+rows*cellH))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	for i, p := range g.Panels {
		x := (i % cols) * cellW
		y := top + (i/cols)*cellH
		b := p.Bounds()
		draw.Draw(canvas, image.Rect(x, y, x+b.Dx(), y+b.Dy()), p, b.Min, draw.Over)
	}
	if top > 0 {
		drawText(canvas, g.Caption, 10, top-9, color.Black)
	}
	return canvas, nil
}

// PNG composes the grid and encodes it.
func (g Grid) PNG() ([]byte, error) {
	img, err := g.Image()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode grid: %w", err)
	}
	return buf.Bytes(), nil
}

// decodePanel turns a rendered chart back into an image for composition.
func decodePanel(data []byte) (image.Image, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode panel: %w", err)
	}
	return img, nil
}

// placeholder is a blank panel carrying a title and a note, used where a
// chart cannot be drawn.
func placeholder(width, height int, title, note string) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	drawText(img, title, 16, 32, color.Black)
	drawText(img, note, 16, height/2, color.Gray{Y: 0x7f})
	return img
}

func drawText(dst draw.Image, text string, x, y int, col color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}
