package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"sync"

	svg "github.com/ajstarks/svgo"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/hailam/chessrules/internal/board"
)

var (
	whiteInk = image.NewUniform(color.RGBA{0xff, 0xff, 0xff, 0xff})
	blackInk = image.NewUniform(color.RGBA{0x10, 0x10, 0x10, 0xff})
)

var (
	boldOnce sync.Once
	boldFont *opentype.Font
	boldErr  error
)

// pieceFace returns a bold face sized for squares of the given edge.
func pieceFace(size int) (font.Face, error) {
	boldOnce.Do(func() {
		boldFont, boldErr = opentype.Parse(gobold.TTF)
	})
	if boldErr != nil {
		return nil, fmt.Errorf("load bold font: %w", boldErr)
	}
	return opentype.NewFace(boldFont, &opentype.FaceOptions{
		Size:    float64(size) * 0.6,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// PNG rasterises the squares and draws each piece as its letter, white
// pieces in white ink and black pieces in black ink.
func PNG(w io.Writer, b *board.Board, opts Options) error {
	img, err := Image(b, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// Image renders the board into an RGBA image.
func Image(b *board.Board, opts Options) (*image.RGBA, error) {
	size := opts.squareSize()
	margin := size / marginRatio

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	drawSquares(canvas, b, opts, size, margin, false)
	canvas.End()

	icon, err := oksvg.ReadIconStream(&buf)
	if err != nil {
		return nil, fmt.Errorf("parse board svg: %w", err)
	}
	total := 8*size + 2*margin
	icon.SetTarget(0, 0, float64(total), float64(total))

	rgba := image.NewRGBA(image.Rect(0, 0, total, total))
	scanner := rasterx.NewScannerGV(total, total, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(total, total, scanner)
	icon.Draw(raster, 1.0)

	face, err := pieceFace(size)
	if err != nil {
		return nil, err
	}
	defer face.Close()
	capHeight := face.Metrics().CapHeight.Round()
	for sq := board.A1; sq <= board.H8; sq++ {
		p := b.PieceAt(sq)
		if p == board.NoPiece {
			continue
		}
		ink := whiteInk
		if p.Color() == board.Black {
			ink = blackInk
		}
		letter := string(p.Type().Char())
		x, y := squareOrigin(sq, size, margin)
		width := font.MeasureString(face, letter).Round()
		d := &font.Drawer{
			Dst:  rgba,
			Src:  ink,
			Face: face,
			Dot:  fixed.P(x+(size-width)/2, y+(size+capHeight)/2),
		}
		d.DrawString(letter)
	}

	// Coordinates use the fixed 7x13 face.
	small := basicfont.Face7x13
	labels := &font.Drawer{Dst: rgba, Src: whiteInk, Face: small}
	for i := 0; i < 8; i++ {
		labels.Dot = fixed.P(margin+i*size+(size-small.Advance)/2, total-(margin-small.Ascent)/2)
		labels.DrawString(string(rune('a' + i)))
		labels.Dot = fixed.P((margin-small.Advance)/2, margin+i*size+(size+small.Ascent)/2)
		labels.DrawString(string(rune('8' - i)))
	}
	return rgba, nil
}
