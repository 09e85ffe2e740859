package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/hailam/chessrules/internal/board"
)

// The border around the squares, holding the coordinates, is a square
// divided by marginRatio.
const marginRatio = 2

// SVG writes the board as an SVG document with Unicode piece glyphs.
func SVG(w io.Writer, b *board.Board, opts Options) {
	size := opts.squareSize()
	margin := size / marginRatio
	canvas := svg.New(w)
	drawSquares(canvas, b, opts, size, margin, true)

	fontSize := size * 3 / 4
	for sq := board.A1; sq <= board.H8; sq++ {
		p := b.PieceAt(sq)
		if p == board.NoPiece {
			continue
		}
		x, y := squareOrigin(sq, size, margin)
		canvas.Text(x+size/2, y+size*4/5, glyphs[p],
			fmt.Sprintf(`font-size="%d"`, fontSize), `text-anchor="middle"`)
	}
	canvas.End()
}

// drawSquares starts the canvas and paints the squares, with coordinate
// labels when labels is set.
func drawSquares(canvas *svg.SVG, b *board.Board, opts Options, size, margin int, labels bool) {
	total := 8*size + 2*margin
	canvas.Startview(total, total, 0, 0, total, total)
	canvas.Rect(0, 0, total, total, `fill="#312e2b"`)

	kinds := classify(b, opts)
	for sq := board.A1; sq <= board.H8; sq++ {
		x, y := squareOrigin(sq, size, margin)
		canvas.Rect(x, y, size, size, fmt.Sprintf(`fill="%s"`, fill(sq, kinds[sq])))
	}
	if !labels {
		return
	}

	labelStyle := []string{fmt.Sprintf(`font-size="%d"`, margin*2/3), `fill="#e8e6e3"`, `text-anchor="middle"`}
	for i := 0; i < 8; i++ {
		file := string(rune('a' + i))
		rank := string(rune('8' - i))
		canvas.Text(margin+i*size+size/2, total-margin/4, file, labelStyle...)
		canvas.Text(margin/2, margin+i*size+size/2+margin/4, rank, labelStyle...)
	}
}

// squareOrigin is the top-left pixel of sq with rank 8 drawn first.
func squareOrigin(sq board.Square, size, margin int) (int, int) {
	return margin + sq.File()*size, margin + (7-sq.Rank())*size
}
