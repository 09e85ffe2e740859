package render

import (
	"strings"

	"github.com/fatih/color"

	"github.com/hailam/chessrules/internal/board"
)

var textColors = map[squareKind][2]*color.Color{
	plainSquare: {
		color.New(color.BgHiWhite, color.FgBlack),
		color.New(color.BgYellow, color.FgBlack),
	},
	highlighted: {
		color.New(color.BgHiGreen, color.FgBlack),
		color.New(color.BgGreen, color.FgBlack),
	},
	threatened: {
		color.New(color.BgHiMagenta, color.FgBlack),
		color.New(color.BgMagenta, color.FgBlack),
	},
	kingInCheck: {
		color.New(color.BgHiRed, color.FgBlack, color.Bold),
		color.New(color.BgRed, color.FgBlack, color.Bold),
	},
}

// Text draws the board with rank 8 on top, one letter per piece
// (upper case white). Without colours, empty squares are '.', highlighted
// empty squares '*', threatened empty squares '+' and a king in check is
// wrapped in brackets.
func Text(b *board.Board, opts Options) string {
	kinds := classify(b, opts)
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte(byte('1' + rank))
		sb.WriteByte(' ')
		for file := 0; file < 8; file++ {
			sq := board.NewSquare(file, rank)
			sb.WriteString(textSquare(b.PieceAt(sq), sq, kinds[sq], opts.NoColor))
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   a  b  c  d  e  f  g  h\n")
	return sb.String()
}

func textSquare(p board.Piece, sq board.Square, kind squareKind, noColor bool) string {
	ch := " "
	if p != board.NoPiece {
		ch = string(p.Char())
	}
	if noColor {
		switch {
		case kind == kingInCheck:
			return "[" + ch + "]"
		case p == board.NoPiece && kind == highlighted:
			return " * "
		case p == board.NoPiece && kind == threatened:
			return " + "
		case p == board.NoPiece:
			return " . "
		}
		return " " + ch + " "
	}
	shade := 1
	if isLight(sq) {
		shade = 0
	}
	c := *textColors[kind][shade]
	c.EnableColor()
	return c.Sprint(" " + ch + " ")
}
