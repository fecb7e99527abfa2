package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	upperHalf = '▀'
	lowerHalf = '▄'
)

// cell is one terminal character: a glyph with optional colors.
type cell struct {
	glyph rune
	fg    string
	bg    string
}

func (f *Frame) cell(col, row int) cell {
	top := f.At(col, row*2)
	bottom := f.At(col, row*2+1)

	switch {
	case top.Empty() && bottom.Empty():
		return cell{glyph: ' '}
	case bottom.Empty():
		return cell{glyph: upperHalf, fg: top.Color.Hex()}
	case top.Empty():
		return cell{glyph: lowerHalf, fg: bottom.Color.Hex()}
	default:
		return cell{glyph: upperHalf, fg: top.Color.Hex(), bg: bottom.Color.Hex()}
	}
}

// Rows returns the number of terminal rows the frame occupies.
func (f *Frame) Rows() int {
	return f.Height / 2
}

// Encode renders the frame as lines of styled half-block characters.
// Runs of identical cells share one styled segment.
func (f *Frame) Encode() string {
	var b strings.Builder

	for row := 0; row < f.Rows(); row++ {
		if row > 0 {
			b.WriteByte('\n')
		}

		var run []rune
		var runCell cell
		flush := func() {
			if len(run) == 0 {
				return
			}
			b.WriteString(styleFor(runCell).Render(string(run)))
			run = run[:0]
		}

		for col := 0; col < f.Width; col++ {
			c := f.cell(col, row)
			if len(run) > 0 && (c.fg != runCell.fg || c.bg != runCell.bg) {
				flush()
			}
			runCell = c
			run = append(run, c.glyph)
		}
		flush()
	}

	return b.String()
}

func styleFor(c cell) lipgloss.Style {
	style := lipgloss.NewStyle()
	if c.fg != "" {
		style = style.Foreground(lipgloss.Color(c.fg))
	}
	if c.bg != "" {
		style = style.Background(lipgloss.Color(c.bg))
	}
	return style
}
