package tourview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/dylan/spotlight/geometry"
)

// canvas is a screen of styled lines, all padded to the same width.
type canvas struct {
	lines  []string
	width  int
	height int
}

func newCanvas(s string, width, height int) canvas {
	lines := splitLines(s)
	for len(lines) < height {
		lines = append(lines, "")
	}
	lines = lines[:height]
	for i := range lines {
		lines[i] = fit(lines[i], width)
	}
	return canvas{lines: lines, width: width, height: height}
}

func (c canvas) String() string {
	return strings.Join(c.lines, "\n")
}

// dim repaints every cell in the backdrop style, dropping the original
// colors.
func (c canvas) dim(style lipgloss.Style) canvas {
	out := canvas{lines: make([]string, len(c.lines)), width: c.width, height: c.height}
	for i, line := range c.lines {
		out.lines[i] = style.Render(ansi.Strip(line))
	}
	return out
}

// punch copies the cells of r from src, leaving everything else as is.
func (c canvas) punch(src canvas, r geometry.Rect) {
	r = r.Intersect(geometry.Rect{W: c.width, H: c.height})
	if r.Empty() {
		return
	}
	for row := r.Y; row < r.Bottom(); row++ {
		c.lines[row] = splice(c.lines[row], cut(src.lines[row], r.X, r.Right()), r.X, c.width)
	}
}

// ring draws a rounded border on the edge cells of r.
func (c canvas) ring(r geometry.Rect, style lipgloss.Style) {
	if r.W < 2 || r.H < 2 {
		return
	}
	b := lipgloss.RoundedBorder()
	top := b.TopLeft + strings.Repeat(b.Top, r.W-2) + b.TopRight
	bottom := b.BottomLeft + strings.Repeat(b.Bottom, r.W-2) + b.BottomRight
	c.paint(style.Render(top), r.X, r.Y)
	c.paint(style.Render(bottom), r.X, r.Bottom()-1)
	for row := r.Y + 1; row < r.Bottom()-1; row++ {
		c.paint(style.Render(b.Left), r.X, row)
		c.paint(style.Render(b.Right), r.Right()-1, row)
	}
}

// paint writes a single-line string at (x, y), clipping at the edges.
func (c canvas) paint(s string, x, y int) {
	if y < 0 || y >= c.height {
		return
	}
	if x < 0 {
		s = ansi.TruncateLeft(s, -x, "")
		x = 0
	}
	if x >= c.width {
		return
	}
	s = ansi.Truncate(s, c.width-x, "")
	c.lines[y] = splice(c.lines[y], s, x, c.width)
}

// overlay composites a multi-line block with its top-left corner at p.
func (c canvas) overlay(block string, p geometry.Point) {
	lines := splitLines(block)
	w := maxLineWidth(lines)
	for i, line := range lines {
		c.paint(fit(line, w), p.X, p.Y+i)
	}
}

// splice replaces the cells of line starting at x with seg.
func splice(line, seg string, x, width int) string {
	left := ansi.Truncate(line, x, "")
	if lw := ansi.StringWidth(left); lw < x {
		left += strings.Repeat(" ", x-lw)
	}
	right := ansi.TruncateLeft(line, x+ansi.StringWidth(seg), "")
	return fit(left+seg+right, width)
}

// cut returns the cells [from, to) of line.
func cut(line string, from, to int) string {
	return ansi.TruncateLeft(ansi.Truncate(line, to, ""), from, "")
}

// fit pads or truncates s to exactly width cells.
func fit(s string, width int) string {
	w := ansi.StringWidth(s)
	switch {
	case w > width:
		return ansi.Truncate(s, width, "")
	case w < width:
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func splitLines(s string) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}

func maxLineWidth(lines []string) int {
	m := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > m {
			m = w
		}
	}
	return m
}
