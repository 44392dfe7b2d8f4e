package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

func truncateToWidth(s string, w int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.TrimSpace(s)
	if w <= 0 {
		return ""
	}
	if xansi.StringWidth(s) <= w {
		return s
	}
	if w <= 1 {
		return "…"
	}
	return xansi.Truncate(s, w-1, "") + "…"
}

func padOrCutANSI(s string, w int) string {
	cur := xansi.StringWidth(s)
	switch {
	case cur < w:
		return s + strings.Repeat(" ", w-cur)
	case cur > w:
		return xansi.Cut(s, 0, w) + "\x1b[0m"
	default:
		return s
	}
}

// overlayBlock paints block onto lines with its top-left corner at (col, row). Lines are
// assumed to be exactly width cells wide; parts of the block outside are clipped.
func overlayBlock(lines []string, block string, col, row, width int) {
	for i, bl := range strings.Split(block, "\n") {
		y := row + i
		if y < 0 || y >= len(lines) {
			continue
		}
		bw := xansi.StringWidth(bl)
		if col >= width || col+bw <= 0 {
			continue
		}
		skip := 0
		if col < 0 {
			skip = -col
		}
		start := col + skip
		visible := bl
		if skip > 0 {
			visible = xansi.Cut(bl, skip, bw)
		}
		if start+xansi.StringWidth(visible) > width {
			visible = xansi.Cut(visible, 0, width-start)
		}
		base := lines[y]
		left := xansi.Cut(base, 0, start)
		right := xansi.Cut(base, start+xansi.StringWidth(visible), width)
		lines[y] = left + "\x1b[0m" + visible + "\x1b[0m" + right
	}
}
