package tui

import (
	"fmt"
	"math"
	"strings"

	"chatweaver/internal/model"
	"chatweaver/internal/session"
	"chatweaver/internal/view"

	"github.com/charmbracelet/lipgloss"
)

// One terminal cell covers cellW x cellH canvas units at scale 1.
const (
	cellW = 8.0
	cellH = 16.0

	cardW = 26
	cardH = 5
)

type cardRect struct {
	id       string
	col, row int
	w, h     int
}

func (r cardRect) contains(col, row int) bool {
	return col >= r.col && col < r.col+r.w && row >= r.row && row < r.row+r.h
}

func viewportScale(vp session.Viewport) float64 {
	if vp.Scale <= 0 {
		return session.DefaultScale
	}
	return vp.Scale
}

func toCell(x, y float64, vp session.Viewport) (int, int) {
	s := viewportScale(vp)
	col := int(math.Round((x - vp.OffsetX) * s / cellW))
	row := int(math.Round((y - vp.OffsetY) * s / cellH))
	return col, row
}

// cellDelta converts a mouse motion in cells to canvas units.
func cellDelta(dcol, drow int, vp session.Viewport) (float64, float64) {
	s := viewportScale(vp)
	return float64(dcol) * cellW / s, float64(drow) * cellH / s
}

// layoutCards places every node of the canvas in cell space, in paint order.
func layoutCards(c view.Canvas) []cardRect {
	out := make([]cardRect, 0, len(c.Nodes))
	for _, n := range c.Nodes {
		col, row := toCell(n.Node.X, n.Node.Y, c.Viewport)
		out = append(out, cardRect{id: n.Node.ID, col: col, row: row, w: cardW, h: cardH})
	}
	return out
}

// hitCard returns the topmost card under (col, row), or "".
func hitCard(rects []cardRect, col, row int) string {
	for i := len(rects) - 1; i >= 0; i-- {
		if rects[i].contains(col, row) {
			return rects[i].id
		}
	}
	return ""
}

type edgeStyle uint8

const (
	edgeNone edgeStyle = iota
	edgeMuted
	edgeHighlighted
)

type grid struct {
	w, h  int
	runes [][]rune
	style [][]edgeStyle
}

func newGrid(w, h int) *grid {
	g := &grid{w: w, h: h, runes: make([][]rune, h), style: make([][]edgeStyle, h)}
	for y := 0; y < h; y++ {
		g.runes[y] = []rune(strings.Repeat(" ", w))
		g.style[y] = make([]edgeStyle, w)
	}
	return g
}

func (g *grid) set(x, y int, r rune, st edgeStyle) {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return
	}
	if g.style[y][x] == edgeHighlighted && st != edgeHighlighted {
		return
	}
	g.runes[y][x] = r
	g.style[y][x] = st
}

func (g *grid) vline(x, y0, y1 int, r rune, st edgeStyle) {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		g.set(x, y, r, st)
	}
}

func (g *grid) hline(y, x0, x1 int, r rune, st edgeStyle) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	for x := x0; x <= x1; x++ {
		g.set(x, y, r, st)
	}
}

func (g *grid) lines(accent lipgloss.TerminalColor) []string {
	muted := lipgloss.NewStyle().Foreground(colorChromeMutedFg)
	hi := lipgloss.NewStyle().Foreground(accent).Bold(true)
	out := make([]string, g.h)
	for y := 0; y < g.h; y++ {
		var b strings.Builder
		start := 0
		flush := func(end int) {
			if end <= start {
				return
			}
			seg := string(g.runes[y][start:end])
			switch g.style[y][start] {
			case edgeMuted:
				seg = muted.Render(seg)
			case edgeHighlighted:
				seg = hi.Render(seg)
			}
			b.WriteString(seg)
		}
		for x := 1; x <= g.w; x++ {
			if x == g.w || g.style[y][x] != g.style[y][start] {
				flush(x)
				start = x
			}
		}
		out[y] = b.String()
	}
	return out
}

// sourceCol picks the output column on the bottom edge of a card for an anchor.
func sourceCol(r cardRect, anchor string) int {
	switch anchor {
	case view.AnchorYes:
		return r.col + r.w/3
	case view.AnchorNo:
		return r.col + (2*r.w)/3
	default:
		return r.col + r.w/2
	}
}

func drawEdge(g *grid, from, to cardRect, e view.EdgeView) {
	st := edgeMuted
	if e.Highlighted {
		st = edgeHighlighted
	}
	vr, hr := '│', '─'
	if e.SourceAnchor == view.AnchorCondition {
		vr, hr = '╎', '╌'
	}
	sx, sy := sourceCol(from, e.SourceAnchor), from.row+from.h
	tx, ty := to.col+to.w/2, to.row-1
	mid := sy + (ty-sy)/2

	g.vline(sx, sy, mid, vr, st)
	g.hline(mid, sx, tx, hr, st)
	g.vline(tx, mid, ty, vr, st)
	if sx != tx {
		g.set(sx, mid, '┼', st)
		g.set(tx, mid, '┼', st)
	}
	switch e.SourceAnchor {
	case view.AnchorYes:
		g.set(sx, sy, 'y', st)
	case view.AnchorNo:
		g.set(sx, sy, 'n', st)
	}
	g.set(tx, ty, '▾', st)
}

func renderCard(n view.NodeView, pal palette) string {
	inner := cardW - 4
	typeColor := pal.node(n.Node.Type)

	head := lipgloss.NewStyle().Bold(true).Foreground(typeColor).Render(n.Node.Type.Label())
	if n.Node.Type != model.NodeCondition && n.CharacterName != "" {
		head += styleMuted().Render(" · " + truncateToWidth(n.CharacterName, inner-len(n.Node.Type.Label())-3))
	}

	msg := truncateToWidth(n.Node.Message, inner)
	if strings.TrimSpace(n.Node.Message) == "" {
		msg = styleMuted().Render("(empty)")
	}

	var meta []string
	if n.Conditions > 0 {
		word := "conditions"
		if n.Conditions == 1 {
			word = "condition"
		}
		meta = append(meta, fmt.Sprintf("%d %s", n.Conditions, word))
	}
	if n.ShowID {
		meta = append(meta, n.Node.ID)
	}
	foot := styleMuted().Render(truncateToWidth(strings.Join(meta, " · "), inner))

	border := lipgloss.NormalBorder()
	borderColor := colorCardBorder
	if n.Selected {
		border = lipgloss.ThickBorder()
		borderColor = pal.accent
	}
	st := lipgloss.NewStyle().
		Border(border).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(cardW - 2)
	if n.FadedOut {
		st = st.Foreground(colorFadedFg).BorderForeground(colorFadedFg)
		head = n.Node.Type.Label()
	}
	return st.Render(head + "\n" + msg + "\n" + foot)
}

// renderCanvas draws the edges first, then the cards on top (the selected card last).
func renderCanvas(c view.Canvas, width, height int, pal palette) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	rects := layoutCards(c)
	byID := make(map[string]cardRect, len(rects))
	for _, r := range rects {
		byID[r.id] = r
	}

	g := newGrid(width, height)
	for _, e := range c.Edges {
		from, ok1 := byID[e.From]
		to, ok2 := byID[e.To]
		if !ok1 || !ok2 {
			continue
		}
		drawEdge(g, from, to, e)
	}
	lines := g.lines(pal.accent)

	selected := -1
	for i, n := range c.Nodes {
		if n.Selected {
			selected = i
			continue
		}
		overlayBlock(lines, renderCard(n, pal), rects[i].col, rects[i].row, width)
	}
	if selected >= 0 {
		overlayBlock(lines, renderCard(c.Nodes[selected], pal), rects[selected].col, rects[selected].row, width)
	}
	return strings.Join(lines, "\n")
}
