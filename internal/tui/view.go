package tui

import (
	"fmt"
	"strings"

	"chatweaver/internal/session"
	"chatweaver/internal/view"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const ribbonLabelWidth = 12

type ribbonSegment struct {
	id         string
	name       string
	more       bool
	start, end int
}

func ribbonTitle(r session.Ribbon) string {
	switch r {
	case session.RibbonWorkspaces:
		return "Workspaces"
	case session.RibbonChats:
		return "Chats"
	default:
		return "Characters"
	}
}

// ribbonSegments lays out a ribbon's entries in screen columns. Items are padded by one
// cell on each side and separated by one cell.
func ribbonSegments(r session.Ribbon, rv view.RibbonView) []ribbonSegment {
	col := ribbonLabelWidth
	var out []ribbonSegment
	add := func(seg ribbonSegment) {
		w := xansi.StringWidth(seg.name) + 2
		seg.start, seg.end = col, col+w
		out = append(out, seg)
		col += w + 1
	}
	for _, it := range rv.Items {
		add(ribbonSegment{id: it.ID, name: ribbonItemName(r, it)})
	}
	if rv.MoreLabel != "" {
		add(ribbonSegment{name: rv.MoreLabel, more: true})
	}
	return out
}

func ribbonItemName(r session.Ribbon, it view.Item) string {
	name := strings.TrimSpace(it.Name)
	if name == "" {
		switch r {
		case session.RibbonWorkspaces:
			name = "Untitled workspace"
		case session.RibbonChats:
			name = "Untitled chat"
		default:
			name = "Unnamed"
		}
	}
	return truncateToWidth(name, 24)
}

func (m appModel) renderRibbon(r session.Ribbon, selectedID string, focused bool) string {
	rv := m.ribbons[r]
	labelStyle := lipgloss.NewStyle().Foreground(colorChromeMutedFg).Width(ribbonLabelWidth)
	if focused {
		labelStyle = labelStyle.Foreground(m.pal.accent).Bold(true)
	}
	var b strings.Builder
	b.WriteString(labelStyle.Render(ribbonTitle(r)))

	itemStyle := lipgloss.NewStyle().Padding(0, 1).Foreground(colorSurfaceFg)
	selStyle := itemStyle.Bold(true).Foreground(colorSelectedFg).Background(colorSelectedBg)
	moreStyle := itemStyle.Foreground(m.pal.accent).Underline(true)

	segs := ribbonSegments(r, rv)
	for i, seg := range segs {
		st := itemStyle
		switch {
		case seg.more:
			st = moreStyle
		case seg.id == selectedID:
			st = selStyle
		}
		if focused && i == m.cursor[r] {
			st = st.Reverse(true)
		}
		b.WriteString(st.Render(seg.name))
		if i < len(segs)-1 {
			b.WriteString(" ")
		}
	}
	if len(segs) == 0 {
		switch {
		case r == session.RibbonWorkspaces:
			b.WriteString(styleMuted().Render("none yet (n to add)"))
		case m.ctrl.State().WorkspaceID != "":
			b.WriteString(styleMuted().Render("none yet (n to add)"))
		}
	}
	return padOrCutANSI(b.String(), m.width)
}

func (m appModel) renderPanel(height int) string {
	n, ok := m.selectedNode()
	if !ok {
		return ""
	}
	ws, _ := m.currentChat()
	inner := panelWidth - 3

	var lines []string
	title := lipgloss.NewStyle().Bold(true).Foreground(m.pal.node(n.Type)).Render(n.Type.Label())
	lines = append(lines, title+styleMuted().Render("  "+n.ID))
	speaker := ws.CharacterName(n.Character)
	if speaker == "" {
		speaker = "no one"
	}
	lines = append(lines, styleMuted().Render("Character: ")+truncateToWidth(speaker, inner-11))
	lines = append(lines, "")

	msg := renderMarkdown(n.Message, inner)
	if msg == "" {
		msg = styleMuted().Render("(empty message, e to edit)")
	}
	lines = append(lines, strings.Split(msg, "\n")...)
	lines = append(lines, "")

	header := "Links"
	if m.focus == paneLinks {
		header = lipgloss.NewStyle().Bold(true).Foreground(m.pal.accent).Render(header)
	}
	lines = append(lines, header)
	_, chat := m.currentChat()
	links := m.panelLinks()
	if len(links) == 0 {
		lines = append(lines, styleMuted().Render("  end of conversation"))
	}
	for i, e := range links {
		target, _ := chat.Node(e.To)
		row := fmt.Sprintf("%s → %s", linkLabel(e.SourceAnchor), describeNode(*target))
		prefix := "  "
		if m.focus == paneLinks && i == m.linkIdx {
			prefix = "› "
			row = lipgloss.NewStyle().Foreground(colorErrorFg).Render(truncateToWidth(row, inner-2)) + styleMuted().Render(" x")
		} else {
			row = truncateToWidth(row, inner-2)
		}
		lines = append(lines, prefix+row)
	}

	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for i := range lines {
		lines[i] = padOrCutANSI(lines[i], inner)
	}
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(colorCardBorder).
		PaddingLeft(1).
		Render(strings.Join(lines, "\n"))
}

func (m appModel) renderStatus() string {
	st := m.ctrl.State()
	var tags []string
	tag := lipgloss.NewStyle().Bold(true).Foreground(m.pal.accent)
	if st.Drawing() {
		t := "LINK " + st.LinkFrom
		if m.linkAim != "" {
			t += " → " + m.linkAim
		}
		tags = append(tags, tag.Render(t))
	}
	if m.ctrl.Panning() {
		tags = append(tags, tag.Render("PAN"))
	}
	tags = append(tags, styleMuted().Render("["+focusName(m.focus)+"]"))

	left := strings.Join(tags, " ")
	if m.minibuffer != "" {
		left += "  " + m.minibuffer
	}
	right := m.help.ShortHelpView(m.keys.ShortHelp())
	gap := m.width - xansi.StringWidth(left) - xansi.StringWidth(right)
	if gap < 2 {
		return padOrCutANSI(left, m.width)
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m appModel) View() string {
	if m.modal != modalNone {
		return placeCentered(m.width, m.height, m.renderModal())
	}

	st := m.ctrl.State()
	header := []string{
		m.renderRibbon(session.RibbonWorkspaces, st.WorkspaceID, m.focus == paneWorkspaces),
		m.renderRibbon(session.RibbonChats, st.ChatID, m.focus == paneChats),
		m.renderRibbon(session.RibbonCharacters, m.charID, m.focus == paneCharacters),
	}

	ch := m.canvasHeight()
	var body string
	if _, chat := m.currentChat(); chat == nil {
		hint := "Select a chat to start editing."
		if st.WorkspaceID == "" {
			hint = "Select or add a workspace to start."
		}
		body = lipgloss.Place(m.width, ch, lipgloss.Center, lipgloss.Center, styleMuted().Render(hint))
	} else {
		body = renderCanvas(m.ctrl.Canvas(m.canvasOptions()), m.canvasWidth(), ch, m.pal)
		if m.showPanel() {
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.renderPanel(ch))
		}
	}
	return strings.Join(header, "\n") + "\n" + body + "\n" + m.renderStatus()
}

func (m appModel) renderModal() string {
	bodyW := modalBodyWidth(m.width)
	switch m.modal {
	case modalConfirm:
		body := ""
		if p := m.ctrl.Pending(); p != nil {
			body = p.Prompt
		}
		return renderConfirmModal(m.width, "Delete", body, "Delete", "Cancel", m.confirmFocus)

	case modalEditMessage:
		help := styleMuted().Width(bodyW).Render("ctrl+s: save   esc: cancel")
		return renderModalBox(m.width, "Message: "+m.editNodeID, m.textarea.View()+"\n\n"+help)

	case modalRename:
		title := "Rename " + strings.TrimSuffix(string(m.renameKind), "s")
		help := styleMuted().Width(bodyW).Render("enter: save   esc: cancel")
		return renderModalBox(m.width, title, m.input.View()+"\n\n"+help)

	case modalPlayback:
		return m.renderPlayback(bodyW)

	case modalImport:
		help := styleMuted().Render("enter: import   esc: cancel   h/backspace: up   l/right: open dir")
		return renderModalBox(m.width, "Import workspace", m.picker.View()+"\n"+help)

	case modalHelp:
		return renderModalBox(m.width, "Keys", m.help.FullHelpView(m.keys.FullHelp())+"\n\n"+styleMuted().Render("any key: close"))
	}
	return ""
}

func (m appModel) renderPlayback(bodyW int) string {
	pv := view.Playback(m.ctrl.Snapshot(), m.ctrl.State())
	if pv == nil {
		return ""
	}
	speaker := pv.Speaker
	if speaker == "" {
		speaker = "…"
	}
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(m.pal.text).Render(speaker))
	b.WriteString("\n\n")
	msg := renderMarkdown(pv.Message, bodyW)
	if msg == "" {
		msg = styleMuted().Render("(empty)")
	}
	b.WriteString(msg)
	b.WriteString("\n\n")
	for i, c := range pv.Choices {
		line := fmt.Sprintf("%d. %s", i+1, truncateToWidth(c.Label, bodyW-6))
		if i == m.playIdx {
			line = lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true).Render("› " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	help := "enter/1-9: choose   esc: stop"
	if pv.CanFinish {
		help = "f: finish   esc: stop"
	}
	b.WriteString("\n" + styleMuted().Width(bodyW).Render(help))
	return renderModalBox(m.width, "Playback", b.String())
}
