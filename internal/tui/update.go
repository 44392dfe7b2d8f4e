package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"chatweaver/internal/interact"
	"chatweaver/internal/model"
	"chatweaver/internal/session"
	"chatweaver/internal/store"
	"chatweaver/internal/view"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

const (
	minibufferTTL = 3 * time.Second
	panCols       = 4
	panRows       = 2
	wheelRows     = 3
)

func minibufferTimeout(seq int) tea.Cmd {
	return tea.Tick(minibufferTTL, func(time.Time) tea.Msg { return minibufferDoneMsg{seq: seq} })
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.textarea.SetWidth(modalBodyWidth(m.width))
		m.textarea.SetHeight(8)
		m.picker.Height = max(m.height-12, 5)
		return m, nil

	case prefsChangedMsg:
		m.prefs = msg.prefs
		m.pal = paletteFromPrefs(msg.prefs)
		applyThemePreference(msg.prefs.Theme)
		return m, nil

	case minibufferDoneMsg:
		if msg.seq == m.minibufferSeq {
			m.minibuffer = ""
		}
		return m, nil

	case tea.MouseMsg:
		if m.modal != modalNone {
			return m, nil
		}
		m.updateMouse(tea.MouseEvent(msg))
		next := m.settle()
		return m, next

	case tea.KeyMsg:
		if m.modal != modalNone {
			return m.updateModal(msg)
		}
		return m.updateKey(msg)
	}

	if m.modal == modalImport {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}
	return m, nil
}

// settle syncs modals and ribbons with the controller after any event and surfaces the
// controller's notice in the minibuffer.
func (m *appModel) settle() tea.Cmd {
	st := m.ctrl.State()
	m.refreshRibbons()
	if m.ctrl.Pending() != nil && m.modal == modalNone {
		m.modal = modalConfirm
		m.confirmFocus = confirmFocusConfirm
	}
	if m.modal == modalPlayback && !st.Playing() {
		m.modal = modalNone
	}
	if st.Playing() && m.modal == modalNone {
		m.modal = modalPlayback
		m.playIdx = 0
	}
	if m.focus == paneLinks && st.NodeID == "" {
		m.focus = paneCanvas
		m.ctrl.ClearHover()
	}
	if !st.Drawing() {
		m.linkAim = ""
	}
	if n := m.ctrl.Notice(); n != "" {
		m.ctrl.ClearNotice()
		return m.showMinibuffer(n)
	}
	return nil
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.modal = modalHelp
		return m, nil
	case key.Matches(msg, m.keys.Pan):
		// Terminals report no key release, so space toggles pan mode.
		if m.ctrl.Panning() {
			m.ctrl.KeyUp(interact.KeySpace)
		} else {
			m.ctrl.KeyDown(interact.KeySpace, false)
		}
		return m, nil
	case key.Matches(msg, m.keys.FocusNext):
		m.cycleFocus(1)
		return m, nil
	case key.Matches(msg, m.keys.FocusPrev):
		m.cycleFocus(-1)
		return m, nil
	case key.Matches(msg, m.keys.ToggleIDs):
		m.prefs.ShowNodeIDs = !m.prefs.ShowNodeIDs
		next := m.savePrefs()
		return m, next
	case key.Matches(msg, m.keys.ToggleCond):
		m.prefs.ShowConditionsConnections = !m.prefs.ShowConditionsConnections
		next := m.savePrefs()
		return m, next
	case key.Matches(msg, m.keys.Import):
		next := m.openImportPicker()
		return m, next
	case key.Matches(msg, m.keys.Export):
		next := m.exportCurrent()
		return m, next
	}

	switch m.focus {
	case paneWorkspaces, paneChats, paneCharacters:
		m.updateRibbonKey(ribbonOrder[m.focus-paneWorkspaces], msg)
	case paneLinks:
		m.updateLinksKey(msg)
	default:
		cmd := m.updateCanvasKey(msg)
		settled := m.settle()
		return m, tea.Batch(cmd, settled)
	}
	next := m.settle()
	return m, next
}

func (m *appModel) cycleFocus(dir int) {
	st := m.ctrl.State()
	avail := []pane{paneCanvas, paneWorkspaces}
	if st.WorkspaceID != "" {
		avail = append(avail, paneChats, paneCharacters)
	}
	if st.NodeID != "" {
		avail = append(avail, paneLinks)
	}
	idx := 0
	for i, p := range avail {
		if p == m.focus {
			idx = i
		}
	}
	idx = (idx + dir + len(avail)) % len(avail)
	if m.focus == paneLinks {
		m.ctrl.ClearHover()
	}
	m.focus = avail[idx]
	if m.focus == paneLinks {
		m.linkIdx = 0
		m.hoverLink()
	}
}

func (m *appModel) savePrefs() tea.Cmd {
	if err := store.SavePrefs(m.prefs); err != nil {
		m.log.Warn("save prefs", zap.Error(err))
		return m.showMinibuffer("Preferences not saved: " + err.Error())
	}
	return nil
}

func (m appModel) currentChat() (*model.Workspace, *model.Chat) {
	return m.ctrl.State().Current(m.ctrl.Snapshot())
}

func (m appModel) selectedNode() (*model.ChatNode, bool) {
	_, chat := m.currentChat()
	if chat == nil {
		return nil, false
	}
	return chat.Node(m.ctrl.State().NodeID)
}

// stepNode returns the id next to from in chat order, wrapping around.
func stepNode(chat *model.Chat, from string, dir int) string {
	if chat == nil || len(chat.Nodes) == 0 {
		return ""
	}
	i := chat.NodeIndex(from)
	if i < 0 {
		if dir < 0 {
			return chat.Nodes[len(chat.Nodes)-1].ID
		}
		return chat.Nodes[0].ID
	}
	n := len(chat.Nodes)
	return chat.Nodes[(i+dir+n)%n].ID
}

func (m *appModel) updateCanvasKey(msg tea.KeyMsg) tea.Cmd {
	st := m.ctrl.State()
	_, chat := m.currentChat()
	nodeID := st.NodeID

	switch {
	case msg.String() == "shift+left", msg.String() == "shift+right", msg.String() == "shift+up", msg.String() == "shift+down":
		if nodeID == "" {
			return nil
		}
		dc, dr := 0, 0
		switch msg.String() {
		case "shift+left":
			dc = -1
		case "shift+right":
			dc = 1
		case "shift+up":
			dr = -1
		case "shift+down":
			dr = 1
		}
		dx, dy := cellDelta(dc, dr, st.Viewport)
		m.ctrl.PointerDown(nodeID)
		m.ctrl.PointerMove(dx, dy)
		_ = m.ctrl.PointerUp()

	case key.Matches(msg, m.keys.Left):
		st.Pan(cellDelta(panCols, 0, st.Viewport))
	case key.Matches(msg, m.keys.Right):
		st.Pan(cellDelta(-panCols, 0, st.Viewport))
	case key.Matches(msg, m.keys.Up):
		st.Pan(cellDelta(0, panRows, st.Viewport))
	case key.Matches(msg, m.keys.Down):
		st.Pan(cellDelta(0, -panRows, st.Viewport))

	case key.Matches(msg, m.keys.NextNode), key.Matches(msg, m.keys.PrevNode):
		dir := 1
		if key.Matches(msg, m.keys.PrevNode) {
			dir = -1
		}
		if st.Drawing() {
			from := m.linkAim
			if from == "" {
				from = st.LinkFrom
			}
			m.linkAim = stepNode(chat, from, dir)
			return nil
		}
		if next := stepNode(chat, nodeID, dir); next != "" {
			_ = m.ctrl.SelectNode(next)
		}

	case key.Matches(msg, m.keys.Select):
		switch {
		case st.Drawing():
			if m.linkAim != "" {
				_ = m.ctrl.ClickNode(m.linkAim)
			}
		case nodeID != "":
			m.openEditMessage(nodeID)
		case chat != nil && len(chat.Nodes) > 0:
			_ = m.ctrl.SelectNode(chat.Nodes[0].ID)
		}

	case key.Matches(msg, m.keys.Unselect):
		m.ctrl.ClickCanvas()

	case key.Matches(msg, m.keys.Edit):
		if nodeID != "" {
			m.openEditMessage(nodeID)
		}

	case key.Matches(msg, m.keys.AddChild):
		if nodeID == "" {
			return nil
		}
		if id, err := m.ctrl.AddChild(nodeID); err == nil {
			_ = m.ctrl.SelectNode(id)
		}

	case key.Matches(msg, m.keys.Link):
		if nodeID == "" {
			return nil
		}
		if err := m.ctrl.StartLink(nodeID); err == nil && st.Drawing() {
			m.linkAim = ""
			return m.showMinibuffer("Linking from " + nodeID + ": ]/[ to aim, enter to connect, esc to cancel")
		}

	case key.Matches(msg, m.keys.Delete):
		if nodeID != "" {
			_ = m.ctrl.DeleteNode(nodeID)
		}

	case key.Matches(msg, m.keys.CycleType):
		if n, ok := m.selectedNode(); ok {
			_ = m.ctrl.ChangeType(n.ID, nextNodeType(n.Type))
		}

	case key.Matches(msg, m.keys.CycleChar):
		return m.cycleCharacter()

	case key.Matches(msg, m.keys.Play):
		if nodeID != "" {
			_ = m.ctrl.Play(nodeID)
		}

	case key.Matches(msg, m.keys.Add):
		if id, err := m.ctrl.AddChat(); err == nil {
			_ = m.ctrl.SelectChat(id)
		}

	case key.Matches(msg, m.keys.Rename):
		if _, c := m.currentChat(); c != nil {
			m.openRename(session.RibbonChats, c.ID, c.Name)
		}
	}
	return nil
}

func nextNodeType(t model.NodeType) model.NodeType {
	for i, nt := range model.NodeTypes {
		if nt == t {
			return model.NodeTypes[(i+1)%len(model.NodeTypes)]
		}
	}
	return model.NodeText
}

// cycleCharacter steps the selected node through no one, then each character in order.
func (m *appModel) cycleCharacter() tea.Cmd {
	ws, _ := m.currentChat()
	n, ok := m.selectedNode()
	if ws == nil || !ok {
		return nil
	}
	cur := n.CharacterID()
	if len(ws.Characters) == 0 {
		return m.showMinibuffer("No characters yet: add one in the characters ribbon.")
	}
	next := ws.Characters[0].ID
	if cur != "" {
		i := ws.CharacterIndex(cur)
		if i == len(ws.Characters)-1 {
			// Assigning the current character again clears it.
			_ = m.ctrl.SetCharacter(n.ID, cur)
			return nil
		}
		next = ws.Characters[i+1].ID
	}
	_ = m.ctrl.SetCharacter(n.ID, next)
	return nil
}

func (m *appModel) updateRibbonKey(r session.Ribbon, msg tea.KeyMsg) {
	rv := m.ribbons[r]
	slots := ribbonSlots(rv)
	cur := m.cursor[r]

	switch {
	case key.Matches(msg, m.keys.Left):
		if cur > 0 {
			m.cursor[r] = cur - 1
		}
	case key.Matches(msg, m.keys.Right):
		if cur < slots-1 {
			m.cursor[r] = cur + 1
		}
	case key.Matches(msg, m.keys.Down), key.Matches(msg, m.keys.Unselect):
		m.focus = paneCanvas
	case key.Matches(msg, m.keys.Expand):
		m.expanded[r] = !m.expanded[r]
	case key.Matches(msg, m.keys.Select):
		if cur >= len(rv.Items) {
			m.expanded[r] = !m.expanded[r]
			return
		}
		m.activateRibbonItem(r, rv.Items[cur].ID)
	case key.Matches(msg, m.keys.Add):
		m.addRibbonItem(r)
	case key.Matches(msg, m.keys.Rename):
		if cur < len(rv.Items) {
			it := rv.Items[cur]
			m.openRename(r, it.ID, it.Name)
		}
	case key.Matches(msg, m.keys.Delete):
		if cur >= len(rv.Items) {
			return
		}
		id := rv.Items[cur].ID
		switch r {
		case session.RibbonWorkspaces:
			_ = m.ctrl.DeleteWorkspace(id)
		case session.RibbonChats:
			_ = m.ctrl.DeleteChat(id)
		case session.RibbonCharacters:
			_ = m.ctrl.DeleteCharacter(id)
		}
	}
}

func (m *appModel) activateRibbonItem(r session.Ribbon, id string) {
	switch r {
	case session.RibbonWorkspaces:
		_ = m.ctrl.SelectWorkspace(id)
	case session.RibbonChats:
		_ = m.ctrl.SelectChat(id)
	case session.RibbonCharacters:
		m.charID = id
		if n, ok := m.selectedNode(); ok {
			_ = m.ctrl.SetCharacter(n.ID, id)
		}
	}
}

func (m *appModel) addRibbonItem(r session.Ribbon) {
	switch r {
	case session.RibbonWorkspaces:
		_ = m.ctrl.SelectWorkspace(m.ctrl.AddWorkspace())
	case session.RibbonChats:
		if id, err := m.ctrl.AddChat(); err == nil {
			_ = m.ctrl.SelectChat(id)
		}
	case session.RibbonCharacters:
		if id, err := m.ctrl.AddCharacter(); err == nil {
			m.charID = id
		}
	}
	m.cursor[r] = 0
}

// panelLinks are the outgoing links of the selected node, as listed in the side panel.
func (m appModel) panelLinks() []view.EdgeView {
	_, chat := m.currentChat()
	n, ok := m.selectedNode()
	if !ok {
		return nil
	}
	return view.Links(chat, *n)
}

func (m *appModel) hoverLink() {
	links := m.panelLinks()
	if len(links) == 0 {
		m.ctrl.ClearHover()
		return
	}
	if m.linkIdx >= len(links) {
		m.linkIdx = len(links) - 1
	}
	m.ctrl.HoverDelete(links[m.linkIdx].To)
}

func (m *appModel) updateLinksKey(msg tea.KeyMsg) {
	links := m.panelLinks()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.linkIdx > 0 {
			m.linkIdx--
		}
		m.hoverLink()
	case key.Matches(msg, m.keys.Down):
		if m.linkIdx < len(links)-1 {
			m.linkIdx++
		}
		m.hoverLink()
	case key.Matches(msg, m.keys.Delete):
		if m.linkIdx < len(links) {
			e := links[m.linkIdx]
			_ = m.ctrl.RemoveLink(e.From, e.To)
			m.hoverLink()
		}
	case key.Matches(msg, m.keys.Select):
		if m.linkIdx < len(links) {
			m.ctrl.ClearHover()
			_ = m.ctrl.SelectNode(links[m.linkIdx].To)
			m.focus = paneCanvas
		}
	case key.Matches(msg, m.keys.Unselect):
		m.ctrl.ClearHover()
		m.focus = paneCanvas
	}
}

func (m *appModel) openEditMessage(nodeID string) {
	_, chat := m.currentChat()
	if chat == nil {
		return
	}
	n, ok := chat.Node(nodeID)
	if !ok {
		return
	}
	m.editNodeID = nodeID
	m.textarea.SetValue(n.Message)
	m.textarea.SetWidth(modalBodyWidth(m.width))
	m.textarea.SetHeight(8)
	m.textarea.Focus()
	m.modal = modalEditMessage
}

func (m *appModel) openRename(r session.Ribbon, id, current string) {
	m.renameKind = r
	m.renameID = id
	m.input.SetValue(current)
	m.input.CursorEnd()
	m.input.Focus()
	m.modal = modalRename
}

func (m *appModel) openImportPicker() tea.Cmd {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".json"}
	fp.FileAllowed = true
	fp.DirAllowed = false
	fp.ShowHidden = false
	fp.ShowPermissions = false
	fp.ShowSize = true
	fp.AutoHeight = false
	fp.Height = max(m.height-12, 5)
	fp.Cursor = "›"
	fp.KeyMap.Back = key.NewBinding(
		key.WithKeys("h", "backspace", "left"),
		key.WithHelp("h", "up"),
	)
	fp.Styles.Cursor = lipgloss.NewStyle().Foreground(m.pal.accent)
	fp.Styles.Selected = lipgloss.NewStyle().Foreground(m.pal.accent).Bold(true)
	fp.Styles.Directory = lipgloss.NewStyle().Foreground(m.pal.accent)
	fp.Styles.DisabledFile = styleMuted()
	fp.Styles.FileSize = styleMuted().Width(fp.Styles.FileSize.GetWidth()).Align(lipgloss.Right)

	if wd, err := os.Getwd(); err == nil {
		fp.CurrentDirectory = wd
	}
	m.picker = fp
	m.modal = modalImport
	return fp.Init()
}

func (m *appModel) importFile(path string) tea.Cmd {
	m.modal = modalNone
	b, err := os.ReadFile(path)
	if err != nil {
		return m.showMinibuffer("Import failed: " + err.Error())
	}
	ws, err := store.DecodeWorkspace(b)
	if err != nil {
		return m.showMinibuffer("Import failed: " + err.Error())
	}
	if _, err := m.ctrl.ImportWorkspace(ws); err != nil {
		return m.settle()
	}
	m.settle()
	return m.showMinibuffer("Imported " + filepath.Base(path))
}

func (m *appModel) exportCurrent() tea.Cmd {
	ws, _ := m.currentChat()
	if ws == nil {
		return m.showMinibuffer(interact.ErrNoWorkspace.Error())
	}
	exp, err := store.ExportWorkspace(m.ctrl.Snapshot(), ws.ID)
	if err != nil {
		return m.showMinibuffer("Export failed: " + err.Error())
	}
	path, err := store.WriteExport(m.exportDir, exp, true)
	if err != nil {
		return m.showMinibuffer("Export failed: " + err.Error())
	}
	return m.showMinibuffer("Exported " + path)
}

func (m appModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalHelp:
		m.modal = modalNone
		return m, nil

	case modalConfirm:
		switch msg.String() {
		case "tab", "shift+tab", "left", "right":
			if m.confirmFocus == confirmFocusConfirm {
				m.confirmFocus = confirmFocusCancel
			} else {
				m.confirmFocus = confirmFocusConfirm
			}
			return m, nil
		case "enter":
			return m.resolvePending(m.confirmFocus == confirmFocusConfirm)
		case "y":
			return m.resolvePending(true)
		case "n", "esc", "ctrl+g":
			return m.resolvePending(false)
		}
		return m, nil

	case modalEditMessage:
		switch msg.String() {
		case "esc", "ctrl+g":
			m.modal = modalNone
			m.textarea.Blur()
			return m, nil
		case "ctrl+s":
			m.modal = modalNone
			m.textarea.Blur()
			_ = m.ctrl.ChangeMessage(m.editNodeID, m.textarea.Value())
			next := m.settle()
			return m, next
		}
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd

	case modalRename:
		switch msg.String() {
		case "esc", "ctrl+g":
			m.modal = modalNone
			m.input.Blur()
			return m, nil
		case "enter":
			m.modal = modalNone
			m.input.Blur()
			name := m.input.Value()
			switch m.renameKind {
			case session.RibbonWorkspaces:
				_ = m.ctrl.RenameWorkspace(m.renameID, name)
			case session.RibbonChats:
				_ = m.ctrl.RenameChat(m.renameID, name)
			case session.RibbonCharacters:
				_ = m.ctrl.RenameCharacter(m.renameID, name)
			}
			next := m.settle()
			return m, next
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case modalPlayback:
		return m.updatePlayback(msg)

	case modalImport:
		if msg.String() == "esc" || msg.String() == "ctrl+g" {
			m.modal = modalNone
			return m, nil
		}
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		if ok, path := m.picker.DidSelectFile(msg); ok {
			next := m.importFile(path)
			return m, next
		}
		return m, cmd
	}
	return m, nil
}

func (m appModel) resolvePending(confirmed bool) (tea.Model, tea.Cmd) {
	m.modal = modalNone
	_ = m.ctrl.Resolve(confirmed)
	next := m.settle()
	return m, next
}

func (m appModel) updatePlayback(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pv := view.Playback(m.ctrl.Snapshot(), m.ctrl.State())
	if pv == nil {
		m.modal = modalNone
		return m, nil
	}
	s := msg.String()
	switch {
	case s == "esc" || s == "ctrl+g" || s == "q":
		m.ctrl.FinishPlayback()
	case s == "f" && pv.CanFinish:
		m.ctrl.FinishPlayback()
	case key.Matches(msg, m.keys.Up):
		if m.playIdx > 0 {
			m.playIdx--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.playIdx < len(pv.Choices)-1 {
			m.playIdx++
		}
		return m, nil
	case s == "enter":
		if m.playIdx < len(pv.Choices) {
			_ = m.ctrl.Choose(pv.Choices[m.playIdx].TargetID)
			m.playIdx = 0
		}
	case len(s) == 1 && s[0] >= '1' && s[0] <= '9':
		i := int(s[0] - '1')
		if i < len(pv.Choices) {
			_ = m.ctrl.Choose(pv.Choices[i].TargetID)
			m.playIdx = 0
		}
	default:
		return m, nil
	}
	next := m.settle()
	return m, next
}

func (m *appModel) updateMouse(ev tea.MouseEvent) {
	st := m.ctrl.State()
	switch {
	case ev.Button == tea.MouseButtonWheelUp || ev.Button == tea.MouseButtonWheelDown:
		_, dy := cellDelta(0, wheelRows, st.Viewport)
		if ev.Button == tea.MouseButtonWheelUp {
			dy = -dy
		}
		if res := m.ctrl.Wheel(ev.Ctrl, dy); res.PreventDefault {
			m.log.Debug("zoom gesture ignored")
		}

	case ev.Action == tea.MouseActionPress && ev.Button == tea.MouseButtonLeft:
		if ev.Y < ribbonRows {
			m.clickRibbon(ribbonOrder[ev.Y], ev.X)
			return
		}
		if ev.X >= m.canvasWidth() || ev.Y >= ribbonRows+m.canvasHeight() {
			return
		}
		m.focus = paneCanvas
		canvas := m.ctrl.Canvas(m.canvasOptions())
		id := hitCard(layoutCards(canvas), ev.X, ev.Y-ribbonRows)
		m.ctrl.PointerDown(id)
		m.press = &mousePress{col: ev.X, row: ev.Y, onCanvas: true}

	case ev.Action == tea.MouseActionMotion && m.press != nil:
		dx, dy := cellDelta(ev.X-m.press.col, ev.Y-m.press.row, st.Viewport)
		m.ctrl.PointerMove(dx, dy)
		m.press.col, m.press.row = ev.X, ev.Y

	case ev.Action == tea.MouseActionRelease && m.press != nil:
		m.press = nil
		_ = m.ctrl.PointerUp()
	}
}

func (m *appModel) clickRibbon(r session.Ribbon, col int) {
	rv := m.ribbons[r]
	for i, seg := range ribbonSegments(r, rv) {
		if col < seg.start || col >= seg.end {
			continue
		}
		m.cursor[r] = i
		if seg.more {
			m.expanded[r] = !m.expanded[r]
			return
		}
		m.activateRibbonItem(r, seg.id)
		return
	}
}

func focusName(p pane) string {
	switch p {
	case paneWorkspaces:
		return "workspaces"
	case paneChats:
		return "chats"
	case paneCharacters:
		return "characters"
	case paneLinks:
		return "links"
	default:
		return "canvas"
	}
}

func linkLabel(anchor string) string {
	switch anchor {
	case view.AnchorYes:
		return "yes"
	case view.AnchorNo:
		return "no"
	case view.AnchorCondition:
		return "guards"
	default:
		return "next"
	}
}

func describeNode(n model.ChatNode) string {
	msg := strings.TrimSpace(n.Message)
	if msg == "" {
		return fmt.Sprintf("%s %s", n.Type.Label(), n.ID)
	}
	return fmt.Sprintf("%s %q", n.Type.Label(), msg)
}
