package tui

import (
	"chatweaver/internal/interact"
	"chatweaver/internal/session"
	"chatweaver/internal/store"
	"chatweaver/internal/view"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type pane int

const (
	paneCanvas pane = iota
	paneWorkspaces
	paneChats
	paneCharacters
	paneLinks
)

var ribbonOrder = []session.Ribbon{session.RibbonWorkspaces, session.RibbonChats, session.RibbonCharacters}

const (
	ribbonRows  = 3
	statusRows  = 1
	panelWidth  = 36
	minPanelFit = 80
)

type prefsChangedMsg struct{ prefs store.Prefs }

type minibufferDoneMsg struct{ seq int }

type mousePress struct {
	col, row int
	onCanvas bool
}

type appModel struct {
	ctrl  *interact.Controller
	store store.Store
	log   *zap.Logger
	prefs store.Prefs
	pal   palette
	keys  keyMap
	help  help.Model

	width  int
	height int

	focus     pane
	ribbons   map[session.Ribbon]view.RibbonView
	cursor    map[session.Ribbon]int
	expanded  map[session.Ribbon]bool
	charID    string
	linkIdx   int
	linkAim   string
	exportDir string

	modal        modalKind
	confirmFocus confirmModalFocus
	renameKind   session.Ribbon
	renameID     string
	editNodeID   string
	playIdx      int
	input        textinput.Model
	textarea     textarea.Model
	picker       filepicker.Model

	minibuffer    string
	minibufferSeq int

	press *mousePress
}

func newAppModel(ctrl *interact.Controller, st store.Store, prefs store.Prefs, log *zap.Logger) appModel {
	if log == nil {
		log = zap.NewNop()
	}
	m := appModel{
		ctrl:      ctrl,
		store:     st,
		log:       log,
		prefs:     prefs,
		pal:       paletteFromPrefs(prefs),
		keys:      defaultKeyMap(),
		help:      help.New(),
		width:     100,
		height:    30,
		ribbons:   map[session.Ribbon]view.RibbonView{},
		cursor:    map[session.Ribbon]int{},
		expanded:  map[session.Ribbon]bool{},
		exportDir: ".",
	}
	m.input = textinput.New()
	m.input.CharLimit = 200
	m.textarea = textarea.New()
	m.textarea.Placeholder = "Write…"
	m.textarea.CharLimit = 0
	m.textarea.ShowLineNumbers = false
	m.refreshRibbons()
	return m
}

func (m appModel) Init() tea.Cmd {
	return nil
}

func (m appModel) canvasOptions() view.Options {
	return view.Options{
		ShowNodeIDs:              m.prefs.ShowNodeIDs,
		ShowConditionConnections: m.prefs.ShowConditionsConnections,
	}
}

func (m appModel) showPanel() bool {
	return m.ctrl.State().NodeID != "" && m.width >= minPanelFit
}

func (m appModel) canvasWidth() int {
	if m.showPanel() {
		return m.width - panelWidth
	}
	return m.width
}

func (m appModel) canvasHeight() int {
	h := m.height - ribbonRows - statusRows
	if h < 1 {
		return 1
	}
	return h
}

// refreshRibbons recomputes the three ribbons and records their new history order.
func (m *appModel) refreshRibbons() {
	snap := m.ctrl.Snapshot()
	st := m.ctrl.State()
	ws, _ := st.Current(snap)

	if ws != nil {
		if _, ok := ws.Character(m.charID); !ok {
			m.charID = ""
		}
	} else {
		m.charID = ""
	}

	for _, r := range ribbonOrder {
		var all []view.Item
		sel := ""
		switch r {
		case session.RibbonWorkspaces:
			all, sel = view.WorkspaceItems(snap), st.WorkspaceID
		case session.RibbonChats:
			if ws != nil {
				all, sel = view.ChatItems(ws), st.ChatID
			}
		case session.RibbonCharacters:
			if ws != nil {
				all, sel = view.CharacterItems(ws), m.charID
			}
		}
		rv := view.Ribbon(string(r), st.History[r], all, sel, view.DefaultRecentCap, m.expanded[r])
		st.Remember(r, rv.History)
		m.ribbons[r] = rv
		if n := ribbonSlots(rv); m.cursor[r] >= n {
			m.cursor[r] = max(n-1, 0)
		}
	}
}

// ribbonSlots counts the focusable entries of a ribbon (items plus "see all").
func ribbonSlots(rv view.RibbonView) int {
	n := len(rv.Items)
	if rv.MoreLabel != "" {
		n++
	}
	return n
}

func (m *appModel) showMinibuffer(s string) tea.Cmd {
	m.minibuffer = s
	m.minibufferSeq++
	return minibufferTimeout(m.minibufferSeq)
}

// restoreUIState applies the persisted selection, ribbon order and viewport.
func restoreUIState(st *session.State, ui *store.UIState) {
	if ui == nil {
		return
	}
	st.WorkspaceID = ui.WorkspaceID
	st.ChatID = ui.ChatID
	for _, r := range ribbonOrder {
		if h, ok := ui.History[string(r)]; ok {
			st.History[r] = append([]string(nil), h...)
		}
	}
	if ui.Scale > 0 {
		st.Viewport.Scale = ui.Scale
	}
	st.Viewport.OffsetX = ui.OffsetX
	st.Viewport.OffsetY = ui.OffsetY
}

func captureUIState(st *session.State) *store.UIState {
	ui := &store.UIState{
		Version:     1,
		WorkspaceID: st.WorkspaceID,
		ChatID:      st.ChatID,
		History:     map[string][]string{},
		Scale:       st.Viewport.Scale,
		OffsetX:     st.Viewport.OffsetX,
		OffsetY:     st.Viewport.OffsetY,
	}
	for r, h := range st.History {
		if len(h) > 0 {
			ui.History[string(r)] = append([]string(nil), h...)
		}
	}
	return ui
}
