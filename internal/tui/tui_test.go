package tui

import (
	"strings"
	"testing"

	"chatweaver/internal/interact"
	"chatweaver/internal/model"
	"chatweaver/internal/session"
	"chatweaver/internal/store"
	"chatweaver/internal/view"

	tea "github.com/charmbracelet/bubbletea"
	xansi "github.com/charmbracelet/x/ansi"
)

func fixtureSnapshot() model.Snapshot {
	return model.Snapshot{{
		ID:         "ws-1",
		Name:       "Tavern",
		Characters: []model.Character{{ID: "char-ann", Name: "Ann"}},
		Chats: []model.Chat{{
			ID:   "chat-1",
			Name: "Greeting",
			Nodes: []model.ChatNode{
				{ID: "n1", Type: model.NodeText, Message: "Hello there", GoesTo: []string{"n2"}},
				{ID: "n2", Type: model.NodeAnswer, Message: "Hi", X: 0, Y: 240, GoesTo: []string{}},
			},
		}},
	}, {
		ID:    "ws-2",
		Name:  "Dungeon",
		Chats: []model.Chat{},
	}}
}

func newTestModel(t *testing.T) appModel {
	t.Helper()
	st := session.New()
	st.WorkspaceID = "ws-1"
	st.ChatID = "chat-1"
	ctrl := interact.New(fixtureSnapshot(), st, interact.Options{})
	m := newAppModel(ctrl, store.Store{}, store.DefaultPrefs(), nil)
	mm, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return mm.(appModel)
}

func send(t *testing.T, m appModel, msgs ...tea.Msg) appModel {
	t.Helper()
	for _, msg := range msgs {
		mm, _ := m.Update(msg)
		m = mm.(appModel)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestToCell_ScalesAndOffsets(t *testing.T) {
	vp := session.Viewport{Scale: 1, OffsetX: 16, OffsetY: -32}
	col, row := toCell(80, 0, vp)
	if col != 8 || row != 2 {
		t.Fatalf("expected (8,2); got (%d,%d)", col, row)
	}
	dx, dy := cellDelta(8, 2, vp)
	if dx != 64 || dy != 32 {
		t.Fatalf("expected (64,32); got (%v,%v)", dx, dy)
	}
}

func TestHitCard_TopmostWins(t *testing.T) {
	rects := []cardRect{
		{id: "a", col: 0, row: 0, w: 10, h: 5},
		{id: "b", col: 5, row: 2, w: 10, h: 5},
	}
	if got := hitCard(rects, 6, 3); got != "b" {
		t.Fatalf("expected b; got %q", got)
	}
	if got := hitCard(rects, 1, 1); got != "a" {
		t.Fatalf("expected a; got %q", got)
	}
	if got := hitCard(rects, 30, 30); got != "" {
		t.Fatalf("expected miss; got %q", got)
	}
}

func TestOverlayBlock_Clips(t *testing.T) {
	lines := []string{"..........", ".........."}
	overlayBlock(lines, "abc\ndef\nghi", 8, 1, 10)
	if got := xansi.Strip(lines[0]); got != ".........." {
		t.Fatalf("row 0 untouched; got %q", got)
	}
	if got := xansi.Strip(lines[1]); got != "........ab" {
		t.Fatalf("expected clipped block; got %q", got)
	}

	lines = []string{".........."}
	overlayBlock(lines, "xyz", -2, 0, 10)
	if got := xansi.Strip(lines[0]); got != "z........." {
		t.Fatalf("expected left clip; got %q", got)
	}
}

func TestRenderCanvas_ShowsCardsAndEdge(t *testing.T) {
	m := newTestModel(t)
	c := m.ctrl.Canvas(view.Options{ShowNodeIDs: true})
	out := xansi.Strip(renderCanvas(c, 80, 30, m.pal))
	for _, want := range []string{"Text", "Hello there", "Answer", "n1", "n2", "▾"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in canvas:\n%s", want, out)
		}
	}
	if rows := strings.Count(out, "\n") + 1; rows != 30 {
		t.Fatalf("expected 30 rows; got %d", rows)
	}
}

func TestRibbonSegments_Layout(t *testing.T) {
	rv := view.RibbonView{
		Items:     []view.Item{{ID: "a", Name: "Ab"}, {ID: "b", Name: "Cde"}},
		MoreLabel: "See all 5 chats",
	}
	segs := ribbonSegments(session.RibbonChats, rv)
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments; got %d", len(segs))
	}
	if segs[0].start != ribbonLabelWidth || segs[0].end != ribbonLabelWidth+4 {
		t.Fatalf("unexpected first segment: %+v", segs[0])
	}
	if segs[1].start != segs[0].end+1 {
		t.Fatalf("expected one cell gap; got %+v", segs[1])
	}
	if !segs[2].more {
		t.Fatalf("expected trailing see-all segment")
	}
}

func TestClickRibbon_SelectsWorkspace(t *testing.T) {
	m := newTestModel(t)
	var target ribbonSegment
	for _, seg := range ribbonSegments(session.RibbonWorkspaces, m.ribbons[session.RibbonWorkspaces]) {
		if seg.id == "ws-2" {
			target = seg
		}
	}
	if target.id == "" {
		t.Fatalf("ws-2 not in ribbon")
	}
	m = send(t, m, tea.MouseMsg{X: target.start + 1, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got := m.ctrl.State().WorkspaceID; got != "ws-2" {
		t.Fatalf("expected ws-2 selected; got %q", got)
	}
	if m.ctrl.State().ChatID != "" {
		t.Fatalf("chat selection must be cleared")
	}
}

func TestMouseDrag_MovesNode(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m,
		tea.MouseMsg{X: 2, Y: ribbonRows + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
		tea.MouseMsg{X: 7, Y: ribbonRows + 1, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft},
		tea.MouseMsg{X: 7, Y: ribbonRows + 1, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft},
	)
	_, chat := m.currentChat()
	n, _ := chat.Node("n1")
	if n.X < 40 || n.Y != 0 {
		t.Fatalf("expected n1 moved right; got (%v,%v)", n.X, n.Y)
	}
	if m.ctrl.State().NodeID != "" {
		t.Fatalf("a drag must not select")
	}
}

func TestMouseClick_SelectsNode(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m,
		tea.MouseMsg{X: 2, Y: ribbonRows + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
		tea.MouseMsg{X: 2, Y: ribbonRows + 1, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft},
	)
	if got := m.ctrl.State().NodeID; got != "n1" {
		t.Fatalf("expected n1 selected; got %q", got)
	}
}

func TestSpaceTogglesPanMode(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if !m.ctrl.Panning() {
		t.Fatalf("expected pan mode")
	}
	m = send(t, m,
		tea.MouseMsg{X: 10, Y: 20, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
		tea.MouseMsg{X: 12, Y: 20, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft},
		tea.MouseMsg{X: 12, Y: 20, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft},
	)
	if m.ctrl.State().Viewport.OffsetX >= 0 {
		t.Fatalf("expected viewport panned; got %+v", m.ctrl.State().Viewport)
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if m.ctrl.Panning() {
		t.Fatalf("expected pan mode off")
	}
}

func TestKeys_AddChildThenDeleteWithConfirm(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, runes("]"))
	if got := m.ctrl.State().NodeID; got != "n1" {
		t.Fatalf("expected n1 selected; got %q", got)
	}
	m = send(t, m, runes("a"))
	added := m.ctrl.State().NodeID
	if added == "" || added == "n1" {
		t.Fatalf("expected new child selected; got %q", added)
	}

	m = send(t, m, runes("x"))
	if m.modal != modalConfirm {
		t.Fatalf("expected confirm modal; got %v", m.modal)
	}
	if !strings.Contains(xansi.Strip(m.View()), interact.DeletePrompt) {
		t.Fatalf("expected prompt in view")
	}
	m = send(t, m, runes("y"))
	if m.modal != modalNone {
		t.Fatalf("expected modal closed")
	}
	_, chat := m.currentChat()
	if _, ok := chat.Node(added); ok {
		t.Fatalf("expected %s deleted", added)
	}
}

func TestKeys_LinkByAiming(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, runes("]"), runes("]"))
	if got := m.ctrl.State().NodeID; got != "n2" {
		t.Fatalf("expected n2 selected; got %q", got)
	}
	m = send(t, m, runes("L"), runes("]"))
	if m.linkAim != "n1" {
		t.Fatalf("expected aim at n1; got %q", m.linkAim)
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	_, chat := m.currentChat()
	n2, _ := chat.Node("n2")
	if !n2.LinksTo("n1") {
		t.Fatalf("expected n2 -> n1; got %v", n2.GoesTo)
	}
	if m.ctrl.State().Drawing() {
		t.Fatalf("link drawing should end")
	}
}

func TestKeys_PlaybackModal(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, runes("]"), runes("p"))
	if m.modal != modalPlayback {
		t.Fatalf("expected playback modal; got %v", m.modal)
	}
	if !strings.Contains(xansi.Strip(m.View()), "1. Hi") {
		t.Fatalf("expected answer choice in view:\n%s", xansi.Strip(m.View()))
	}
	m = send(t, m, runes("1"))
	if m.modal != modalNone || m.ctrl.State().Playing() {
		t.Fatalf("answer without links should end playback")
	}
}

func TestKeys_RenameChat(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, runes("r"))
	if m.modal != modalRename {
		t.Fatalf("expected rename modal")
	}
	m.input.SetValue("Farewell")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	ws, chat := m.currentChat()
	if chat.Name != "Farewell" {
		t.Fatalf("expected renamed chat; got %q", chat.Name)
	}
	if got := view.ChatItems(ws)[0].Name; got != "Farewell" {
		t.Fatalf("ribbon should follow rename; got %q", got)
	}
}

func TestLastNodeDeleteShowsNotice(t *testing.T) {
	st := session.New()
	snap := model.Snapshot{{
		ID:    "ws-1",
		Chats: []model.Chat{{ID: "c", Nodes: []model.ChatNode{{ID: "only", Type: model.NodeText, GoesTo: []string{}}}}},
	}}
	st.WorkspaceID, st.ChatID, st.NodeID = "ws-1", "c", "only"
	m := newAppModel(interact.New(snap, st, interact.Options{}), store.Store{}, store.DefaultPrefs(), nil)
	m = send(t, m, runes("x"))
	if m.modal != modalNone {
		t.Fatalf("no confirmation for the last node")
	}
	if m.minibuffer != "You cannot delete the last node of a chat." {
		t.Fatalf("unexpected minibuffer: %q", m.minibuffer)
	}
}

func TestResolveTheme(t *testing.T) {
	t.Setenv("CHATWEAVER_TUI_THEME", "")
	t.Setenv("COLORFGBG", "")

	if _, ok := resolveTheme(store.ThemeAuto); ok {
		t.Fatalf("auto without hints should defer to detection")
	}
	if dark, ok := resolveTheme(store.ThemeDark); !ok || !dark {
		t.Fatalf("expected dark")
	}

	t.Setenv("COLORFGBG", "0;15")
	if dark, ok := resolveTheme(store.ThemeAuto); !ok || dark {
		t.Fatalf("expected light from COLORFGBG")
	}

	t.Setenv("CHATWEAVER_TUI_THEME", "dark")
	if dark, _ := resolveTheme(store.ThemeLight); !dark {
		t.Fatalf("env must override the preference")
	}
}

func TestUIStateRoundTrip(t *testing.T) {
	st := session.New()
	st.WorkspaceID = "ws-1"
	st.ChatID = "chat-1"
	st.History[session.RibbonChats] = []string{"chat-1"}
	st.Viewport = session.Viewport{Scale: 1.2, OffsetX: 5, OffsetY: -7}

	ui := captureUIState(st)
	got := session.New()
	restoreUIState(got, ui)
	if got.WorkspaceID != "ws-1" || got.ChatID != "chat-1" || got.Viewport != st.Viewport {
		t.Fatalf("unexpected restore: %+v", got)
	}
	if h := got.History[session.RibbonChats]; len(h) != 1 || h[0] != "chat-1" {
		t.Fatalf("unexpected history: %v", h)
	}
}
