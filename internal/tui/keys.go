package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Quit       key.Binding
	Help       key.Binding
	FocusNext  key.Binding
	FocusPrev  key.Binding
	Left       key.Binding
	Right      key.Binding
	Up         key.Binding
	Down       key.Binding
	NextNode   key.Binding
	PrevNode   key.Binding
	Select     key.Binding
	Unselect   key.Binding
	Edit       key.Binding
	Rename     key.Binding
	Add        key.Binding
	AddChild   key.Binding
	Link       key.Binding
	Delete     key.Binding
	CycleType  key.Binding
	CycleChar  key.Binding
	MoveNode   key.Binding
	Play       key.Binding
	Expand     key.Binding
	Pan        key.Binding
	Import     key.Binding
	Export     key.Binding
	ToggleIDs  key.Binding
	ToggleCond key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		FocusNext:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next pane")),
		FocusPrev:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev pane")),
		Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		NextNode:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next node")),
		PrevNode:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev node")),
		Select:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select/edit")),
		Unselect:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "unselect")),
		Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit message")),
		Rename:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
		Add:        key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		AddChild:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add child")),
		Link:       key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "link from")),
		Delete:     key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete")),
		CycleType:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "type")),
		CycleChar:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "character")),
		MoveNode:   key.NewBinding(key.WithKeys("shift+left", "shift+right", "shift+up", "shift+down"), key.WithHelp("shift+←↑↓→", "move node")),
		Play:       key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "play")),
		Expand:     key.NewBinding(key.WithKeys("+"), key.WithHelp("+", "see all")),
		Pan:        key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pan mode")),
		Import:     key.NewBinding(key.WithKeys("I"), key.WithHelp("I", "import")),
		Export:     key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "export")),
		ToggleIDs:  key.NewBinding(key.WithKeys("#"), key.WithHelp("#", "node ids")),
		ToggleCond: key.NewBinding(key.WithKeys("%"), key.WithHelp("%", "condition links")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.FocusNext, k.AddChild, k.Link, k.Edit, k.Delete, k.Play, k.Pan, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.FocusNext, k.FocusPrev, k.Left, k.Right, k.Up, k.Down, k.Pan},
		{k.NextNode, k.PrevNode, k.Select, k.Unselect, k.MoveNode},
		{k.AddChild, k.Link, k.Edit, k.CycleType, k.CycleChar, k.Delete, k.Play},
		{k.Add, k.Rename, k.Expand, k.Import, k.Export, k.ToggleIDs, k.ToggleCond, k.Quit},
	}
}
