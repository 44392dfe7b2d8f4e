// Package session holds the editor's selection and navigation state.
//
// Selection is scoped: a node id only means something inside its chat and a chat id
// only inside its workspace, so moving up the hierarchy clears everything below it.
package session

import (
	"chatweaver/internal/model"
)

// DefaultScale matches the canvas zoom the editor opens with.
const DefaultScale = 0.9

// Ribbon identifies one of the "recent items" ribbons.
type Ribbon string

const (
	RibbonWorkspaces Ribbon = "workspaces"
	RibbonChats      Ribbon = "chats"
	RibbonCharacters Ribbon = "characters"
)

type Viewport struct {
	Scale   float64 `json:"scale"`
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
}

type State struct {
	WorkspaceID string
	ChatID      string
	NodeID      string

	// LinkFrom is the source node while link drawing is active; "" when idle.
	LinkFrom string

	// HoverDelete is the link target whose removal control is hovered; "" when none.
	HoverDelete string

	// PlayNodeID is the Text node being played back; "" when playback is idle.
	PlayNodeID string

	Viewport Viewport

	// History is the per-ribbon recency list (item ids, most relevant first).
	History map[Ribbon][]string
}

func New() *State {
	return &State{
		Viewport: Viewport{Scale: DefaultScale},
		History:  map[Ribbon][]string{},
	}
}

// SelectWorkspace switches workspace and clears everything scoped below it.
func (s *State) SelectWorkspace(id string) {
	if s.WorkspaceID == id {
		return
	}
	s.WorkspaceID = id
	s.ChatID = ""
	s.History[RibbonChats] = nil
	s.History[RibbonCharacters] = nil
	s.clearChatScope()
}

// SelectChat switches chat within the current workspace and clears node-scoped state.
func (s *State) SelectChat(id string) {
	if s.ChatID == id {
		return
	}
	s.ChatID = id
	s.clearChatScope()
}

func (s *State) clearChatScope() {
	s.NodeID = ""
	s.LinkFrom = ""
	s.HoverDelete = ""
	s.PlayNodeID = ""
}

// ToggleNode selects id, or clears the selection when id is already selected.
func (s *State) ToggleNode(id string) {
	if s.NodeID == id {
		s.NodeID = ""
		return
	}
	s.NodeID = id
}

// SelectNode selects id without toggling.
func (s *State) SelectNode(id string) { s.NodeID = id }

// Unselect clears node selection and link drawing (a click on empty canvas).
func (s *State) Unselect() {
	s.NodeID = ""
	s.LinkFrom = ""
}

func (s *State) SetHoverDelete(targetID string) { s.HoverDelete = targetID }

func (s *State) ClearHoverDelete() { s.HoverDelete = "" }

// Reconcile drops selections that no longer resolve in snap (after deletes or imports).
func (s *State) Reconcile(snap model.Snapshot) {
	ws, ok := snap.Workspace(s.WorkspaceID)
	if !ok {
		if s.WorkspaceID != "" {
			s.WorkspaceID = ""
			s.ChatID = ""
			s.clearChatScope()
		}
		return
	}
	chat, ok := ws.Chat(s.ChatID)
	if !ok {
		if s.ChatID != "" {
			s.ChatID = ""
			s.clearChatScope()
		}
		return
	}
	if _, ok := chat.Node(s.NodeID); !ok {
		s.NodeID = ""
	}
	if _, ok := chat.Node(s.LinkFrom); !ok {
		s.LinkFrom = ""
	}
	if _, ok := chat.Node(s.HoverDelete); !ok {
		s.HoverDelete = ""
	}
	if _, ok := chat.Node(s.PlayNodeID); !ok {
		s.PlayNodeID = ""
	}
}

// Current resolves the selected workspace and chat in snap. Either may be nil.
func (s *State) Current(snap model.Snapshot) (*model.Workspace, *model.Chat) {
	ws, ok := snap.Workspace(s.WorkspaceID)
	if !ok {
		return nil, nil
	}
	chat, ok := ws.Chat(s.ChatID)
	if !ok {
		return ws, nil
	}
	return ws, chat
}

// Remember records the current history for a ribbon (as computed by the view layer).
func (s *State) Remember(r Ribbon, ids []string) {
	if s.History == nil {
		s.History = map[Ribbon][]string{}
	}
	s.History[r] = append([]string(nil), ids...)
}

// Pan shifts the viewport by a screen-space delta.
func (s *State) Pan(dx, dy float64) {
	s.Viewport.OffsetX -= dx
	s.Viewport.OffsetY -= dy
}
