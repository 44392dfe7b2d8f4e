// Package view derives what the front ends render from a snapshot and the session state.
// Everything here is a pure function of its inputs.
package view

import (
	"chatweaver/internal/model"
	"chatweaver/internal/session"
)

// Anchor names on a card.
const (
	AnchorTarget    = "target"
	AnchorOut       = "a"
	AnchorYes       = "yes"
	AnchorNo        = "no"
	AnchorCondition = "condition"
)

// Options carries the preferences and transient overlays that affect the canvas.
type Options struct {
	ShowNodeIDs bool

	// ShowConditionConnections draws the links from condition nodes to the answers they
	// guard. When false those answers only carry a condition count.
	ShowConditionConnections bool

	// Drag, when set, overrides one node's position while it is being dragged.
	Drag *DragOverlay
}

type DragOverlay struct {
	NodeID string
	X, Y   float64
}

type NodeView struct {
	Node          model.ChatNode `json:"node"`
	Selected      bool           `json:"selected"`
	FadedOut      bool           `json:"fadedOut"`
	CharacterName string         `json:"characterName"`
	ShowID        bool           `json:"showId"`

	// Conditions counts the condition nodes guarding an answer.
	Conditions int `json:"conditions,omitempty"`
}

type EdgeView struct {
	From         string `json:"from"`
	To           string `json:"to"`
	SourceAnchor string `json:"sourceAnchor"`
	TargetAnchor string `json:"targetAnchor"`
	Highlighted  bool   `json:"highlighted"`
}

type Canvas struct {
	WorkspaceID string           `json:"workspaceId"`
	ChatID      string           `json:"chatId"`
	Nodes       []NodeView       `json:"nodes"`
	Edges       []EdgeView       `json:"edges"`
	Viewport    session.Viewport `json:"viewport"`
	LinkDrawing bool             `json:"linkDrawing"`
}

// fadedOut dims every node except the link source while drawing, and every node except
// the hovered delete target while hovering. With both active only a node that is both
// stays at full opacity.
func fadedOut(st *session.State, id string) bool {
	return (st.LinkFrom != "" && id != st.LinkFrom) || (st.HoverDelete != "" && id != st.HoverDelete)
}

// BuildCanvas returns the node and edge lists of the selected chat. With no chat
// selected the canvas is empty.
func BuildCanvas(snap model.Snapshot, st *session.State, opts Options) Canvas {
	c := Canvas{
		WorkspaceID: st.WorkspaceID,
		ChatID:      st.ChatID,
		Nodes:       []NodeView{},
		Edges:       []EdgeView{},
		Viewport:    st.Viewport,
		LinkDrawing: st.Drawing(),
	}
	ws, chat := st.Current(snap)
	if chat == nil {
		return c
	}

	types := make(map[string]model.NodeType, len(chat.Nodes))
	for _, n := range chat.Nodes {
		types[n.ID] = n.Type
	}
	guards := map[string]int{}
	for _, n := range chat.Nodes {
		if n.Type != model.NodeCondition {
			continue
		}
		for _, to := range uniq(n.GoesTo) {
			if types[to] == model.NodeAnswer {
				guards[to]++
			}
		}
	}

	for _, n := range chat.Nodes {
		if opts.Drag != nil && opts.Drag.NodeID == n.ID {
			n.X, n.Y = opts.Drag.X, opts.Drag.Y
		}
		c.Nodes = append(c.Nodes, NodeView{
			Node:          n,
			Selected:      n.ID == st.NodeID,
			FadedOut:      fadedOut(st, n.ID),
			CharacterName: ws.CharacterName(n.Character),
			ShowID:        opts.ShowNodeIDs,
			Conditions:    guards[n.ID],
		})
	}

	for _, n := range chat.Nodes {
		for _, e := range Links(chat, n) {
			if e.SourceAnchor == AnchorCondition && !opts.ShowConditionConnections {
				continue
			}
			e.Highlighted = n.ID == st.NodeID || (st.HoverDelete != "" && e.To == st.HoverDelete)
			c.Edges = append(c.Edges, e)
		}
	}
	return c
}

// Links returns n's outgoing links that resolve inside chat, with anchors. Text and
// answer nodes use their single output. A condition's links to answers attach to the
// answer's condition slot; its other links branch yes (first) then no.
func Links(chat *model.Chat, n model.ChatNode) []EdgeView {
	var out []EdgeView
	branch := 0
	for _, to := range n.GoesTo {
		target, ok := chat.Node(to)
		if !ok {
			continue
		}
		e := EdgeView{From: n.ID, To: to, SourceAnchor: AnchorOut, TargetAnchor: AnchorTarget}
		if n.Type == model.NodeCondition {
			switch {
			case target.Type == model.NodeAnswer:
				e.SourceAnchor = AnchorCondition
			case branch == 0:
				e.SourceAnchor = AnchorYes
				branch++
			default:
				e.SourceAnchor = AnchorNo
				branch++
			}
		}
		out = append(out, e)
	}
	return out
}

func uniq(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
