package model

import (
	"fmt"
	"strings"
)

type NodeType string

const (
	NodeText      NodeType = "text"
	NodeAnswer    NodeType = "answer"
	NodeCondition NodeType = "condition"
)

// NodeTypes lists node types in the order the editor offers them.
var NodeTypes = []NodeType{NodeText, NodeAnswer, NodeCondition}

func ParseNodeType(s string) (NodeType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text":
		return NodeText, nil
	case "answer":
		return NodeAnswer, nil
	case "condition":
		return NodeCondition, nil
	default:
		return "", fmt.Errorf("invalid node type: %q (expected text|answer|condition)", s)
	}
}

// Label is the capitalized name shown on cards.
func (t NodeType) Label() string {
	switch t {
	case NodeAnswer:
		return "Answer"
	case NodeCondition:
		return "Condition"
	default:
		return "Text"
	}
}

type Character struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ChatNode struct {
	ID      string   `json:"id"`
	Type    NodeType `json:"type"`
	Message string   `json:"message"`

	// Character references a Character of the owning workspace; nil means "no one".
	Character *string `json:"character"`

	X float64 `json:"x"`
	Y float64 `json:"y"`

	// GoesTo holds outgoing link targets (node ids in the same chat), in link order.
	GoesTo []string `json:"goesTo"`
}

type Chat struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Nodes []ChatNode `json:"nodes"`
}

type Workspace struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Characters []Character `json:"characters"`
	Chats      []Chat      `json:"chats"`
}

// Snapshot is the complete persisted state: every workspace, in ribbon order.
type Snapshot []Workspace

// CharacterID returns the referenced character id or "".
func (n ChatNode) CharacterID() string {
	if n.Character == nil {
		return ""
	}
	return *n.Character
}

// LinksTo reports whether id appears among the node's outgoing links.
func (n ChatNode) LinksTo(id string) bool {
	for _, to := range n.GoesTo {
		if to == id {
			return true
		}
	}
	return false
}

func (s Snapshot) Workspace(id string) (*Workspace, bool) {
	for i := range s {
		if s[i].ID == id {
			return &s[i], true
		}
	}
	return nil, false
}

func (s Snapshot) WorkspaceIndex(id string) int {
	for i := range s {
		if s[i].ID == id {
			return i
		}
	}
	return -1
}

func (w *Workspace) Chat(id string) (*Chat, bool) {
	if w == nil {
		return nil, false
	}
	for i := range w.Chats {
		if w.Chats[i].ID == id {
			return &w.Chats[i], true
		}
	}
	return nil, false
}

func (w *Workspace) ChatIndex(id string) int {
	if w == nil {
		return -1
	}
	for i := range w.Chats {
		if w.Chats[i].ID == id {
			return i
		}
	}
	return -1
}

func (w *Workspace) Character(id string) (*Character, bool) {
	if w == nil {
		return nil, false
	}
	for i := range w.Characters {
		if w.Characters[i].ID == id {
			return &w.Characters[i], true
		}
	}
	return nil, false
}

func (w *Workspace) CharacterIndex(id string) int {
	if w == nil {
		return -1
	}
	for i := range w.Characters {
		if w.Characters[i].ID == id {
			return i
		}
	}
	return -1
}

// CharacterName resolves a node's character to a display name ("No one" when unset or dangling).
func (w *Workspace) CharacterName(characterID *string) string {
	if characterID == nil {
		return NoOne
	}
	if c, ok := w.Character(*characterID); ok && strings.TrimSpace(c.Name) != "" {
		return c.Name
	}
	return NoOne
}

// NoOne is the display name for nodes without a character.
const NoOne = "No one"

func (c *Chat) Node(id string) (*ChatNode, bool) {
	if c == nil {
		return nil, false
	}
	for i := range c.Nodes {
		if c.Nodes[i].ID == id {
			return &c.Nodes[i], true
		}
	}
	return nil, false
}

func (c *Chat) NodeIndex(id string) int {
	if c == nil {
		return -1
	}
	for i := range c.Nodes {
		if c.Nodes[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a fully independent deep copy.
func (s Snapshot) Clone() Snapshot {
	if s == nil {
		return nil
	}
	out := make(Snapshot, len(s))
	for i := range s {
		out[i] = s[i].Clone()
	}
	return out
}

func (w Workspace) Clone() Workspace {
	out := w
	out.Characters = append([]Character(nil), w.Characters...)
	if w.Characters != nil && out.Characters == nil {
		out.Characters = []Character{}
	}
	if w.Chats != nil {
		out.Chats = make([]Chat, len(w.Chats))
		for i := range w.Chats {
			out.Chats[i] = w.Chats[i].Clone()
		}
	}
	return out
}

func (c Chat) Clone() Chat {
	out := c
	if c.Nodes != nil {
		out.Nodes = make([]ChatNode, len(c.Nodes))
		for i := range c.Nodes {
			out.Nodes[i] = c.Nodes[i].Clone()
		}
	}
	return out
}

func (n ChatNode) Clone() ChatNode {
	out := n
	if n.Character != nil {
		id := *n.Character
		out.Character = &id
	}
	if n.GoesTo != nil {
		out.GoesTo = append(make([]string, 0, len(n.GoesTo)), n.GoesTo...)
	}
	return out
}
