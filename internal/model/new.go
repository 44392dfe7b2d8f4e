package model

// NodeSpacingY is how far below its origin a newly added child node is placed.
const NodeSpacingY = 180

func NewCharacter() Character {
	return Character{ID: NewID(PrefixCharacter), Name: ""}
}

func NewChatNode() ChatNode {
	return ChatNode{
		ID:        NewID(PrefixNode),
		Type:      NodeText,
		Message:   "",
		Character: nil,
		X:         0,
		Y:         0,
		GoesTo:    []string{},
	}
}

// NewChat returns a chat seeded with one node: a chat is never empty.
func NewChat() Chat {
	return Chat{
		ID:    NewID(PrefixChat),
		Name:  "",
		Nodes: []ChatNode{NewChatNode()},
	}
}

func NewWorkspace() Workspace {
	return Workspace{
		ID:         NewID(PrefixWorkspace),
		Name:       "",
		Characters: []Character{},
		Chats:      []Chat{NewChat()},
	}
}

// DefaultSnapshot is used whenever no saved data exists.
func DefaultSnapshot() Snapshot {
	node := NewChatNode()
	node.Message = "N1"
	chat := Chat{ID: NewID(PrefixChat), Name: "C1", Nodes: []ChatNode{node}}
	return Snapshot{{
		ID:         NewID(PrefixWorkspace),
		Name:       "W1",
		Characters: []Character{},
		Chats:      []Chat{chat},
	}}
}
