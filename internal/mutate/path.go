package mutate

import "chatweaver/internal/model"

// Path copying.
//
// Operations never write into the input snapshot. Each edit helper copies exactly the
// containers on the path to the edited entity (snapshot slice, workspace, chats slice,
// chat, nodes slice, node) and shares everything else with the input. Edit callbacks
// receive value copies and must replace, not modify, any slice they did not allocate.

func editWorkspace(s model.Snapshot, wsID string, fn func(w *model.Workspace) error) (model.Snapshot, error) {
	i := s.WorkspaceIndex(wsID)
	if i < 0 {
		return s, NotFoundError{Kind: "workspace", ID: wsID}
	}
	w := s[i]
	if err := fn(&w); err != nil {
		return s, err
	}
	out := make(model.Snapshot, len(s))
	copy(out, s)
	out[i] = w
	return out, nil
}

func editChat(s model.Snapshot, wsID, chatID string, fn func(c *model.Chat) error) (model.Snapshot, error) {
	return editWorkspace(s, wsID, func(w *model.Workspace) error {
		i := w.ChatIndex(chatID)
		if i < 0 {
			return NotFoundError{Kind: "chat", ID: chatID}
		}
		c := w.Chats[i]
		if err := fn(&c); err != nil {
			return err
		}
		chats := make([]model.Chat, len(w.Chats))
		copy(chats, w.Chats)
		chats[i] = c
		w.Chats = chats
		return nil
	})
}

// editNode hands fn a node whose GoesTo and Character are already private copies.
func editNode(s model.Snapshot, wsID, chatID, nodeID string, fn func(n *model.ChatNode) error) (model.Snapshot, error) {
	return editChat(s, wsID, chatID, func(c *model.Chat) error {
		i := c.NodeIndex(nodeID)
		if i < 0 {
			return NotFoundError{Kind: "node", ID: nodeID}
		}
		n := c.Nodes[i].Clone()
		if n.GoesTo == nil {
			n.GoesTo = []string{}
		}
		if err := fn(&n); err != nil {
			return err
		}
		nodes := make([]model.ChatNode, len(c.Nodes))
		copy(nodes, c.Nodes)
		nodes[i] = n
		c.Nodes = nodes
		return nil
	})
}

func editCharacter(s model.Snapshot, wsID, characterID string, fn func(ch *model.Character)) (model.Snapshot, error) {
	return editWorkspace(s, wsID, func(w *model.Workspace) error {
		i := w.CharacterIndex(characterID)
		if i < 0 {
			return NotFoundError{Kind: "character", ID: characterID}
		}
		chars := make([]model.Character, len(w.Characters))
		copy(chars, w.Characters)
		fn(&chars[i])
		w.Characters = chars
		return nil
	})
}

func without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, x := range ids {
		if x != id {
			out = append(out, x)
		}
	}
	return out
}
