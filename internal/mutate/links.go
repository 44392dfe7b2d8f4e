package mutate

import "chatweaver/internal/model"

// AddLink appends toID to fromID's outgoing links. Repeated links are kept; self links are rejected.
func AddLink(s model.Snapshot, wsID, chatID, fromID, toID string) (model.Snapshot, error) {
	ws, ok := s.Workspace(wsID)
	if !ok {
		return s, NotFoundError{Kind: "workspace", ID: wsID}
	}
	chat, ok := ws.Chat(chatID)
	if !ok {
		return s, NotFoundError{Kind: "chat", ID: chatID}
	}
	if _, ok := chat.Node(toID); !ok {
		return s, NotFoundError{Kind: "node", ID: toID}
	}
	if fromID == toID {
		return s, ValidationError{Op: "add-link", Message: "A node cannot link to itself."}
	}
	return editNode(s, wsID, chatID, fromID, func(n *model.ChatNode) error {
		n.GoesTo = append(n.GoesTo, toID)
		return nil
	})
}

// RemoveLink drops the first occurrence of toID from fromID's outgoing links.
func RemoveLink(s model.Snapshot, wsID, chatID, fromID, toID string) (model.Snapshot, error) {
	return editNode(s, wsID, chatID, fromID, func(n *model.ChatNode) error {
		for i, id := range n.GoesTo {
			if id == toID {
				n.GoesTo = append(n.GoesTo[:i:i], n.GoesTo[i+1:]...)
				return nil
			}
		}
		return NotFoundError{Kind: "link", ID: fromID + "->" + toID}
	})
}
