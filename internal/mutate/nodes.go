package mutate

import (
	"chatweaver/internal/model"
)

// AddNode creates a child of originID: same character, placed one row below, linked from the origin.
// It returns the new node id.
func AddNode(s model.Snapshot, wsID, chatID, originID string) (model.Snapshot, string, error) {
	newID := ""
	out, err := editChat(s, wsID, chatID, func(c *model.Chat) error {
		i := c.NodeIndex(originID)
		if i < 0 {
			return NotFoundError{Kind: "node", ID: originID}
		}
		origin := c.Nodes[i].Clone()

		child := model.NewChatNode()
		child.ID = model.NewUniqueID(s, model.PrefixNode)
		child.Character = origin.Clone().Character
		child.X = origin.X
		child.Y = origin.Y + model.NodeSpacingY

		origin.GoesTo = append(origin.GoesTo, child.ID)

		nodes := make([]model.ChatNode, 0, len(c.Nodes)+1)
		nodes = append(nodes, c.Nodes...)
		nodes[i] = origin
		nodes = append(nodes, child)
		c.Nodes = nodes
		newID = child.ID
		return nil
	})
	if err != nil {
		return s, "", err
	}
	return out, newID, nil
}

func MoveNode(s model.Snapshot, wsID, chatID, nodeID string, x, y float64) (model.Snapshot, error) {
	return editNode(s, wsID, chatID, nodeID, func(n *model.ChatNode) error {
		n.X = x
		n.Y = y
		return nil
	})
}

// DeleteNode removes nodeID and every link pointing at it in one step.
// The only node of a chat cannot be deleted.
func DeleteNode(s model.Snapshot, wsID, chatID, nodeID string) (model.Snapshot, error) {
	return editChat(s, wsID, chatID, func(c *model.Chat) error {
		if c.NodeIndex(nodeID) < 0 {
			return NotFoundError{Kind: "node", ID: nodeID}
		}
		if len(c.Nodes) <= 1 {
			return ValidationError{Op: "delete-node", Message: ErrLastNode}
		}
		nodes := make([]model.ChatNode, 0, len(c.Nodes)-1)
		for _, n := range c.Nodes {
			if n.ID == nodeID {
				continue
			}
			if n.LinksTo(nodeID) {
				n.GoesTo = without(n.GoesTo, nodeID)
			}
			nodes = append(nodes, n)
		}
		c.Nodes = nodes
		return nil
	})
}

func ChangeNodeType(s model.Snapshot, wsID, chatID, nodeID string, typ model.NodeType) (model.Snapshot, error) {
	if _, err := model.ParseNodeType(string(typ)); err != nil {
		return s, ValidationError{Op: "change-node-type", Message: err.Error()}
	}
	return editNode(s, wsID, chatID, nodeID, func(n *model.ChatNode) error {
		n.Type = typ
		return nil
	})
}

func ChangeNodeMessage(s model.Snapshot, wsID, chatID, nodeID, message string) (model.Snapshot, error) {
	return editNode(s, wsID, chatID, nodeID, func(n *model.ChatNode) error {
		n.Message = message
		return nil
	})
}

// SetNodeCharacter toggles the node's character: assigning the character it already has clears it.
func SetNodeCharacter(s model.Snapshot, wsID, chatID, nodeID, characterID string) (model.Snapshot, error) {
	ws, ok := s.Workspace(wsID)
	if !ok {
		return s, NotFoundError{Kind: "workspace", ID: wsID}
	}
	if _, ok := ws.Character(characterID); !ok {
		return s, NotFoundError{Kind: "character", ID: characterID}
	}
	return editNode(s, wsID, chatID, nodeID, func(n *model.ChatNode) error {
		if n.CharacterID() == characterID {
			n.Character = nil
			return nil
		}
		id := characterID
		n.Character = &id
		return nil
	})
}

// ClearNodeCharacter sets the node's character to "no one".
func ClearNodeCharacter(s model.Snapshot, wsID, chatID, nodeID string) (model.Snapshot, error) {
	return editNode(s, wsID, chatID, nodeID, func(n *model.ChatNode) error {
		n.Character = nil
		return nil
	})
}
