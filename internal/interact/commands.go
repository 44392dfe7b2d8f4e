package interact

import (
	"chatweaver/internal/model"
	"chatweaver/internal/mutate"
)

// AddChild adds a node below originID and links it from there.
func (c *Controller) AddChild(originID string) (string, error) {
	wsID, chatID, err := c.current()
	if err != nil {
		c.fail("add-node", err)
		return "", err
	}
	next, id, err := mutate.AddNode(c.snap, wsID, chatID, originID)
	if err := c.apply("add-node", next, err); err != nil {
		return "", err
	}
	return id, nil
}

func (c *Controller) RemoveLink(fromID, toID string) error {
	wsID, chatID, err := c.current()
	if err != nil {
		c.fail("remove-link", err)
		return err
	}
	next, err := mutate.RemoveLink(c.snap, wsID, chatID, fromID, toID)
	if err := c.apply("remove-link", next, err); err != nil {
		return err
	}
	if c.st.HoverDelete == toID {
		c.st.ClearHoverDelete()
	}
	return nil
}

// SetCharacter assigns characterID to a node, or clears it when already assigned.
func (c *Controller) SetCharacter(nodeID, characterID string) error {
	wsID, chatID, err := c.current()
	if err != nil {
		c.fail("set-character", err)
		return err
	}
	next, err := mutate.SetNodeCharacter(c.snap, wsID, chatID, nodeID, characterID)
	return c.apply("set-character", next, err)
}

// ClearCharacter sets a node's speaker to no one.
func (c *Controller) ClearCharacter(nodeID string) error {
	wsID, chatID, err := c.current()
	if err != nil {
		c.fail("clear-character", err)
		return err
	}
	next, err := mutate.ClearNodeCharacter(c.snap, wsID, chatID, nodeID)
	return c.apply("clear-character", next, err)
}

// MoveNode places a node at an absolute canvas position.
func (c *Controller) MoveNode(nodeID string, x, y float64) error {
	wsID, chatID, err := c.current()
	if err != nil {
		c.fail("move-node", err)
		return err
	}
	next, err := mutate.MoveNode(c.snap, wsID, chatID, nodeID, x, y)
	return c.apply("move-node", next, err)
}

func (c *Controller) ChangeType(nodeID string, typ model.NodeType) error {
	wsID, chatID, err := c.current()
	if err != nil {
		c.fail("change-type", err)
		return err
	}
	next, err := mutate.ChangeNodeType(c.snap, wsID, chatID, nodeID, typ)
	return c.apply("change-type", next, err)
}

func (c *Controller) ChangeMessage(nodeID, message string) error {
	wsID, chatID, err := c.current()
	if err != nil {
		c.fail("change-message", err)
		return err
	}
	next, err := mutate.ChangeNodeMessage(c.snap, wsID, chatID, nodeID, message)
	return c.apply("change-message", next, err)
}

func (c *Controller) AddWorkspace() string {
	next, id := mutate.AddWorkspace(c.snap)
	_ = c.apply("add-workspace", next, nil)
	return id
}

func (c *Controller) AddChat() (string, error) {
	wsID, _, err := c.current()
	if err == ErrNoWorkspace {
		c.fail("add-chat", err)
		return "", err
	}
	next, id, err := mutate.AddChat(c.snap, wsID)
	if err := c.apply("add-chat", next, err); err != nil {
		return "", err
	}
	return id, nil
}

func (c *Controller) AddCharacter() (string, error) {
	wsID, _, err := c.current()
	if err == ErrNoWorkspace {
		c.fail("add-character", err)
		return "", err
	}
	next, id, err := mutate.AddCharacter(c.snap, wsID)
	if err := c.apply("add-character", next, err); err != nil {
		return "", err
	}
	return id, nil
}

func (c *Controller) RenameWorkspace(id, name string) error {
	next, err := mutate.RenameWorkspace(c.snap, id, name)
	return c.apply("rename-workspace", next, err)
}

func (c *Controller) RenameChat(id, name string) error {
	wsID, _, err := c.current()
	if err == ErrNoWorkspace {
		c.fail("rename-chat", err)
		return err
	}
	next, err := mutate.RenameChat(c.snap, wsID, id, name)
	return c.apply("rename-chat", next, err)
}

func (c *Controller) RenameCharacter(id, name string) error {
	wsID, _, err := c.current()
	if err == ErrNoWorkspace {
		c.fail("rename-character", err)
		return err
	}
	next, err := mutate.RenameCharacter(c.snap, wsID, id, name)
	return c.apply("rename-character", next, err)
}

// ImportWorkspace appends ws and selects it.
func (c *Controller) ImportWorkspace(ws model.Workspace) (string, error) {
	next, id, err := mutate.ImportWorkspace(c.snap, ws)
	if err := c.apply("import-workspace", next, err); err != nil {
		return "", err
	}
	c.st.SelectWorkspace(id)
	return id, nil
}

// Play starts playback at a Text node of the selected chat.
func (c *Controller) Play(nodeID string) error {
	_, chat := c.st.Current(c.snap)
	if chat == nil {
		c.fail("play", ErrNoChat)
		return ErrNoChat
	}
	if err := c.st.Play(chat, nodeID); err != nil {
		c.fail("play", err)
		return err
	}
	return nil
}

func (c *Controller) Choose(targetID string) error {
	_, chat := c.st.Current(c.snap)
	if chat == nil {
		c.fail("choose", ErrNoChat)
		return ErrNoChat
	}
	if err := c.st.Choose(chat, targetID); err != nil {
		c.fail("choose", err)
		return err
	}
	return nil
}

func (c *Controller) FinishPlayback() { c.st.Finish() }
