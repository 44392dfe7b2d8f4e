package mutate

import (
	"strings"

	"chatweaver/internal/model"
)

// AddWorkspace appends a fresh workspace and returns its id.
func AddWorkspace(s model.Snapshot) (model.Snapshot, string) {
	ws := model.NewWorkspace()
	ws.ID = model.NewUniqueID(s, model.PrefixWorkspace)
	out := make(model.Snapshot, 0, len(s)+1)
	out = append(out, s...)
	out = append(out, ws)
	return out, ws.ID
}

func RenameWorkspace(s model.Snapshot, wsID, name string) (model.Snapshot, error) {
	return editWorkspace(s, wsID, func(w *model.Workspace) error {
		w.Name = name
		return nil
	})
}

func DeleteWorkspace(s model.Snapshot, wsID string) (model.Snapshot, error) {
	i := s.WorkspaceIndex(wsID)
	if i < 0 {
		return s, NotFoundError{Kind: "workspace", ID: wsID}
	}
	out := make(model.Snapshot, 0, len(s)-1)
	out = append(out, s[:i]...)
	out = append(out, s[i+1:]...)
	return out, nil
}

// ImportWorkspace appends a workspace read from an export. A workspace id that is
// already taken is replaced with a fresh one; everything below it keeps its ids.
func ImportWorkspace(s model.Snapshot, ws model.Workspace) (model.Snapshot, string, error) {
	if strings.TrimSpace(ws.ID) == "" {
		return s, "", ValidationError{Op: "import-workspace", Message: "imported workspace has no id"}
	}
	for _, c := range ws.Chats {
		if len(c.Nodes) == 0 {
			return s, "", ValidationError{Op: "import-workspace", Message: "imported chat " + c.ID + " has no nodes"}
		}
	}
	ws = ws.Clone()
	if s.WorkspaceIndex(ws.ID) >= 0 {
		ws.ID = model.NewUniqueID(s, model.PrefixWorkspace)
	}
	out := make(model.Snapshot, 0, len(s)+1)
	out = append(out, s...)
	out = append(out, ws)
	return out, ws.ID, nil
}

// AddChat appends a fresh single-node chat to the workspace and returns its id.
func AddChat(s model.Snapshot, wsID string) (model.Snapshot, string, error) {
	chat := model.NewChat()
	chat.ID = model.NewUniqueID(s, model.PrefixChat)
	out, err := editWorkspace(s, wsID, func(w *model.Workspace) error {
		chats := make([]model.Chat, 0, len(w.Chats)+1)
		chats = append(chats, w.Chats...)
		w.Chats = append(chats, chat)
		return nil
	})
	if err != nil {
		return s, "", err
	}
	return out, chat.ID, nil
}

func RenameChat(s model.Snapshot, wsID, chatID, name string) (model.Snapshot, error) {
	return editChat(s, wsID, chatID, func(c *model.Chat) error {
		c.Name = name
		return nil
	})
}

func DeleteChat(s model.Snapshot, wsID, chatID string) (model.Snapshot, error) {
	return editWorkspace(s, wsID, func(w *model.Workspace) error {
		i := w.ChatIndex(chatID)
		if i < 0 {
			return NotFoundError{Kind: "chat", ID: chatID}
		}
		chats := make([]model.Chat, 0, len(w.Chats)-1)
		chats = append(chats, w.Chats[:i]...)
		w.Chats = append(chats, w.Chats[i+1:]...)
		return nil
	})
}

// AddCharacter appends a fresh unnamed character and returns its id.
func AddCharacter(s model.Snapshot, wsID string) (model.Snapshot, string, error) {
	ch := model.NewCharacter()
	ch.ID = model.NewUniqueID(s, model.PrefixCharacter)
	out, err := editWorkspace(s, wsID, func(w *model.Workspace) error {
		chars := make([]model.Character, 0, len(w.Characters)+1)
		chars = append(chars, w.Characters...)
		w.Characters = append(chars, ch)
		return nil
	})
	if err != nil {
		return s, "", err
	}
	return out, ch.ID, nil
}

func RenameCharacter(s model.Snapshot, wsID, characterID, name string) (model.Snapshot, error) {
	return editCharacter(s, wsID, characterID, func(ch *model.Character) {
		ch.Name = name
	})
}

// DeleteCharacter removes the character and clears it from every node of every chat in the workspace.
func DeleteCharacter(s model.Snapshot, wsID, characterID string) (model.Snapshot, error) {
	return editWorkspace(s, wsID, func(w *model.Workspace) error {
		i := w.CharacterIndex(characterID)
		if i < 0 {
			return NotFoundError{Kind: "character", ID: characterID}
		}
		chars := make([]model.Character, 0, len(w.Characters)-1)
		chars = append(chars, w.Characters[:i]...)
		w.Characters = append(chars, w.Characters[i+1:]...)

		chats := make([]model.Chat, len(w.Chats))
		for ci, c := range w.Chats {
			if !chatReferences(c, characterID) {
				chats[ci] = c
				continue
			}
			nodes := make([]model.ChatNode, len(c.Nodes))
			for ni, n := range c.Nodes {
				if n.CharacterID() == characterID {
					n.Character = nil
				}
				nodes[ni] = n
			}
			c.Nodes = nodes
			chats[ci] = c
		}
		w.Chats = chats
		return nil
	})
}

func chatReferences(c model.Chat, characterID string) bool {
	for _, n := range c.Nodes {
		if n.CharacterID() == characterID {
			return true
		}
	}
	return false
}
