package view

import (
	"chatweaver/internal/model"
	"chatweaver/internal/session"
)

type PlaybackView struct {
	NodeID    string           `json:"nodeId"`
	Speaker   string           `json:"speaker"`
	Message   string           `json:"message"`
	Choices   []session.Choice `json:"choices"`
	CanFinish bool             `json:"canFinish"`
}

// Playback returns the playback screen, or nil when nothing is playing.
func Playback(snap model.Snapshot, st *session.State) *PlaybackView {
	if !st.Playing() {
		return nil
	}
	ws, chat := st.Current(snap)
	if chat == nil {
		return nil
	}
	n, ok := chat.Node(st.PlayNodeID)
	if !ok {
		return nil
	}
	choices := st.Choices(chat)
	if choices == nil {
		choices = []session.Choice{}
	}
	return &PlaybackView{
		NodeID:    n.ID,
		Speaker:   ws.CharacterName(n.Character),
		Message:   n.Message,
		Choices:   choices,
		CanFinish: st.CanFinish(chat),
	}
}
