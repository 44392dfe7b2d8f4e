package session

import (
	"errors"

	"chatweaver/internal/model"
)

var (
	ErrNotPlayable   = errors.New("only text nodes can be played")
	ErrNotPlaying    = errors.New("playback is not active")
	ErrInvalidChoice = errors.New("choice is not a link of the current node")
)

// Choice is one way forward from the node being played.
type Choice struct {
	// TargetID is the linked node.
	TargetID string `json:"targetId"`
	// Label is "Next" for text targets and the answer's message for answers.
	Label string `json:"label"`
}

func (s *State) Playing() bool { return s.PlayNodeID != "" }

// Play starts playback at a Text node of chat.
func (s *State) Play(chat *model.Chat, nodeID string) error {
	n, ok := chat.Node(nodeID)
	if !ok || n.Type != model.NodeText {
		return ErrNotPlayable
	}
	s.PlayNodeID = nodeID
	return nil
}

// Choices lists the outgoing links of the current node, in chat node order.
func (s *State) Choices(chat *model.Chat) []Choice {
	cur, ok := chat.Node(s.PlayNodeID)
	if !ok {
		return nil
	}
	var out []Choice
	for _, n := range chat.Nodes {
		if !cur.LinksTo(n.ID) {
			continue
		}
		label := "Next"
		if n.Type != model.NodeText {
			label = n.Message
		}
		out = append(out, Choice{TargetID: n.ID, Label: label})
	}
	return out
}

// CanFinish reports whether the current node is a leaf.
func (s *State) CanFinish(chat *model.Chat) bool {
	cur, ok := chat.Node(s.PlayNodeID)
	return ok && len(cur.GoesTo) == 0
}

// Choose follows a link of the current node. Answer nodes are never shown: choosing one
// advances straight to its first link, and an answer without links ends playback.
func (s *State) Choose(chat *model.Chat, targetID string) error {
	cur, ok := chat.Node(s.PlayNodeID)
	if !ok {
		return ErrNotPlaying
	}
	if !cur.LinksTo(targetID) {
		return ErrInvalidChoice
	}
	next, ok := chat.Node(targetID)
	if !ok {
		return ErrInvalidChoice
	}
	if next.Type == model.NodeText {
		s.PlayNodeID = next.ID
		return nil
	}
	if len(next.GoesTo) == 0 {
		s.PlayNodeID = ""
		return nil
	}
	s.PlayNodeID = next.GoesTo[0]
	if _, ok := chat.Node(s.PlayNodeID); !ok {
		s.PlayNodeID = ""
	}
	return nil
}

// Finish ends playback; it is also used for explicit dismissal.
func (s *State) Finish() { s.PlayNodeID = "" }
