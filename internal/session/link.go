package session

// LinkOutcome is what a node click produced while link drawing was active.
type LinkOutcome struct {
	// Emit is true when a link from From to To should be added.
	Emit bool
	From string
	To   string
}

func (s *State) Drawing() bool { return s.LinkFrom != "" }

// StartLink enters link drawing from a node. Starting again from the same node cancels.
func (s *State) StartLink(fromID string) {
	if s.LinkFrom == fromID {
		s.LinkFrom = ""
		return
	}
	s.LinkFrom = fromID
}

// CancelLink returns to idle without emitting.
func (s *State) CancelLink() { s.LinkFrom = "" }

// ClickInLinkMode completes or cancels link drawing. Clicking the source node cancels;
// any other node emits a link. Either way the state returns to idle.
func (s *State) ClickInLinkMode(targetID string) LinkOutcome {
	from := s.LinkFrom
	s.LinkFrom = ""
	if from == "" || from == targetID {
		return LinkOutcome{}
	}
	return LinkOutcome{Emit: true, From: from, To: targetID}
}
