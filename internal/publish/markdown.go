package publish

import (
	"bytes"
	"fmt"
	"strings"

	"chatweaver/internal/model"
	"chatweaver/internal/view"
)

type RenderOptions struct {
	// IncludeIDs adds node ids to step headings.
	IncludeIDs bool
}

// RenderChatMarkdown renders a chat as a readable script. Steps are numbered in
// reading order: breadth first from the nodes nothing links to, then any node that
// was not reached, in chat order.
func RenderChatMarkdown(ws *model.Workspace, chatID string, opt RenderOptions) (string, error) {
	if ws == nil {
		return "", fmt.Errorf("missing workspace")
	}
	chat, ok := ws.Chat(strings.TrimSpace(chatID))
	if !ok {
		return "", fmt.Errorf("chat not found: %s", chatID)
	}

	order := readingOrder(chat)
	step := make(map[string]int, len(order))
	for i, id := range order {
		step[id] = i + 1
	}

	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("# " + titleOr(chat.Name, "Untitled chat"))
	writeLn("")
	writeLn("- Workspace: " + titleOr(ws.Name, ws.ID))
	writeLn(fmt.Sprintf("- Nodes: %d", len(chat.Nodes)))
	writeLn("")

	if len(ws.Characters) > 0 {
		writeLn("## Characters")
		writeLn("")
		for _, c := range ws.Characters {
			writeLn("- " + titleOr(c.Name, c.ID))
		}
		writeLn("")
	}

	writeLn("## Script")
	writeLn("")
	for _, id := range order {
		n, _ := chat.Node(id)
		heading := fmt.Sprintf("### %d. %s", step[id], n.Type.Label())
		if n.Type != model.NodeCondition {
			heading += ": " + ws.CharacterName(n.Character)
		}
		if opt.IncludeIDs {
			heading += " `" + n.ID + "`"
		}
		writeLn(heading)
		writeLn("")

		msg := strings.TrimSpace(n.Message)
		if msg == "" {
			writeLn("_(empty)_")
		} else {
			for _, line := range strings.Split(msg, "\n") {
				writeLn(strings.TrimRight("> "+line, " "))
			}
		}
		writeLn("")

		links := view.Links(chat, *n)
		if len(links) == 0 {
			writeLn("_End of conversation._")
			writeLn("")
			continue
		}
		for _, e := range links {
			target, _ := chat.Node(e.To)
			writeLn(fmt.Sprintf("- %s → step %d", linkLabel(e, target), step[e.To]))
		}
		writeLn("")
	}
	return buf.String(), nil
}

func linkLabel(e view.EdgeView, target *model.ChatNode) string {
	switch e.SourceAnchor {
	case view.AnchorYes:
		return "If yes"
	case view.AnchorNo:
		return "If no"
	case view.AnchorCondition:
		return "Guards"
	}
	if target.Type == model.NodeText {
		return "Next"
	}
	return fmt.Sprintf("%s %q", target.Type.Label(), strings.TrimSpace(target.Message))
}

func readingOrder(chat *model.Chat) []string {
	incoming := map[string]bool{}
	for _, n := range chat.Nodes {
		for _, to := range n.GoesTo {
			if to != n.ID {
				incoming[to] = true
			}
		}
	}
	seen := make(map[string]bool, len(chat.Nodes))
	order := make([]string, 0, len(chat.Nodes))
	var queue []string
	visit := func(id string) {
		if seen[id] {
			return
		}
		if _, ok := chat.Node(id); !ok {
			return
		}
		seen[id] = true
		queue = append(queue, id)
	}
	drain := func() {
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			order = append(order, id)
			n, _ := chat.Node(id)
			for _, to := range n.GoesTo {
				visit(to)
			}
		}
	}
	for _, n := range chat.Nodes {
		if !incoming[n.ID] {
			visit(n.ID)
			drain()
		}
	}
	// Cycles without an entry point.
	for _, n := range chat.Nodes {
		visit(n.ID)
		drain()
	}
	return order
}

func titleOr(s, fallback string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return fallback
}
