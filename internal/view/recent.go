package view

import (
	"fmt"

	"chatweaver/internal/model"
)

// DefaultRecentCap is how many items a collapsed ribbon shows.
const DefaultRecentCap = 3

// Item is one entry of a ribbon.
type Item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RecentItems orders all for a ribbon.
//
// With no history or no selection the list is all, in order. Otherwise history entries
// that still exist come first (in history order) followed by the remaining items; when
// the selection is not in history it is put in front. Unless expand is set the result is
// capped to cap entries.
func RecentItems(history []string, all []Item, selectedID string, cap int, expand bool) []Item {
	limit := func(items []Item) []Item {
		if expand || cap < 0 || len(items) <= cap {
			return items
		}
		return items[:cap]
	}

	if len(history) == 0 || selectedID == "" {
		return limit(append([]Item(nil), all...))
	}

	byID := make(map[string]Item, len(all))
	for _, it := range all {
		byID[it.ID] = it
	}
	recent := make([]Item, 0, len(history))
	inRecent := make(map[string]bool, len(history))
	for _, id := range history {
		it, ok := byID[id]
		if !ok {
			continue
		}
		recent = append(recent, it)
		inRecent[id] = true
	}
	var rest []Item
	for _, it := range all {
		if !inRecent[it.ID] {
			rest = append(rest, it)
		}
	}

	if inRecent[selectedID] {
		return limit(append(recent, rest...))
	}

	out := make([]Item, 0, len(all))
	if sel, ok := byID[selectedID]; ok {
		out = append(out, sel)
	}
	out = append(out, recent...)
	for _, it := range rest {
		if it.ID != selectedID {
			out = append(out, it)
		}
	}
	return limit(out)
}

// RibbonView is a rendered ribbon plus the history to remember for the next render.
type RibbonView struct {
	Items []Item `json:"items"`

	// History is the collapsed ordering; callers store it and pass it back next time.
	History []string `json:"history"`

	// MoreLabel is the "see all" affordance; empty when every item is already shown.
	MoreLabel string `json:"moreLabel,omitempty"`
}

// Ribbon computes the ribbon for a list. The history is always advanced with the capped
// ordering, even while the ribbon is expanded.
func Ribbon(listName string, history []string, all []Item, selectedID string, cap int, expand bool) RibbonView {
	collapsed := RecentItems(history, all, selectedID, cap, false)
	ids := make([]string, 0, len(collapsed))
	for _, it := range collapsed {
		ids = append(ids, it.ID)
	}

	rv := RibbonView{Items: collapsed, History: ids}
	if expand {
		rv.Items = RecentItems(history, all, selectedID, cap, true)
		return rv
	}
	switch {
	case cap == 0:
		rv.MoreLabel = "See " + listName
	case len(all) > cap:
		rv.MoreLabel = fmt.Sprintf("See all %d %s", len(all), listName)
	}
	return rv
}

func WorkspaceItems(s model.Snapshot) []Item {
	out := make([]Item, 0, len(s))
	for _, w := range s {
		out = append(out, Item{ID: w.ID, Name: w.Name})
	}
	return out
}

func ChatItems(w *model.Workspace) []Item {
	if w == nil {
		return nil
	}
	out := make([]Item, 0, len(w.Chats))
	for _, c := range w.Chats {
		out = append(out, Item{ID: c.ID, Name: c.Name})
	}
	return out
}

func CharacterItems(w *model.Workspace) []Item {
	if w == nil {
		return nil
	}
	out := make([]Item, 0, len(w.Characters))
	for _, c := range w.Characters {
		out = append(out, Item{ID: c.ID, Name: c.Name})
	}
	return out
}
