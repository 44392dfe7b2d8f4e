package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"chatweaver/internal/model"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	SourceStored  = "stored"
	SourceDefault = "default"
)

// LoadInfo says where a loaded snapshot came from. Err is set when stored data existed
// but could not be used.
type LoadInfo struct {
	Source string
	Err    error
}

var errNoData = errors.New("no saved data")

// Load reads the snapshot. Read errors, missing data, malformed JSON and structurally
// invalid snapshots all fall back to model.DefaultSnapshot.
func Load(ctx context.Context, bs ByteStore) (model.Snapshot, LoadInfo) {
	b, err := bs.Get(ctx, KeyData)
	if err != nil {
		return model.DefaultSnapshot(), LoadInfo{Source: SourceDefault, Err: fmt.Errorf("read snapshot: %w", err)}
	}
	if len(b) == 0 {
		return model.DefaultSnapshot(), LoadInfo{Source: SourceDefault}
	}
	snap, err := DecodeSnapshot(b)
	if err != nil {
		if errors.Is(err, errNoData) {
			return model.DefaultSnapshot(), LoadInfo{Source: SourceDefault}
		}
		return model.DefaultSnapshot(), LoadInfo{Source: SourceDefault, Err: err}
	}
	return snap, LoadInfo{Source: SourceStored}
}

// Save writes the whole snapshot in a single Put.
func Save(ctx context.Context, bs ByteStore, snap model.Snapshot) error {
	if snap == nil {
		snap = model.Snapshot{}
	}
	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := bs.Put(ctx, KeyData, b); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// DecodeSnapshot parses, validates and normalizes persisted bytes.
func DecodeSnapshot(b []byte) (model.Snapshot, error) {
	var snap model.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if len(snap) == 0 {
		return nil, errNoData
	}
	for i := range snap {
		if err := ValidateWorkspace(snap[i]); err != nil {
			return nil, fmt.Errorf("invalid workspace %d: %w", i, err)
		}
		normalizeWorkspace(&snap[i])
	}
	return snap, nil
}

// ValidateWorkspace checks the structure needed to render and edit a workspace: ids are
// present, every chat has at least one node and node types are known. A workspace may
// have no chats at all (its last chat was deleted).
func ValidateWorkspace(w model.Workspace) error {
	return validation.ValidateStruct(&w,
		validation.Field(&w.ID, validation.Required),
		validation.Field(&w.Characters, validation.Each(validation.By(validateCharacter))),
		validation.Field(&w.Chats, validation.Each(validation.By(validateChat))),
	)
}

func validateCharacter(v interface{}) error {
	c, ok := v.(model.Character)
	if !ok {
		return errors.New("not a character")
	}
	return validation.ValidateStruct(&c,
		validation.Field(&c.ID, validation.Required),
	)
}

func validateChat(v interface{}) error {
	c, ok := v.(model.Chat)
	if !ok {
		return errors.New("not a chat")
	}
	return validation.ValidateStruct(&c,
		validation.Field(&c.ID, validation.Required),
		validation.Field(&c.Nodes, validation.Required, validation.Each(validation.By(validateNode))),
	)
}

func validateNode(v interface{}) error {
	n, ok := v.(model.ChatNode)
	if !ok {
		return errors.New("not a node")
	}
	return validation.ValidateStruct(&n,
		validation.Field(&n.ID, validation.Required),
		validation.Field(&n.Type, validation.Required, validation.In(model.NodeText, model.NodeAnswer, model.NodeCondition)),
	)
}

// normalizeWorkspace fills nil slices and drops links to nodes outside the chat.
func normalizeWorkspace(w *model.Workspace) {
	if w.Characters == nil {
		w.Characters = []model.Character{}
	}
	if w.Chats == nil {
		w.Chats = []model.Chat{}
	}
	for ci := range w.Chats {
		chat := &w.Chats[ci]
		for ni := range chat.Nodes {
			n := &chat.Nodes[ni]
			links := make([]string, 0, len(n.GoesTo))
			for _, to := range n.GoesTo {
				if _, ok := chat.Node(to); ok {
					links = append(links, to)
				}
			}
			n.GoesTo = links
		}
	}
}
