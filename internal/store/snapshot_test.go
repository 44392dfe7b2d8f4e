package store

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"chatweaver/internal/model"
	"chatweaver/internal/mutate"
)

func sampleSnapshot() model.Snapshot {
	ann := "char-ann"
	return model.Snapshot{{
		ID:         "ws-1",
		Name:       "Quest",
		Characters: []model.Character{{ID: "char-ann", Name: "Ann"}},
		Chats: []model.Chat{{
			ID:   "chat-1",
			Name: "Intro",
			Nodes: []model.ChatNode{
				{ID: "n1", Type: model.NodeText, Message: "Hi", Character: &ann, GoesTo: []string{"n2"}},
				{ID: "n2", Type: model.NodeAnswer, Message: "Hello", X: 0, Y: 180, GoesTo: []string{}},
			},
		}},
	}}
}

func backends(t *testing.T) map[string]ByteStore {
	t.Helper()
	dir := t.TempDir()
	sq, err := Store{Dir: dir}.Open(BackendSQLite)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	fs, err := Store{Dir: t.TempDir()}.Open(BackendFile)
	if err != nil {
		t.Fatalf("open file: %v", err)
	}
	return map[string]ByteStore{
		"sqlite": sq,
		"file":   fs,
		"mem":    NewMemStore(),
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, bs := range backends(t) {
		t.Run(name, func(t *testing.T) {
			want := sampleSnapshot()
			if err := Save(ctx, bs, want); err != nil {
				t.Fatalf("Save: %v", err)
			}
			got, info := Load(ctx, bs)
			if info.Source != SourceStored || info.Err != nil {
				t.Fatalf("unexpected load info: %+v", info)
			}
			if !reflect.DeepEqual(want, got) {
				t.Fatalf("roundtrip mismatch:\nwant: %#v\ngot:  %#v", want, got)
			}

			// Overwrite replaces the previous value.
			want[0].Name = "Renamed"
			if err := Save(ctx, bs, want); err != nil {
				t.Fatalf("Save (2): %v", err)
			}
			got, _ = Load(ctx, bs)
			if got[0].Name != "Renamed" {
				t.Fatalf("expected overwritten name, got %q", got[0].Name)
			}
		})
	}
}

func TestLoad_FallsBackToDefault(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name    string
		data    []byte
		wantErr bool
	}{
		{name: "absent"},
		{name: "empty array", data: []byte(`[]`)},
		{name: "null", data: []byte(`null`)},
		{name: "malformed", data: []byte(`{not json`), wantErr: true},
		{name: "wrong shape", data: []byte(`{"id":"ws-1"}`), wantErr: true},
		{name: "chat without nodes", data: []byte(`[{"id":"ws-1","chats":[{"id":"c","nodes":[]}]}]`), wantErr: true},
		{name: "unknown node type", data: []byte(`[{"id":"ws-1","chats":[{"id":"c","nodes":[{"id":"n","type":"bogus"}]}]}]`), wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bs := NewMemStore()
			if tc.data != nil {
				if err := bs.Put(ctx, KeyData, tc.data); err != nil {
					t.Fatalf("Put: %v", err)
				}
			}
			got, info := Load(ctx, bs)
			if info.Source != SourceDefault {
				t.Fatalf("expected default source, got %q", info.Source)
			}
			if (info.Err != nil) != tc.wantErr {
				t.Fatalf("unexpected err: %v", info.Err)
			}
			if len(got) != 1 || got[0].Name != "W1" || len(got[0].Chats) != 1 || len(got[0].Chats[0].Nodes) != 1 {
				t.Fatalf("expected default snapshot, got %#v", got)
			}
		})
	}
}

func TestLoad_ReadErrorFallsBack(t *testing.T) {
	bs := NewMemStore()
	boom := errors.New("disk on fire")
	bs.SetErr(boom)
	got, info := Load(context.Background(), bs)
	if info.Source != SourceDefault || !errors.Is(info.Err, boom) {
		t.Fatalf("unexpected info: %+v", info)
	}
	if len(got) != 1 {
		t.Fatalf("expected default snapshot, got %d workspaces", len(got))
	}
}

func TestDecodeSnapshot_Normalizes(t *testing.T) {
	b := []byte(`[{"id":"ws-1","name":"W","chats":[{"id":"c","nodes":[
		{"id":"n1","type":"text","message":"","character":null,"x":0,"y":0,"goesTo":["n2","gone"]},
		{"id":"n2","type":"answer","message":"","character":null,"x":0,"y":0}
	]}]}]`)
	snap, err := DecodeSnapshot(b)
	if err != nil {
		t.Fatalf("DecodeSnapshot: %v", err)
	}
	ws := snap[0]
	if ws.Characters == nil {
		t.Fatalf("expected empty characters slice")
	}
	nodes := ws.Chats[0].Nodes
	if !reflect.DeepEqual(nodes[0].GoesTo, []string{"n2"}) {
		t.Fatalf("expected dangling link dropped, got %v", nodes[0].GoesTo)
	}
	if nodes[1].GoesTo == nil {
		t.Fatalf("expected empty goesTo slice")
	}
}

func TestOpen_RejectsUnknownBackend(t *testing.T) {
	if _, err := (Store{Dir: t.TempDir()}).Open("redis"); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
	if _, err := (Store{}).Open(BackendFile); err == nil {
		t.Fatalf("expected error for empty dir")
	}
}

func TestFileStore_RejectsPathKeys(t *testing.T) {
	fs := &FileStore{Dir: t.TempDir()}
	if err := fs.Put(context.Background(), "../escape", []byte("x")); err == nil {
		t.Fatalf("expected invalid key error")
	}
}

func TestSaveLoad_WorkspaceWithoutChats(t *testing.T) {
	ctx := context.Background()
	snap := model.DefaultSnapshot()
	snap, wsID := mutate.AddWorkspace(snap)
	ws, _ := snap.Workspace(wsID)
	snap, err := mutate.DeleteChat(snap, wsID, ws.Chats[0].ID)
	if err != nil {
		t.Fatalf("DeleteChat: %v", err)
	}

	bs := NewMemStore()
	if err := Save(ctx, bs, snap); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, info := Load(ctx, bs)
	if info.Source != SourceStored || info.Err != nil {
		t.Fatalf("expected stored data, got %+v", info)
	}
	if len(got) != 2 || got[0].ID != snap[0].ID || got[1].ID != wsID {
		t.Fatalf("workspaces not kept: %#v", got)
	}
	if got[1].Chats == nil || len(got[1].Chats) != 0 {
		t.Fatalf("expected empty chat list, got %#v", got[1].Chats)
	}

	exp, err := ExportWorkspace(got, wsID)
	if err != nil {
		t.Fatalf("ExportWorkspace: %v", err)
	}
	if _, err := DecodeWorkspace(exp.Data); err != nil {
		t.Fatalf("export of a chatless workspace must decode: %v", err)
	}
}
