package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

// mustData runs args and decodes the {"data": ...} envelope.
func mustData(t *testing.T, args ...string) any {
	t.Helper()
	out, errOut, err := runCLI(t, args)
	if err != nil {
		t.Fatalf("%v: %v\nstderr:\n%s", args, err, string(errOut))
	}
	var env map[string]any
	if err := json.Unmarshal(out, &env); err != nil {
		t.Fatalf("%v: decode output: %v\n%s", args, err, string(out))
	}
	data, ok := env["data"]
	if !ok {
		t.Fatalf("%v: missing data envelope: %s", args, string(out))
	}
	return data
}

func asList(t *testing.T, v any) []map[string]any {
	t.Helper()
	raw, ok := v.([]any)
	if !ok {
		t.Fatalf("expected list, got %T", v)
	}
	out := make([]map[string]any, 0, len(raw))
	for _, it := range raw {
		m, ok := it.(map[string]any)
		if !ok {
			t.Fatalf("expected object, got %T", it)
		}
		out = append(out, m)
	}
	return out
}

func asMap(t *testing.T, v any) map[string]any {
	t.Helper()
	m, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("expected object, got %T", v)
	}
	return m
}

// initStore creates a seeded store and returns its dir and root node id.
func initStore(t *testing.T, backend string) (dir, rootID string) {
	t.Helper()
	dir = filepath.Join(t.TempDir(), ".chatweaver")
	mustData(t, "--dir", dir, "--backend", backend, "init")

	nodes := asList(t, mustData(t, "--dir", dir, "--backend", backend, "nodes", "list"))
	if len(nodes) != 1 {
		t.Fatalf("expected one seeded node, got %d", len(nodes))
	}
	return dir, nodes[0]["id"].(string)
}

func TestInit_SeedsOneWorkspace(t *testing.T) {
	t.Parallel()

	for _, backend := range []string{"sqlite", "file"} {
		dir, _ := initStore(t, backend)
		ws := asList(t, mustData(t, "--dir", dir, "--backend", backend, "workspaces", "list"))
		if len(ws) != 1 || ws[0]["name"] != "W1" || ws[0]["count"] != float64(1) {
			t.Fatalf("%s: unexpected workspaces: %#v", backend, ws)
		}
		// Ids are stable across invocations once saved.
		again := asList(t, mustData(t, "--dir", dir, "--backend", backend, "workspaces", "list"))
		if again[0]["id"] != ws[0]["id"] {
			t.Fatalf("%s: workspace id changed between runs", backend)
		}
	}
}

func TestNodes_AddLinkMoveAndDelete(t *testing.T) {
	t.Parallel()
	dir, root := initStore(t, "file")
	base := []string{"--dir", dir, "--backend", "file"}
	with := func(args ...string) []string { return append(append([]string{}, base...), args...) }

	child := asMap(t, mustData(t, with("nodes", "add", "--from", root, "--message", "Hello")...))
	childID := child["id"].(string)
	if child["message"] != "Hello" || child["y"] != float64(180) {
		t.Fatalf("unexpected child: %#v", child)
	}

	back := asMap(t, mustData(t, with("nodes", "link", childID, root)...))
	if links := back["goesTo"].([]any); len(links) != 1 || links[0] != root {
		t.Fatalf("expected link to root, got %#v", back["goesTo"])
	}

	moved := asMap(t, mustData(t, with("nodes", "move", childID, "--x", "40")...))
	if moved["x"] != float64(40) || moved["y"] != float64(180) {
		t.Fatalf("move should keep y when --y is not given: %#v", moved)
	}

	typed := asMap(t, mustData(t, with("nodes", "set-type", childID, "answer")...))
	if typed["type"] != "answer" {
		t.Fatalf("expected answer, got %#v", typed["type"])
	}

	_, errOut, err := runCLI(t, with("nodes", "delete", childID))
	if err == nil {
		t.Fatalf("expected delete without --yes to fail")
	}
	if !strings.Contains(string(errOut), "--yes") {
		t.Fatalf("expected hint about --yes, got: %s", string(errOut))
	}

	mustData(t, with("--yes", "nodes", "delete", childID)...)
	nodes := asList(t, mustData(t, with("nodes", "list")...))
	if len(nodes) != 1 {
		t.Fatalf("expected 1 node after delete, got %d", len(nodes))
	}
	if links := nodes[0]["goesTo"].([]any); len(links) != 0 {
		t.Fatalf("expected root links pruned, got %#v", links)
	}
}

func TestNodes_DeleteLastNodeRefused(t *testing.T) {
	t.Parallel()
	dir, root := initStore(t, "file")

	_, _, err := runCLI(t, []string{"--dir", dir, "--backend", "file", "--yes", "nodes", "delete", root})
	if err == nil {
		t.Fatalf("expected deleting the only node to fail")
	}
}

func TestNodes_SetAndClearCharacter(t *testing.T) {
	t.Parallel()
	dir, root := initStore(t, "file")
	with := func(args ...string) []string { return append([]string{"--dir", dir, "--backend", "file"}, args...) }

	ch := asMap(t, mustData(t, with("characters", "add", "Ann")...))
	chID := ch["id"].(string)

	n := asMap(t, mustData(t, with("nodes", "set-character", root, chID)...))
	if n["character"] != chID {
		t.Fatalf("expected character %q, got %#v", chID, n["character"])
	}
	n = asMap(t, mustData(t, with("nodes", "set-character", root)...))
	if n["character"] != nil {
		t.Fatalf("expected no one, got %#v", n["character"])
	}

	mustData(t, with("nodes", "set-character", root, chID)...)
	mustData(t, with("--yes", "characters", "delete", chID)...)
	nodes := asList(t, mustData(t, with("nodes", "list")...))
	if nodes[0]["character"] != nil {
		t.Fatalf("deleting a character should clear its nodes: %#v", nodes[0]["character"])
	}
}

func TestChats_RequireChatFlagWhenAmbiguous(t *testing.T) {
	t.Parallel()
	dir, _ := initStore(t, "file")
	with := func(args ...string) []string { return append([]string{"--dir", dir, "--backend", "file"}, args...) }

	c := asMap(t, mustData(t, with("chats", "add", "Second")...))
	if nodes := c["nodes"].([]any); len(nodes) != 1 {
		t.Fatalf("new chat should start with one node, got %d", len(nodes))
	}

	_, errOut, err := runCLI(t, with("nodes", "list"))
	if err == nil || !strings.Contains(string(errOut), "missing --chat") {
		t.Fatalf("expected missing --chat, err=%v stderr=%s", err, string(errOut))
	}

	nodes := asList(t, mustData(t, with("--chat", c["id"].(string), "nodes", "list")...))
	if len(nodes) != 1 {
		t.Fatalf("expected 1 node, got %d", len(nodes))
	}
}

func TestView_ReportsEdgesAndIDs(t *testing.T) {
	t.Setenv("CHATWEAVER_CONFIG_DIR", t.TempDir())
	dir, root := initStore(t, "file")
	with := func(args ...string) []string { return append([]string{"--dir", dir, "--backend", "file"}, args...) }

	mustData(t, with("nodes", "add", "--from", root)...)

	canvas := asMap(t, mustData(t, with("view", "--ids", "off")...))
	nodes := asList(t, canvas["nodes"])
	edges := asList(t, canvas["edges"])
	if len(nodes) != 2 || len(edges) != 1 {
		t.Fatalf("expected 2 nodes and 1 edge, got %d/%d", len(nodes), len(edges))
	}
	for _, n := range nodes {
		if n["showId"] != false {
			t.Fatalf("--ids off should hide ids: %#v", n)
		}
	}
	if edges[0]["from"] != root || edges[0]["sourceAnchor"] != "a" {
		t.Fatalf("unexpected edge: %#v", edges[0])
	}
}

func TestPlay_FollowsChoices(t *testing.T) {
	t.Parallel()
	dir, root := initStore(t, "file")
	with := func(args ...string) []string { return append([]string{"--dir", dir, "--backend", "file"}, args...) }

	child := asMap(t, mustData(t, with("nodes", "add", "--from", root, "--message", "Bye")...))
	childID := child["id"].(string)

	steps := asList(t, mustData(t, with("play", root, "--choose", childID)...))
	if len(steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(steps))
	}
	if steps[0]["message"] != "N1" || steps[0]["chosen"] != childID {
		t.Fatalf("unexpected first step: %#v", steps[0])
	}
	choices := asList(t, steps[0]["choices"])
	if len(choices) != 1 || choices[0]["label"] != "Next" {
		t.Fatalf("unexpected choices: %#v", choices)
	}
	if steps[1]["message"] != "Bye" || steps[1]["canFinish"] != true {
		t.Fatalf("unexpected last step: %#v", steps[1])
	}

	if _, _, err := runCLI(t, with("play", root, "--choose", "nope")); err == nil {
		t.Fatalf("expected unknown choice to fail")
	}
}

func TestPublish_WritesMarkdownAndRefusesOverwrite(t *testing.T) {
	t.Parallel()
	dir, _ := initStore(t, "file")
	out := t.TempDir()
	with := func(args ...string) []string { return append([]string{"--dir", dir, "--backend", "file"}, args...) }

	res := asMap(t, mustData(t, with("publish", "workspace", "--to", out)...))
	written := res["written"].([]any)
	if len(written) != 1 {
		t.Fatalf("expected 1 file, got %#v", written)
	}
	b, err := os.ReadFile(written[0].(string))
	if err != nil {
		t.Fatalf("read published file: %v", err)
	}
	if !strings.Contains(string(b), "N1") {
		t.Fatalf("expected message in script:\n%s", string(b))
	}

	if _, _, err := runCLI(t, with("publish", "workspace", "--to", out)); err == nil {
		t.Fatalf("expected second publish without --overwrite to fail")
	}
	mustData(t, with("publish", "workspace", "--to", out, "--overwrite", "--html")...)
}

func TestWorkspaces_ExportImportRoundTrip(t *testing.T) {
	t.Parallel()
	dir, _ := initStore(t, "file")
	out := t.TempDir()
	with := func(args ...string) []string { return append([]string{"--dir", dir, "--backend", "file"}, args...) }

	ws := asList(t, mustData(t, with("workspaces", "list")...))
	wsID := ws[0]["id"].(string)

	exp := asMap(t, mustData(t, with("workspaces", "export", wsID, "--to", out)...))
	path := exp["path"].(string)
	if filepath.Base(path) != "W1-Chats.json" {
		t.Fatalf("unexpected export name: %s", path)
	}

	other := filepath.Join(t.TempDir(), ".chatweaver")
	mustData(t, "--dir", other, "--backend", "file", "init")
	imported := asMap(t, mustData(t, "--dir", other, "--backend", "file", "workspaces", "import", path))
	if imported["id"] != wsID || imported["name"] != "W1" {
		t.Fatalf("expected id kept on import, got %#v", imported)
	}
	all := asList(t, mustData(t, "--dir", other, "--backend", "file", "workspaces", "list"))
	if len(all) != 2 {
		t.Fatalf("expected 2 workspaces after import, got %d", len(all))
	}
}

func TestWorkspaces_ExportKeepsInsideTarget(t *testing.T) {
	t.Parallel()
	dir, _ := initStore(t, "file")
	out := filepath.Join(t.TempDir(), "exports")
	with := func(args ...string) []string { return append([]string{"--dir", dir, "--backend", "file"}, args...) }

	ws := asList(t, mustData(t, with("workspaces", "list")...))
	wsID := ws[0]["id"].(string)
	mustData(t, with("workspaces", "rename", wsID, "../../Act 1/Intro")...)

	exp := asMap(t, mustData(t, with("workspaces", "export", wsID, "--to", out)...))
	path := exp["path"].(string)
	if filepath.Dir(path) != out || filepath.Base(path) != "Act 1-Intro-Chats.json" {
		t.Fatalf("export left %s: %s", out, path)
	}

	_, errOut, err := runCLI(t, with("workspaces", "export", wsID, "--to", out))
	if err == nil || !strings.Contains(string(errOut), "overwrite") {
		t.Fatalf("expected overwrite refusal, err=%v stderr=%s", err, string(errOut))
	}
	mustData(t, with("workspaces", "export", wsID, "--to", out, "--overwrite")...)
}

func TestUnreadableDataIsNotOverwritten(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	bad := []byte("{not json")
	if err := os.WriteFile(filepath.Join(dir, "data.json"), bad, 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, errOut, err := runCLI(t, []string{"--dir", dir, "--backend", "file", "workspaces", "add", "X"})
	if err == nil || !strings.Contains(string(errOut), "unusable") {
		t.Fatalf("expected refusal, err=%v stderr=%s", err, string(errOut))
	}
	got, _ := os.ReadFile(filepath.Join(dir, "data.json"))
	if !bytes.Equal(got, bad) {
		t.Fatalf("stored data was modified")
	}
}

func TestPrefs_SetAndShow(t *testing.T) {
	cfg := t.TempDir()
	t.Setenv("CHATWEAVER_CONFIG_DIR", cfg)

	p := asMap(t, mustData(t, "prefs", "set", "theme", "dark"))
	if p["theme"] != "dark" {
		t.Fatalf("expected dark, got %#v", p["theme"])
	}
	mustData(t, "prefs", "set", "nodeColors.dark.answerNode", "#abc")
	mustData(t, "prefs", "set", "showNodeIds", "false")

	shown := asMap(t, mustData(t, "prefs", "show"))
	colors := asMap(t, asMap(t, shown["nodeColors"])["dark"])
	if colors["answerNode"] != "#abc" || shown["showNodeIds"] != false {
		t.Fatalf("unexpected prefs: %#v", shown)
	}

	for _, bad := range [][]string{
		{"prefs", "set", "theme", "sepia"},
		{"prefs", "set", "nodeColors.dark.answerNode", "orange"},
		{"prefs", "set", "nodeColors.dusk.accent", "#fff"},
		{"prefs", "set", "showNodeIds", "maybe"},
		{"prefs", "set", "fontSize", "12"},
	} {
		if _, _, err := runCLI(t, bad); err == nil {
			t.Fatalf("expected %v to fail", bad)
		}
	}

	path := asMap(t, mustData(t, "prefs", "path"))
	if path["path"] != filepath.Join(cfg, "prefs.json") {
		t.Fatalf("unexpected prefs path: %#v", path["path"])
	}
}

func TestFormat_YAMLAndUnknown(t *testing.T) {
	t.Parallel()
	dir, _ := initStore(t, "file")

	out, _, err := runCLI(t, []string{"--dir", dir, "--backend", "file", "--format", "yaml", "workspaces", "list"})
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if !strings.Contains(string(out), "data:") || !strings.Contains(string(out), "W1") {
		t.Fatalf("unexpected yaml output:\n%s", string(out))
	}

	if _, _, err := runCLI(t, []string{"--dir", dir, "--format", "xml", "workspaces", "list"}); err == nil {
		t.Fatalf("expected unknown format to fail")
	}
}

func TestNodesShow_FindsNodeInAnyChat(t *testing.T) {
	t.Parallel()
	dir, root := initStore(t, "file")
	with := func(args ...string) []string { return append([]string{"--dir", dir, "--backend", "file"}, args...) }

	mustData(t, with("chats", "add", "Other")...)
	mustData(t, with("workspaces", "add", "Second")...)

	got := asMap(t, mustData(t, with("nodes", "show", root)...))
	if asMap(t, got["node"])["id"] != root || got["character"] != "No one" {
		t.Fatalf("unexpected node detail: %#v", got)
	}
	if _, _, err := runCLI(t, with("nodes", "show", "node-missing")); err == nil {
		t.Fatalf("expected unknown node to fail")
	}
}

func TestDocs_ListAndShow(t *testing.T) {
	t.Parallel()

	topics := asList(t, asMap(t, mustData(t, "docs"))["topics"])
	if len(topics) == 0 {
		t.Fatalf("expected topics")
	}
	name := topics[0]["name"].(string)
	got := asMap(t, mustData(t, "docs", name))
	if got["topic"] != name || got["markdown"] == "" {
		t.Fatalf("unexpected docs output: %#v", got)
	}

	out, _, err := runCLI(t, []string{"docs", "playback", "--raw"})
	if err != nil || !strings.HasPrefix(string(out), "# Playback") {
		t.Fatalf("raw docs: err=%v out=%q", err, string(out))
	}
	if _, _, err := runCLI(t, []string{"docs", "nope"}); err == nil {
		t.Fatalf("expected unknown topic to fail")
	}
}
