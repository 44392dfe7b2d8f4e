package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const prefsFileName = "prefs.json"

const (
	ThemeAuto  = "auto"
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// NodeColors are hex colours for one theme.
type NodeColors struct {
	Accent        string `json:"accent"`
	TextNode      string `json:"textNode"`
	AnswerNode    string `json:"answerNode"`
	ConditionNode string `json:"conditionNode"`
}

type ThemeColors struct {
	Light NodeColors `json:"light"`
	Dark  NodeColors `json:"dark"`
}

// Prefs are the user preferences read at render time.
type Prefs struct {
	Theme      string      `json:"theme"`
	NodeColors ThemeColors `json:"nodeColors"`

	ShowNodeIDs               bool `json:"showNodeIds"`
	ShowConditionsConnections bool `json:"showConditionsConnections"`

	// DuplicateEdgesWhenAltDragging is kept for compatibility with exported preference
	// files; nothing reads it yet.
	DuplicateEdgesWhenAltDragging bool `json:"duplicateEdgesWhenAltDragging"`
}

func DefaultPrefs() Prefs {
	return Prefs{
		Theme: ThemeAuto,
		NodeColors: ThemeColors{
			Light: NodeColors{Accent: "#0068f6", TextNode: "#0068f6", AnswerNode: "#e9891b", ConditionNode: "#424242"},
			Dark:  NodeColors{Accent: "#4493ff", TextNode: "#4493ff", AnswerNode: "#e9891b", ConditionNode: "#eee"},
		},
		ShowNodeIDs: true,
	}
}

func (p Prefs) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Theme, validation.Required, validation.In(ThemeAuto, ThemeLight, ThemeDark)),
	)
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.chatweaver).
	if v := strings.TrimSpace(os.Getenv("CHATWEAVER_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".chatweaver"), nil
}

func PrefsPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, prefsFileName), nil
}

// LoadPrefs reads prefs.json. Missing fields keep their defaults and a missing file
// yields DefaultPrefs.
func LoadPrefs() (Prefs, error) {
	path, err := PrefsPath()
	if err != nil {
		return DefaultPrefs(), err
	}
	return loadPrefsFile(path)
}

func loadPrefsFile(path string) (Prefs, error) {
	p := DefaultPrefs()
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return p, nil
		}
		return p, err
	}
	if err := json.Unmarshal(b, &p); err != nil {
		return DefaultPrefs(), fmt.Errorf("parse %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return DefaultPrefs(), fmt.Errorf("invalid prefs: %w", err)
	}
	return p, nil
}

func SavePrefs(p Prefs) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid prefs: %w", err)
	}
	path, err := PrefsPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	// Best-effort copy of the previous file for recovery from accidental overwrites.
	if prev, err := os.ReadFile(path); err == nil && len(prev) > 0 {
		_ = atomicWriteFile(dir, "prefs.json.bak.*.tmp", path+".bak", prev, 0o644)
	}
	return atomicWriteFile(dir, "prefs.json.*.tmp", path, b, 0o644)
}

// atomicWriteFile writes via a unique temp file and rename so concurrent writers
// (CLI + TUI) never observe a partial file.
func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}
