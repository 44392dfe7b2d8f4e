package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"chatweaver/internal/model"
)

const ExportContentType = "application/json"

var ErrExportExists = errors.New("refusing to overwrite existing file")

// Export is a downloadable workspace file.
type Export struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Data        []byte `json:"-"`
}

// ExportFileName is "<workspace name>-Chats.json". The name is reduced to a single
// path element: separators and characters Windows rejects become '-', and leading
// dots are dropped so "../x" cannot leave the target directory.
func ExportFileName(name string) string {
	return safeFileStem(name) + "-Chats.json"
}

func safeFileStem(name string) string {
	stem := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsControl(r):
			return -1
		case strings.ContainsRune(`/\:*?"<>|`, r):
			return '-'
		}
		return r
	}, name)
	stem = strings.TrimLeft(stem, ". -")
	stem = strings.TrimRight(stem, ". ")
	if stem == "" {
		return "Workspace"
	}
	return stem
}

// WriteExport writes exp into dir (created when missing) and returns the file path.
// Without overwrite an existing file is left alone.
func WriteExport(dir string, exp Export, overwrite bool) (string, error) {
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, exp.FileName)
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return path, fmt.Errorf("%w (use --overwrite): %s", ErrExportExists, path)
		}
	}
	if err := atomicWriteFile(dir, ".export.*.tmp", path, exp.Data, 0o644); err != nil {
		return path, fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

func ExportWorkspace(s model.Snapshot, wsID string) (Export, error) {
	ws, ok := s.Workspace(wsID)
	if !ok {
		return Export{}, fmt.Errorf("workspace not found: %s", wsID)
	}
	b, err := json.MarshalIndent(ws, "", "  ")
	if err != nil {
		return Export{}, fmt.Errorf("encode workspace: %w", err)
	}
	return Export{
		FileName:    ExportFileName(ws.Name),
		ContentType: ExportContentType,
		Data:        b,
	}, nil
}

// DecodeWorkspace reads an exported workspace. Ids are kept as written.
func DecodeWorkspace(b []byte) (model.Workspace, error) {
	var ws model.Workspace
	if strings.TrimSpace(string(b)) == "" {
		return ws, fmt.Errorf("decode workspace: empty file")
	}
	if err := json.Unmarshal(b, &ws); err != nil {
		return model.Workspace{}, fmt.Errorf("decode workspace: %w", err)
	}
	if err := ValidateWorkspace(ws); err != nil {
		return model.Workspace{}, fmt.Errorf("invalid workspace: %w", err)
	}
	normalizeWorkspace(&ws)
	return ws, nil
}
