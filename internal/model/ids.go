package model

import (
	"encoding/base32"
	"strings"

	"github.com/google/uuid"
)

const (
	PrefixWorkspace = "ws"
	PrefixChat      = "chat"
	PrefixCharacter = "char"
	PrefixNode      = "node"
)

var idEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// NewID returns prefix-<suffix> where suffix is 8 chars of base32 (lowercase, no padding).
// 8 chars base32 ~= 40 bits of space, drawn from a random (v4) uuid.
func NewID(prefix string) string {
	u := uuid.New()
	suffix := strings.ToLower(idEncoding.EncodeToString(u[:5]))
	return prefix + "-" + suffix
}

// NewUniqueID draws ids until one is unused anywhere in s.
func NewUniqueID(s Snapshot, prefix string) string {
	for {
		id := NewID(prefix)
		if !s.HasID(id) {
			return id
		}
	}
}

// HasID reports whether any entity in the snapshot uses id.
func (s Snapshot) HasID(id string) bool {
	for _, w := range s {
		if w.ID == id {
			return true
		}
		for _, c := range w.Characters {
			if c.ID == id {
				return true
			}
		}
		for _, ch := range w.Chats {
			if ch.ID == id {
				return true
			}
			for _, n := range ch.Nodes {
				if n.ID == id {
					return true
				}
			}
		}
	}
	return false
}
