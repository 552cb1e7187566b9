package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// Record IDs come from database sequences; blob IDs are content-based hashes.
type ID uint64

// IDFromBytes generates a deterministic ID from raw bytes using BLAKE2b hashing.
// Identical content always produces the same ID, which makes blob storage
// content-addressed.
func IDFromBytes(data []byte) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write(data)
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// IDFromContent generates a deterministic ID from text content.
func IDFromContent(text string) ID {
	return IDFromBytes([]byte(text))
}

// SpeakerType identifies the source of a chat turn.
type SpeakerType int

const (
	// SpeakerTypeHuman represents a human user.
	SpeakerTypeHuman SpeakerType = iota + 1
	// SpeakerTypeAI represents an AI assistant.
	SpeakerTypeAI
)

// Resource represents a stored teaching resource: a titled, described,
// tagged document that may carry an attached file and its extracted text.
type Resource struct {
	Id            ID
	Title         string
	Description   string
	Tags          []string // stored tags, including derived letter tags
	AgeRange      string   // free-text classifier, not used in scoring
	Type          string   // free-text classifier, not used in scoring
	ExtractedText string   // plain text pulled from the attached file; empty for link-only resources
	FileId        ID       // content hash of the attached blob; 0 when no file is attached
	FileMime      string
	InsertedAt    time.Time // When the resource was created
	UpdatedAt     time.Time // When the resource was last updated
}

// HasFile reports whether the resource carries an attached blob.
func (r *Resource) HasFile() bool {
	return r.FileId != 0
}

// RankedResource pairs a resource with its relevance score for a single query.
// Insight is a per-query usage note produced by the note annotator; it is
// recomputed on every chat turn and never persisted with the resource.
type RankedResource struct {
	Resource *Resource
	Score    int
	Insight  string
}

// ChatTurn represents a single message in a conversation. Prior turns are
// passed through to the text generator for context but are never scored
// against the resource library.
type ChatTurn struct {
	Speaker  SpeakerType
	Contents string
}
