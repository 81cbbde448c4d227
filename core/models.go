package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for format records.
// It is derived from the content being formatted.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Status is the outcome of a format request.
type Status int

const (
	// StatusSucceeded means the output passed validation.
	StatusSucceeded Status = iota + 1
	// StatusFailed means generation or repair failed.
	StatusFailed
)

// String returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FormatRecord captures one pass of input text through the formatter.
type FormatRecord struct {
	Id        ID
	Source    string // Name of the uploaded file or path the input came from
	Input     string // Raw input text
	Output    string // Validated YAML, empty unless Status is StatusSucceeded
	Status    Status
	Error     string // Failure message when Status is StatusFailed
	Repaired  bool   // Whether the generated YAML needed the repair passes
	Model     string // Model that produced the output
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Succeeded reports whether the record holds validated output.
func (r *FormatRecord) Succeeded() bool {
	return r.Status == StatusSucceeded
}
