package graphviz

import (
	"errors"
	"fmt"
)

// Sentinel errors for preprocessing operations.
var (
	ErrNilBook = errors.New("book cannot be nil")

	// Renderer errors.
	ErrSpawnExhausted = errors.New("renderer process could not be started")
	ErrRenderFailed   = errors.New("renderer exited with failure")
	ErrIO             = errors.New("renderer I/O failed")

	// Content errors.
	ErrSerialization  = errors.New("markdown serialization failed")
	ErrMalformedBlock = errors.New("malformed graphviz block")
)

// ChapterError reports which chapter, and which block when known, a failure
// happened in.
type ChapterError struct {
	Chapter string // Chapter display name
	Block   string // Artifact file name, empty for chapter-level failures
	Err     error
}

func (e *ChapterError) Error() string {
	if e.Block != "" {
		return fmt.Sprintf("chapter %q, block %s: %v", e.Chapter, e.Block, e.Err)
	}
	return fmt.Sprintf("chapter %q: %v", e.Chapter, e.Err)
}

func (e *ChapterError) Unwrap() error {
	return e.Err
}
