package graphviz

import (
	"github.com/rs/zerolog"
)

// PreprocessorName identifies the preprocessor to the host (mdBook's
// [preprocessor.graphviz] table).
const PreprocessorName = "graphviz"

// Book is the document tree handed over by the host.
type Book struct {
	Sections []Item
}

// Item is one entry of a book's table of contents.
// Entries without a Chapter (separators, part titles) pass through untouched.
type Item struct {
	Chapter *Chapter
	Label   string // Describes non-chapter entries in logs, e.g. "separator"
}

// Chapter is a content-bearing node of the book.
// Name and Path are never modified by preprocessing.
type Chapter struct {
	Name     string
	Path     string // Relative to the book source directory, "" for draft chapters
	Content  string
	SubItems []Item
}

// ChapterItem wraps a chapter into an Item.
func ChapterItem(ch *Chapter) Item {
	return Item{Chapter: ch}
}

// Option configures a Preprocessor.
type Option func(*Preprocessor)

// WithRenderer replaces the diagram renderer (default: CommandRenderer running dot).
// Panics if r is nil (programmer error).
func WithRenderer(r Renderer) Option {
	if r == nil {
		panic("graphviz: WithRenderer renderer must not be nil")
	}
	return func(p *Preprocessor) {
		p.renderer = r
	}
}

// WithWorkers bounds how many blocks render at the same time.
// Zero or negative selects a size from GOMAXPROCS (see ResolvePoolSize).
func WithWorkers(n int) Option {
	return func(p *Preprocessor) {
		p.pool = NewRenderPool(ResolvePoolSize(n))
	}
}

// WithLogger sets the logger used for progress and retry messages.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Preprocessor) {
		p.logger = l
	}
}
