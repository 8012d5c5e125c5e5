package graphviz

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-mdbook-graphviz/internal/markup"
)

// Preprocessor renders diagram blocks across a book.
// Create with New; a Preprocessor is safe for concurrent use.
type Preprocessor struct {
	renderer Renderer
	pool     *RenderPool
	logger   zerolog.Logger
}

// New creates a Preprocessor rendering with dot and a GOMAXPROCS-sized pool.
func New(opts ...Option) *Preprocessor {
	p := &Preprocessor{
		renderer: NewCommandRenderer(),
		pool:     NewRenderPool(ResolvePoolSize(0)),
		logger:   zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Name returns the preprocessor name.
func (p *Preprocessor) Name() string {
	return PreprocessorName
}

// SupportsRenderer reports whether the output works with the named host
// renderer. Only plain image references are emitted, so every renderer is.
func (p *Preprocessor) SupportsRenderer(string) bool {
	return true
}

// Run processes every chapter of book and returns a new book with the same
// shape. srcDir is the directory chapter paths are relative to.
// No book is returned if any chapter fails.
func (p *Preprocessor) Run(ctx context.Context, book *Book, srcDir string) (*Book, error) {
	if book == nil {
		return nil, ErrNilBook
	}

	sections, err := p.processItems(ctx, book.Sections, srcDir)
	if err != nil {
		return nil, err
	}

	return &Book{Sections: sections}, nil
}

// processItems processes siblings concurrently, keeping their order.
func (p *Preprocessor) processItems(ctx context.Context, items []Item, srcDir string) ([]Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	out := make([]Item, len(items))
	g, gctx := errgroup.WithContext(ctx)

	for i, item := range items {
		g.Go(func() error {
			processed, err := p.processItem(gctx, item, srcDir)
			if err != nil {
				return err
			}
			out[i] = processed
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// processItem processes a chapter, then its sub-items. Non-chapter entries
// are returned unchanged.
func (p *Preprocessor) processItem(ctx context.Context, item Item, srcDir string) (Item, error) {
	if item.Chapter == nil {
		return item, nil
	}
	if err := ctx.Err(); err != nil {
		return Item{}, err
	}

	ch := item.Chapter
	processed := *ch

	// Draft chapters have no file, hence no content to scan.
	if ch.Path != "" {
		dir := filepath.Join(srcDir, filepath.Dir(filepath.FromSlash(ch.Path)))
		content, err := p.processContent(ctx, ch.Name, ch.Content, dir)
		if err != nil {
			return Item{}, err
		}
		processed.Content = content
	}

	subItems, err := p.processItems(ctx, ch.SubItems, srcDir)
	if err != nil {
		return Item{}, err
	}
	processed.SubItems = subItems

	return Item{Chapter: &processed, Label: item.Label}, nil
}

// ProcessChapter processes a single chapter's own content, ignoring its
// sub-items. dir is the directory the chapter file lives in; artifacts are
// written there.
func (p *Preprocessor) ProcessChapter(ctx context.Context, ch *Chapter, dir string) (*Chapter, error) {
	content, err := p.processContent(ctx, ch.Name, ch.Content, dir)
	if err != nil {
		return nil, err
	}

	processed := *ch
	processed.Content = content
	return &processed, nil
}

// processContent scans content sequentially, dispatches each finished block
// to the renderer, and serializes the rewritten stream once every render
// succeeded.
func (p *Preprocessor) processContent(ctx context.Context, chapterName, content, dir string) (string, error) {
	events := markup.Parse(content)
	acc := newAccumulator(chapterName, dir)
	out := make([]markup.Event, 0, len(events))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	blocks := 0

	for _, e := range events {
		emit, block, err := acc.step(e)
		if err != nil {
			cancel()
			_ = g.Wait()
			return "", &ChapterError{Chapter: chapterName, Err: err}
		}
		if block == nil {
			out = append(out, emit...)
			continue
		}

		b := *block
		blocks++
		g.Go(func() error {
			return p.render(gctx, chapterName, b)
		})
		out = append(out, b.tagEvents()...)
	}

	if err := acc.finish(); err != nil {
		cancel()
		_ = g.Wait()
		return "", &ChapterError{Chapter: chapterName, Err: err}
	}

	if err := g.Wait(); err != nil {
		return "", err
	}

	result, err := markup.SerializeString(out)
	if err != nil {
		return "", &ChapterError{Chapter: chapterName, Err: fmt.Errorf("%w: %v", ErrSerialization, err)}
	}

	if blocks > 0 {
		p.logger.Debug().
			Str("chapter", chapterName).
			Int("blocks", blocks).
			Msg("chapter processed")
	}

	return result, nil
}

// render runs one block through the renderer within a pool slot.
func (p *Preprocessor) render(ctx context.Context, chapterName string, b Block) error {
	if err := p.pool.Acquire(ctx); err != nil {
		return &ChapterError{Chapter: chapterName, Block: b.FileName(), Err: err}
	}
	defer p.pool.Release()

	p.logger.Debug().
		Str("chapter", chapterName).
		Str("output", b.OutputPath()).
		Msg("rendering diagram")

	if err := p.renderer.Render(ctx, b.Code, b.OutputPath()); err != nil {
		return &ChapterError{Chapter: chapterName, Block: b.FileName(), Err: err}
	}
	return nil
}
