package graphviz

import (
	"fmt"

	"github.com/alnah/go-mdbook-graphviz/internal/markup"
)

// accumulator scans one chapter's event stream for diagram blocks.
//
// It is a two-state machine: outside a block (builder == nil) events pass
// through; inside, text is collected until the matching end event closes the
// block. Indices count closed blocks and are local to one chapter.
type accumulator struct {
	chapterName string
	dir         string
	builder     *blockBuilder
	index       int
}

func newAccumulator(chapterName, dir string) *accumulator {
	return &accumulator{chapterName: chapterName, dir: dir}
}

// step consumes one event. It returns either the events to emit in its place
// (possibly none) or, when the event closes a block, the finalized block.
func (a *accumulator) step(e markup.Event) ([]markup.Event, *Block, error) {
	if a.builder == nil {
		switch {
		case e.IsCodeBlockStart() && isDiagramInfo(e.Tag.Info):
			a.builder = newBlockBuilder(e.Tag.Info, a.chapterName, a.dir)
			return nil, nil, nil
		case e.IsCodeBlockEnd() && isDiagramInfo(e.Tag.Info):
			return nil, nil, fmt.Errorf("%w: end of %q without an open block", ErrMalformedBlock, e.Tag.Info)
		default:
			return []markup.Event{e}, nil, nil
		}
	}

	switch {
	case e.Kind == markup.KindText:
		a.builder.appendCode(e.Text)
		return nil, nil, nil
	case e.IsCodeBlockEnd():
		if !isDiagramInfo(e.Tag.Info) {
			return nil, nil, fmt.Errorf("%w: block closed by %q", ErrMalformedBlock, e.Tag.Info)
		}
		block := a.builder.build(a.index)
		a.index++
		a.builder = nil
		return nil, &block, nil
	default:
		// Everything up to the closing fence belongs to the block.
		return nil, nil, nil
	}
}

// finish reports a block left open at the end of the stream.
func (a *accumulator) finish() error {
	if a.builder != nil {
		return fmt.Errorf("%w: block not terminated", ErrMalformedBlock)
	}
	return nil
}
