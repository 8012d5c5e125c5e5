package graphviz

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdbook-graphviz/internal/markup"
)

// InfoStringPrefix marks a fenced code block as a diagram to render.
const InfoStringPrefix = "dot process"

// artifactExt is the extension of rendered files; it matches dot's -Tsvg output.
const artifactExt = ".svg"

// isDiagramInfo reports whether a fenced block info string selects this preprocessor.
func isDiagramInfo(info string) bool {
	return strings.HasPrefix(info, InfoStringPrefix)
}

// Block is a finalized diagram ready for rendering.
type Block struct {
	GraphName string // Optional name from the info string, "" when absent
	ImageName string // Artifact base name, without extension
	Code      string // Diagram source, trimmed
	Dir       string // Directory the chapter file lives in
}

// FileName returns the artifact file name, e.g. "intro_0.generated.svg".
func (b Block) FileName() string {
	return b.ImageName + artifactExt
}

// OutputPath returns where the artifact is written.
func (b Block) OutputPath() string {
	return filepath.Join(b.Dir, b.FileName())
}

// tagEvents returns the events replacing the original fenced block.
func (b Block) tagEvents() []markup.Event {
	tag := markup.Image(b.FileName(), b.GraphName, b.GraphName)
	return []markup.Event{
		markup.Start(tag),
		markup.End(tag),
		markup.Text("\n\n"),
	}
}

// blockBuilder collects the source of one open diagram block.
type blockBuilder struct {
	chapterName string
	graphName   string
	code        strings.Builder
	dir         string
}

// newBlockBuilder starts a block for a fenced block with the given info string.
// The graph name is the rest of the info string when a single space follows the prefix.
func newBlockBuilder(info, chapterName, dir string) *blockBuilder {
	var graphName string
	if len(info) > len(InfoStringPrefix) && info[len(InfoStringPrefix)] == ' ' {
		graphName = strings.TrimSpace(info[len(InfoStringPrefix)+1:])
	}

	return &blockBuilder{
		chapterName: strings.TrimSpace(chapterName),
		graphName:   graphName,
		dir:         dir,
	}
}

func (b *blockBuilder) appendCode(code string) {
	b.code.WriteString(code)
}

// build finalizes the block with its per-chapter index.
func (b *blockBuilder) build(index int) Block {
	var imageName string
	if b.graphName != "" {
		imageName = fmt.Sprintf("%s_%s_%d.generated", NormalizeID(b.chapterName), NormalizeID(b.graphName), index)
	} else {
		imageName = fmt.Sprintf("%s_%d.generated", NormalizeID(b.chapterName), index)
	}

	return Block{
		GraphName: b.graphName,
		ImageName: imageName,
		Code:      strings.TrimSpace(b.code.String()),
		Dir:       b.dir,
	}
}
