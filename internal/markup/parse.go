package markup

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Parser tokenizes Markdown into events.
// A Parser holds no per-document state and may be shared between goroutines.
type Parser struct {
	md goldmark.Markdown
}

// NewParser creates a Parser using CommonMark plus GFM block rules, so tables,
// task lists and the like never confuse fence detection.
func NewParser() *Parser {
	return &Parser{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
	}
}

var defaultParser = NewParser()

// Parse tokenizes content with the default parser.
func Parse(content string) []Event {
	return defaultParser.Parse(content)
}

// fence locates one fenced code block inside the source buffer.
type fence struct {
	info    string
	start   int // first fence character of the opening line
	openEnd int // end of the opening line, newline included
	lines   *text.Segments
	end     int // end of the closing fence line, or of the last content line when unclosed
}

// Parse tokenizes content. Fenced code blocks carrying an info string become
// Start/Text/End events; everything else is emitted as Raw.
func (p *Parser) Parse(content string) []Event {
	src := []byte(content)
	doc := p.md.Parser().Parse(text.NewReader(src))

	fences := collectFences(doc, src)
	if len(fences) == 0 {
		if content == "" {
			return nil
		}
		return []Event{Raw(content)}
	}

	events := make([]Event, 0, len(fences)*4+1)
	cursor := 0

	for _, f := range fences {
		if f.start > cursor {
			events = append(events, Raw(content[cursor:f.start]))
		}

		tag := CodeBlock(f.info)
		events = append(events, Event{Kind: KindStart, Tag: tag, Source: content[f.start:f.openEnd], parsed: true})
		cursor = f.openEnd

		for i := 0; i < f.lines.Len(); i++ {
			line := f.lines.At(i)
			stop := max(line.Stop, cursor)
			events = append(events, Event{
				Kind:   KindText,
				Text:   string(line.Value(src)),
				Source: content[cursor:stop],
				parsed: true,
			})
			cursor = stop
		}

		end := max(f.end, cursor)
		events = append(events, Event{Kind: KindEnd, Tag: tag, Source: content[cursor:end], parsed: true})
		cursor = end
	}

	if cursor < len(content) {
		events = append(events, Raw(content[cursor:]))
	}

	return events
}

// collectFences walks the document in order and locates every fenced code
// block that has an info string.
func collectFences(doc ast.Node, src []byte) []fence {
	var fences []fence

	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fb, ok := node.(*ast.FencedCodeBlock)
		if !ok || fb.Info == nil {
			return ast.WalkContinue, nil
		}
		if f, ok := locateFence(fb, src); ok {
			fences = append(fences, f)
		}
		return ast.WalkSkipChildren, nil
	})

	return fences
}

// locateFence recovers the byte range of a fenced block from its info segment
// and content lines; goldmark does not record fence positions itself.
func locateFence(fb *ast.FencedCodeBlock, src []byte) (fence, bool) {
	info := fb.Info.Segment

	i := info.Start
	for i > 0 && (src[i-1] == ' ' || src[i-1] == '\t') {
		i--
	}
	if i == 0 || (src[i-1] != '`' && src[i-1] != '~') {
		return fence{}, false
	}
	fenceChar := src[i-1]
	start := i
	for start > 0 && src[start-1] == fenceChar {
		start--
	}
	fenceLen := i - start

	f := fence{
		info:    string(info.Value(src)),
		start:   start,
		openEnd: lineEnd(src, info.Stop),
		lines:   fb.Lines(),
	}

	last := f.openEnd
	if n := f.lines.Len(); n > 0 {
		last = max(last, f.lines.At(n-1).Stop)
	}
	f.end = last

	if last < len(src) {
		closeEnd := lineEnd(src, last)
		if isClosingFence(src[last:closeEnd], fenceChar, fenceLen) {
			f.end = closeEnd
		}
	}

	return f, true
}

// lineEnd returns the offset just past the newline ending the line containing from.
func lineEnd(src []byte, from int) int {
	if from >= len(src) {
		return len(src)
	}
	idx := bytes.IndexByte(src[from:], '\n')
	if idx < 0 {
		return len(src)
	}
	return from + idx + 1
}

// isClosingFence reports whether line closes a fence of fenceLen fenceChar.
// Container prefixes (indentation, blockquote markers) are skipped.
func isClosingFence(line []byte, fenceChar byte, fenceLen int) bool {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t' || line[i] == '>') {
		i++
	}
	run := 0
	for i < len(line) && line[i] == fenceChar {
		run++
		i++
	}
	if run < fenceLen {
		return false
	}
	return len(bytes.TrimSpace(line[i:])) == 0
}
