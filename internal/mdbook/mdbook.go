package mdbook

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	graphviz "github.com/alnah/go-mdbook-graphviz"
)

// DefaultSourceDir is book.src when book.toml does not set it.
const DefaultSourceDir = "src"

// Sentinel errors for protocol handling.
var (
	ErrInvalidInput  = errors.New("invalid preprocessor input")
	ErrShapeMismatch = errors.New("book shape does not match input")
)

// Context is the preprocessor context mdBook sends alongside the book.
type Context struct {
	Root     string // Book root directory, where book.toml lives
	Src      string // book.src, relative to Root
	Renderer string // Renderer the book is being built for
	Version  string // mdBook version

	table gjson.Result
}

// SourceDir returns the directory chapter paths are relative to.
func (c Context) SourceDir() string {
	src := c.Src
	if src == "" {
		src = DefaultSourceDir
	}
	if filepath.IsAbs(src) {
		return src
	}
	return filepath.Join(c.Root, filepath.FromSlash(src))
}

// Options holds the [preprocessor.graphviz] settings from book.toml.
// Zero values mean "not set".
type Options struct {
	Command     string // dot-command
	Timeout     string // timeout, a Go duration string
	Workers     int    // workers
	MaxAttempts int    // max-attempts
}

// Options reads this preprocessor's table. mdBook reserves "command" for
// the preprocessor executable itself, hence "dot-command".
func (c Context) Options() Options {
	return Options{
		Command:     c.table.Get("dot-command").String(),
		Timeout:     c.table.Get("timeout").String(),
		Workers:     int(c.table.Get("workers").Int()),
		MaxAttempts: int(c.table.Get("max-attempts").Int()),
	}
}

// Input is a decoded preprocessor request.
type Input struct {
	Context Context
	Book    *graphviz.Book

	bookJSON    string
	sectionsKey string
}

// ReadInput decodes the [context, book] array mdBook writes on stdin.
func ReadInput(r io.Reader) (*Input, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reading: %v", ErrInvalidInput, err)
	}
	return ParseInput(data)
}

// ParseInput decodes a [context, book] JSON document.
func ParseInput(data []byte) (*Input, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrInvalidInput)
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsArray() || len(doc.Array()) != 2 {
		return nil, fmt.Errorf("%w: expected a [context, book] array", ErrInvalidInput)
	}

	ctxJSON, bookJSON := doc.Get("0"), doc.Get("1")
	if !ctxJSON.IsObject() || !bookJSON.IsObject() {
		return nil, fmt.Errorf("%w: context and book must be objects", ErrInvalidInput)
	}

	// mdBook 0.5 renamed "sections" to "items".
	key := "sections"
	if !bookJSON.Get(key).Exists() && bookJSON.Get("items").Exists() {
		key = "items"
	}

	items, err := decodeItems(bookJSON.Get(key), key)
	if err != nil {
		return nil, err
	}

	return &Input{
		Context: Context{
			Root:     ctxJSON.Get("root").String(),
			Src:      ctxJSON.Get("config.book.src").String(),
			Renderer: ctxJSON.Get("renderer").String(),
			Version:  ctxJSON.Get("mdbook_version").String(),
			table:    ctxJSON.Get("config.preprocessor." + graphviz.PreprocessorName),
		},
		Book:        &graphviz.Book{Sections: items},
		bookJSON:    bookJSON.Raw,
		sectionsKey: key,
	}, nil
}

// decodeItems converts a JSON item array. path is used in error messages.
func decodeItems(arr gjson.Result, path string) ([]graphviz.Item, error) {
	if !arr.Exists() || arr.Type == gjson.Null {
		return nil, nil
	}
	if !arr.IsArray() {
		return nil, fmt.Errorf("%w: %s is not an array", ErrInvalidInput, path)
	}

	raw := arr.Array()
	items := make([]graphviz.Item, 0, len(raw))

	for i, entry := range raw {
		itemPath := path + "." + strconv.Itoa(i)

		switch {
		case entry.Type == gjson.String:
			// "Separator"
			items = append(items, graphviz.Item{Label: entry.String()})
		case entry.Get("PartTitle").Exists():
			items = append(items, graphviz.Item{Label: "part title: " + entry.Get("PartTitle").String()})
		case entry.Get("Chapter").IsObject():
			ch := entry.Get("Chapter")
			subItems, err := decodeItems(ch.Get("sub_items"), itemPath+".Chapter.sub_items")
			if err != nil {
				return nil, err
			}
			items = append(items, graphviz.ChapterItem(&graphviz.Chapter{
				Name:     ch.Get("name").String(),
				Path:     ch.Get("path").String(), // null for drafts
				Content:  ch.Get("content").String(),
				SubItems: subItems,
			}))
		default:
			return nil, fmt.Errorf("%w: unknown book item at %s", ErrInvalidInput, itemPath)
		}
	}

	return items, nil
}

// Encode writes the contents of book back into the book JSON read by
// ParseInput. book must have the shape of Input.Book.
func (in *Input) Encode(book *graphviz.Book) ([]byte, error) {
	if book == nil {
		return nil, fmt.Errorf("%w: nil book", ErrShapeMismatch)
	}

	out, err := encodeItems(in.bookJSON, in.sectionsKey, book.Sections)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

func encodeItems(doc, path string, items []graphviz.Item) (string, error) {
	if n := len(gjson.Get(doc, path).Array()); n != len(items) {
		return "", fmt.Errorf("%w: %s has %d items, got %d", ErrShapeMismatch, path, n, len(items))
	}

	for i, item := range items {
		if item.Chapter == nil {
			continue
		}

		chapterPath := path + "." + strconv.Itoa(i) + ".Chapter"
		if !gjson.Get(doc, chapterPath).Exists() {
			return "", fmt.Errorf("%w: %s is not a chapter", ErrShapeMismatch, chapterPath)
		}

		var err error
		doc, err = sjson.Set(doc, chapterPath+".content", item.Chapter.Content)
		if err != nil {
			return "", fmt.Errorf("setting %s: %w", chapterPath, err)
		}

		if len(item.Chapter.SubItems) > 0 {
			doc, err = encodeItems(doc, chapterPath+".sub_items", item.Chapter.SubItems)
			if err != nil {
				return "", err
			}
		}
	}

	return doc, nil
}
