package markup

import "fmt"

// Kind identifies the type of an Event.
type Kind int

// Event kinds.
const (
	KindRaw   Kind = iota // Untouched source text between interesting blocks
	KindStart             // Opening of a tagged element
	KindEnd               // Closing of a tagged element
	KindText              // Text run inside a tagged element
)

// String returns a readable kind name for debugging and error messages.
func (k Kind) String() string {
	switch k {
	case KindRaw:
		return "Raw"
	case KindStart:
		return "Start"
	case KindEnd:
		return "End"
	case KindText:
		return "Text"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// TagKind identifies the element a Start or End event belongs to.
type TagKind int

// Tag kinds.
const (
	TagNone TagKind = iota
	TagCodeBlock
	TagImage
)

// String returns a readable tag name.
func (t TagKind) String() string {
	switch t {
	case TagNone:
		return "None"
	case TagCodeBlock:
		return "CodeBlock"
	case TagImage:
		return "Image"
	default:
		return fmt.Sprintf("TagKind(%d)", int(t))
	}
}

// Tag describes the element opened or closed by an event.
type Tag struct {
	Kind  TagKind
	Info  string // CodeBlock: info string after the opening fence
	Dest  string // Image: link destination
	Title string // Image: optional title
	Alt   string // Image: alternative text
}

// Event is a single token of the markup stream.
type Event struct {
	Kind Kind
	Tag  Tag

	// Text holds the content of Raw and Text events. For Text events inside
	// a code block it is the line without container prefixes (blockquote
	// markers, list indentation).
	Text string

	// Source holds the exact input bytes the event was parsed from. It is
	// empty for events built by callers, and for the end of a fence left
	// open at end of input.
	Source string

	// parsed marks events produced by Parse; they serialize as Source only.
	parsed bool
}

// Raw creates a pass-through event holding literal Markdown.
func Raw(s string) Event {
	return Event{Kind: KindRaw, Text: s}
}

// Text creates a text event.
func Text(s string) Event {
	return Event{Kind: KindText, Text: s}
}

// Start creates an event opening tag.
func Start(tag Tag) Event {
	return Event{Kind: KindStart, Tag: tag}
}

// End creates an event closing tag.
func End(tag Tag) Event {
	return Event{Kind: KindEnd, Tag: tag}
}

// CodeBlock returns a fenced code block tag with the given info string.
func CodeBlock(info string) Tag {
	return Tag{Kind: TagCodeBlock, Info: info}
}

// Image returns an inline image tag.
func Image(dest, title, alt string) Tag {
	return Tag{Kind: TagImage, Dest: dest, Title: title, Alt: alt}
}

// IsCodeBlockStart reports whether e opens a fenced code block.
func (e Event) IsCodeBlockStart() bool {
	return e.Kind == KindStart && e.Tag.Kind == TagCodeBlock
}

// IsCodeBlockEnd reports whether e closes a fenced code block.
func (e Event) IsCodeBlockEnd() bool {
	return e.Kind == KindEnd && e.Tag.Kind == TagCodeBlock
}
