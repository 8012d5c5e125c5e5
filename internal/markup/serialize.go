package markup

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrUnsupportedEvent indicates an event the serializer cannot express as Markdown.
var ErrUnsupportedEvent = errors.New("unsupported markup event")

// Serialize writes events to w as Markdown.
//
// Events returned by Parse are written verbatim. Caller-built events are
// rendered as Markdown with two normalizations:
//   - an image starting a new line is preceded by a blank line, so it never
//     merges into the paragraph above;
//   - blank lines right after a synthetic text ending in a blank line are
//     folded into it.
func Serialize(w io.Writer, events []Event) error {
	sw := &trackingWriter{w: w}

	for i, e := range events {
		if err := sw.event(e); err != nil {
			return fmt.Errorf("event %d (%s %s): %w", i, e.Kind, e.Tag.Kind, err)
		}
	}
	return nil
}

// SerializeString renders events to a string.
func SerializeString(events []Event) (string, error) {
	var sb strings.Builder
	if err := Serialize(&sb, events); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// trackingWriter remembers the last bytes written to decide on separators.
type trackingWriter struct {
	w        io.Writer
	tail     [2]byte
	written  int
	foldNext bool
}

func (t *trackingWriter) write(s string) error {
	if s == "" {
		return nil
	}
	if _, err := io.WriteString(t.w, s); err != nil {
		return err
	}
	t.written += len(s)
	if len(s) >= 2 {
		t.tail[0], t.tail[1] = s[len(s)-2], s[len(s)-1]
	} else {
		t.tail[0], t.tail[1] = t.tail[1], s[0]
	}
	return nil
}

// needsBlankLine reports whether the output ends a line without ending a blank line.
func (t *trackingWriter) needsBlankLine() bool {
	if t.written == 0 || t.tail[1] != '\n' {
		return false
	}
	return t.written < 2 || t.tail[0] != '\n'
}

func (t *trackingWriter) event(e Event) error {
	fold := t.foldNext
	t.foldNext = false

	if e.parsed {
		return t.write(e.Source)
	}

	switch e.Kind {
	case KindRaw:
		s := e.Text
		if fold {
			s = strings.TrimLeft(s, "\r\n")
		}
		return t.write(s)

	case KindText:
		if strings.HasSuffix(e.Text, "\n\n") {
			t.foldNext = true
		}
		return t.write(e.Text)

	case KindStart:
		switch e.Tag.Kind {
		case TagImage:
			if e.Tag.Dest == "" {
				return fmt.Errorf("%w: image without destination", ErrUnsupportedEvent)
			}
			if t.needsBlankLine() {
				if err := t.write("\n"); err != nil {
					return err
				}
			}
			return t.write(formatImage(e.Tag))
		case TagCodeBlock:
			return t.write("```" + e.Tag.Info + "\n")
		}

	case KindEnd:
		switch e.Tag.Kind {
		case TagImage:
			// Written in full by the start event.
			return nil
		case TagCodeBlock:
			if t.written > 0 && t.tail[1] != '\n' {
				if err := t.write("\n"); err != nil {
					return err
				}
			}
			return t.write("```\n")
		}
	}

	return ErrUnsupportedEvent
}

// formatImage renders ![alt](dest "title"), omitting an empty title.
func formatImage(tag Tag) string {
	var sb strings.Builder
	sb.WriteString("![")
	sb.WriteString(escapeAlt(tag.Alt))
	sb.WriteString("](")
	sb.WriteString(formatDest(tag.Dest))
	if tag.Title != "" {
		sb.WriteString(` "`)
		sb.WriteString(escapeTitle(tag.Title))
		sb.WriteString(`"`)
	}
	sb.WriteString(")")
	return sb.String()
}

var (
	altEscaper   = strings.NewReplacer(`\`, `\\`, `[`, `\[`, `]`, `\]`)
	titleEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)
)

func escapeAlt(s string) string   { return altEscaper.Replace(s) }
func escapeTitle(s string) string { return titleEscaper.Replace(s) }

// formatDest wraps destinations containing spaces or parentheses in angle brackets.
func formatDest(dest string) string {
	if strings.ContainsAny(dest, " ()<>") {
		return "<" + strings.NewReplacer("<", `\<`, ">", `\>`).Replace(dest) + ">"
	}
	return dest
}
