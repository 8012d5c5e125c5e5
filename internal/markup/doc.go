// Package markup turns Markdown content into a flat stream of events and back.
//
// Parsing is delegated to goldmark. The stream is deliberately coarse: every
// fenced code block that carries an info string is exploded into
// Start(CodeBlock), one Text event per content line, and End(CodeBlock); all
// other content travels as Raw events holding the exact source bytes.
//
// Each event produced by Parse remembers the source bytes it covers, so
// Serialize(Parse(src)) reproduces src byte for byte. Events created by callers
// (images, synthetic text) have no source and are rendered as Markdown:
//
//	events := markup.Parse(src)
//	// ... replace some events ...
//	out, err := markup.SerializeString(events)
package markup
