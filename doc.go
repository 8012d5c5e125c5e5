// Package graphviz renders Graphviz diagrams embedded in Markdown books.
//
// # Quick Start
//
// Build a Preprocessor, hand it a book and the directory chapter paths are
// relative to, and use the returned book:
//
//	pre := graphviz.New()
//
//	book := &graphviz.Book{Sections: []graphviz.Item{
//	    graphviz.ChapterItem(&graphviz.Chapter{
//	        Name:    "Architecture",
//	        Path:    "design/architecture.md",
//	        Content: content,
//	    }),
//	}}
//
//	out, err := pre.Run(ctx, book, "/path/to/book/src")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Block Syntax
//
// A fenced code block whose info string starts with "dot process" is a diagram.
// Text after a single space following the prefix names the graph:
//
//	```dot process Request Flow
//	digraph G { client -> server }
//	```
//
// The block is rendered to design/architecture_request_flow_0.generated.svg
// (chapter name, graph name, per-chapter index) and replaced by
//
//	![Request Flow](architecture_request_flow_0.generated.svg "Request Flow")
//
// Blocks without a name produce ![](architecture_0.generated.svg).
//
// # Rendering
//
// CommandRenderer pipes each block into "dot -Tsvg -o <file>". Process start is
// retried up to MaxSpawnAttempts times with a quadratic backoff (SpawnBackoff).
// A non-zero exit or a failed write to the process is not retried.
//
// Blocks of one chapter render concurrently, bounded by the worker count
// (WithWorkers); chapters and their siblings are processed concurrently too.
// Output order never depends on scheduling: indices follow document order.
//
// # Errors
//
// Any failure aborts the whole run. Errors wrap one of the sentinels
// (ErrSpawnExhausted, ErrRenderFailed, ErrIO, ErrSerialization,
// ErrMalformedBlock) inside a *ChapterError naming the chapter and block:
//
//	var chErr *graphviz.ChapterError
//	if errors.As(err, &chErr) && errors.Is(err, graphviz.ErrRenderFailed) {
//	    fmt.Println("dot rejected a diagram in", chErr.Chapter)
//	}
package graphviz
