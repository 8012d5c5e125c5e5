// Package pipeline turns processed Markdown into a standalone HTML page for
// previewing diagrams without building the whole book.
//
// Stages:
//   - Markdown to HTML via goldmark, with chroma syntax highlighting
//   - Relative image paths rewritten to file:// URLs, so the page can be
//     opened from anywhere
//   - Highlighting and diagram CSS injected into the page head
package pipeline
