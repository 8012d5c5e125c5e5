// Package mdbook adapts the mdBook preprocessor protocol to graphviz.Book.
//
// mdBook runs a preprocessor as `<command> supports <renderer>` to ask
// whether it handles a renderer, then pipes a JSON array [context, book]
// to it on stdin and reads the rewritten book JSON from stdout.
//
// The adapter only reads the fields it needs and writes chapter contents
// back into the original document, so fields it does not know about
// survive unchanged.
package mdbook
