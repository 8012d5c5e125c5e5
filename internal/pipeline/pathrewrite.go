package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// generatedSuffix identifies artifacts written by the preprocessor.
const generatedSuffix = ".generated.svg"

// ResolveImages points relative image sources at absolute file:// URLs
// under baseDir and tags rendered diagrams with DiagramClass.
// If baseDir is empty, returns the HTML unchanged.
//
// Sources that are URLs, absolute paths, or that escape baseDir through ".."
// are left as they are.
func ResolveImages(htmlContent, baseDir string) (string, error) {
	if baseDir == "" {
		return htmlContent, nil
	}

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	walkElements(doc, func(n *html.Node) {
		if n.DataAtom == atom.Img {
			resolveImage(n, absBase)
		}
	})

	return renderHTML(doc, isFragment)
}

// walkElements calls fn for every element node under n, depth first.
func walkElements(n *html.Node, fn func(*html.Node)) {
	if n.Type == html.ElementNode {
		fn(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkElements(c, fn)
	}
}

// resolveImage rewrites one img element in place.
func resolveImage(n *html.Node, baseDir string) {
	src := attr(n, "src")
	if !isLocalRelative(src) {
		return
	}

	abs := filepath.Join(baseDir, filepath.FromSlash(src))
	if !isWithin(abs, baseDir) {
		return
	}

	setAttr(n, "src", fileURL(abs))
	if strings.HasSuffix(src, generatedSuffix) {
		addClass(n, DiagramClass)
	}
}

// parseHTML parses a full document, or a fragment in body context.
// The boolean result reports a fragment.
func parseHTML(content string) (*html.Node, bool, error) {
	head := strings.ToLower(strings.TrimSpace(content))
	if strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, true, err
	}

	root := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root, true, nil
}

// renderHTML serializes doc. Fragments render their children only, so no
// <html><body> wrapper is added.
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var sb strings.Builder

	if !isFragment {
		if err := html.Render(&sb, doc); err != nil {
			return "", err
		}
		return sb.String(), nil
	}

	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&sb, c); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// addClass appends class to the element's class list unless present.
func addClass(n *html.Node, class string) {
	classes := strings.Fields(attr(n, "class"))
	for _, c := range classes {
		if c == class {
			return
		}
	}
	setAttr(n, "class", strings.Join(append(classes, class), " "))
}

// isLocalRelative reports whether src names a file relative to the page.
func isLocalRelative(src string) bool {
	if src == "" || strings.HasPrefix(src, "#") || strings.HasPrefix(src, "//") {
		return false
	}
	if u, err := url.Parse(src); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		// http:, https:, file:, data: ... (one-letter schemes are drive letters)
		return false
	}
	return !filepath.IsAbs(src) && !strings.HasPrefix(src, "/")
}

// isWithin reports whether path is dir or below it.
func isWithin(path, dir string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// fileURL converts an absolute path to a file:// URL.
func fileURL(absPath string) string {
	p := filepath.ToSlash(absPath)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p // Windows drive paths: file:///C:/...
	}
	u := url.URL{Scheme: "file", Path: p}
	return u.String()
}
