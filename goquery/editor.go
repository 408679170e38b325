// Package goquery provides HTML implementations of offerdoc interfaces built
// on goquery and golang.org/x/net/html.
package goquery

import (
	"bytes"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/offerdoc"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure Editor implements offerdoc.StructureEditor at compile time.
var _ offerdoc.StructureEditor = (*Editor)(nil)

// Editor extracts and removes headings, sections, tables and images from
// HTML fragments.
//
// Every call parses its own tree and discards it on return, so an Editor is
// safe for concurrent use. Stale or out-of-range references never fail: the
// input is returned unchanged and a warning is written to the logger.
type Editor struct {
	logger *slog.Logger
}

// NewEditor creates a new Editor that reports warnings to logger.
// A nil logger discards warnings.
func NewEditor(logger *slog.Logger) *Editor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Editor{logger: logger}
}

// fragment is a parsed HTML fragment hung under a synthetic body element.
type fragment struct {
	root *html.Node
	doc  *goquery.Document
}

// parseFragment parses s in a <body> context. Nodes that a full-document
// parse would hoist into <head> (style, meta, title) stay where they are.
// Full documents are parsed as such and only their body is kept.
func parseFragment(s string) (*fragment, error) {
	if isDocument(s) {
		return parseDocument(s)
	}

	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(s), context)
	if err != nil {
		return nil, err
	}

	root := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	for _, n := range nodes {
		root.AppendChild(n)
	}

	return &fragment{root: root, doc: goquery.NewDocumentFromNode(root)}, nil
}

// isDocument reports whether s is a full HTML document rather than a
// body-level fragment.
func isDocument(s string) bool {
	head := strings.ToLower(strings.TrimSpace(s))
	return strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html")
}

// parseDocument parses a full document and detaches its body as the root.
// The head is dropped.
func parseDocument(s string) (*fragment, error) {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return nil, err
	}

	root := findBody(doc)
	if root == nil {
		root = &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	} else if root.Parent != nil {
		root.Parent.RemoveChild(root)
	}

	return &fragment{root: root, doc: goquery.NewDocumentFromNode(root)}, nil
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}

// find selects descendants of the fragment root in document order.
// It walks the live tree, so it reflects earlier removals.
func (f *fragment) find(selector string) *goquery.Selection {
	return f.doc.Find(selector)
}

// render serializes the inner markup of the fragment root.
func (f *fragment) render() (string, error) {
	var buf bytes.Buffer
	for c := f.root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// parse parses s, logging the failure. Callers fall back to the input.
func (e *Editor) parse(op, s string) (*fragment, bool) {
	f, err := parseFragment(s)
	if err != nil {
		e.logger.Warn("parse html", "op", op, "err", err)
		return nil, false
	}
	return f, true
}

// renderOr serializes f, or returns fallback if rendering fails.
func (e *Editor) renderOr(op string, f *fragment, fallback string) string {
	out, err := f.render()
	if err != nil {
		e.logger.Warn("render html", "op", op, "err", err)
		return fallback
	}
	return out
}
