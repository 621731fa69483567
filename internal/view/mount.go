// Package view renders the home and result pages into an explicitly owned
// content region and turns user events into navigations.
package view

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RootID is the id of the content region inside a Document.
const RootID = "root"

// Mount is the capability to own and replace a content region.
type Mount interface {
	// Root is the content region element.
	Root() *html.Node
	// Replace removes every child of the region, then appends nodes.
	Replace(nodes ...*html.Node)
	// SetBackground sets the ambient page background colour.
	SetBackground(color string)
}

// Document is an in-memory page shell whose <div id="root"> is the mount.
type Document struct {
	doc        *html.Node
	head       *html.Node
	body       *html.Node
	root       *html.Node
	background string
}

// NewDocument builds <!DOCTYPE html><html><head><title/></head><body>
// <div id="root"></div></body></html>.
func NewDocument(title string) *Document {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	head := appendAll(element(atom.Head),
		element(atom.Meta, attr("charset", "utf-8")),
		withText(element(atom.Title), title),
	)
	root := element(atom.Div, attr("id", RootID))
	body := appendAll(element(atom.Body), root)
	doc.AppendChild(appendAll(element(atom.Html), head, body))

	return &Document{doc: doc, head: head, body: body, root: root}
}

func (d *Document) Root() *html.Node {
	return d.root
}

func (d *Document) Replace(nodes ...*html.Node) {
	removeChildren(d.root)
	appendAll(d.root, nodes...)
}

func (d *Document) SetBackground(color string) {
	d.background = color
	SetAttr(d.body, "style", "background-color: "+color)
}

// Background returns the colour last set with SetBackground.
func (d *Document) Background() string {
	return d.background
}

// Head returns the <head> element so a shell can add assets.
func (d *Document) Head() *html.Node {
	return d.head
}

// Body returns the <body> element.
func (d *Document) Body() *html.Node {
	return d.body
}

// Render writes the whole document.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.doc)
}

// RenderContent writes only the children of the content region.
func (d *Document) RenderContent(w io.Writer) error {
	for c := d.root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(w, c); err != nil {
			return err
		}
	}
	return nil
}

// ContentHTML is RenderContent into a string.
func (d *Document) ContentHTML() (string, error) {
	var buf bytes.Buffer
	if err := d.RenderContent(&buf); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

var _ Mount = (*Document)(nil)

// AddStyle appends a <style> element with css to the document head.
func (d *Document) AddStyle(css string) {
	d.head.AppendChild(withText(element(atom.Style), css))
}

// AddScript appends a <script> element with js after the content region.
func (d *Document) AddScript(js string) {
	d.body.AppendChild(withText(element(atom.Script), js))
}
