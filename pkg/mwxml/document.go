// Package mwxml parses raw MediaWiki API responses into the queryable
// document tree the mwapi core consumes. It is the default parser
// collaborator; any other implementation of mwapi.Document works as well.
package mwxml

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"

	"github.com/mwbot-io/mwapi/pkg/mwapi"
)

// ErrNoRootElement is returned for a response body without an XML root.
var ErrNoRootElement = errors.New("response has no XML root element")

// Parse converts raw response bytes into an mwapi.Document.
func Parse(data []byte) (mwapi.Document, error) {
	tree := etree.NewDocument()

	err := tree.ReadFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parsing response XML: %w", err)
	}

	root := tree.Root()
	if root == nil {
		return nil, ErrNoRootElement
	}

	return &document{root: &node{element: root}}, nil
}

type document struct {
	root *node
}

func (d *document) Root() mwapi.Node {
	return d.root
}

type node struct {
	element *etree.Element
}

func (n *node) Name() string {
	return n.element.Tag
}

func (n *node) Attr(name string) (string, bool) {
	attr := n.element.SelectAttr(name)
	if attr == nil {
		return "", false
	}

	return attr.Value, true
}

func (n *node) Child(name string) (mwapi.Node, bool) {
	child := n.element.SelectElement(name)
	if child == nil {
		return nil, false
	}

	return &node{element: child}, true
}

func (n *node) Children(name string) []mwapi.Node {
	elements := n.element.SelectElements(name)
	children := make([]mwapi.Node, 0, len(elements))

	for _, element := range elements {
		children = append(children, &node{element: element})
	}

	return children
}

func (n *node) Text() string {
	return n.element.Text()
}
