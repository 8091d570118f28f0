package mwapi

// Document is a parsed response supplied by the parser collaborator. The
// core never parses raw bytes itself; it only queries the node tree.
type Document interface {
	// Root returns the document's root node.
	Root() Node
}

// Node is one element of a response document.
type Node interface {
	// Name returns the element name.
	Name() string
	// Attr returns the value of the named attribute; ok is false when the
	// attribute is absent.
	Attr(name string) (value string, ok bool)
	// Child returns the first child element with the given name; ok is
	// false when no such child exists.
	Child(name string) (node Node, ok bool)
	// Children returns all child elements with the given name.
	Children(name string) []Node
	// Text returns the concatenated character data of the element.
	Text() string
}

// ExtractError inspects a response document for the wiki's error marker
// node and returns the classified DomainError, or nil when the response
// carries none. Known codes get a remediation hint attached; the hint is
// advisory text only.
func ExtractError(doc Document) *DomainError {
	errNode, ok := doc.Root().Child("error")
	if !ok {
		return nil
	}

	code, _ := errNode.Attr("code")
	info, _ := errNode.Attr("info")

	return &DomainError{
		Code: code,
		Info: info,
		Hint: HintFor(code),
	}
}

// FindPath walks named children from the root, returning the node at the
// end of the path. ok is false as soon as any segment is missing.
func FindPath(doc Document, path ...string) (Node, bool) {
	node := doc.Root()

	for _, name := range path {
		child, ok := node.Child(name)
		if !ok {
			return nil, false
		}

		node = child
	}

	return node, true
}
