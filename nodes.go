package html

// Node is either an *Element or a *TextNode.
type Node interface {
	Kind() string
	node()
}

// Element is a tag together with its matching closing tag, or a
// self-closing tag, in which case Children is empty.
type Element struct {
	Name       string
	Attributes map[string]string
	Children   []Node
	Location
}

func (e *Element) Kind() string {
	return "ELEMENT"
}

type TextNode struct {
	Value string
	Location
}

func (t *TextNode) Kind() string {
	return "TEXT"
}

func (*Element) node()  {}
func (*TextNode) node() {}
