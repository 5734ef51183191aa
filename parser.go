package html

import (
	"fmt"
	"strings"
)

// Parse tokenizes markup and builds its tree. It returns the top-level
// nodes in document order.
func Parse(markup string) ([]Node, error) {
	tokens, err := Tokenize(markup)
	if err != nil {
		return nil, err
	}
	return BuildTree(tokens)
}

// BuildTree turns a token sequence into a tree. Every opening tag must be
// closed by a closing tag of the same name before its parent is closed, and
// nothing may be left open at the end.
//
// The tree is built without recursion, so nesting depth is bounded only by
// memory.
func BuildTree(tokens []Token) ([]Node, error) {
	root := &Element{}
	current := root
	var stack []*Element

	for _, token := range tokens {
		switch token := token.(type) {
		case *Text:
			current.Children = append(current.Children, &TextNode{Value: token.Value, Location: token.Location})
		case *OpeningTag:
			element := newElement(token.Name, token.Attributes, token.Location)
			current.Children = append(current.Children, element)
			stack = append(stack, current)
			current = element
		case *SelfClosingTag:
			current.Children = append(current.Children, newElement(token.Name, token.Attributes, token.Location))
		case *ClosingTag:
			if current == root {
				return nil, newSyntaxError(ErrUnmatchedTag, token.Location, "closing tag </%s> has no open element", token.Name)
			}
			if token.Name != current.Name {
				return nil, newSyntaxError(ErrUnmatchedTag, token.Location, "closing tag </%s> does not match open element <%s>", token.Name, current.Name)
			}
			current = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
		default:
			return nil, fmt.Errorf("%w: %T", ErrInvalidToken, token)
		}
	}

	if current != root {
		open := make([]string, 0, len(stack))
		for _, element := range append(stack[1:], current) {
			open = append(open, "<"+element.Name+">")
		}
		return nil, newSyntaxError(ErrUnclosedTag, current.Location, "unclosed %s at end of input", strings.Join(open, " "))
	}

	return root.Children, nil
}

func newElement(name string, attributes map[string]string, location Location) *Element {
	if attributes == nil {
		attributes = make(map[string]string)
	}
	return &Element{Name: name, Attributes: attributes, Location: location}
}
