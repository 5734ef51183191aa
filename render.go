package html

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
)

// ErrNotRepresentable is returned by Render for trees the grammar has no
// spelling for, such as text containing '<'.
var ErrNotRepresentable = errors.New("html: node cannot be represented as markup")

// Render writes nodes as markup that Parse accepts and that parses back to
// the same tree, except that adjacent text nodes come back merged and empty
// ones are dropped. Attributes are written in name order and elements
// without children are written as self-closing tags.
//
// Nothing is written to w unless the whole tree can be rendered.
func Render(w io.Writer, nodes []Node) error {
	var buf bytes.Buffer

	if slices.Contains(nodes, nil) {
		return fmt.Errorf("%w: nil node", ErrNotRepresentable)
	}

	// A nil entry closes the element at the top of open.
	var open []*Element
	stack := slices.Clone(nodes)
	slices.Reverse(stack)

	for len(stack) > 0 {
		next := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if next == nil {
			element := open[len(open)-1]
			open = open[:len(open)-1]
			fmt.Fprintf(&buf, "</%s>", element.Name)
			continue
		}

		switch node := next.(type) {
		case *TextNode:
			if strings.ContainsRune(node.Value, '<') {
				return fmt.Errorf("%w: text %q contains '<'", ErrNotRepresentable, node.Value)
			}
			buf.WriteString(node.Value)
		case *Element:
			if err := startTag(&buf, node); err != nil {
				return err
			}
			if len(node.Children) == 0 {
				continue
			}
			if slices.Contains(node.Children, nil) {
				return fmt.Errorf("%w: nil child of <%s>", ErrNotRepresentable, node.Name)
			}
			open = append(open, node)
			stack = append(stack, nil)
			for i := len(node.Children) - 1; i >= 0; i-- {
				stack = append(stack, node.Children[i])
			}
		default:
			return fmt.Errorf("%w: unsupported node %T", ErrNotRepresentable, node)
		}
	}

	_, err := buf.WriteTo(w)
	return err
}

func startTag(w *bytes.Buffer, element *Element) error {
	if !isName(element.Name) {
		return fmt.Errorf("%w: invalid tag name %q", ErrNotRepresentable, element.Name)
	}

	w.WriteString("<" + element.Name)
	for _, name := range slices.Sorted(maps.Keys(element.Attributes)) {
		value := element.Attributes[name]
		if !isName(name) {
			return fmt.Errorf("%w: invalid attribute name %q on <%s>", ErrNotRepresentable, name, element.Name)
		}
		if strings.ContainsRune(value, '"') {
			return fmt.Errorf("%w: value of attribute %s on <%s> contains '\"'", ErrNotRepresentable, name, element.Name)
		}
		fmt.Fprintf(w, ` %s="%s"`, name, value)
	}

	if len(element.Children) == 0 {
		w.WriteString(" />")
	} else {
		w.WriteString(">")
	}
	return nil
}

func isName(s string) bool {
	for i, r := range s {
		if i == 0 && !isNameStart(r) || !isNameChar(r) {
			return false
		}
	}
	return s != ""
}
