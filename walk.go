package html

import (
	"iter"
	"slices"
)

// Walk yields every node of the tree in document order, parents before
// their children.
func Walk(nodes []Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		stack := slices.Clone(nodes)
		slices.Reverse(stack)

		for len(stack) > 0 {
			node := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if !yield(node) {
				return
			}
			if element, ok := node.(*Element); ok {
				for i := len(element.Children) - 1; i >= 0; i-- {
					stack = append(stack, element.Children[i])
				}
			}
		}
	}
}
