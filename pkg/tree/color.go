package tree

import "github.com/lucasb-eyer/go-colorful"

// DefaultColor is used for nodes without a parseable color.
var DefaultColor = colorful.Color{R: 0.6, G: 0.6, B: 0.6}

// RGB parses the node's hex color, falling back to DefaultColor.
func (n *Node) RGB() colorful.Color {
	if n.Color == "" {
		return DefaultColor
	}
	c, err := colorful.Hex(n.Color)
	if err != nil {
		return DefaultColor
	}
	return c
}
