package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	html "github.com/terawatthour/strict-html"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

type tokenView struct {
	Kind       string            `json:"kind" yaml:"kind"`
	Name       string            `json:"name,omitempty" yaml:"name,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Text       string            `json:"text,omitempty" yaml:"text,omitempty"`
	Line       int               `json:"line" yaml:"line"`
	Column     int               `json:"column" yaml:"column"`
}

type nodeView struct {
	Type       string            `json:"type" yaml:"type"`
	Name       string            `json:"name,omitempty" yaml:"name,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Text       string            `json:"text,omitempty" yaml:"text,omitempty"`
	Children   []*nodeView       `json:"children,omitempty" yaml:"children,omitempty"`
}

func tokenViews(tokens []html.Token) []tokenView {
	views := make([]tokenView, 0, len(tokens))
	for _, token := range tokens {
		view := tokenView{Kind: strings.ToLower(token.Kind())}
		var location html.Location

		switch token := token.(type) {
		case *html.Text:
			view.Text, location = token.Value, token.Location
		case *html.OpeningTag:
			view.Name, view.Attributes, location = token.Name, token.Attributes, token.Location
		case *html.SelfClosingTag:
			view.Name, view.Attributes, location = token.Name, token.Attributes, token.Location
		case *html.ClosingTag:
			view.Name, location = token.Name, token.Location
		}

		view.Line, view.Column = location.Line, location.Column
		views = append(views, view)
	}
	return views
}

// nodeViews mirrors the tree without recursion, matching the parser's
// unbounded nesting.
func nodeViews(nodes []html.Node) []*nodeView {
	type pending struct {
		nodes []html.Node
		into  *[]*nodeView
	}

	var roots []*nodeView
	queue := []pending{{nodes, &roots}}

	for len(queue) > 0 {
		next := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		for _, node := range next.nodes {
			view := &nodeView{Type: strings.ToLower(node.Kind())}
			switch node := node.(type) {
			case *html.TextNode:
				view.Text = node.Value
			case *html.Element:
				view.Name, view.Attributes = node.Name, node.Attributes
				if len(node.Children) > 0 {
					queue = append(queue, pending{node.Children, &view.Children})
				}
			}
			*next.into = append(*next.into, view)
		}
	}
	return roots
}

func encode(w io.Writer, cfg Config, v any) error {
	switch cfg.Format {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(cfg.Indent)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", strings.Repeat(" ", cfg.Indent))
		return enc.Encode(v)
	default:
		return fmt.Errorf("unsupported format %q", cfg.Format)
	}
}
