package html

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     []Node
	}{
		{
			name:     "text",
			template: "html 文本",
			want:     []Node{&TextNode{Value: "html 文本"}},
		},
		{
			name:     "element",
			template: `<div id="main"></div>`,
			want: []Node{
				&Element{Name: "div", Attributes: map[string]string{"id": "main"}},
			},
		},
		{
			name:     "self-closing element",
			template: `<img src="./image.jpg" />`,
			want: []Node{
				&Element{Name: "img", Attributes: map[string]string{"src": "./image.jpg"}},
			},
		},
		{
			name:     "text and self-closing child",
			template: `<div id="main">html 文本 <img src="./image.jpg" /></div>`,
			want: []Node{
				&Element{
					Name:       "div",
					Attributes: map[string]string{"id": "main"},
					Children: []Node{
						&TextNode{Value: "html 文本 "},
						&Element{Name: "img", Attributes: map[string]string{"src": "./image.jpg"}},
					},
				},
			},
		},
		{
			name:     "self-closing child then text",
			template: `<div id="main"><img src="http://x/test.jpg" /> html 文本 </div>`,
			want: []Node{
				&Element{
					Name:       "div",
					Attributes: map[string]string{"id": "main"},
					Children: []Node{
						&Element{Name: "img", Attributes: map[string]string{"src": "http://x/test.jpg"}},
						&TextNode{Value: " html 文本 "},
					},
				},
			},
		},
		{
			name:     "siblings at top level",
			template: `a<p>b</p>c<br />`,
			want: []Node{
				&TextNode{Value: "a"},
				&Element{Name: "p", Attributes: map[string]string{}, Children: []Node{&TextNode{Value: "b"}}},
				&TextNode{Value: "c"},
				&Element{Name: "br", Attributes: map[string]string{}},
			},
		},
		{
			name:     "nested",
			template: `<ul><li><b>1</b></li><li>2</li></ul>`,
			want: []Node{
				&Element{
					Name:       "ul",
					Attributes: map[string]string{},
					Children: []Node{
						&Element{
							Name:       "li",
							Attributes: map[string]string{},
							Children: []Node{
								&Element{Name: "b", Attributes: map[string]string{}, Children: []Node{&TextNode{Value: "1"}}},
							},
						},
						&Element{Name: "li", Attributes: map[string]string{}, Children: []Node{&TextNode{Value: "2"}}},
					},
				},
			},
		},
		{
			name:     "empty input",
			template: "",
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.template)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.template, err)
			}
			if diff := cmp.Diff(tt.want, got, ignoreLocation, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.template, diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		template string
		kind     ErrorKind
		reason   string
	}{
		{"<div>", ErrUnclosedTag, "unclosed <div> at end of input"},
		{"<div><p><b>", ErrUnclosedTag, "unclosed <div> <p> <b> at end of input"},
		{"</div>", ErrUnmatchedTag, "closing tag </div> has no open element"},
		{"<div></p></div>", ErrUnmatchedTag, "closing tag </p> does not match open element <div>"},
		{"<div><p></div></p>", ErrUnmatchedTag, "closing tag </div> does not match open element <p>"},
		{"<a></a></a>", ErrUnmatchedTag, "closing tag </a> has no open element"},
		{"<div", ErrIncompleteTag, "unexpected end of input in start tag <div>"},
	}

	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			nodes, err := Parse(tt.template)
			if err == nil {
				t.Fatalf("Parse(%q) = %v, want error", tt.template, nodes)
			}
			if !errors.Is(err, tt.kind) {
				t.Errorf("Parse(%q) error = %v, want kind %q", tt.template, err, tt.kind)
			}
			var syntaxErr *SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("Parse(%q) error = %T, want *SyntaxError", tt.template, err)
			}
			if syntaxErr.Reason != tt.reason {
				t.Errorf("Parse(%q) reason = %q, want %q", tt.template, syntaxErr.Reason, tt.reason)
			}
		})
	}
}

func TestParseErrorLocation(t *testing.T) {
	_, err := Parse("<div>\n  <p></b></div>")

	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("error = %v, want *SyntaxError", err)
	}
	if want := (Location{Line: 2, Column: 6, Cursor: 11}); syntaxErr.Location != want {
		t.Errorf("Location = %+v, want %+v", syntaxErr.Location, want)
	}

	_, err = Parse("<a>\n<b>")
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("error = %v, want *SyntaxError", err)
	}
	if want := (Location{Line: 2, Column: 1, Cursor: 4}); syntaxErr.Location != want {
		t.Errorf("Location = %+v, want %+v", syntaxErr.Location, want)
	}
}

func TestBuildTree(t *testing.T) {
	attributes := map[string]string{"class": "x"}
	tokens := []Token{
		&OpeningTag{Name: "section", Attributes: attributes},
		&SelfClosingTag{Name: "hr"},
		&Text{Value: "body"},
		&ClosingTag{Name: "section"},
		&Text{Value: "tail"},
	}

	got, err := BuildTree(tokens)
	if err != nil {
		t.Fatal(err)
	}

	want := []Node{
		&Element{
			Name:       "section",
			Attributes: map[string]string{"class": "x"},
			Children: []Node{
				&Element{Name: "hr", Attributes: map[string]string{}},
				&TextNode{Value: "body"},
			},
		},
		&TextNode{Value: "tail"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildTree() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildTreeErrors(t *testing.T) {
	tests := []struct {
		name   string
		tokens []Token
		kind   error
	}{
		{
			name:   "closing tag with empty name at top level",
			tokens: []Token{&ClosingTag{}},
			kind:   ErrUnmatchedTag,
		},
		{
			name:   "names compare case-sensitively",
			tokens: []Token{&OpeningTag{Name: "div"}, &ClosingTag{Name: "DIV"}},
			kind:   ErrUnmatchedTag,
		},
		{
			name:   "unclosed",
			tokens: []Token{&OpeningTag{Name: "div"}, &Text{Value: "x"}},
			kind:   ErrUnclosedTag,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes, err := BuildTree(tt.tokens)
			if !errors.Is(err, tt.kind) {
				t.Errorf("BuildTree() = %v, %v; want error %v", nodes, err, tt.kind)
			}
		})
	}

	if _, err := BuildTree([]Token{&Text{Value: "x"}, nil}); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("BuildTree([text, nil]) error = %v, want %v", err, ErrInvalidToken)
	}
}

func TestParseDeepNesting(t *testing.T) {
	const depth = 100_000
	template := strings.Repeat("<i>", depth) + "x" + strings.Repeat("</i>", depth)

	nodes, err := Parse(template)
	if err != nil {
		t.Fatal(err)
	}

	levels := 0
	for len(nodes) == 1 {
		element, ok := nodes[0].(*Element)
		if !ok {
			break
		}
		levels++
		nodes = element.Children
	}
	if levels != depth {
		t.Errorf("depth = %d, want %d", levels, depth)
	}
}
