package html

import (
	"io"
	"iter"
	"slices"
	"unicode/utf8"
)

func NewTokenizer(markup string) *Tokenizer {
	return &Tokenizer{template: markup, line: 1, column: 1}
}

// Tokenize scans the whole markup and returns its tokens in document order,
// or the first lexical error.
func Tokenize(markup string) ([]Token, error) {
	var tokens []Token
	for token, err := range Tokens(markup) {
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	return tokens, nil
}

// Tokens yields the tokens of markup one at a time. Iteration stops after
// the first error, which is yielded with a nil token.
func Tokens(markup string) iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		t := NewTokenizer(markup)
		for {
			token, err := t.Next()
			if err == io.EOF {
				return
			}
			if !yield(token, err) || err != nil {
				return
			}
		}
	}
}

// Tokenizer holds the scan position over a single markup string. It is not
// safe for concurrent use; create one per input.
//
// The input is sliced by byte offset, so text and attribute values are
// substrings of the original even when it is not valid UTF-8.
type Tokenizer struct {
	template string
	i        int // byte offset
	cursor   int // rune offset
	line     int
	column   int
	err      error
}

// Next returns the next token, or io.EOF once the input is exhausted. After
// a syntax error every further call returns the same error.
func (t *Tokenizer) Next() (Token, error) {
	if t.err != nil {
		return nil, t.err
	}
	if t.eof() {
		return nil, io.EOF
	}
	if t.is('<') {
		token, err := t.tag()
		t.err = err
		return token, err
	}

	location, start := t.location(), t.i
	for !t.eof() && !t.is('<') {
		t.advance()
	}

	return &Text{
		Value:    t.template[start:t.i],
		Location: location,
	}, nil
}

func (t *Tokenizer) tag() (Token, error) {
	location := t.location()
	t.advance()

	if t.eof() {
		return nil, newSyntaxError(ErrIncompleteTag, t.location(), "unexpected end of input after '<'")
	}
	if isWhitespace(t.current()) {
		return nil, newSyntaxError(ErrMalformedTag, t.location(), "whitespace is not allowed after '<'")
	}
	if t.consume('/') {
		return t.closingTag(location)
	}
	return t.startTag(location)
}

func (t *Tokenizer) startTag(location Location) (Token, error) {
	name, err := t.tagName()
	if err != nil {
		return nil, err
	}

	attributes, err := t.attributes()
	if err != nil {
		return nil, err
	}

	if t.eof() {
		return nil, newSyntaxError(ErrIncompleteTag, t.location(), "unexpected end of input in start tag <%s>", name)
	}

	isSelfClosing := t.consume('/')

	if t.eof() {
		return nil, newSyntaxError(ErrIncompleteTag, t.location(), "unexpected end of input in start tag <%s>", name)
	}
	if !t.consume('>') {
		return nil, newSyntaxError(ErrMalformedTag, t.location(), "expected '>' to close start tag <%s>, got %q", name, t.current())
	}

	if isSelfClosing {
		return &SelfClosingTag{Name: name, Attributes: attributes, Location: location}, nil
	}
	return &OpeningTag{Name: name, Attributes: attributes, Location: location}, nil
}

func (t *Tokenizer) closingTag(location Location) (Token, error) {
	if t.eof() {
		return nil, newSyntaxError(ErrIncompleteTag, t.location(), "unexpected end of input after '</'")
	}
	if t.skipWhitespace() > 0 {
		return nil, newSyntaxError(ErrMalformedTag, t.location(), "whitespace is not allowed after '</'")
	}

	name, err := t.tagName()
	if err != nil {
		return nil, err
	}

	if t.skipWhitespace() > 0 {
		return nil, newSyntaxError(ErrMalformedTag, t.location(), "whitespace is not allowed before '>' in closing tag </%s>", name)
	}
	if t.eof() {
		return nil, newSyntaxError(ErrIncompleteTag, t.location(), "closing tag </%s> is missing '>'", name)
	}
	if !t.consume('>') {
		return nil, newSyntaxError(ErrMalformedTag, t.location(), "expected '>' to close closing tag </%s>, got %q", name, t.current())
	}

	return &ClosingTag{Name: name, Location: location}, nil
}

// tagName reads a name that ends at whitespace, a tag-end character or the
// end of input. The caller guarantees at least one rune is left.
func (t *Tokenizer) tagName() (string, error) {
	start := t.i

	if !isNameStart(t.current()) {
		return "", newSyntaxError(ErrInvalidName, t.location(), "tag name must start with a lowercase letter, got %q", t.current())
	}
	t.advance()

	for !t.eof() {
		c := t.current()
		if isWhitespace(c) || isTagEnd(c) {
			break
		}
		if !isNameChar(c) {
			return "", newSyntaxError(ErrInvalidName, t.location(), "unexpected character %q in tag name", c)
		}
		t.advance()
	}
	return t.template[start:t.i], nil
}

func (t *Tokenizer) attributes() (map[string]string, error) {
	attributes := make(map[string]string)

	for !t.eof() && !t.is('/', '>') {
		location := t.location()
		if t.skipWhitespace() == 0 {
			return nil, newSyntaxError(ErrInvalidAttribute, location, "missing whitespace before attribute")
		}
		if t.eof() || t.is('/', '>') {
			break
		}

		name, err := t.attributeName()
		if err != nil {
			return nil, err
		}
		value, err := t.attributeValue(name)
		if err != nil {
			return nil, err
		}
		attributes[name] = value
	}
	return attributes, nil
}

func (t *Tokenizer) attributeName() (string, error) {
	start := t.i

	if !isNameStart(t.current()) {
		return "", newSyntaxError(ErrInvalidName, t.location(), "attribute name must start with a lowercase letter, got %q", t.current())
	}
	t.advance()

	for !t.eof() {
		c := t.current()
		if isNameChar(c) {
			t.advance()
			continue
		}
		if c == '=' || isWhitespace(c) || isTagEnd(c) {
			break
		}
		return "", newSyntaxError(ErrInvalidName, t.location(), "unexpected character %q in attribute name", c)
	}
	return t.template[start:t.i], nil
}

// attributeValue reads `="..."`. An attribute without '=' has an empty value.
func (t *Tokenizer) attributeValue(name string) (string, error) {
	if !t.consume('=') {
		return "", nil
	}

	if t.eof() {
		return "", newSyntaxError(ErrIncompleteTag, t.location(), "unexpected end of input after %s=", name)
	}
	if c := t.current(); isWhitespace(c) || isTagEnd(c) {
		return "", newSyntaxError(ErrInvalidAttribute, t.location(), "missing value for attribute %s", name)
	}
	if !t.consume('"') {
		return "", newSyntaxError(ErrInvalidAttribute, t.location(), "value of attribute %s must be double-quoted", name)
	}

	start := t.i
	for !t.eof() && !t.is('"') {
		t.advance()
	}
	if t.eof() {
		return "", newSyntaxError(ErrIncompleteTag, t.location(), "unterminated value for attribute %s", name)
	}

	value := t.template[start:t.i]
	t.advance()
	return value, nil
}

// skipWhitespace returns the number of runes skipped.
func (t *Tokenizer) skipWhitespace() int {
	start := t.cursor
	for !t.eof() && isWhitespace(t.current()) {
		t.advance()
	}
	return t.cursor - start
}

func (t *Tokenizer) eof() bool {
	return t.i >= len(t.template)
}

func (t *Tokenizer) is(what ...rune) bool {
	return !t.eof() && slices.Contains(what, t.current())
}

func (t *Tokenizer) consume(what rune) bool {
	if t.is(what) {
		t.advance()
		return true
	}
	return false
}

// current decodes the rune at the scan position. A byte that is not valid
// UTF-8 reads as utf8.RuneError and is consumed on its own.
func (t *Tokenizer) current() rune {
	if t.eof() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(t.template[t.i:])
	return r
}

func (t *Tokenizer) advance() rune {
	if t.eof() {
		return 0
	}
	previous, width := utf8.DecodeRuneInString(t.template[t.i:])
	t.i += width
	t.cursor++
	if previous == '\n' {
		t.line++
		t.column = 0
	}
	t.column++
	return previous
}

func (t *Tokenizer) location() Location {
	return Location{Line: t.line, Column: t.column, Cursor: t.cursor}
}

func isNameStart(r rune) bool {
	return r >= 'a' && r <= 'z'
}

func isNameChar(r rune) bool {
	return isNameStart(r) || (r >= '0' && r <= '9') || r == '-'
}

// isTagEnd reports whether r is '/' or '>'.
func isTagEnd(r rune) bool {
	return r == '/' || r == '>'
}

// isWhitespace matches the ECMAScript \s class. Unlike unicode.IsSpace it
// accepts U+FEFF and rejects U+0085.
func isWhitespace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ',
		'\u00A0', '\u1680', '\u2028', '\u2029', '\u202F', '\u205F', '\u3000', '\uFEFF':
		return true
	}
	return r >= '\u2000' && r <= '\u200A'
}
