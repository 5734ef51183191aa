package html

import "fmt"

// ErrorKind classifies a failure. Every error returned by Tokenize,
// BuildTree and Parse wraps exactly one kind, so callers can branch with
// errors.Is(err, html.ErrInvalidName).
type ErrorKind string

func (k ErrorKind) Error() string {
	return string(k)
}

const (
	// ErrIncompleteTag means the input ended before a tag or quoted value was closed.
	ErrIncompleteTag ErrorKind = "incomplete tag"
	// ErrMalformedTag means a tag has whitespace or characters where its shape forbids them.
	ErrMalformedTag ErrorKind = "malformed tag"
	// ErrInvalidName means a tag or attribute name is outside [a-z][a-z0-9-]*.
	ErrInvalidName ErrorKind = "invalid name"
	// ErrInvalidAttribute means an attribute is not separated by whitespace or its value is missing or unquoted.
	ErrInvalidAttribute ErrorKind = "invalid attribute"
	// ErrUnmatchedTag means a closing tag does not close the innermost open element.
	ErrUnmatchedTag ErrorKind = "unmatched closing tag"
	// ErrUnclosedTag means elements were still open at the end of input.
	ErrUnclosedTag ErrorKind = "unclosed tag"
	// ErrInvalidToken means BuildTree was given a nil token.
	ErrInvalidToken ErrorKind = "invalid token"
)

// SyntaxError reports the first violation found in the markup.
type SyntaxError struct {
	Kind   ErrorKind
	Reason string
	Location
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Reason)
}

func (e *SyntaxError) Unwrap() error {
	return e.Kind
}

func newSyntaxError(kind ErrorKind, location Location, format string, args ...any) *SyntaxError {
	return &SyntaxError{Kind: kind, Reason: fmt.Sprintf(format, args...), Location: location}
}
