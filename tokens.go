package html

type Token interface {
	Kind() string
	token()
}

type Location struct {
	Line   int
	Column int
	Cursor int
}

type Text struct {
	Value string
	Location
}

func (t *Text) Kind() string {
	return "TEXT"
}

type OpeningTag struct {
	// Name must contain only lowercase letters, digits and hyphens, although it must start with a letter.
	Name       string
	Attributes map[string]string
	Location
}

func (t *OpeningTag) Kind() string {
	return "OPENING_TAG"
}

type ClosingTag struct {
	Name string
	Location
}

func (t *ClosingTag) Kind() string {
	return "CLOSING_TAG"
}

type SelfClosingTag struct {
	Name       string
	Attributes map[string]string
	Location
}

func (t *SelfClosingTag) Kind() string {
	return "SELF_CLOSING_TAG"
}

func (*Text) token()           {}
func (*OpeningTag) token()     {}
func (*ClosingTag) token()     {}
func (*SelfClosingTag) token() {}
