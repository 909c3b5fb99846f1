package token

import "fmt"

// Pos is a 1-based line and column in a source text.
type Pos struct {
	Line   int
	Column int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is the half-open region [Start, End) of a source text. Filename is
// empty until the origin of the text is stamped onto the tree.
type Span struct {
	Filename string
	Start    Pos
	End      Pos
}

// To returns the span from the start of s to the end of other.
func (s Span) To(other Span) Span {
	return Span{Filename: s.Filename, Start: s.Start, End: other.End}
}

// Prefix renders the span as an error message prefix: `file:row:col: `, or
// `row:col: ` when the filename is unknown.
func (s Span) Prefix() string {
	if s.Filename == "" {
		return fmt.Sprintf("%v: ", s.Start)
	}
	return fmt.Sprintf("%s:%v: ", s.Filename, s.Start)
}

func (s Span) String() string {
	return fmt.Sprintf("%s%v-%v", filenamePrefix(s.Filename), s.Start, s.End)
}

func filenamePrefix(name string) string {
	if name == "" {
		return ""
	}
	return name + ":"
}
