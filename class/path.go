package class

import (
	"strconv"
	"strings"

	"github.com/wippyai/objective/errors"
)

// Selector is one step of a Path: either an attribute name or an index.
type Selector struct {
	name  string
	index int
	item  bool
}

// Attr selects the member name.
func Attr(name string) Selector { return Selector{name: name} }

// Item selects the element at index.
func Item(index int) Selector { return Selector{index: index, item: true} }

// IsItem reports whether s selects by index.
func (s Selector) IsItem() bool { return s.item }

// Name returns the selected attribute name, or "" for an index selector.
func (s Selector) Name() string { return s.name }

// Index returns the selected index, or -1 for an attribute selector.
func (s Selector) Index() int {
	if !s.item {
		return -1
	}
	return s.index
}

// Resolve applies s to a.
func (s Selector) Resolve(a Accessor) (Step, error) {
	if s.item {
		return a.Item(s.index)
	}
	return a.Attr(s.name)
}

func (s Selector) String() string {
	if s.item {
		return "[" + strconv.Itoa(s.index) + "]"
	}
	return s.name
}

// Path is a sequence of selectors, rendered as "items[2].b".
type Path []Selector

// Append returns a new path with s added. p is never modified.
func (p Path) Append(s ...Selector) Path {
	return append(p[:len(p):len(p)], s...)
}

func (p Path) String() string {
	var sb strings.Builder
	for i, s := range p {
		if !s.item && i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(s.String())
	}
	return sb.String()
}

// Strings returns one string per selector, for error reporting.
func (p Path) Strings() []string {
	if len(p) == 0 {
		return nil
	}
	out := make([]string, len(p))
	for i, s := range p {
		out[i] = s.String()
	}
	return out
}

// ParsePath parses the textual form produced by Path.String. The empty
// string is the root path.
func ParsePath(s string) (Path, error) {
	var p Path
	i := 0
	for i < len(s) {
		switch {
		case s[i] == '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return nil, parseError(s, "unterminated index")
			}
			digits := s[i+1 : i+end]
			n, err := strconv.Atoi(digits)
			if err != nil || n < 0 || digits == "" || digits[0] == '+' || digits[0] == '-' {
				return nil, parseError(s, "invalid index "+strconv.Quote(digits))
			}
			p = append(p, Item(n))
			i += end + 1
		case s[i] == '.' && i > 0:
			i++
			fallthrough
		default:
			j := i
			for j < len(s) && s[j] != '.' && s[j] != '[' {
				if s[j] == ']' {
					return nil, parseError(s, "unexpected ']'")
				}
				j++
			}
			if j == i {
				return nil, parseError(s, "empty attribute name")
			}
			p = append(p, Attr(s[i:j]))
			i = j
		}
	}
	return p, nil
}

func parseError(s, detail string) error {
	return errors.New(errors.PhaseParse, errors.KindInvalidInput).
		Value(s).
		Detail("path %q: %s", s, detail).
		Build()
}
