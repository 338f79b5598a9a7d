// Package formula parses chemical formulas into an explicit syntax tree,
// counts atoms and computes molar masses.
package formula

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

var (
	ErrEmpty           = errors.New("empty formula")
	ErrUnmatched       = errors.New("unmatched bracket")
	ErrUnexpectedToken = errors.New("unexpected token")
	ErrUnknownElement  = errors.New("unknown element")
)

// ParseError reports where a formula failed to parse.
type ParseError struct {
	Kind  error
	Input string
	Pos   int
	Msg   string
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	s := fmt.Sprintf("%s in %q", e.Kind.Error(), e.Input)
	if e.Pos >= 0 {
		s += fmt.Sprintf(" at %d", e.Pos)
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}

func (e *ParseError) Unwrap() error { return e.Kind }

// Node is an element of the formula tree.
type Node interface {
	addCounts(into map[string]int, mult int)
	write(sb *strings.Builder)
}

// Element is a single element symbol with its subscript.
type Element struct {
	Symbol string
	Count  int
}

func (e *Element) addCounts(into map[string]int, mult int) {
	into[e.Symbol] += e.Count * mult
}

func (e *Element) write(sb *strings.Builder) {
	sb.WriteString(e.Symbol)
	if e.Count != 1 {
		sb.WriteString(strconv.Itoa(e.Count))
	}
}

// Group is a bracketed sub-formula with a multiplier, such as (SO4)3. Hydrate
// parts like ·5H2O are groups without brackets.
type Group struct {
	Open     rune
	Children []Node
	Count    int
}

func (g *Group) addCounts(into map[string]int, mult int) {
	for _, c := range g.Children {
		c.addCounts(into, mult*g.Count)
	}
}

func (g *Group) write(sb *strings.Builder) {
	if g.Open == 0 {
		sb.WriteString("·")
		if g.Count != 1 {
			sb.WriteString(strconv.Itoa(g.Count))
		}
		for _, c := range g.Children {
			c.write(sb)
		}
		return
	}
	sb.WriteRune(g.Open)
	for _, c := range g.Children {
		c.write(sb)
	}
	sb.WriteRune(closers[g.Open])
	if g.Count != 1 {
		sb.WriteString(strconv.Itoa(g.Count))
	}
}

// Inner renders the group contents without brackets or multiplier.
func (g *Group) Inner() string {
	var sb strings.Builder
	for _, c := range g.Children {
		c.write(&sb)
	}
	return sb.String()
}

// Formula is a parsed chemical formula.
type Formula struct {
	Nodes []Node
}

// Counts flattens the tree into element counts.
func (f *Formula) Counts() map[string]int {
	out := make(map[string]int)
	for _, n := range f.Nodes {
		n.addCounts(out, 1)
	}
	return out
}

// Parts returns the top-level pieces with their multipliers, so (NH4)2SO4
// yields NH4×2, S×1, O×4.
func (f *Formula) Parts() []Part {
	var out []Part
	for _, n := range f.Nodes {
		switch n := n.(type) {
		case *Element:
			out = append(out, Part{Text: n.Symbol, Count: n.Count})
		case *Group:
			out = append(out, Part{Text: n.Inner(), Count: n.Count, Group: true})
		}
	}
	return out
}

// Part is one top-level piece of a formula.
type Part struct {
	Text  string
	Count int
	Group bool
}

func (f *Formula) String() string {
	var sb strings.Builder
	for _, n := range f.Nodes {
		n.write(&sb)
	}
	return sb.String()
}

// Elements returns the element symbols of f in sorted order.
func (f *Formula) Elements() []string {
	counts := f.Counts()
	out := make([]string, 0, len(counts))
	for el := range counts {
		out = append(out, el)
	}
	sort.Strings(out)
	return out
}

// Parse builds the syntax tree of a formula such as "K4[Fe(CN)6]" or
// "CuSO4·5H2O". Element symbols are not checked against the periodic table.
func Parse(text string) (*Formula, error) {
	toks, err := lex(text)
	if err != nil {
		return nil, err
	}
	p := &parser{input: text, toks: toks}
	if len(toks) == 0 {
		return nil, &ParseError{Kind: ErrEmpty, Input: text, Pos: -1}
	}

	nodes, err := p.sequence()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokDot {
		p.next()
		count := p.number()
		children, err := p.sequence()
		if err != nil {
			return nil, err
		}
		if len(children) == 0 {
			return nil, p.errorf(ErrUnexpectedToken, "empty hydrate part")
		}
		nodes = append(nodes, &Group{Children: children, Count: count})
	}
	if t := p.peek(); t.kind != tokEOF {
		if t.kind == tokClose {
			return nil, p.errorf(ErrUnmatched, "unexpected %q", t.text)
		}
		return nil, p.errorf(ErrUnexpectedToken, "trailing %q", t.text)
	}
	if len(nodes) == 0 {
		return nil, &ParseError{Kind: ErrEmpty, Input: text, Pos: -1}
	}
	return &Formula{Nodes: nodes}, nil
}

// Counts parses text and returns its flattened element counts.
func Counts(text string) (map[string]int, error) {
	f, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return f.Counts(), nil
}

type tokKind int

const (
	tokEOF tokKind = iota
	tokElement
	tokNumber
	tokOpen
	tokClose
	tokDot
)

type token struct {
	kind tokKind
	text string
	pos  int
}

var closers = map[rune]rune{'(': ')', '[': ']', '{': '}'}

var subscripts = map[rune]rune{
	'₀': '0', '₁': '1', '₂': '2', '₃': '3', '₄': '4',
	'₅': '5', '₆': '6', '₇': '7', '₈': '8', '₉': '9',
}

func lex(text string) ([]token, error) {
	rs := []rune(text)
	var out []token
	for i := 0; i < len(rs); {
		r := rs[i]
		if d, ok := subscripts[r]; ok {
			r = d
		}
		switch {
		case unicode.IsSpace(r):
			i++
		case unicode.IsUpper(r) && r < unicode.MaxASCII:
			j := i + 1
			if j < len(rs) && unicode.IsLower(rs[j]) && rs[j] < unicode.MaxASCII {
				j++
			}
			out = append(out, token{kind: tokElement, text: string(rs[i:j]), pos: i})
			i = j
		case r >= '0' && r <= '9':
			j := i
			var sb strings.Builder
			for j < len(rs) {
				c := rs[j]
				if d, ok := subscripts[c]; ok {
					c = d
				}
				if c < '0' || c > '9' {
					break
				}
				sb.WriteRune(c)
				j++
			}
			out = append(out, token{kind: tokNumber, text: sb.String(), pos: i})
			i = j
		case r == '(' || r == '[' || r == '{':
			out = append(out, token{kind: tokOpen, text: string(r), pos: i})
			i++
		case r == ')' || r == ']' || r == '}':
			out = append(out, token{kind: tokClose, text: string(r), pos: i})
			i++
		case r == '·' || r == '•' || r == '*' || r == '.':
			out = append(out, token{kind: tokDot, text: string(r), pos: i})
			i++
		default:
			return nil, &ParseError{Kind: ErrUnexpectedToken, Input: text, Pos: i, Msg: fmt.Sprintf("%q", r)}
		}
	}
	return out, nil
}

type parser struct {
	input string
	toks  []token
	pos   int
}

func (p *parser) peek() token {
	if p.pos >= len(p.toks) {
		return token{kind: tokEOF, pos: len([]rune(p.input))}
	}
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.peek()
	p.pos++
	return t
}

func (p *parser) errorf(kind error, format string, args ...any) error {
	return &ParseError{Kind: kind, Input: p.input, Pos: p.peek().pos, Msg: fmt.Sprintf(format, args...)}
}

// number consumes an optional count, defaulting to 1.
func (p *parser) number() int {
	if p.peek().kind != tokNumber {
		return 1
	}
	n, err := strconv.Atoi(p.next().text)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// sequence parses items until a closing bracket, a hydrate dot or the end.
func (p *parser) sequence() ([]Node, error) {
	var nodes []Node
	for {
		t := p.peek()
		switch t.kind {
		case tokElement:
			p.next()
			nodes = append(nodes, &Element{Symbol: t.text, Count: p.number()})
		case tokOpen:
			p.next()
			children, err := p.sequence()
			if err != nil {
				return nil, err
			}
			closing := p.peek()
			if closing.kind != tokClose {
				return nil, &ParseError{Kind: ErrUnmatched, Input: p.input, Pos: t.pos, Msg: fmt.Sprintf("%q never closed", t.text)}
			}
			open := []rune(t.text)[0]
			if string(closers[open]) != closing.text {
				return nil, p.errorf(ErrUnmatched, "%q closed by %q", t.text, closing.text)
			}
			p.next()
			if len(children) == 0 {
				return nil, p.errorf(ErrUnexpectedToken, "empty group")
			}
			nodes = append(nodes, &Group{Open: open, Children: children, Count: p.number()})
		case tokNumber:
			return nil, p.errorf(ErrUnexpectedToken, "count %s without element", t.text)
		default:
			return nodes, nil
		}
	}
}
