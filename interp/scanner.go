package interp

import (
	"fmt"
	"go/token"
	"strconv"
	"strings"
)

// scanner turns UTF-8 source text into a nested BLOCK! of cells: one
// token class table, a handful of composite literal forms (strings,
// blocks, groups), and newline hints recorded as FlagNewlineBefore on
// the cell that follows a line break, the way the evaluator needs them
// for REPL echoing.
type scanner struct {
	src string
	name string
	pos int
	line int
	col int
	pool *Pool
	syms *SymbolTable
}

func newScanner(pool *Pool, syms *SymbolTable, src, name string) *scanner {
	return &scanner{src: src, name: name, pos: 0, line: 1, col: 1, pool: pool, syms: syms}
}

func (s *scanner) position() token.Position {
	return token.Position{Filename: s.name, Line: s.line, Column: s.col}
}

func (s *scanner) peek() byte {
	if s.pos >= len(s.src) {
		return 0
	}
	return s.src[s.pos]
}

func (s *scanner) advance() byte {
	c := s.src[s.pos]
	s.pos++
	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return c
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\r' || c == '\n' }

func isDelimiter(c byte) bool {
	switch c {
	case 0, ' ', '\t', '\r', '\n', '[', ']', '(', ')', ';', '"':
		return true
	}
	return false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// scanTop reads every top-level expression into a FlavorArray block,
// the entry point Eval/EvalPath feed to the evaluator.
func (s *scanner) scanTop() (*Stub, *Failure) {
	return s.scanUntil(0)
}

// scanUntil reads cells until closer (0 meaning end of input) is seen,
// consuming the closer itself.
func (s *scanner) scanUntil(closer byte) (*Stub, *Failure) {
	arr := s.pool.NewArray(FlavorArray, 4)
	sawNewline := false
	for {
		for s.pos < len(s.src) {
			c := s.peek()
			if c == '\n' {
				sawNewline = true
				s.advance()
				continue
			}
			if isSpace(c) {
				s.advance()
				continue
			}
			if c == ';' {
				for s.pos < len(s.src) && s.peek() != '\n' {
					s.advance()
				}
				continue
			}
			break
		}
		if s.pos >= len(s.src) {
			if closer != 0 {
				return nil, newFailure(ErrMissing, fmt.Sprintf("unterminated %q", closer)).WithPos(s.position())
			}
			s.pool.Manage(arr)
			return arr, nil
		}
		if s.peek() == closer && closer != 0 {
			s.advance()
			s.pool.Manage(arr)
			return arr, nil
		}
		if closer == 0 && (s.peek() == ']' || s.peek() == ')') {
			return nil, newFailure(ErrInvalidChars, "unexpected closer: "+string(s.peek())).WithPos(s.position())
		}
		cell, fail := s.scanOne()
		if fail != nil {
			return nil, fail
		}
		if sawNewline {
			cell.Flags |= FlagNewlineBefore
			sawNewline = false
		}
		arr.Append(cell)
	}
}

func (s *scanner) scanOne() (Cell, *Failure) {
	c := s.peek()

	switch {
	case c == '[':
		s.advance()
		inner, fail := s.scanUntil(']')
		if fail != nil {
			return Cell{}, fail
		}
		cell := Cell{Heart: HeartBlock}
		cell.setNode1(inner)
		return cell, nil

	case c == '(':
		s.advance()
		inner, fail := s.scanUntil(')')
		if fail != nil {
			return Cell{}, fail
		}
		cell := Cell{Heart: HeartGroup}
		cell.setNode1(inner)
		return cell, nil

	case c == '"':
		return s.scanString()

	case c == ':':
		s.advance()
		word, fail := s.scanWordTail()
		if fail != nil {
			return Cell{}, fail
		}
		cell := Cell{Heart: HeartGetWord, Sym: s.syms.Intern(word)}
		return cell, nil

	case c == '_' && isDelimiter(s.peekAt(1)):
		s.advance()
		return NewBlank(), nil

	case c == '/':
		// A leading slash with no head word is a bare refinement literal
		// (the /b [integer!] style of a function spec's optional
		// parameter): a path whose head is blank rather than a word.
		s.advance()
		seg, fail := s.scanPathSegment()
		if fail != nil {
			return Cell{}, fail
		}
		segs := s.pool.NewArray(FlavorArray, 4)
		segs.Append(NewBlank())
		segs.Append(seg)
		return s.scanPathFrom(segs)

	case c == '#':
		return s.scanIssue()

	case isDigit(c) || ((c == '-' || c == '+') && isDigit(s.peekAt(1))):
		return s.scanNumber()

	default:
		word, fail := s.scanWordTail()
		if fail != nil {
			return Cell{}, fail
		}
		if s.peek() == '/' {
			segs := s.pool.NewArray(FlavorArray, 4)
			segs.Append(Cell{Heart: HeartWord, Sym: s.syms.Intern(word)})
			return s.scanPathFrom(segs)
		}
		if s.peek() == ':' {
			s.advance()
			cell := Cell{Heart: HeartSetWord, Sym: s.syms.Intern(word)}
			return cell, nil
		}
		cell := Cell{Heart: HeartWord, Sym: s.syms.Intern(word)}
		return cell, nil
	}
}

func (s *scanner) peekAt(n int) byte {
	if s.pos+n >= len(s.src) {
		return 0
	}
	return s.src[s.pos+n]
}

func (s *scanner) scanWordTail() (string, *Failure) {
	start := s.pos
	if isDelimiter(s.peek()) || s.peek() == '/' {
		return "", newFailure(ErrInvalidChars, "expected word").WithPos(s.position())
	}
	for !isDelimiter(s.peek()) && s.peek() != ':' && s.peek() != '/' {
		s.advance()
	}
	return s.src[start:s.pos], nil
}

// scanPathFrom collects the trailing /segment steps of a path literal,
// given a segs array already holding its head (a word, or a blank for
// a bare-refinement literal). Each further '/' introduces one more
// segment: a word for a field/refinement step, or an integer for a
// positional pick.
func (s *scanner) scanPathFrom(segs *Stub) (Cell, *Failure) {
	for s.peek() == '/' {
		s.advance()
		seg, fail := s.scanPathSegment()
		if fail != nil {
			return Cell{}, fail
		}
		segs.Append(seg)
	}
	s.pool.Manage(segs)
	cell := Cell{Heart: HeartPath}
	cell.setNode1(segs)
	return cell, nil
}

func (s *scanner) scanPathSegment() (Cell, *Failure) {
	if isDigit(s.peek()) {
		return s.scanNumber()
	}
	word, fail := s.scanWordTail()
	if fail != nil {
		return Cell{}, fail
	}
	return Cell{Heart: HeartWord, Sym: s.syms.Intern(word)}, nil
}

func (s *scanner) scanString() (Cell, *Failure) {
	s.advance() // opening quote
	var b strings.Builder
	for {
		if s.pos >= len(s.src) {
			return Cell{}, newFailure(ErrMissing, "unterminated string").WithPos(s.position())
		}
		c := s.advance()
		if c == '"' {
			break
		}
		if c == '\\' && s.pos < len(s.src) {
			switch s.advance() {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			default:
				b.WriteByte(c)
			}
			continue
		}
		b.WriteByte(c)
	}
	str := s.pool.NewBytes(FlavorString, len(b.String()))
	str.Bytes = append(str.Bytes, b.String()...)
	str.Used = len(str.Bytes)
	s.pool.Manage(str)
	cell := Cell{Heart: HeartText}
	cell.setNode1(str)
	return cell, nil
}

func (s *scanner) scanIssue() (Cell, *Failure) {
	s.advance() // '#'
	if isDelimiter(s.peek()) {
		return Blackhole(), nil
	}
	start := s.pos
	for !isDelimiter(s.peek()) {
		s.advance()
	}
	word := s.src[start:s.pos]
	r := []rune(word)
	if len(r) != 1 {
		return Cell{}, newFailure(ErrInvalidChars, "issue must be a single character: #"+word).WithPos(s.position())
	}
	return NewIssueChar(r[0]), nil
}

func (s *scanner) scanNumber() (Cell, *Failure) {
	start := s.pos
	if s.peek() == '-' || s.peek() == '+' {
		s.advance()
	}
	isFloat := false
	isPercent := false
	for isDigit(s.peek()) || s.peek() == '.' || s.peek() == '%' {
		if s.peek() == '.' {
			isFloat = true
		}
		if s.peek() == '%' {
			isPercent = true
			s.advance()
			break
		}
		s.advance()
	}
	text := s.src[start:s.pos]
	if isPercent {
		v, err := strconv.ParseFloat(strings.TrimSuffix(text, "%"), 64)
		if err != nil {
			return Cell{}, newFailure(ErrInvalidChars, "bad percent literal: "+text).WithPos(s.position())
		}
		return NewPercent(v / 100), nil
	}
	if isFloat {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Cell{}, newFailure(ErrInvalidChars, "bad decimal literal: "+text).WithPos(s.position())
		}
		return NewDecimal(v), nil
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return Cell{}, newFailure(ErrOverflow, "integer literal out of range: "+text).WithPos(s.position())
	}
	return NewInteger(v), nil
}
