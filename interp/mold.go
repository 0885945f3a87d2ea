package interp

import (
	"strconv"
	"strings"
)

// moldCell renders c in mold style: text in double quotes, minimal
// syntax for everything else (formCell is the undecorated variant). A full MOLD (load-able, quote
// marks and escapes included) is out of scope for the small natives
// table in native.go; this covers what print and the REPL prompt need.
func moldCell(c Cell) string {
	var b strings.Builder
	moldInto(&b, c, false)
	return b.String()
}

// Mold renders c the way the print native does, exported so a host
// (cmd/ember's eval/REPL output) can render a result without
// reimplementing cell formatting.
func Mold(c Cell) string { return moldCell(c) }

func formCell(c Cell) string {
	var b strings.Builder
	moldInto(&b, c, true)
	return b.String()
}

func moldInto(b *strings.Builder, c Cell, form bool) {
	switch {
	case c.Quote.IsQuasi():
		b.WriteByte('~')
		uq := c
		uq.Quote = Unquoted
		moldInto(b, uq, form)
		b.WriteByte('~')
		return
	case c.Quote.IsIsotope():
		uq := c
		uq.Quote = Unquoted
		moldInto(b, uq, form)
		return
	case c.Quote.IsQuoted():
		for i := QuoteState(0); i < c.Quote; i++ {
			b.WriteByte('\'')
		}
		uq := c
		uq.Quote = Unquoted
		moldInto(b, uq, form)
		return
	}

	switch c.Heart {
	case HeartBlank:
		b.WriteString("_")
	case HeartVoid:
		b.WriteString("")
	case HeartLogic:
		if c.AsLogic() {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case HeartInteger:
		b.WriteString(strconv.FormatInt(c.AsInteger(), 10))
	case HeartDecimal:
		b.WriteString(strconv.FormatFloat(c.AsDecimal(), 'g', -1, 64))
	case HeartPercent:
		b.WriteString(strconv.FormatFloat(c.AsDecimal()*100, 'g', -1, 64))
		b.WriteByte('%')
	case HeartText:
		if !form {
			b.WriteByte('"')
		}
		b.Write(stubBytes(c.Node1))
		if !form {
			b.WriteByte('"')
		}
	case HeartIssue:
		if c.IsBlackhole() {
			b.WriteString("#")
		} else {
			b.WriteByte('#')
			b.WriteRune(rune(c.Word1))
		}
	case HeartWord, HeartGetWord, HeartTheWord, HeartTypeWord:
		if c.Heart == HeartGetWord {
			b.WriteByte(':')
		}
		if c.Sym != nil {
			b.WriteString(c.Sym.Name)
		}
	case HeartSetWord:
		if c.Sym != nil {
			b.WriteString(c.Sym.Name)
		}
		b.WriteByte(':')
	case HeartBlock, HeartGroup:
		open, closer := "[", "]"
		if c.Heart == HeartGroup {
			open, closer = "(", ")"
		}
		b.WriteString(open)
		if c.Node1 != nil {
			for i := 0; i < c.Node1.Len(); i++ {
				if i > 0 {
					b.WriteByte(' ')
				}
				moldInto(b, *c.Node1.At(i), form)
			}
		}
		b.WriteString(closer)
	default:
		b.WriteString(c.Heart.String())
	}
}

func stubBytes(s *Stub) []byte {
	if s == nil {
		return nil
	}
	return s.Bytes[s.Bias: s.Bias+s.Used]
}
