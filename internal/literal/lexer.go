package literal

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokError
	tokIdent
	tokNumber
	tokString
	tokChar
	tokPunct
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokError:
		return "error"
	case tokIdent:
		return "identifier"
	case tokNumber:
		return "number"
	case tokString:
		return "string"
	case tokChar:
		return "char"
	case tokPunct:
		return "punctuation"
	default:
		return "token(" + strconv.Itoa(int(k)) + ")"
	}
}

type token struct {
	kind tokenKind
	pos  int
	// text is the identifier, raw number, punctuation, decoded string or
	// error message.
	text string
	// unit is the decoded char literal.
	unit uint16
}

func (t token) String() string {
	switch t.kind {
	case tokEOF:
		return t.kind.String()
	case tokString:
		return "string " + strconv.Quote(t.text)
	case tokChar:
		return "char " + quoteChar(t.unit)
	default:
		return strconv.Quote(t.text)
	}
}

type lexer struct {
	src string
	pos int
}

const punctuation = "(),<>?.-"

func (l *lexer) scan() token {
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !unicode.IsSpace(r) {
			break
		}

		l.pos += size
	}

	if l.pos >= len(l.src) {
		return token{kind: tokEOF, pos: l.pos}
	}

	start := l.pos
	c := l.src[l.pos]
	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])

	switch {
	case r == '_' || unicode.IsLetter(r):
		return l.ident(start)
	case isDigit(c):
		return l.number(start)
	case c == '"':
		return l.string(start)
	case c == '\'':
		return l.char(start)
	case strings.IndexByte(punctuation, c) >= 0:
		l.pos++
		return token{kind: tokPunct, pos: start, text: string(c)}
	}

	return l.fail(start, "unexpected character "+strconv.QuoteRune(r))
}

func (l *lexer) fail(pos int, msg string) token {
	// stop scanning: every following call reports the same error
	l.pos = len(l.src)
	return token{kind: tokError, pos: pos, text: msg}
}

func (l *lexer) ident(start int) token {
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}

		l.pos += size
	}

	return token{kind: tokIdent, pos: start, text: l.src[start:l.pos]}
}

func (l *lexer) number(start int) token {
	l.digits()

	if l.peek(0) == '.' && isDigit(l.peek(1)) {
		l.pos++
		l.digits()
	}

	if c := l.peek(0); c == 'e' || c == 'E' {
		l.pos++
		if c := l.peek(0); c == '+' || c == '-' {
			l.pos++
		}

		if !isDigit(l.peek(0)) {
			return l.fail(start, "malformed exponent")
		}

		l.digits()
	}

	switch l.peek(0) {
	case 'f', 'F', 'L':
		l.pos++
	case 'u', 'U':
		l.pos++
		if l.peek(0) == 'L' {
			l.pos++
		}
	}

	return token{kind: tokNumber, pos: start, text: l.src[start:l.pos]}
}

func (l *lexer) digits() {
	for l.pos < len(l.src) && (isDigit(l.src[l.pos]) || l.src[l.pos] == '_') {
		l.pos++
	}
}

func (l *lexer) peek(n int) byte {
	if l.pos+n >= len(l.src) {
		return 0
	}

	return l.src[l.pos+n]
}

func (l *lexer) string(start int) token {
	l.pos++ // opening quote

	var units []uint16

	for {
		if l.pos >= len(l.src) {
			return l.fail(start, "unterminated string literal")
		}

		r, size := utf8.DecodeRuneInString(l.src[l.pos:])

		switch r {
		case '"':
			l.pos++
			return token{kind: tokString, pos: start, text: string(utf16.Decode(units))}
		case '\n':
			return l.fail(l.pos, "newline in string literal")
		case '\\':
			unit, ok := l.escape()
			if !ok {
				return l.fail(l.pos, "invalid escape sequence")
			}

			units = append(units, unit)
		case '$':
			if next := l.peek(1); next == '{' || next == '_' || unicode.IsLetter(rune(next)) {
				return l.fail(l.pos, "string templates are not supported")
			}

			units = append(units, '$')
			l.pos++
		default:
			units = utf16.AppendRune(units, r)
			l.pos += size
		}
	}
}

func (l *lexer) char(start int) token {
	l.pos++ // opening quote

	var unit uint16

	switch r, size := utf8.DecodeRuneInString(l.src[l.pos:]); {
	case l.pos >= len(l.src), r == '\'', r == '\n':
		return l.fail(start, "empty char literal")
	case r == '\\':
		u, ok := l.escape()
		if !ok {
			return l.fail(l.pos, "invalid escape sequence")
		}

		unit = u
	case r > 0xFFFF:
		return l.fail(start, "char literal does not fit one UTF-16 code unit")
	default:
		unit = uint16(r)
		l.pos += size
	}

	if l.peek(0) != '\'' {
		return l.fail(start, "unterminated char literal")
	}

	l.pos++

	return token{kind: tokChar, pos: start, unit: unit}
}

// escape decodes the escape sequence at l.pos, which points at the backslash.
func (l *lexer) escape() (uint16, bool) {
	c := l.peek(1)
	l.pos += 2

	switch c {
	case 't':
		return '\t', true
	case 'b':
		return '\b', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case '\'', '"', '\\', '$':
		return uint16(c), true
	case 'u':
		if l.pos+4 > len(l.src) {
			return 0, false
		}

		n, err := strconv.ParseUint(l.src[l.pos:l.pos+4], 16, 16)
		if err != nil {
			return 0, false
		}

		l.pos += 4

		return uint16(n), true
	}

	return 0, false
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
