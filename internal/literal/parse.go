package literal

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"buildmark/value"
)

// ErrSyntax is matched by every *SyntaxError.
var ErrSyntax = errors.New("literal syntax error")

// SyntaxError reports source text outside the literal subset produced by
// Format.
type SyntaxError struct {
	// Offset is the byte offset of the offending token.
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Msg)
}

func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

// Parse reads a Kotlin literal in the form written by Format and returns the
// value it evaluates to. Like kotlinc it types an unsuffixed integer as Int
// when it fits, so Byte and Short values come back as Int32.
func Parse(src string) (value.Value, error) {
	p := &parser{lex: lexer{src: src}}
	p.next()

	v, err := p.expr()
	if err != nil {
		return nil, err
	}

	if p.tok.kind != tokEOF {
		return nil, p.errorf("unexpected %s after literal", p.tok)
	}

	return v, nil
}

type parser struct {
	lex lexer
	tok token
}

func (p *parser) next() {
	p.tok = p.lex.scan()
}

func (p *parser) errorf(format string, args ...any) error {
	if p.tok.kind == tokError {
		return &SyntaxError{Offset: p.tok.pos, Msg: p.tok.text}
	}

	return &SyntaxError{Offset: p.tok.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) expect(kind tokenKind, text string) error {
	if p.tok.kind != kind || (text != "" && p.tok.text != text) {
		want := text
		if want == "" {
			want = kind.String()
		}

		return p.errorf("expected %s, found %s", want, p.tok)
	}

	p.next()

	return nil
}

// expr := operand ("to" operand)*
func (p *parser) expr() (value.Value, error) {
	left, err := p.operand()
	if err != nil {
		return nil, err
	}

	for p.tok.kind == tokIdent && p.tok.text == "to" {
		p.next()

		right, err := p.operand()
		if err != nil {
			return nil, err
		}

		left = value.Pair{First: left, Second: right}
	}

	return left, nil
}

func (p *parser) operand() (value.Value, error) {
	switch p.tok.kind {
	case tokPunct:
		switch p.tok.text {
		case "(":
			p.next()

			v, err := p.expr()
			if err != nil {
				return nil, err
			}

			if err := p.expect(tokPunct, ")"); err != nil {
				return nil, err
			}

			return v, nil
		case "-":
			p.next()
			if p.tok.kind != tokNumber {
				return nil, p.errorf("expected number after '-', found %s", p.tok)
			}

			return p.number(true)
		}
	case tokNumber:
		return p.number(false)
	case tokString:
		v := value.String(p.tok.text)
		p.next()

		return v, nil
	case tokChar:
		v := value.Char(p.tok.unit)
		p.next()

		return v, nil
	case tokIdent:
		return p.identifier()
	}

	return nil, p.errorf("unexpected %s", p.tok)
}

var constants = map[string]value.Value{
	"Int.MIN_VALUE":            value.Int32(math.MinInt32),
	"Int.MAX_VALUE":            value.Int32(math.MaxInt32),
	"Long.MIN_VALUE":           value.Int64(math.MinInt64),
	"Long.MAX_VALUE":           value.Int64(math.MaxInt64),
	"Double.NaN":               value.Float64(math.NaN()),
	"Double.POSITIVE_INFINITY": value.Float64(math.Inf(1)),
	"Double.NEGATIVE_INFINITY": value.Float64(math.Inf(-1)),
	"Float.NaN":                value.Float32(float32(math.NaN())),
	"Float.POSITIVE_INFINITY":  value.Float32(float32(math.Inf(1))),
	"Float.NEGATIVE_INFINITY":  value.Float32(float32(math.Inf(-1))),
}

func (p *parser) identifier() (value.Value, error) {
	name := p.tok.text
	p.next()

	switch name {
	case "null":
		return value.Null{}, nil
	case "true":
		return value.Bool(true), nil
	case "false":
		return value.Bool(false), nil
	}

	if p.tok.kind == tokPunct && p.tok.text == "." {
		p.next()
		if p.tok.kind != tokIdent {
			return nil, p.errorf("expected member name after %s., found %s", name, p.tok)
		}

		qualified := name + "." + p.tok.text
		if c, ok := constants[qualified]; ok {
			p.next()
			return c, nil
		}

		return nil, p.errorf("unknown constant %s", qualified)
	}

	if p.tok.kind == tokPunct && p.tok.text == "<" {
		if err := p.skipTypeArgs(); err != nil {
			return nil, err
		}
	}

	build, ok := builders[name]
	if !ok {
		return nil, p.errorf("unknown function %s", name)
	}

	args, err := p.args()
	if err != nil {
		return nil, err
	}

	return build(p, args)
}

// skipTypeArgs skips a balanced <...> group; elements carry their own types.
func (p *parser) skipTypeArgs() error {
	depth := 0

	for {
		switch {
		case p.tok.kind == tokEOF || p.tok.kind == tokError:
			return p.errorf("unterminated type arguments")
		case p.tok.kind == tokPunct && p.tok.text == "<":
			depth++
		case p.tok.kind == tokPunct && p.tok.text == ">":
			depth--
		}

		p.next()

		if depth == 0 {
			return nil
		}
	}
}

type arg struct {
	pos int
	val value.Value
}

func (p *parser) args() ([]arg, error) {
	if err := p.expect(tokPunct, "("); err != nil {
		return nil, err
	}

	var res []arg

	for !(p.tok.kind == tokPunct && p.tok.text == ")") {
		if len(res) > 0 {
			if err := p.expect(tokPunct, ","); err != nil {
				return nil, err
			}
		}

		pos := p.tok.pos

		v, err := p.expr()
		if err != nil {
			return nil, err
		}

		res = append(res, arg{pos: pos, val: v})
	}

	p.next()

	return res, nil
}

func (p *parser) number(negative bool) (value.Value, error) {
	tok := p.tok
	p.next()

	text := tok.text
	if negative {
		text = "-" + text
	}

	bad := func(err error) error {
		if err == nil {
			return &SyntaxError{Offset: tok.pos, Msg: "invalid number " + text}
		}

		return &SyntaxError{Offset: tok.pos, Msg: fmt.Sprintf("invalid number %s: %v", text, err)}
	}

	switch {
	case strings.HasSuffix(text, "uL") || strings.HasSuffix(text, "UL"):
		n, err := strconv.ParseUint(strings.ReplaceAll(text[:len(text)-2], "_", ""), 10, 64)
		if err != nil || negative {
			return nil, bad(err)
		}

		return value.Uint64(n), nil
	case strings.HasSuffix(text, "u") || strings.HasSuffix(text, "U"):
		n, err := strconv.ParseUint(strings.ReplaceAll(text[:len(text)-1], "_", ""), 10, 64)
		if err != nil || negative {
			return nil, bad(err)
		}

		return p.narrowUnsigned(n, tok.pos)
	case strings.HasSuffix(text, "L"):
		n, err := strconv.ParseInt(strings.ReplaceAll(text[:len(text)-1], "_", ""), 10, 64)
		if err != nil || n == math.MinInt64 {
			return nil, bad(err)
		}

		return value.Int64(n), nil
	case strings.HasSuffix(text, "f") || strings.HasSuffix(text, "F"):
		f, err := strconv.ParseFloat(strings.ReplaceAll(text[:len(text)-1], "_", ""), 32)
		if err != nil {
			return nil, bad(err)
		}

		return value.Float32(f), nil
	case strings.ContainsAny(text, ".eE"):
		f, err := strconv.ParseFloat(strings.ReplaceAll(text, "_", ""), 64)
		if err != nil {
			return nil, bad(err)
		}

		return value.Float64(f), nil
	}

	n, err := strconv.ParseInt(strings.ReplaceAll(text, "_", ""), 10, 64)
	if err != nil || n == math.MinInt64 {
		return nil, bad(err)
	}

	// kotlinc types the magnitude before negation
	magnitude := n
	if negative {
		magnitude = -n
	}

	if magnitude <= math.MaxInt32 {
		return value.Int32(n), nil
	}

	return value.Int64(n), nil
}

// narrowUnsigned types an unsigned literal and applies a trailing
// .toUByte() or .toUShort() call.
func (p *parser) narrowUnsigned(n uint64, pos int) (value.Value, error) {
	var v value.Value = value.Uint32(n)
	if n > math.MaxUint32 {
		v = value.Uint64(n)
	}

	if !(p.tok.kind == tokPunct && p.tok.text == ".") {
		return v, nil
	}

	p.next()

	if p.tok.kind != tokIdent {
		return nil, p.errorf("expected conversion call, found %s", p.tok)
	}

	conv := p.tok.text
	p.next()

	if err := p.expect(tokPunct, "("); err != nil {
		return nil, err
	}

	if err := p.expect(tokPunct, ")"); err != nil {
		return nil, err
	}

	switch conv {
	case "toUByte":
		return value.Uint8(n), nil
	case "toUShort":
		return value.Uint16(n), nil
	case "toUInt":
		return value.Uint32(n), nil
	case "toULong":
		return value.Uint64(n), nil
	}

	return nil, &SyntaxError{Offset: pos, Msg: "unsupported conversion " + conv}
}
