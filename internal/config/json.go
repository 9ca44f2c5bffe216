package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// jsonReader decodes a JSON configuration token by token so that object
// members keep their order.
type jsonReader struct {
	dec  *jsontext.Decoder
	data []byte
	name string
}

func parseJSON(data []byte, name string) (*partial, error) {
	r := &jsonReader{dec: jsontext.NewDecoder(bytes.NewReader(data)), data: data, name: name}
	p := &partial{}

	if err := r.object(func(key string) error {
		var target any

		switch key {
		case "object":
			target = &p.Object
		case "package":
			target = &p.Package
		case "output":
			target = &p.Output
		case "version":
			target = &p.Version
		case "const":
			target = &p.Const
		case "options":
			n, err := r.node()
			if err != nil {
				return err
			}

			p.Options = &n

			return nil
		default:
			return r.errorf("unknown field %q", key)
		}

		if err := json.UnmarshalDecode(r.dec, target); err != nil {
			return r.errorf("field %s: %v", key, err)
		}

		return nil
	}); err != nil {
		return nil, err
	}

	if _, err := r.dec.ReadToken(); !errors.Is(err, io.EOF) {
		return nil, r.errorf("unexpected data after the top-level object")
	}

	return p, nil
}

// pos returns the location of the next token.
func (r *jsonReader) pos() string {
	off := int(r.dec.InputOffset())
	if off > len(r.data) {
		off = len(r.data)
	}

	// the offset is past the separator of the previous token
	rest := r.data[off:]
	off += len(rest) - len(bytes.TrimLeft(rest, " \t\r\n,:"))

	return r.name + ":" + strconv.Itoa(1+bytes.Count(r.data[:off], []byte("\n")))
}

func (r *jsonReader) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidConfig, r.pos(), fmt.Sprintf(format, args...))
}

// object reads an object, calling member for every name with the decoder
// positioned at the member value.
func (r *jsonReader) object(member func(key string) error) error {
	if kind := r.dec.PeekKind(); kind != '{' {
		return r.syntax("expected an object")
	}

	if _, err := r.dec.ReadToken(); err != nil { // '{'
		return r.errorf("%v", err)
	}

	for r.dec.PeekKind() != '}' {
		if r.dec.PeekKind() == 0 {
			return r.syntax("unterminated object")
		}

		var key string
		if err := json.UnmarshalDecode(r.dec, &key); err != nil {
			return r.errorf("reading member name: %v", err)
		}

		if err := member(key); err != nil {
			return err
		}
	}

	if _, err := r.dec.ReadToken(); err != nil { // '}'
		return r.errorf("%v", err)
	}

	return nil
}

// syntax reports the decoder error behind an invalid peek, if there is one.
func (r *jsonReader) syntax(msg string) error {
	pos := r.pos()
	if _, err := r.dec.ReadToken(); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, pos, err)
	}

	return fmt.Errorf("%w: %s: %s", ErrInvalidConfig, pos, msg)
}

func (r *jsonReader) node() (node, error) {
	n := node{pos: r.pos(), directives: true}

	switch r.dec.PeekKind() {
	case '{':
		n.kind = nodeMap
		err := r.object(func(key string) error {
			keyNode := node{kind: nodeString, text: key, pos: n.pos}

			val, err := r.node()
			if err != nil {
				return err
			}

			n.items = append(n.items, keyNode, val)

			return nil
		})

		return n, err
	case '[':
		n.kind = nodeSeq

		if _, err := r.dec.ReadToken(); err != nil {
			return n, r.errorf("%v", err)
		}

		for r.dec.PeekKind() != ']' {
			if r.dec.PeekKind() == 0 {
				return n, r.syntax("unterminated array")
			}

			item, err := r.node()
			if err != nil {
				return n, err
			}

			n.items = append(n.items, item)
		}

		if _, err := r.dec.ReadToken(); err != nil {
			return n, r.errorf("%v", err)
		}

		return n, nil
	case '0':
		raw, err := r.dec.ReadValue()
		if err != nil {
			return n, r.errorf("%v", err)
		}

		n.text = string(raw)
		n.kind = nodeInt
		if strings.ContainsAny(n.text, ".eE") {
			n.kind = nodeFloat
		}

		return n, nil
	case '"':
		if err := json.UnmarshalDecode(r.dec, &n.text); err != nil {
			return n, r.errorf("%v", err)
		}

		n.kind = nodeString

		return n, nil
	case 't', 'f':
		tok, err := r.dec.ReadToken()
		if err != nil {
			return n, r.errorf("%v", err)
		}

		n.kind = nodeBool
		n.text = strconv.FormatBool(tok.Bool())

		return n, nil
	case 'n':
		if _, err := r.dec.ReadToken(); err != nil {
			return n, r.errorf("%v", err)
		}

		n.kind = nodeNull
		n.text = "null"

		return n, nil
	}

	return n, r.syntax("expected a value")
}
