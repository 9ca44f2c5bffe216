package literal

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf16"
)

// quoteString renders s as a Kotlin string literal. Each invalid UTF-8 byte
// becomes U+FFFD, the same as decoding the bytes on the JVM.
func quoteString(s string) string {
	var b strings.Builder

	b.Grow(len(s) + 2)
	b.WriteByte('"')

	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '$':
			b.WriteString(`\$`)
		default:
			writeRune(&b, r)
		}
	}

	b.WriteByte('"')

	return b.String()
}

// quoteChar renders one UTF-16 code unit as a Kotlin char literal.
func quoteChar(c uint16) string {
	var b strings.Builder

	b.WriteByte('\'')

	switch r := rune(c); {
	case r == '\'':
		b.WriteString(`\'`)
	case utf16.IsSurrogate(r):
		writeUnicodeEscape(&b, c)
	default:
		writeRune(&b, r)
	}

	b.WriteByte('\'')

	return b.String()
}

// writeRune writes r with the escapes shared by string and char literals.
func writeRune(b *strings.Builder, r rune) {
	switch r {
	case '\\':
		b.WriteString(`\\`)
	case '\n':
		b.WriteString(`\n`)
	case '\r':
		b.WriteString(`\r`)
	case '\t':
		b.WriteString(`\t`)
	case '\b':
		b.WriteString(`\b`)
	default:
		if unicode.IsPrint(r) {
			b.WriteRune(r)
			return
		}

		if r > 0xFFFF {
			hi, lo := utf16.EncodeRune(r)
			writeUnicodeEscape(b, uint16(hi))
			writeUnicodeEscape(b, uint16(lo))

			return
		}

		writeUnicodeEscape(b, uint16(r))
	}
}

func writeUnicodeEscape(b *strings.Builder, unit uint16) {
	fmt.Fprintf(b, `\u%04x`, unit)
}
