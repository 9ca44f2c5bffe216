// Package kotlin holds the Kotlin naming rules shared by configuration
// validation and code generation.
package kotlin

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"
)

// hardKeywords cannot be used as identifiers without back-ticks.
var hardKeywords = []string{
	"as", "break", "class", "continue", "do", "else", "false", "for", "fun",
	"if", "in", "interface", "is", "null", "object", "package", "return",
	"super", "this", "throw", "true", "try", "typealias", "typeof", "val",
	"var", "when", "while",
}

// IsHardKeyword reports whether s is a Kotlin hard keyword.
func IsHardKeyword(s string) bool {
	return slices.Contains(hardKeywords, s)
}

// CheckIdentifier returns an error describing why s is not a Kotlin
// identifier. Hard keywords are accepted, see Quote.
func CheckIdentifier(s string) error {
	if s == "" {
		return errors.New("empty identifier")
	}

	if strings.Trim(s, "_") == "" {
		return fmt.Errorf("%q is reserved", s)
	}

	for i, r := range s {
		if i == 0 {
			if !unicode.IsLetter(r) && r != '_' {
				return fmt.Errorf("%q must start with a letter or underscore", s)
			}

			continue
		}

		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return fmt.Errorf("%q contains %q", s, r)
		}
	}

	return nil
}

// IsIdentifier reports whether s can name a Kotlin declaration, possibly
// after quoting.
func IsIdentifier(s string) bool {
	return CheckIdentifier(s) == nil
}

// Quote returns the identifier as it must appear in source.
func Quote(s string) string {
	if IsHardKeyword(s) {
		return "`" + s + "`"
	}

	return s
}

// Unquote strips the back-ticks Quote adds.
func Unquote(s string) string {
	if len(s) >= 2 && s[0] == '`' && s[len(s)-1] == '`' {
		return s[1 : len(s)-1]
	}

	return s
}

// ParsePackage splits a dotted package name into its segments. The empty
// string is the default package and has no segments.
func ParsePackage(name string) ([]string, error) {
	if name == "" {
		return nil, nil
	}

	segments := strings.Split(name, ".")

	for _, s := range segments {
		if s == "" {
			return nil, fmt.Errorf("invalid package %q: empty segment", name)
		}

		if err := CheckIdentifier(s); err != nil {
			return nil, fmt.Errorf("invalid package %q: %w", name, err)
		}
	}

	return segments, nil
}

// QuotePackage returns the package name as it must appear in a package
// directive.
func QuotePackage(segments []string) string {
	quoted := make([]string, len(segments))
	for i, s := range segments {
		quoted[i] = Quote(s)
	}

	return strings.Join(quoted, ".")
}
