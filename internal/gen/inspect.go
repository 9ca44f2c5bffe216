package gen

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"buildmark/internal/config"
	"buildmark/internal/kotlin"
	"buildmark/internal/literal"
)

var (
	packageLine  = regexp.MustCompile(`^package\s+([\p{L}\p{N}_.` + "`" + `]+)$`)
	objectLine   = regexp.MustCompile(`^object\s+(` + identPattern + `)\s*(\{)?$`)
	propertyLine = regexp.MustCompile(`^(const\s+)?val\s+(` + identPattern + `)\s*=\s*(.+)$`)
)

const identPattern = "`[^`]+`|[\\p{L}_][\\p{L}\\p{N}_]*"

// ParseModule reads a file written by Generate back into the configuration
// that produces it. name is used in error messages.
func ParseModule(src []byte, name string) (*config.Config, error) {
	cfg := &config.Config{
		Output:  config.DefaultOutput,
		Version: config.DefaultVersion,
		Path:    name,
	}

	const (
		head = iota
		open
		body
		done
	)

	state := head

	for i, text := range strings.Split(string(src), "\n") {
		line := strings.TrimSpace(text)
		pos := name + ":" + strconv.Itoa(i+1)

		fail := func(format string, args ...any) error {
			return fmt.Errorf("%w: %s: %s", ErrMalformedSource, pos, fmt.Sprintf(format, args...))
		}

		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		switch state {
		case head:
			if m := packageLine.FindStringSubmatch(line); m != nil && cfg.Package == "" && cfg.Object == "" {
				segments := strings.Split(m[1], ".")
				for i, s := range segments {
					segments[i] = kotlin.Unquote(s)
				}

				cfg.Package = strings.Join(segments, ".")

				continue
			}

			m := objectLine.FindStringSubmatch(line)
			if m == nil {
				return nil, fail("expected an object declaration")
			}

			cfg.Object = kotlin.Unquote(m[1])
			state = open

			if m[2] != "" {
				state = body
			}
		case open:
			if line != "{" {
				return nil, fail("expected {")
			}

			state = body
		case body:
			if line == "}" {
				state = done
				continue
			}

			m := propertyLine.FindStringSubmatch(line)
			if m == nil {
				return nil, fail("expected a val declaration")
			}

			v, err := literal.Parse(m[3])
			if err != nil {
				return nil, fail("%s: %v", m[2], err)
			}

			if m[1] != "" {
				cfg.Const = true
			}

			cfg.Options = append(cfg.Options, config.Option{Name: kotlin.Unquote(m[2]), Value: v, Source: pos})
		case done:
			return nil, fail("unexpected text after the object")
		}
	}

	if state != done {
		return nil, fmt.Errorf("%w: %s: unterminated object", ErrMalformedSource, name)
	}

	return cfg, nil
}
