package mapping

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"struct-update/internal/analyze"
)

// Directive items and keys.
const (
	ItemWith = "with"
	KeyTy    = "ty"
	KeyFunc  = "func"
)

// keyValue is one key=value argument of a directive line.
type keyValue struct {
	Key   string
	Value string
}

// splitDirective splits a directive line into its item and argument text.
// The bare marker yields an empty item.
func splitDirective(text string) (item, rest string) {
	body := strings.TrimPrefix(text, analyze.DirectivePrefix)
	if body == "" {
		return "", ""
	}

	body = strings.TrimPrefix(body, ":")

	idx := strings.IndexFunc(body, unicode.IsSpace)
	if idx < 0 {
		return body, ""
	}

	return body[:idx], strings.TrimSpace(body[idx:])
}

// parseArgs lexes "k1=v1 k2 = "v 2"" into key/value pairs, in order.
func parseArgs(s string) ([]keyValue, error) {
	var out []keyValue

	for {
		s = strings.TrimLeftFunc(s, unicode.IsSpace)
		if s == "" {
			return out, nil
		}

		key, rest := scanKey(s)
		if key == "" {
			return nil, fmt.Errorf("expected key at %q", s)
		}

		rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
		if !strings.HasPrefix(rest, "=") {
			return nil, fmt.Errorf("expected '=' after %q", key)
		}

		rest = strings.TrimLeftFunc(rest[1:], unicode.IsSpace)

		value, tail, err := scanValue(rest)
		if err != nil {
			return nil, fmt.Errorf("value of %q: %w", key, err)
		}

		out = append(out, keyValue{Key: key, Value: value})
		s = tail
	}
}

func scanKey(s string) (key, rest string) {
	i := 0
	for i < len(s) {
		r := rune(s[i])
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		i++
	}

	return s[:i], s[i:]
}

func scanValue(s string) (value, rest string, err error) {
	if s == "" {
		return "", "", errors.New("missing value")
	}

	if s[0] == '"' || s[0] == '`' {
		prefix, err := strconv.QuotedPrefix(s)
		if err != nil {
			return "", "", fmt.Errorf("unterminated quoted value %s", s)
		}

		value, err := strconv.Unquote(prefix)
		if err != nil {
			return "", "", err
		}

		return value, s[len(prefix):], nil
	}

	idx := strings.IndexFunc(s, unicode.IsSpace)
	if idx < 0 {
		return s, "", nil
	}

	return s[:idx], s[idx:], nil
}
