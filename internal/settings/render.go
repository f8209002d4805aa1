package settings

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
)

const fileHeader = "# Generated settings profile. Regenerated on every run; do not edit.\n"

// Render serializes settings as generator assignment syntax, one sorted
// `NAME = value` line per key. The output is deterministic: equal Settings
// values always render to identical bytes.
func Render(s Settings) ([]byte, error) {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(fileHeader)
	for _, k := range keys {
		v, err := renderValue(s[k])
		if err != nil {
			return nil, fmt.Errorf("setting %s: %w", k, err)
		}
		fmt.Fprintf(&b, "%s = %s\n", k, v)
	}
	return []byte(b.String()), nil
}

func renderValue(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "None", nil
	case bool:
		if t {
			return "True", nil
		}
		return "False", nil
	case string:
		return quote(t), nil
	case int:
		return strconv.Itoa(t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64), nil
	case []any:
		return renderTuple(t)
	case []string:
		return renderTuple(tuple(t))
	case map[string]any:
		return renderDict(t)
	default:
		return "", fmt.Errorf("unsupported value type %T", v)
	}
}

// renderTuple emits (a, b); a single element keeps the trailing comma so the
// result stays a tuple rather than a parenthesized expression.
func renderTuple(items []any) (string, error) {
	parts := make([]string, len(items))
	for i, item := range items {
		p, err := renderValue(item)
		if err != nil {
			return "", err
		}
		parts[i] = p
	}
	switch len(parts) {
	case 0:
		return "()", nil
	case 1:
		return "(" + parts[0] + ",)", nil
	default:
		return "(" + strings.Join(parts, ", ") + ")", nil
	}
}

func renderDict(m map[string]any) (string, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		v, err := renderValue(m[k])
		if err != nil {
			return "", err
		}
		parts[i] = quote(k) + ": " + v
	}
	return "{" + strings.Join(parts, ", ") + "}", nil
}

func quote(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

// Write renders settings into dir/name and returns the written path. The
// file lives only for the duration of one generator invocation.
func Write(dir, name string, s Settings) (string, error) {
	data, err := Render(s)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write settings file: %w", err)
	}
	slog.Debug("Wrote settings profile", logfields.Path(path))
	return path, nil
}
