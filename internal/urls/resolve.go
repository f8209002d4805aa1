// Package urls resolves the generator's URL and save-as templates. A save
// path is a strict function of the template and the item metadata; nothing
// else feeds into it.
package urls

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Item carries the metadata fields a template may reference.
type Item struct {
	Slug     string
	Category string
	Author   string
	Lang     string
	Date     time.Time
}

var placeholderPattern = regexp.MustCompile(`\{([a-z_]+)(:[^}]*)?\}`)

// Resolve substitutes {slug}, {category}, {author}, {lang} and {date:…}
// placeholders in template. Unknown placeholder names are an error rather
// than silently passing through into a published path.
func Resolve(template string, item Item) (string, error) {
	var resolveErr error
	out := placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		groups := placeholderPattern.FindStringSubmatch(match)
		name, spec := groups[1], groups[2]
		switch name {
		case "slug":
			return item.Slug
		case "category":
			return item.Category
		case "author":
			return item.Author
		case "lang":
			return item.Lang
		case "date":
			return formatDate(item.Date, strings.TrimPrefix(spec, ":"))
		default:
			if resolveErr == nil {
				resolveErr = fmt.Errorf("unknown placeholder {%s} in template %q", name, template)
			}
			return match
		}
	})
	if resolveErr != nil {
		return "", resolveErr
	}
	return out, nil
}

// Placeholders returns the distinct placeholder names referenced by template,
// in order of first appearance. Lint uses this to cross-check URL/save-as
// template pairs.
func Placeholders(template string) []string {
	var names []string
	seen := map[string]bool{}
	for _, groups := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		if !seen[groups[1]] {
			seen[groups[1]] = true
			names = append(names, groups[1])
		}
	}
	return names
}

// Known reports whether name is a placeholder Resolve can substitute.
func Known(name string) bool {
	switch name {
	case "slug", "category", "author", "lang", "date":
		return true
	}
	return false
}

// formatDate handles the strftime-style directives the generator's templates
// use. An empty spec defaults to %Y/%m/%d.
func formatDate(t time.Time, spec string) string {
	if spec == "" {
		spec = "%Y/%m/%d"
	}
	var b strings.Builder
	for i := 0; i < len(spec); i++ {
		if spec[i] != '%' || i+1 >= len(spec) {
			b.WriteByte(spec[i])
			continue
		}
		i++
		switch spec[i] {
		case 'Y':
			b.WriteString(t.Format("2006"))
		case 'y':
			b.WriteString(t.Format("06"))
		case 'm':
			b.WriteString(t.Format("01"))
		case 'b':
			b.WriteString(t.Format("Jan"))
		case 'B':
			b.WriteString(t.Format("January"))
		case 'd':
			b.WriteString(t.Format("02"))
		case 'H':
			b.WriteString(t.Format("15"))
		case 'M':
			b.WriteString(t.Format("04"))
		case 'S':
			b.WriteString(t.Format("05"))
		case '%':
			b.WriteByte('%')
		default:
			// Unknown directive passes through verbatim, matching the
			// generator's lenient strftime handling.
			b.WriteByte('%')
			b.WriteByte(spec[i])
		}
	}
	return b.String()
}
