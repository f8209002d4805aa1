// Package roles implements the inline markup roles of the blog's content:
// :bash:`…`, :html:`…` and :py:`…` spans that render as inline code
// highlighted with a fixed per-role language. Roles live in an explicit
// table built per process; there is no global registry.
package roles

import (
	"fmt"
	"sort"
)

// Role binds a highlighting language to the CSS classes of the rendered
// inline code element.
type Role struct {
	Language string
	Classes  []string
}

// Table maps role names to their definitions. Construct with NewTable or
// DefaultTable and pass it into Extension; a Table is not safe for concurrent
// mutation.
type Table struct {
	roles map[string]Role
}

// NewTable returns an empty role table.
func NewTable() *Table {
	return &Table{roles: map[string]Role{}}
}

// Register adds a role under name. Registering a name twice is an error; the
// first registration stays in effect.
func (t *Table) Register(name string, role Role) error {
	if name == "" {
		return fmt.Errorf("role name must not be empty")
	}
	if role.Language == "" {
		return fmt.Errorf("role %q: language must not be empty", name)
	}
	if _, exists := t.roles[name]; exists {
		return fmt.Errorf("role %q already registered", name)
	}
	t.roles[name] = role
	return nil
}

// Lookup returns the role registered under name.
func (t *Table) Lookup(name string) (Role, bool) {
	r, ok := t.roles[name]
	return r, ok
}

// Names returns the registered role names, sorted.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.roles))
	for name := range t.roles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultTable returns the stock roles: bash, html and py, each rendering an
// inline-code element highlighted with the corresponding lexer.
func DefaultTable() *Table {
	t := NewTable()
	classes := []string{"inline-code"}
	// Registrations into a fresh table cannot collide.
	_ = t.Register("bash", Role{Language: "bash", Classes: classes})
	_ = t.Register("html", Role{Language: "html", Classes: classes})
	_ = t.Register("py", Role{Language: "python", Classes: classes})
	return t
}
