package migrate

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Definition describes one forward migration: the ordered up statements and
// the best-effort down statements that undo them. Seq is intended unique and
// monotonic across a chain.
type Definition struct {
	Seq  int
	Name string
	Up   []string
	Down []string
}

var titleCaser = cases.Title(language.English)

// Title returns the humanized migration name for logs and status output,
// e.g. "create_accounts" becomes "Create Accounts".
func (d Definition) Title() string {
	return titleCaser.String(strings.ReplaceAll(d.Name, "_", " "))
}

// Registry is an in-memory ordered set of migration definitions.
type Registry struct {
	defs   []Definition
	sorted bool
}

// NewRegistry creates a registry with the given definitions.
func NewRegistry(defs ...Definition) *Registry {
	return &Registry{defs: defs}
}

// Register adds a definition to the registry.
func (r *Registry) Register(def Definition) {
	r.defs = append(r.defs, def)
	r.sorted = false
}

// Definitions returns the registered definitions sorted by Seq in ascending
// order.
func (r *Registry) Definitions() []Definition {
	if !r.sorted {
		sort.Slice(r.defs, func(i, j int) bool {
			return r.defs[i].Seq < r.defs[j].Seq
		})
		r.sorted = true
	}
	return r.defs
}
