package schema

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError describes one problem found in a schema graph.
type ValidationError struct {
	Table    string
	Relation string
	Message  string
}

func (e *ValidationError) Error() string {
	if e.Relation != "" {
		return fmt.Sprintf("%s.%s: %s", e.Table, e.Relation, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Table, e.Message)
}

// ValidationResult holds the outcome of validating a schema graph.
type ValidationResult struct {
	Errors   []*ValidationError
	Warnings []*ValidationError
}

// HasErrors reports whether validation found any errors.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings reports whether validation found any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// String returns a human-readable summary of the result.
func (r *ValidationResult) String() string {
	var sb strings.Builder
	if len(r.Errors) > 0 {
		sb.WriteString("Errors:\n")
		for _, e := range r.Errors {
			sb.WriteString("  - ")
			sb.WriteString(e.Error())
			sb.WriteString("\n")
		}
	}
	if len(r.Warnings) > 0 {
		sb.WriteString("Warnings:\n")
		for _, w := range r.Warnings {
			sb.WriteString("  - ")
			sb.WriteString(w.Error())
			sb.WriteString("\n")
		}
	}
	if !r.HasErrors() && !r.HasWarnings() {
		sb.WriteString("No issues found")
	}
	return sb.String()
}

// Err returns an error wrapping the result when it has errors, nil otherwise.
func (r *ValidationResult) Err() error {
	if !r.HasErrors() {
		return nil
	}
	return fmt.Errorf("trigwatch: invalid schema graph:\n%s", r.String())
}

// Validate checks the structural invariants of a schema graph: every
// relation must resolve to a table present in the graph, and relation names
// must not shadow plain columns of the same table (a dotted path segment
// could not tell the two apart). Tables without a gid column are reported as
// a warning only, since the column is required solely for tables used as
// direct roots.
func Validate(g *Graph) *ValidationResult {
	result := &ValidationResult{}
	for _, name := range g.TableNames() {
		t := g.Tables[name]
		for _, rel := range sortedRelations(t) {
			if g.Table(rel.Table) == nil {
				result.Errors = append(result.Errors, &ValidationError{
					Table:    name,
					Relation: rel.Name,
					Message:  fmt.Sprintf("relation targets unknown table %q", rel.Table),
				})
			}
			for _, c := range t.Columns {
				if c == rel.Name {
					result.Errors = append(result.Errors, &ValidationError{
						Table:    name,
						Relation: rel.Name,
						Message:  "relation name shadows a column of the same table",
					})
				}
			}
		}
		if t.GID == "" {
			result.Warnings = append(result.Warnings, &ValidationError{
				Table:   name,
				Message: "table has no gid column and cannot be a direct root",
			})
		}
	}
	return result
}

func sortedRelations(t *Table) []*Relation {
	rels := make([]*Relation, 0, len(t.Relations))
	for _, name := range relationNames(t) {
		rels = append(rels, t.Relations[name])
	}
	return rels
}

func relationNames(t *Table) []string {
	names := make([]string, 0, len(t.Relations))
	for name := range t.Relations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
