package schema

import (
	"fmt"
	"sort"
)

// RelationKind reports which side of a relation holds the foreign key.
type RelationKind uint8

const (
	// ManyToOne means the owning table holds the foreign key column
	// referencing the target table's row.
	ManyToOne RelationKind = iota
	// OneToMany means the target table holds a foreign key column
	// referencing the owning table's row.
	OneToMany
)

// String returns the descriptor spelling of the kind.
func (k RelationKind) String() string {
	switch k {
	case ManyToOne:
		return "many_to_one"
	case OneToMany:
		return "one_to_many"
	default:
		return fmt.Sprintf("RelationKind(%d)", k)
	}
}

// Relation is a named, directed edge between two tables.
type Relation struct {
	// Name is the relation name as used in dotted paths.
	Name string
	// Kind tags which side holds the foreign key.
	Kind RelationKind
	// Table is the target table name.
	Table string
	// Column is the foreign key column: for ManyToOne the local column on
	// the owning table, for OneToMany the remote column on the target table.
	Column string
}

// Table is one node of the schema graph.
type Table struct {
	// Name is the table name as it appears in generated SQL.
	Name string
	// PK is the column an enclosing path hop selects for this table.
	// Defaults to "id". Link tables set it to the foreign key pointing back
	// at their parent.
	PK string
	// GID is the global identifier column, if the table has one. Required
	// for tables that act as direct roots, since a deleted row can only be
	// reported by a value carried on the row itself.
	GID string
	// Columns lists plain columns, used to tell a terminal column segment
	// apart from a typo.
	Columns []string
	// Relations maps relation name to its edge.
	Relations map[string]*Relation
}

// HasColumn reports whether name is a declared plain column of the table.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	// The pk and gid columns are addressable even when the descriptor does
	// not repeat them in the columns list.
	return name == t.PK || (t.GID != "" && name == t.GID)
}

// Relation returns the named relation, or nil.
func (t *Table) Relation(name string) *Relation {
	return t.Relations[name]
}

// Graph is the full schema graph: a set of tables keyed by name.
type Graph struct {
	Tables map[string]*Table
}

// Table returns the named table, or nil if the graph does not contain it.
func (g *Graph) Table(name string) *Table {
	if g == nil {
		return nil
	}
	return g.Tables[name]
}

// TableNames returns all table names in sorted order.
func (g *Graph) TableNames() []string {
	names := make([]string, 0, len(g.Tables))
	for name := range g.Tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
