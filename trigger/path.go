package trigger

import (
	"fmt"
	"strings"

	"github.com/trigwatch/trigwatch/schema"
)

// RowToken is the placeholder standing for the changed row in a rendered
// selection. Generators substitute it with NEW or OLD when rendering the
// trigger function.
const RowToken = "{new_or_old}"

// PathPart is one node of a resolved path: a closed set of three variants.
// Composite parts own their inner part exclusively; rendering recurses from
// the outermost (root-table) part down to the changed row.
type PathPart interface {
	// Render returns a SQL SELECT fragment mapping the changed row,
	// represented by the RowToken placeholder, to ids of this part's table.
	Render() string

	pathPart()
}

// ColumnPart is the terminal variant: a bare reference to a column on the
// changed row. It never advances resolution and renders no subquery of its
// own.
type ColumnPart struct {
	Column string
}

// Render returns the changed row's column reference.
func (p *ColumnPart) Render() string {
	return RowToken + "." + p.Column
}

func (*ColumnPart) pathPart() {}

// ManyToOnePart maps ids of a related table back to rows of Table through
// the local foreign key column FK.
type ManyToOnePart struct {
	Table string
	PK    string
	FK    string
	Inner PathPart
}

// Render wraps the inner part's rendering in a SELECT over the local
// foreign key.
func (p *ManyToOnePart) Render() string {
	return fmt.Sprintf("SELECT %s.%s FROM %s WHERE %s.%s IN (%s)",
		p.Table, p.PK, p.Table, p.Table, p.FK, p.Inner.Render())
}

func (*ManyToOnePart) pathPart() {}

// OneToManyPart maps rows of a related table that carry a foreign key back
// to Table onto Table's own ids.
type OneToManyPart struct {
	Table string
	PK    string
	Inner PathPart
}

// Render wraps the inner part's rendering in a containment query on the
// table's pk column.
func (p *OneToManyPart) Render() string {
	return fmt.Sprintf("SELECT %s.%s FROM %s WHERE %s.%s IN (%s)",
		p.Table, p.PK, p.Table, p.Table, p.PK, p.Inner.Render())
}

func (*OneToManyPart) pathPart() {}

// Walk resolves a dotted relationship path against the schema graph,
// starting at the root table. It returns the outermost PathPart of the
// composed chain and the terminal table: the table the path physically
// changes at, which is where the trigger will be attached.
//
// A path whose last segment names a plain column rather than a relation
// selects a value on the current row directly; there is nothing to join
// through, so Walk returns (nil, "", nil) and the caller relies on the
// table's own direct triggers.
func Walk(g *schema.Graph, root, path string) (PathPart, string, error) {
	t := g.Table(root)
	if t == nil {
		return nil, "", &UnknownTableError{Table: root}
	}
	return walk(g, t, root, path, strings.Split(path, "."))
}

func walk(g *schema.Graph, t *schema.Table, root, path string, segs []string) (PathPart, string, error) {
	seg := segs[0]
	rel := t.Relation(seg)
	if rel == nil {
		if len(segs) == 1 && t.HasColumn(seg) {
			return nil, "", nil
		}
		return nil, "", &UnresolvablePathError{Root: root, Path: path, Segment: seg, Table: t.Name}
	}
	target := g.Table(rel.Table)
	if target == nil {
		return nil, "", &UnknownTableError{Table: rel.Table, Relation: t.Name + "." + rel.Name}
	}
	var (
		inner    PathPart
		terminal string
	)
	if len(segs) == 1 {
		// Innermost hop: the changed row lives in the target table, so the
		// inner part is a bare column reference on it.
		switch rel.Kind {
		case schema.ManyToOne:
			inner = &ColumnPart{Column: target.PK}
		case schema.OneToMany:
			inner = &ColumnPart{Column: rel.Column}
		}
		terminal = target.Name
	} else {
		var err error
		inner, terminal, err = walk(g, target, root, path, segs[1:])
		if err != nil {
			return nil, "", err
		}
		if inner == nil {
			// Column suffix deeper in the path: no relational part at all.
			return nil, "", nil
		}
	}
	switch rel.Kind {
	case schema.ManyToOne:
		return &ManyToOnePart{Table: t.Name, PK: t.PK, FK: rel.Column, Inner: inner}, terminal, nil
	default:
		return &OneToManyPart{Table: t.Name, PK: t.PK, Inner: inner}, terminal, nil
	}
}
