// Package schema describes the relational schema graph the trigger engine
// walks: tables, their identifying columns, and the named relations between
// them.
//
// The graph is a read-only input. It is normally produced by an external
// schema-introspection step and handed to this package as a YAML descriptor:
//
//	tables:
//	  table_b:
//	    columns: [id, c, name]
//	    relations:
//	      c: {kind: many_to_one, table: table_c}
//	  table_c:
//	    gid: gid
//	    relations:
//	      bs: {kind: one_to_many, table: table_b, column: c}
//
// A many_to_one relation means the owning table holds the foreign key (the
// local column defaults to the relation name). A one_to_many relation means
// the target table holds a foreign key back to the owning table (the remote
// column defaults to the owning table's name, and the target table defaults
// to the singularized relation name).
//
// Link tables that sit in the middle of multi-hop paths declare the foreign
// key pointing back at their parent as their pk column, so that an enclosing
// hop selects the parent id rather than a surrogate key.
package schema
