package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trigwatch/trigwatch/schema"
)

func TestRelationKindString(t *testing.T) {
	assert.Equal(t, "many_to_one", schema.ManyToOne.String())
	assert.Equal(t, "one_to_many", schema.OneToMany.String())
	assert.Equal(t, "RelationKind(9)", schema.RelationKind(9).String())
}

func TestTableHasColumn(t *testing.T) {
	table := &schema.Table{
		Name:    "table_b",
		PK:      "id",
		GID:     "gid",
		Columns: []string{"name", "c"},
	}

	t.Run("DeclaredColumn", func(t *testing.T) {
		assert.True(t, table.HasColumn("name"))
		assert.True(t, table.HasColumn("c"))
	})

	t.Run("PKAndGID", func(t *testing.T) {
		// pk and gid are addressable even when not repeated in columns.
		assert.True(t, table.HasColumn("id"))
		assert.True(t, table.HasColumn("gid"))
	})

	t.Run("Unknown", func(t *testing.T) {
		assert.False(t, table.HasColumn("missing"))
	})

	t.Run("NoGID", func(t *testing.T) {
		bare := &schema.Table{Name: "t", PK: "id"}
		assert.False(t, bare.HasColumn("gid"))
	})
}

func TestGraphTable(t *testing.T) {
	g := &schema.Graph{Tables: map[string]*schema.Table{
		"table_b": {Name: "table_b"},
	}}
	assert.NotNil(t, g.Table("table_b"))
	assert.Nil(t, g.Table("table_z"))

	var nilGraph *schema.Graph
	assert.Nil(t, nilGraph.Table("table_b"))
}

func TestGraphTableNames(t *testing.T) {
	g := &schema.Graph{Tables: map[string]*schema.Table{
		"zeta":  {Name: "zeta"},
		"alpha": {Name: "alpha"},
		"mid":   {Name: "mid"},
	}}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, g.TableNames())
}
