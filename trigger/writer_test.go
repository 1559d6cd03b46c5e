package trigger_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trigwatch/trigwatch/schema"
	"github.com/trigwatch/trigwatch/trigger"
)

func TestWriteTriggers(t *testing.T) {
	base := trigger.Generator{
		Prefix:     "entity_c",
		Table:      "table_c",
		Path:       "bs.foo",
		Selection:  "SELECTION",
		Collection: "table_b",
		Index:      5,
	}

	t.Run("SingleVariant", func(t *testing.T) {
		var functions, triggers strings.Builder
		sinks := trigger.Sinks{Functions: &functions, Triggers: &triggers}
		require.NoError(t, trigger.WriteTriggers(sinks, []trigger.Variant{trigger.Insert}, base))

		want := base
		want.Variant = trigger.Insert
		assert.Equal(t, want.Function(), functions.String())
		assert.Equal(t, want.Trigger(), triggers.String())
	})

	t.Run("AllJoinedVariants", func(t *testing.T) {
		var functions, triggers strings.Builder
		sinks := trigger.Sinks{Functions: &functions, Triggers: &triggers}
		variants := []trigger.Variant{trigger.Insert, trigger.Update, trigger.Delete}
		require.NoError(t, trigger.WriteTriggers(sinks, variants, base))

		assert.Equal(t, 3, strings.Count(functions.String(), "CREATE OR REPLACE FUNCTION"))
		assert.Equal(t, 3, strings.Count(triggers.String(), "CREATE TRIGGER"))
	})

	t.Run("DropSinks", func(t *testing.T) {
		var functions, triggers, dropFunctions, dropTriggers strings.Builder
		sinks := trigger.Sinks{
			Functions:     &functions,
			Triggers:      &triggers,
			DropFunctions: &dropFunctions,
			DropTriggers:  &dropTriggers,
		}
		require.NoError(t, trigger.WriteTriggers(sinks, []trigger.Variant{trigger.Insert}, base))
		assert.Equal(t, "DROP FUNCTION IF EXISTS search_entity_c_insert_5();\n", dropFunctions.String())
		assert.Equal(t, "DROP TRIGGER IF EXISTS search_entity_c_insert_5 ON table_c;\n", dropTriggers.String())
	})
}

func TestWriteDirectTriggers(t *testing.T) {
	table := &schema.Table{Name: "table_c", PK: "id", GID: "gid"}

	var functions, triggers strings.Builder
	sinks := trigger.Sinks{Functions: &functions, Triggers: &triggers}
	require.NoError(t, trigger.WriteDirectTriggers(sinks, "entity_c", table, "table_c", trigger.Broker{}))

	t.Run("WriteCount", func(t *testing.T) {
		assert.Equal(t, 3, strings.Count(functions.String(), "CREATE OR REPLACE FUNCTION"))
		assert.Equal(t, 3, strings.Count(triggers.String(), "CREATE TRIGGER"))
	})

	t.Run("Variants", func(t *testing.T) {
		for _, name := range []string{
			"search_entity_c_delete_0",
			"search_entity_c_insert_0",
			"search_entity_c_update_0",
		} {
			assert.Contains(t, triggers.String(), "CREATE TRIGGER "+name+" ")
		}
	})

	t.Run("DeleteUsesGID", func(t *testing.T) {
		// The delete slot is the gid variant: it publishes the row's own
		// gid with the delete routing key and never aggregates a subquery.
		assert.Contains(t, functions.String(), "'delete', 'table_c ' || OLD.gid")
		assert.Equal(t, 1, strings.Count(triggers.String(), "BEFORE delete"))
		assert.Equal(t, 2, strings.Count(functions.String(), "DECLARE"))
	})

	t.Run("Selection", func(t *testing.T) {
		assert.Contains(t, functions.String(),
			"SELECT table_c.id FROM table_c WHERE table_c.id = NEW.id")
	})

	t.Run("MissingGID", func(t *testing.T) {
		var fns, trs strings.Builder
		bare := &schema.Table{Name: "table_x", PK: "id"}
		err := trigger.WriteDirectTriggers(trigger.Sinks{Functions: &fns, Triggers: &trs}, "x", bare, "x", trigger.Broker{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, trigger.ErrNoGID))
		assert.Empty(t, fns.String())
	})
}
