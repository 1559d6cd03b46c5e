package trigger_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trigwatch/trigwatch/trigger"
)

func TestErrorMessages(t *testing.T) {
	t.Run("UnresolvablePath", func(t *testing.T) {
		err := &trigger.UnresolvablePathError{
			Root:    "table_b",
			Path:    "c.nope",
			Segment: "nope",
			Table:   "table_c",
		}
		assert.Equal(t,
			`trigwatch: path "c.nope" from table_b: segment "nope" names neither a relation nor a column on table_c`,
			err.Error())
	})

	t.Run("UnknownTable", func(t *testing.T) {
		err := &trigger.UnknownTableError{Table: "table_x"}
		assert.Equal(t, `trigwatch: unknown table "table_x"`, err.Error())
	})

	t.Run("UnknownTableViaRelation", func(t *testing.T) {
		err := &trigger.UnknownTableError{Table: "table_x", Relation: "c"}
		assert.Equal(t, `trigwatch: relation "c" targets unknown table "table_x"`, err.Error())
	})

	t.Run("AmbiguousTrigger", func(t *testing.T) {
		err := &trigger.AmbiguousTriggerError{Name: "search_a_insert_1", Table: "table_a"}
		assert.Equal(t, `trigwatch: trigger name "search_a_insert_1" generated twice (table table_a)`, err.Error())
	})
}

func TestErrorMatching(t *testing.T) {
	t.Run("Sentinels", func(t *testing.T) {
		assert.True(t, errors.Is(&trigger.UnresolvablePathError{}, trigger.ErrUnresolvablePath))
		assert.True(t, errors.Is(&trigger.UnknownTableError{}, trigger.ErrUnknownTable))
		assert.True(t, errors.Is(&trigger.AmbiguousTriggerError{}, trigger.ErrAmbiguousTrigger))
		assert.False(t, errors.Is(&trigger.UnknownTableError{}, trigger.ErrUnresolvablePath))
	})

	t.Run("Wrapped", func(t *testing.T) {
		err := fmt.Errorf("entity work: %w", &trigger.UnresolvablePathError{Segment: "nope"})
		assert.True(t, trigger.IsUnresolvablePath(err))
		assert.False(t, trigger.IsUnknownTable(err))
		assert.False(t, trigger.IsAmbiguousTrigger(err))
	})

	t.Run("Helpers", func(t *testing.T) {
		assert.True(t, trigger.IsUnknownTable(&trigger.UnknownTableError{Table: "t"}))
		assert.True(t, trigger.IsAmbiguousTrigger(&trigger.AmbiguousTriggerError{Name: "n"}))
		assert.False(t, trigger.IsUnresolvablePath(errors.New("other")))
		assert.False(t, trigger.IsUnresolvablePath(nil))
	})
}
