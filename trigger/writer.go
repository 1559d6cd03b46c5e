package trigger

import (
	"fmt"
	"io"

	"github.com/trigwatch/trigwatch/schema"
)

// Sinks bundles the output streams a generation pass writes to. Functions
// and Triggers are required; the drop sinks are optional and receive the
// teardown statements for the same objects when set.
type Sinks struct {
	Functions     io.Writer
	Triggers      io.Writer
	DropFunctions io.Writer
	DropTriggers  io.Writer
}

// write renders one generator into the sinks: its function definition to
// Functions, its trigger definition to Triggers, each exactly once.
func (s Sinks) write(g Generator) error {
	if _, err := io.WriteString(s.Functions, g.Function()); err != nil {
		return fmt.Errorf("trigwatch: write function %s: %w", g.TriggerName(), err)
	}
	if _, err := io.WriteString(s.Triggers, g.Trigger()); err != nil {
		return fmt.Errorf("trigwatch: write trigger %s: %w", g.TriggerName(), err)
	}
	if s.DropFunctions != nil {
		if _, err := io.WriteString(s.DropFunctions, g.DropFunction()); err != nil {
			return fmt.Errorf("trigwatch: write drop function %s: %w", g.TriggerName(), err)
		}
	}
	if s.DropTriggers != nil {
		if _, err := io.WriteString(s.DropTriggers, g.DropTrigger()); err != nil {
			return fmt.Errorf("trigwatch: write drop trigger %s: %w", g.TriggerName(), err)
		}
	}
	return nil
}

// WriteTriggers renders one generator per requested variant from the given
// base configuration and writes each to the sinks. The base carries the
// entity prefix, owning table, path label, resolved selection, collection
// and disambiguating index; only the variant differs between the rendered
// generators.
func WriteTriggers(sinks Sinks, variants []Variant, base Generator) error {
	for _, v := range variants {
		g := base
		g.Variant = v
		if err := sinks.write(g); err != nil {
			return err
		}
	}
	return nil
}

// WriteDirectTriggers emits the three triggers every entity carries on its
// own root table: GIDDelete, Insert and Update. Direct changes need no
// relation traversal, so the selection is the row's own pk; the delete case
// must use the gid variant because the row, and with it any join, is gone
// once the delete commits.
func WriteDirectTriggers(sinks Sinks, prefix string, t *schema.Table, collection string, broker Broker) error {
	if t.GID == "" {
		return fmt.Errorf("%w: table %s is a direct root", ErrNoGID, t.Name)
	}
	selection := fmt.Sprintf("SELECT %s.%s FROM %s WHERE %s.%s = %s.%s",
		t.Name, t.PK, t.Name, t.Name, t.PK, RowToken, t.PK)
	base := Generator{
		Prefix:     prefix,
		Table:      t.Name,
		Path:       "direct",
		Selection:  selection,
		Collection: collection,
		Index:      0,
		GID:        t.GID,
		Broker:     broker,
	}
	return WriteTriggers(sinks, []Variant{GIDDelete, Insert, Update}, base)
}
