package trigger

import (
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// Variant selects one of the four fixed trigger generator configurations.
// Each variant is a static bundle of operation, row token, timing and
// routing key; there are no runtime transitions between them.
type Variant uint8

const (
	// Insert fires after a row is inserted and requests a fresh indexing of
	// the affected root entities.
	Insert Variant = iota
	// Update fires after a row is updated and requests an update of the
	// already-indexed documents.
	Update
	// Delete fires before a row is deleted, while the reverse join is still
	// valid, and requests an update of the affected documents.
	Delete
	// GIDDelete fires before a root row is deleted. No join is possible
	// once the row is gone, so it publishes the row's own global-id column
	// and requests removal of the document.
	GIDDelete
)

// Op returns the SQL operation the variant fires on.
func (v Variant) Op() string {
	switch v {
	case Insert:
		return "insert"
	case Update:
		return "update"
	default:
		return "delete"
	}
}

// RowToken returns the row-reference variable substituted for the
// selection placeholder: NEW for insert/update, OLD for the delete
// variants.
func (v Variant) RowToken() string {
	switch v {
	case Insert, Update:
		return "NEW"
	default:
		return "OLD"
	}
}

// Timing returns when the trigger fires relative to the operation. The
// delete variants fire BEFORE so the row is still visible to the selection.
func (v Variant) Timing() string {
	switch v {
	case Insert, Update:
		return "AFTER"
	default:
		return "BEFORE"
	}
}

// RoutingKey returns the message routing key the rendered publish call
// carries: "index" for fresh indexing, "update" for changes to existing
// documents, "delete" for document removal.
func (v Variant) RoutingKey() string {
	switch v {
	case Insert:
		return "index"
	case Update, Delete:
		return "update"
	default:
		return "delete"
	}
}

// String returns the variant name.
func (v Variant) String() string {
	switch v {
	case Insert:
		return "Insert"
	case Update:
		return "Update"
	case Delete:
		return "Delete"
	case GIDDelete:
		return "GIDDelete"
	default:
		return fmt.Sprintf("Variant(%d)", uint8(v))
	}
}

// Broker names the channel and exchange the rendered publish call targets.
// The zero value renders the defaults: channel 1, exchange "search".
type Broker struct {
	Channel  int
	Exchange string
}

func (b Broker) orDefault() Broker {
	if b.Channel == 0 {
		b.Channel = 1
	}
	if b.Exchange == "" {
		b.Exchange = "search"
	}
	return b
}

// Generator is one immutable trigger generator instance, constructed once
// per (entity, table, path, index) tuple. All rendering is purely textual
// and deterministic: the same Generator always renders byte-identical
// output.
type Generator struct {
	// Variant selects the fixed operation configuration.
	Variant Variant
	// Prefix is the entity-type prefix used in the trigger name.
	Prefix string
	// Table is the table the trigger is attached to.
	Table string
	// Path labels the generated objects with the dotted path they serve.
	Path string
	// Selection is the resolved SELECT fragment, still carrying the
	// RowToken placeholder. Unused by GIDDelete.
	Selection string
	// Collection is the index collection named in the published payload.
	Collection string
	// Index disambiguates triggers that collide on the same table and
	// operation; the caller must keep it unique per (Prefix, Op).
	Index int
	// GID is the global-id column published by GIDDelete.
	GID string
	// Broker overrides the publish target; zero value means the defaults.
	Broker Broker
}

// TriggerName returns the deterministic name shared by the generated
// function and trigger. It embeds the entity prefix, the operation, and the
// disambiguating index, keeping it unique among all generated triggers.
func (g Generator) TriggerName() string {
	return fmt.Sprintf("search_%s_%s_%d", g.Prefix, g.Variant.Op(), g.Index)
}

// Function renders the trigger function definition: it evaluates the
// selection with the variant's row token, aggregates the resulting ids into
// one space-delimited string, publishes a single notification, and returns
// NULL so the triggering statement is never affected.
func (g Generator) Function() string {
	broker := g.Broker.orDefault()
	name := g.TriggerName()
	comment := pq.QuoteLiteral("The path for this function is " + g.Path)
	if g.Variant == GIDDelete {
		payload := fmt.Sprintf("%s || OLD.%s", pq.QuoteLiteral(g.Collection+" "), g.GID)
		return fmt.Sprintf(`
CREATE OR REPLACE FUNCTION %s() RETURNS trigger
    AS $$
BEGIN
    PERFORM amqp.publish(%d, %s, %s, %s);
    RETURN NULL;
END;
$$ LANGUAGE plpgsql;
COMMENT ON FUNCTION %s() IS %s;
`,
			name,
			broker.Channel, pq.QuoteLiteral(broker.Exchange),
			pq.QuoteLiteral(g.Variant.RoutingKey()), payload,
			name, comment)
	}
	selection := strings.ReplaceAll(g.Selection, RowToken, g.Variant.RowToken())
	payload := fmt.Sprintf("%s || ids", pq.QuoteLiteral(g.Collection+" "))
	return fmt.Sprintf(`
CREATE OR REPLACE FUNCTION %s() RETURNS trigger
    AS $$
DECLARE
    ids TEXT;
BEGIN
    SELECT string_agg(tmp.id::text, ' ') INTO ids FROM (%s) AS tmp;
    PERFORM amqp.publish(%d, %s, %s, %s);
    RETURN NULL;
END;
$$ LANGUAGE plpgsql;
COMMENT ON FUNCTION %s() IS %s;
`,
		name,
		selection,
		broker.Channel, pq.QuoteLiteral(broker.Exchange),
		pq.QuoteLiteral(g.Variant.RoutingKey()), payload,
		name, comment)
}

// Trigger renders the CREATE TRIGGER statement binding the function to the
// owning table, firing once per affected row with the variant's timing.
func (g Generator) Trigger() string {
	name := g.TriggerName()
	return fmt.Sprintf(`
CREATE TRIGGER %s %s %s ON %s
    FOR EACH ROW EXECUTE PROCEDURE %s();
COMMENT ON TRIGGER %s IS %s;
`,
		name, g.Variant.Timing(), g.Variant.Op(), g.Table,
		name,
		name, pq.QuoteLiteral("The path for this trigger is "+g.Path))
}

// DropTrigger renders the statement removing a previously generated
// trigger.
func (g Generator) DropTrigger() string {
	return fmt.Sprintf("DROP TRIGGER IF EXISTS %s ON %s;\n", g.TriggerName(), g.Table)
}

// DropFunction renders the statement removing a previously generated
// trigger function.
func (g Generator) DropFunction() string {
	return fmt.Sprintf("DROP FUNCTION IF EXISTS %s();\n", g.TriggerName())
}
