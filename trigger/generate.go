package trigger

import (
	"bytes"
	"io"
	"runtime"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/trigwatch/trigwatch/schema"
)

// Entity declares one searchable entity type: its root table and the dotted
// relationship paths along which changes elsewhere in the schema propagate
// to it.
type Entity struct {
	// Name is the entity-type prefix used in trigger names.
	Name string
	// Table is the entity's root table.
	Table string
	// Collection is the index collection named in notification payloads.
	// Defaults to Name.
	Collection string
	// Paths are the declared dotted relationship paths.
	Paths []string
}

func (e Entity) collection() string {
	if e.Collection != "" {
		return e.Collection
	}
	return e.Name
}

// Options configures a generation pass.
type Options struct {
	// Broker overrides the rendered publish target.
	Broker Broker
	// Logger receives per-entity progress; defaults to a no-op logger.
	Logger *zap.Logger
	// Concurrency bounds the number of entities rendered in parallel.
	// Defaults to GOMAXPROCS. Output order is unaffected: entities are
	// rendered into private buffers and flushed in sorted-name order.
	Concurrency int
}

// entityOutput holds one entity's rendered text until the ordered flush.
type entityOutput struct {
	functions     bytes.Buffer
	triggers      bytes.Buffer
	dropFunctions bytes.Buffer
	dropTriggers  bytes.Buffer
	names         []string
	tables        map[string]string // trigger name -> table, for error reporting
}

// Generate runs the full pass: for every declared entity it emits the three
// direct triggers on the root table, deduplicates the declared paths,
// resolves each deduplicated path, and emits insert/update/delete triggers
// on each path's terminal table. Entities are processed in sorted-name
// order so repeated runs produce byte-identical output.
//
// Generation fails fast on the first unresolvable path or unknown table and
// writes nothing to the sinks in that case; a trigger name produced twice
// aborts the pass with an AmbiguousTriggerError before any output is
// flushed.
func Generate(graph *schema.Graph, entities []Entity, sinks Sinks, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := opts.Concurrency
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	sorted := make([]Entity, len(entities))
	copy(sorted, entities)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	outputs := make([]*entityOutput, len(sorted))
	var eg errgroup.Group
	eg.SetLimit(workers)
	for i, e := range sorted {
		eg.Go(func() error {
			out, err := renderEntity(graph, e, opts.Broker, sinks)
			if err != nil {
				return err
			}
			outputs[i] = out
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	seen := make(map[string]struct{})
	for _, out := range outputs {
		for _, name := range out.names {
			if _, dup := seen[name]; dup {
				return &AmbiguousTriggerError{Name: name, Table: out.tables[name]}
			}
			seen[name] = struct{}{}
		}
	}

	for i, out := range outputs {
		if err := out.flush(sinks); err != nil {
			return err
		}
		logger.Info("generated triggers",
			zap.String("entity", sorted[i].Name),
			zap.String("table", sorted[i].Table),
			zap.Int("triggers", len(out.names)))
	}
	return nil
}

func renderEntity(graph *schema.Graph, e Entity, broker Broker, sinks Sinks) (*entityOutput, error) {
	out := &entityOutput{tables: make(map[string]string)}
	local := Sinks{Functions: &out.functions, Triggers: &out.triggers}
	if sinks.DropFunctions != nil {
		local.DropFunctions = &out.dropFunctions
	}
	if sinks.DropTriggers != nil {
		local.DropTriggers = &out.dropTriggers
	}

	root := graph.Table(e.Table)
	if root == nil {
		return nil, &UnknownTableError{Table: e.Table}
	}
	if err := WriteDirectTriggers(local, e.Name, root, e.collection(), broker); err != nil {
		return nil, err
	}
	direct := Generator{Prefix: e.Name, Table: root.Name, Index: 0}
	for _, v := range []Variant{GIDDelete, Insert, Update} {
		direct.Variant = v
		out.record(direct)
	}

	index := 0
	for path := range UniqueSplitPaths(e.Paths) {
		part, terminal, err := Walk(graph, e.Table, path)
		if err != nil {
			return nil, err
		}
		if part == nil {
			// Column suffix: the prefix triggers already cover this table.
			continue
		}
		index++
		base := Generator{
			Prefix:     e.Name,
			Table:      terminal,
			Path:       path,
			Selection:  part.Render(),
			Collection: e.collection(),
			Index:      index,
			Broker:     broker,
		}
		if err := WriteTriggers(local, []Variant{Insert, Update, Delete}, base); err != nil {
			return nil, err
		}
		for _, v := range []Variant{Insert, Update, Delete} {
			g := base
			g.Variant = v
			out.record(g)
		}
	}
	return out, nil
}

func (out *entityOutput) record(g Generator) {
	name := g.TriggerName()
	out.names = append(out.names, name)
	out.tables[name] = g.Table
}

func (out *entityOutput) flush(sinks Sinks) error {
	if _, err := io.Copy(sinks.Functions, &out.functions); err != nil {
		return err
	}
	if _, err := io.Copy(sinks.Triggers, &out.triggers); err != nil {
		return err
	}
	if sinks.DropFunctions != nil {
		if _, err := io.Copy(sinks.DropFunctions, &out.dropFunctions); err != nil {
			return err
		}
	}
	if sinks.DropTriggers != nil {
		if _, err := io.Copy(sinks.DropTriggers, &out.dropTriggers); err != nil {
			return err
		}
	}
	return nil
}
