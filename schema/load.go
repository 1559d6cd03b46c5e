package schema

import (
	"fmt"
	"os"

	"github.com/go-openapi/inflect"
	"gopkg.in/yaml.v3"
)

// descriptor mirrors the YAML document layout.
type descriptor struct {
	Tables map[string]*tableDescriptor `yaml:"tables"`
}

type tableDescriptor struct {
	PK        string                         `yaml:"pk"`
	GID       string                         `yaml:"gid"`
	Columns   []string                       `yaml:"columns"`
	Relations map[string]*relationDescriptor `yaml:"relations"`
}

type relationDescriptor struct {
	Kind   string `yaml:"kind"`
	Table  string `yaml:"table"`
	Column string `yaml:"column"`
}

// Load reads a schema descriptor file and returns the graph it describes.
func Load(path string) (*Graph, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("trigwatch: read schema descriptor: %w", err)
	}
	return Parse(buf)
}

// Parse decodes a YAML schema descriptor into a Graph, applying the
// descriptor defaults documented in the package comment. The returned graph
// is structurally complete but not yet validated; call Validate before
// walking paths over it.
func Parse(buf []byte) (*Graph, error) {
	var d descriptor
	if err := yaml.Unmarshal(buf, &d); err != nil {
		return nil, fmt.Errorf("trigwatch: decode schema descriptor: %w", err)
	}
	if len(d.Tables) == 0 {
		return nil, fmt.Errorf("trigwatch: schema descriptor declares no tables")
	}
	g := &Graph{Tables: make(map[string]*Table, len(d.Tables))}
	for name, td := range d.Tables {
		t := &Table{
			Name:      name,
			PK:        "id",
			Relations: make(map[string]*Relation),
		}
		if td == nil {
			g.Tables[name] = t
			continue
		}
		if td.PK != "" {
			t.PK = td.PK
		}
		t.GID = td.GID
		t.Columns = td.Columns
		for relName, rd := range td.Relations {
			rel, err := buildRelation(name, relName, rd)
			if err != nil {
				return nil, err
			}
			t.Relations[relName] = rel
		}
		g.Tables[name] = t
	}
	return g, nil
}

func buildRelation(table, name string, rd *relationDescriptor) (*Relation, error) {
	if rd == nil {
		rd = &relationDescriptor{}
	}
	rel := &Relation{Name: name, Table: rd.Table, Column: rd.Column}
	switch rd.Kind {
	case "many_to_one":
		rel.Kind = ManyToOne
		if rel.Table == "" {
			return nil, fmt.Errorf("trigwatch: relation %s.%s: many_to_one requires a target table", table, name)
		}
		if rel.Column == "" {
			// The local foreign key column conventionally shares the
			// relation's name.
			rel.Column = name
		}
	case "one_to_many":
		rel.Kind = OneToMany
		if rel.Table == "" {
			// "artists" -> "artist".
			rel.Table = inflect.Singularize(name)
		}
		if rel.Column == "" {
			// The remote foreign key column conventionally carries the
			// owning table's name.
			rel.Column = table
		}
	case "":
		return nil, fmt.Errorf("trigwatch: relation %s.%s: missing kind", table, name)
	default:
		return nil, fmt.Errorf("trigwatch: relation %s.%s: unknown kind %q", table, name, rd.Kind)
	}
	return rel, nil
}
