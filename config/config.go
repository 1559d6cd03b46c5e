// Package config describes a trigwatch generation run: where the schema
// descriptor lives, which entities to generate triggers for, where the
// rendered SQL goes, and which broker the rendered publish calls target.
package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/trigwatch/trigwatch/trigger"
)

// Entity declares one searchable entity type in the run configuration.
type Entity struct {
	// Table is the entity's root table.
	Table string `yaml:"table"`
	// Collection overrides the index collection name; defaults to the
	// entity name.
	Collection string `yaml:"collection"`
	// Paths are the dotted relationship paths declared for the entity.
	Paths []string `yaml:"paths"`
}

// Output names the files a generation pass writes. The drop files are
// optional; empty means the teardown scripts are not generated.
type Output struct {
	Functions     string `yaml:"functions"`
	Triggers      string `yaml:"triggers"`
	DropFunctions string `yaml:"drop_functions"`
	DropTriggers  string `yaml:"drop_triggers"`
}

// Broker configures the rendered publish target.
type Broker struct {
	Channel  int    `yaml:"channel"`
	Exchange string `yaml:"exchange"`
}

// Config is the full run configuration.
type Config struct {
	// Schema is the path of the schema graph descriptor.
	Schema string `yaml:"schema"`
	// Entities maps entity name to its declaration.
	Entities map[string]Entity `yaml:"entities"`
	// Output names the generated files.
	Output Output `yaml:"output"`
	// Broker overrides the publish target; zero values mean the defaults.
	Broker Broker `yaml:"broker"`
}

// Load reads and validates a run configuration file.
func Load(path string) (*Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("trigwatch: read config: %w", err)
	}
	return Parse(buf)
}

// Parse decodes and validates a run configuration document.
func Parse(buf []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(buf, &c); err != nil {
		return nil, fmt.Errorf("trigwatch: decode config: %w", err)
	}
	if err := c.check(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) check() error {
	if c.Schema == "" {
		return fmt.Errorf("trigwatch: config: missing schema descriptor path")
	}
	if len(c.Entities) == 0 {
		return fmt.Errorf("trigwatch: config: no entities declared")
	}
	for name, e := range c.Entities {
		if e.Table == "" {
			return fmt.Errorf("trigwatch: config: entity %q: missing root table", name)
		}
	}
	if c.Output.Functions == "" {
		c.Output.Functions = "CreateFunctions.sql"
	}
	if c.Output.Triggers == "" {
		c.Output.Triggers = "CreateTriggers.sql"
	}
	return nil
}

// TriggerEntities returns the declared entities as trigger.Entity values in
// sorted-name order.
func (c *Config) TriggerEntities() []trigger.Entity {
	names := make([]string, 0, len(c.Entities))
	for name := range c.Entities {
		names = append(names, name)
	}
	sort.Strings(names)
	entities := make([]trigger.Entity, 0, len(names))
	for _, name := range names {
		e := c.Entities[name]
		entities = append(entities, trigger.Entity{
			Name:       name,
			Table:      e.Table,
			Collection: e.Collection,
			Paths:      e.Paths,
		})
	}
	return entities
}

// TriggerBroker returns the broker settings in the trigger package's form.
func (c *Config) TriggerBroker() trigger.Broker {
	return trigger.Broker{Channel: c.Broker.Channel, Exchange: c.Broker.Exchange}
}
