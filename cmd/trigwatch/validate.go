package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trigwatch/trigwatch/config"
	"github.com/trigwatch/trigwatch/schema"
	"github.com/trigwatch/trigwatch/trigger"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the schema descriptor and entity configuration",
	Long: `Validate loads the configuration and schema descriptor, checks the
graph's structural invariants, and resolves every declared path without
writing any output.`,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(resolveConfigFile())
	if err != nil {
		return err
	}
	graph, err := schema.Load(cfg.Schema)
	if err != nil {
		return err
	}
	result := schema.Validate(graph)
	if result.HasErrors() {
		return result.Err()
	}
	for _, e := range cfg.TriggerEntities() {
		if graph.Table(e.Table) == nil {
			return fmt.Errorf("trigwatch: entity %q: unknown root table %q", e.Name, e.Table)
		}
		for path := range trigger.UniqueSplitPaths(e.Paths) {
			if _, _, err := trigger.Walk(graph, e.Table, path); err != nil {
				return err
			}
		}
	}
	fmt.Println(result.String())
	return nil
}
