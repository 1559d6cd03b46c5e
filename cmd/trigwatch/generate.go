package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/trigwatch/trigwatch/config"
	"github.com/trigwatch/trigwatch/schema"
	"github.com/trigwatch/trigwatch/trigger"
)

var watch bool

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render the trigger and function SQL files",
	Long: `Generate loads the schema descriptor and entity configuration,
resolves every declared path, and writes the trigger function and trigger
definition files (plus the optional teardown scripts).`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().BoolVar(&watch, "watch", false, "regenerate whenever the schema or configuration changes")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	path := resolveConfigFile()
	if !watch {
		return generateOnce(path)
	}
	return watchAndGenerate(cmd.Context(), path)
}

// generateOnce runs a single full generation pass.
func generateOnce(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	graph, err := schema.Load(cfg.Schema)
	if err != nil {
		return err
	}
	if result := schema.Validate(graph); result.HasErrors() {
		return result.Err()
	} else if result.HasWarnings() {
		logger.Warn("schema validation warnings", zap.String("details", result.String()))
	}

	// Render into memory first: a failed pass must not leave truncated or
	// half-written SQL files behind.
	var functions, triggers, dropFunctions, dropTriggers bytes.Buffer
	sinks := trigger.Sinks{Functions: &functions, Triggers: &triggers}
	if cfg.Output.DropFunctions != "" {
		sinks.DropFunctions = &dropFunctions
	}
	if cfg.Output.DropTriggers != "" {
		sinks.DropTriggers = &dropTriggers
	}
	err = trigger.Generate(graph, cfg.TriggerEntities(), sinks, trigger.Options{
		Broker: cfg.TriggerBroker(),
		Logger: logger,
	})
	if err != nil {
		return err
	}

	outputs := map[string]*bytes.Buffer{
		cfg.Output.Functions: &functions,
		cfg.Output.Triggers:  &triggers,
	}
	if cfg.Output.DropFunctions != "" {
		outputs[cfg.Output.DropFunctions] = &dropFunctions
	}
	if cfg.Output.DropTriggers != "" {
		outputs[cfg.Output.DropTriggers] = &dropTriggers
	}
	for path, buf := range outputs {
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	logger.Info("generation complete",
		zap.String("functions", cfg.Output.Functions),
		zap.String("triggers", cfg.Output.Triggers))
	return nil
}

// watchAndGenerate regenerates on every change to the configuration or the
// schema descriptor until interrupted.
func watchAndGenerate(ctx context.Context, configPath string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := generateOnce(configPath); err != nil {
		// In watch mode a broken configuration is reported and retried on
		// the next change instead of aborting.
		logger.Error("generation failed", zap.Error(err))
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(configPath); err != nil {
		return fmt.Errorf("watch %s: %w", configPath, err)
	}
	if cfg, err := config.Load(configPath); err == nil {
		if err := watcher.Add(cfg.Schema); err != nil {
			logger.Warn("cannot watch schema descriptor", zap.String("path", cfg.Schema), zap.Error(err))
		}
	}

	logger.Info("watching for changes", zap.String("config", configPath))
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logger.Info("change detected", zap.String("path", event.Name))
			if err := generateOnce(configPath); err != nil {
				logger.Error("generation failed", zap.Error(err))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error", zap.Error(err))
		}
	}
}
