package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/pflag"

	"github.com/goliatone/go-formbuilder/internal/config"
	"github.com/goliatone/go-formbuilder/internal/script"
	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/changes"
	"github.com/goliatone/go-formbuilder/pkg/review"
	"github.com/goliatone/go-formbuilder/pkg/session"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, review.ErrAborted) {
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flagSet := pflag.NewFlagSet("formbuilder-cli", pflag.ContinueOnError)
	configFile := flagSet.String("config", "", "optional YAML config file")
	config.RegisterFlags(flagSet)
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(*configFile, flagSet)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	reg, err := loadForm(cfg.FormPath)
	if err != nil {
		return err
	}
	log := changes.NewLog()
	var sessOpts []session.Option
	sessOpts = append(sessOpts, session.WithLogger(logger))
	if cfg.SnapshotPath != "" {
		sessOpts = append(sessOpts, session.WithSnapshotPath(cfg.SnapshotPath))
	}
	sess := session.New(reg, sessOpts...)
	sess.Attach(log)

	engine, err := changes.New(reg, log, sess, changes.WithLogger(logger))
	if err != nil {
		return err
	}

	if cfg.ScriptPath != "" {
		steps, err := loadScript(cfg.ScriptPath)
		if err != nil {
			return err
		}
		records, err := script.Replay(engine.Recorder(), reg, steps)
		if err != nil {
			return err
		}
		logger.Info("script replayed", "path", cfg.ScriptPath, "records", len(records))
	}

	printChanges(log)

	switch {
	case cfg.Interactive:
		drawer := review.New(engine, review.WithTheme(review.Theme{ErrorPrefix: "! "}))
		sess.OnCloseDrawer(drawer.Close)
		if err := drawer.Run(ctx); err != nil {
			return err
		}
	case cfg.UndoAll:
		if err := engine.UndoAll(); err != nil {
			return err
		}
	}

	if err := sess.LastError(); err != nil {
		return fmt.Errorf("persist snapshot: %w", err)
	}
	printFields(reg, sess.Clean())
	return nil
}

func loadForm(path string) (*builder.Registry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open form: %w", err)
	}
	defer file.Close()
	return builder.LoadForm(file)
}

func loadScript(path string) (script.Script, error) {
	file, err := os.Open(path)
	if err != nil {
		return script.Script{}, fmt.Errorf("open script: %w", err)
	}
	defer file.Close()
	return script.Load(file)
}

func printChanges(log *changes.Log) {
	records := log.Records()
	if len(records) == 0 {
		fmt.Println("No unsaved changes.")
		return
	}
	fmt.Printf("%d unsaved change(s):\n", len(records))
	for idx, rec := range records {
		marker := ""
		if rec.Disabled() {
			marker = " (disabled)"
		}
		fmt.Printf("  %d. %s%s\n", idx+1, changes.Describe(rec), marker)
	}
}

func printFields(reg *builder.Registry, clean bool) {
	state := "dirty"
	if clean {
		state = "clean"
	}
	fmt.Printf("Form (%s):\n", state)
	for _, field := range reg.Fields() {
		fmt.Printf("  - %s [%s] order=%d\n", field.EntityID(), builder.Label(field), field.Order())
		if field.HasOptions() {
			for _, opt := range field.Options().Options() {
				fmt.Printf("      * %s [%s] order=%d\n", opt.EntityID(), builder.Label(opt), opt.Order())
			}
		}
	}
}
