package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/arcboost/arcboost"
)

type command struct {
	flags *GlobalFlags
	out   io.Writer
	in    io.Reader
}

// booster wires a Booster from the configured (or default) config file.
func (c command) booster() (*arcboost.Booster, error) {
	cfg, err := arcboost.LoadConfig(c.flags.ConfigPath)
	if err != nil {
		return nil, err
	}
	b, err := arcboost.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("initialize: %w", err)
	}
	return b, nil
}

// List prints the catalog grouped by category with applied markers.
func (c command) List() error {
	b, err := c.booster()
	if err != nil {
		return err
	}
	defer func() { _ = b.Close() }()

	applied := make(map[string]struct{})
	for _, id := range b.Applied() {
		applied[id] = struct{}{}
	}

	for _, g := range b.Tweaks() {
		_, _ = fmt.Fprintf(c.out, "%s:\n", g.Category)
		for _, t := range g.Tweaks {
			mark := " "
			if _, ok := applied[t.ID]; ok {
				mark = "x"
			}
			var notes []string
			if t.Elevated {
				notes = append(notes, "admin")
			}
			if t.OneWay {
				notes = append(notes, "one-way")
			}
			suffix := ""
			if len(notes) > 0 {
				suffix = " (" + strings.Join(notes, ", ") + ")"
			}
			_, _ = fmt.Fprintf(c.out, "  [%s] %-32s %s%s\n", mark, t.ID, t.Name, suffix)
		}
	}
	return nil
}

// Status prints the applied set, last write time and elevation.
func (c command) Status() error {
	b, err := c.booster()
	if err != nil {
		return err
	}
	defer func() { _ = b.Close() }()

	applied := b.Applied()
	_, _ = fmt.Fprintf(c.out, "elevated: %v\n", b.Elevated())
	if len(applied) == 0 {
		_, _ = fmt.Fprintln(c.out, "no tweaks applied")
		return nil
	}
	_, _ = fmt.Fprintf(c.out, "applied (%d):\n", len(applied))
	for _, id := range applied {
		_, _ = fmt.Fprintf(c.out, "  %s\n", id)
	}
	if lm := b.LastModified(); !lm.IsZero() {
		_, _ = fmt.Fprintf(c.out, "last modified: %s\n", lm.Format("2006-01-02 15:04:05 MST"))
	}
	return nil
}

// Apply runs an apply batch for the selected ids.
func (c command) Apply(f ApplyFlags) error {
	if !f.All && len(f.IDs) == 0 {
		return fmt.Errorf("nothing selected: pass --ids or --all")
	}
	b, err := c.booster()
	if err != nil {
		return err
	}
	defer func() { _ = b.Close() }()

	if !b.Elevated() {
		_, _ = fmt.Fprintln(c.out, "warning: not running as administrator; tweaks requiring elevation will be skipped")
	}

	var res arcboost.BatchResult
	if f.All {
		res, err = b.ApplyAll(context.Background())
	} else {
		res, err = b.Apply(context.Background(), f.IDs)
	}
	if err != nil {
		return err
	}
	c.printBatch(res)
	return nil
}

// Plan previews what a restore batch would do.
func (c command) Plan() error {
	b, err := c.booster()
	if err != nil {
		return err
	}
	defer func() { _ = b.Close() }()

	restorable, irreversible := b.Plan()
	c.printPlan(restorable, irreversible)
	return nil
}

// Restore rolls back everything restorable, asking first unless --yes.
func (c command) Restore(f RestoreFlags) error {
	b, err := c.booster()
	if err != nil {
		return err
	}
	defer func() { _ = b.Close() }()

	restorable, irreversible := b.Plan()
	c.printPlan(restorable, irreversible)
	if len(restorable) == 0 {
		return nil
	}

	if !f.Yes {
		_, _ = fmt.Fprintf(c.out, "restore %d tweak(s)? [y/N] ", len(restorable))
		reader := bufio.NewReader(c.in)
		line, _ := reader.ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))
		if answer != "y" && answer != "yes" {
			_, _ = fmt.Fprintln(c.out, "aborted")
			return nil
		}
	}

	if !b.Elevated() {
		_, _ = fmt.Fprintln(c.out, "warning: not running as administrator; tweaks requiring elevation will be skipped")
	}

	res, err := b.Restore(context.Background())
	if err != nil {
		return err
	}
	c.printBatch(res)
	return nil
}

// Serve runs the HTTP API until interrupted.
func (c command) Serve(configPath string) error {
	cfg, err := arcboost.LoadConfig(configPath)
	if err != nil {
		return err
	}
	b, err := arcboost.New(cfg)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	defer func() { _ = b.Close() }()

	if cfg.Metrics.Enabled {
		if err := arcboost.RegisterMetricsDefault(); err != nil {
			_, _ = fmt.Fprintf(c.out, "warning: failed to register metrics: %v\n", err)
		}
		if cfg.Metrics.Listen != "" {
			go func() {
				if err := arcboost.ServeMetrics(cfg.Metrics.Listen); err != nil {
					_, _ = fmt.Fprintf(c.out, "metrics server error: %v\n", err)
				}
			}()
		}
	}

	server := arcboost.NewHTTPServer(cfg.Server, b, cfg.Metrics.Enabled)
	_, _ = fmt.Fprintf(c.out, "listening on %s%s\n", cfg.Server.Listen, cfg.Server.BasePath)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	_, _ = fmt.Fprintln(c.out, "shutting down...")
	return server.Close()
}

func (c command) printBatch(res arcboost.BatchResult) {
	for _, o := range res.Outcomes {
		switch o.Kind {
		case arcboost.OutcomeApplied:
			_, _ = fmt.Fprintf(c.out, "applied  %s\n", o.TweakName)
		case arcboost.OutcomeRestored:
			_, _ = fmt.Fprintf(c.out, "restored %s\n", o.TweakName)
		case arcboost.OutcomeSkippedPrivilege:
			_, _ = fmt.Fprintf(c.out, "skipped  %s (requires administrator)\n", o.TweakName)
		case arcboost.OutcomeFailed:
			_, _ = fmt.Fprintf(c.out, "failed   %s: %s\n", o.TweakName, o.Message)
		}
	}
	_, _ = fmt.Fprintln(c.out, res.Summary())
	if skipped := res.SkippedNames(); len(skipped) > 0 {
		_, _ = fmt.Fprintf(c.out, "run as administrator to include: %s\n", strings.Join(skipped, ", "))
	}
	if res.StateWarning != "" {
		_, _ = fmt.Fprintf(c.out, "warning: state not saved: %s\n", res.StateWarning)
	}
}

func (c command) printPlan(restorable, irreversible []arcboost.Tweak) {
	if len(restorable) == 0 && len(irreversible) == 0 {
		_, _ = fmt.Fprintln(c.out, "nothing to restore")
		return
	}
	if len(restorable) > 0 {
		_, _ = fmt.Fprintf(c.out, "will restore (%d):\n", len(restorable))
		for _, t := range restorable {
			_, _ = fmt.Fprintf(c.out, "  %s\n", t.Name)
		}
	}
	if len(irreversible) > 0 {
		_, _ = fmt.Fprintf(c.out, "cannot be undone (%d):\n", len(irreversible))
		for _, t := range irreversible {
			_, _ = fmt.Fprintf(c.out, "  %s\n", t.Name)
		}
	}
}
