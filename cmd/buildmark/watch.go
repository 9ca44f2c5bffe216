package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

func newWatchCmd(a *app) *cobra.Command {
	var delay time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate whenever the configuration file changes",
		Long: `watch generates once, then again after every change to the
configuration file, until interrupted. Failures are logged and the watch
goes on.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.watch(cmd.Context(), cmd, delay)
		},
	}

	a.overrides.register(cmd.Flags())
	cmd.Flags().DurationVar(&delay, "delay", 100*time.Millisecond, "quiet `period` before regenerating after a change")

	return cmd
}

func (a *app) watch(ctx context.Context, cmd *cobra.Command, delay time.Duration) error {
	path, err := filepath.Abs(a.configPath)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// editors often replace the file, so watch its directory
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}

	a.log.Info().Str("config", a.configPath).Msg("watching")
	a.regenerate(cmd)

	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(event.Name) != path || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			a.log.Debug().Str("op", event.Op.String()).Msg("configuration changed")
			pending = time.After(delay)
		case <-pending:
			pending = nil
			a.regenerate(cmd)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			if errors.Is(err, fsnotify.ErrEventOverflow) {
				a.log.Warn().Err(err).Msg("events dropped, regenerating")
				pending = time.After(delay)

				continue
			}

			return err
		}
	}
}

func (a *app) regenerate(cmd *cobra.Command) {
	cfg, err := a.load(cmd)
	if err == nil {
		err = a.generate(cfg)
	}

	if err != nil && !errors.Is(err, errReported) {
		a.log.Error().Err(err).Msg("regeneration failed")
	}
}
