package cli

import (
	"context"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/vischart/pkg/data/source"
	"github.com/matzehuels/vischart/pkg/errors"
	"github.com/matzehuels/vischart/pkg/pipeline"
)

// watchDebounce coalesces the burst of events editors emit on save.
const watchDebounce = 150 * time.Millisecond

// watchRender renders input once and again after every change to the spec
// or to a data file next to it, until ctx is cancelled. Render errors are
// printed and do not stop the loop.
func (c *CLI) watchRender(ctx context.Context, runner *pipeline.Runner, input string, opts renderOpts) error {
	abs, err := filepath.Abs(input)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "start file watcher")
	}
	defer w.Close()

	// Editors often replace files on save, which drops a watch on the file
	// itself, so the directory is watched instead.
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "watch %s", filepath.Dir(abs))
	}

	// Our own output files must not trigger another render.
	outputs := map[string]bool{}
	rerender := func(refresh bool) {
		o := opts
		o.refresh = o.refresh || refresh
		written, err := renderOnce(ctx, runner, input, o)
		for _, p := range written {
			if a, err := filepath.Abs(p); err == nil {
				outputs[a] = true
			}
		}
		if err != nil && ctx.Err() == nil {
			printError("%s", errors.UserMessage(err))
		}
	}

	rerender(false)
	printInfo("Watching %s (Ctrl+C to stop)", input)

	var (
		timer       *time.Timer
		fire        <-chan time.Time
		dataChanged bool
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			printInfo("Stopped watching %s", input)
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			hit, isData := watchTarget(ev, abs, outputs)
			if !hit {
				continue
			}
			loggerFromContext(ctx).Debug("change detected", "file", ev.Name, "op", ev.Op.String())
			dataChanged = dataChanged || isData
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			// Cached rows for a named dataset would hide the edit.
			rerender(dataChanged)
			dataChanged = false

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			loggerFromContext(ctx).Warn("file watcher", "error", err)
		}
	}
}

// watchTarget reports whether ev should trigger a render of the spec at
// specPath, and whether it touched a data file rather than the spec. Paths
// in ignore are skipped.
func watchTarget(ev fsnotify.Event, specPath string, ignore map[string]bool) (hit, data bool) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false, false
	}
	name := filepath.Clean(ev.Name)
	if name == filepath.Clean(specPath) {
		return true, false
	}
	if ignore[name] {
		return false, false
	}
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return false, false
	}
	if slices.Contains(source.FileExtensions, strings.ToLower(filepath.Ext(name))) {
		return true, true
	}
	return false, false
}
