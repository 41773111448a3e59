package main

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce absorbs the burst of events an editor save produces.
const debounce = 150 * time.Millisecond

// watchedFiles returns the input files a re-render depends on.
func watchedFiles(o *options) []string {
	var files []string
	for _, f := range []string{o.config, o.palettes} {
		if f != "" {
			files = append(files, filepath.Clean(f))
		}
	}
	return files
}

// watch re-renders whenever the config or palette file changes, until ctx
// is done. Render errors are logged and the previous output is kept.
func watch(ctx context.Context, o *options, logger *slog.Logger) error {
	files := watchedFiles(o)
	if len(files) == 0 {
		logger.Warn("nothing to watch; pass -config or -palettes")
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	// Editors often replace files, so watch the directories.
	wanted := make(map[string]bool, len(files))
	for _, f := range files {
		wanted[f] = true
		if err := w.Add(filepath.Dir(f)); err != nil {
			return err
		}
	}
	logger.Info("watching", "files", files)

	timer := time.NewTimer(debounce)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !wanted[filepath.Clean(ev.Name)] {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("change", "file", ev.Name, "op", ev.Op.String())
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "err", err)
		case <-timer.C:
			if err := renderOnce(o, logger); err != nil {
				logger.Error("render failed", "err", err)
			}
		}
	}
}
