package kala

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// FontWatcher reloads fonts whose files change on disk. File events arrive on
// a background goroutine but are applied only by Drain, which the frame loop
// calls, so registries stay single-threaded.
type FontWatcher struct {
	watcher *fsnotify.Watcher
	changed chan string
	done    chan struct{}
}

// NewFontWatcher starts watching the directories of every font loaded from a
// file.
func (e *Engine) NewFontWatcher() (*FontWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("font watcher: %w", err)
	}
	fw := &FontWatcher{
		watcher: w,
		changed: make(chan string, 16),
		done:    make(chan struct{}),
	}
	for _, f := range e.Fonts.All() {
		if err := fw.Watch(f); err != nil {
			_ = w.Close()
			return nil, err
		}
	}
	go fw.loop()
	return fw, nil
}

// Watch adds f's directory to the watch list. Editors often replace files
// instead of writing them, so the directory is watched rather than the file.
func (fw *FontWatcher) Watch(f *Font) error {
	if f.path == "" {
		return nil
	}
	if err := fw.watcher.Add(filepath.Dir(f.path)); err != nil {
		return fmt.Errorf("font watcher: watch %s: %w", f.path, err)
	}
	return nil
}

func (fw *FontWatcher) loop() {
	for {
		select {
		case <-fw.done:
			return
		case ev, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			select {
			case fw.changed <- filepath.Clean(ev.Name):
			default:
				// queue full; a later event for the same file still triggers a reload
			}
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("font watcher error", "component", "font", "err", err)
		}
	}
}

// Drain applies pending reloads and returns how many fonts were reloaded.
// Text widgets bound to a reloaded font rebuild their geometry.
func (fw *FontWatcher) Drain(e *Engine) int {
	reloaded := 0
	for {
		select {
		case path := <-fw.changed:
			reloaded += e.reloadFontsAt(path)
		default:
			return reloaded
		}
	}
}

// Close stops the watcher.
func (fw *FontWatcher) Close() error {
	select {
	case <-fw.done:
		return nil
	default:
		close(fw.done)
	}
	return fw.watcher.Close()
}

func (e *Engine) reloadFontsAt(path string) int {
	n := 0
	for _, f := range e.Fonts.All() {
		if f.path == "" || filepath.Clean(f.path) != path {
			continue
		}
		if err := f.Reload(); err != nil {
			logger.Warn("font reload failed", "component", "font", "font", f.name, "err", err)
			continue
		}
		e.RefreshText(f.id)
		n++
		logger.Info("font reloaded", "component", "font", "font", f.name, "glyphs", f.GlyphCount())
	}
	return n
}

// RefreshText rebuilds the geometry of every text widget bound to fontID.
func (e *Engine) RefreshText(fontID uint32) {
	for _, w := range e.Widgets.All() {
		if w.kind == WidgetText && w.fontID == fontID {
			w.reloadGlyph()
		}
	}
}
