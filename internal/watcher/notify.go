package watcher

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"gainhound/internal/logging"
	"gainhound/internal/scanner"
)

// NotifySource emits events from native filesystem notifications. The
// notification layer is not format-aware, so the audio suffix filter is
// applied in-process.
type NotifySource struct {
	root   string
	logger *slog.Logger
}

// NewNotifySource constructs a notification-backed source for root.
func NewNotifySource(root string, logger *slog.Logger) *NotifySource {
	return &NotifySource{root: root, logger: logging.WithComponent(logger, "watcher")}
}

func notifySupported() bool {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return false
	}
	_ = w.Close()
	return true
}

// Start watches the whole directory tree under root. Directories created
// later are added as they appear.
func (s *NotifySource) Start(ctx context.Context) (<-chan Event, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := addRecursive(w, s.root); err != nil {
		_ = w.Close()
		return nil, err
	}

	events := make(chan Event, 1)
	go func() {
		defer close(events)
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				s.handle(ctx, w, ev, events)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				s.logger.Warn("notification error", logging.Error(err))
			}
		}
	}()
	return events, nil
}

func (s *NotifySource) handle(ctx context.Context, w *fsnotify.Watcher, ev fsnotify.Event, events chan<- Event) {
	if ev.Op.Has(fsnotify.Create) && isDir(ev.Name) {
		if err := addRecursive(w, ev.Name); err != nil {
			s.logger.Warn("watch new directory failed", logging.String(logging.FieldPath, ev.Name), logging.Error(err))
		}
		return
	}
	if !scanner.IsAudioPath(ev.Name) {
		return
	}
	if !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Rename) && !ev.Op.Has(fsnotify.Remove) {
		return
	}
	select {
	case events <- Event{Path: ev.Name}:
	case <-ctx.Done():
	default:
		// A pending event already guarantees a wakeup; drop the burst.
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func addRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if entry.IsDir() {
			if err := w.Add(path); err != nil {
				return err
			}
		}
		return nil
	})
}
