package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"fruitlens/backend/app/classifier"
	"fruitlens/backend/app/services"
	"fruitlens/backend/global"

	"github.com/fsnotify/fsnotify"
)

const eventQueueSize = 64

// settleDelay gives the producing process time to finish writing the file
// before we read it for classification.
const settleDelay = 300 * time.Millisecond

// Event reports one auto-classified drop-folder file.
type Event struct {
	Path    string
	SavedAs string
	Label   string
	ImageID uint
	Err     error
}

// Watcher monitors drop folders and classifies every new image file on
// behalf of the logged-in session.
type Watcher struct {
	fsw     *fsnotify.Watcher
	session *services.Session
	images  *services.ImageService
	cls     *classifier.Service

	stop chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

// New watches the given directories. Paths that do not resolve are skipped
// with a log line; watching nothing at all is an error.
func New(paths []string, session *services.Session, images *services.ImageService, cls *classifier.Service) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	watched := 0
	seen := make(map[string]struct{})
	for _, raw := range paths {
		abs, err := filepath.Abs(raw)
		if err != nil {
			global.Logger.Error().Err(err).Str("path", raw).Msg("cannot resolve watch path")
			continue
		}
		info, err := os.Stat(abs)
		if err != nil {
			global.Logger.Error().Err(err).Str("path", abs).Msg("invalid watch path")
			continue
		}
		dir := abs
		if !info.IsDir() {
			dir = filepath.Dir(abs)
		}
		dir = filepath.Clean(dir)
		if _, ok := seen[dir]; ok {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			global.Logger.Error().Err(err).Str("path", dir).Msg("cannot watch path")
			continue
		}
		global.Logger.Info().Str("path", dir).Msg("watching drop folder")
		seen[dir] = struct{}{}
		watched++
	}
	if watched == 0 {
		_ = fsw.Close()
		return nil, errors.New("watcher: no valid directories to watch")
	}

	return &Watcher{fsw: fsw, session: session, images: images, cls: cls, stop: make(chan struct{})}, nil
}

// Start returns a channel of classification events. The channel closes when
// Stop is called.
func (w *Watcher) Start() <-chan Event {
	out := make(chan Event, eventQueueSize)

	w.wg.Add(1)
	go w.loop(out)

	go func() {
		w.wg.Wait()
		close(out)
	}()

	return out
}

func (w *Watcher) Stop() {
	w.once.Do(func() {
		close(w.stop)
		_ = w.fsw.Close()
	})
}

func (w *Watcher) loop(out chan<- Event) {
	defer w.wg.Done()
	for {
		select {
		case <-w.stop:
			return
		case evt, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if evt.Op&fsnotify.Create == 0 || !isImage(evt.Name) {
				continue
			}
			w.handle(evt.Name, out)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			global.Logger.Error().Err(err).Msg("watcher error")
		}
	}
}

func (w *Watcher) handle(path string, out chan<- Event) {
	time.Sleep(settleDelay)

	uid, ok := w.session.CurrentUser()
	if !ok {
		out <- Event{Path: path, Err: services.ErrNotLoggedIn}
		return
	}
	saved, err := w.images.SaveLocal(uid, path)
	if err != nil {
		out <- Event{Path: path, Err: err}
		return
	}
	res := w.cls.ClassifyOrFallback(context.Background(), saved)
	id, err := w.session.RecordClassification(saved, res.Label)
	if err != nil {
		out <- Event{Path: path, SavedAs: saved, Label: res.Label, Err: err}
		return
	}
	global.Logger.Info().Str("path", path).Str("label", res.Label).Uint("image_id", id).Msg("auto-classified")
	out <- Event{Path: path, SavedAs: saved, Label: res.Label, ImageID: id}
}

func isImage(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp":
		return true
	}
	return false
}
