package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"fruitlens/backend/app/classifier"
	"fruitlens/backend/app/models"
	"fruitlens/backend/app/repo"
	"fruitlens/backend/app/services"
	"fruitlens/backend/global"

	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	global.Logger = zerolog.Nop()
	os.Exit(m.Run())
}

func newTestCore(t *testing.T) (*services.Session, *services.ImageService) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(&models.User{}, &models.ImageRecord{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	images := services.NewImageService(repo.NewImageRepository(gdb), t.TempDir())
	return services.NewSession(images), images
}

func TestWatcherRejectsEmptyPathSet(t *testing.T) {
	session, images := newTestCore(t)
	if _, err := New(nil, session, images, classifier.NewService(nil)); err == nil {
		t.Fatalf("expected error with nothing to watch")
	}
	if _, err := New([]string{"/does/not/exist"}, session, images, classifier.NewService(nil)); err == nil {
		t.Fatalf("expected error when no path resolves")
	}
}

func TestWatcherClassifiesDroppedImage(t *testing.T) {
	session, images := newTestCore(t)
	session.SetCurrentUser(1)

	drop := t.TempDir()
	w, err := New([]string{drop}, session, images, classifier.NewService(nil))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Stop()
	events := w.Start()

	if err := os.WriteFile(filepath.Join(drop, "banana.jpg"), []byte{0xFF, 0xD8}, 0o644); err != nil {
		t.Fatalf("write drop file: %v", err)
	}
	// non-image files are ignored
	if err := os.WriteFile(filepath.Join(drop, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write drop file: %v", err)
	}

	select {
	case evt := <-events:
		if evt.Err != nil {
			t.Fatalf("event error: %v", evt.Err)
		}
		if evt.Label == "" || evt.ImageID == 0 {
			t.Fatalf("unexpected event: %+v", evt)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("no event within timeout")
	}

	recs, err := session.History()
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
}

func TestWatcherAnonymousSession(t *testing.T) {
	session, images := newTestCore(t)

	drop := t.TempDir()
	w, err := New([]string{drop}, session, images, classifier.NewService(nil))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Stop()
	events := w.Start()

	if err := os.WriteFile(filepath.Join(drop, "apple.png"), []byte{0x89}, 0o644); err != nil {
		t.Fatalf("write drop file: %v", err)
	}

	select {
	case evt := <-events:
		if evt.Err == nil {
			t.Fatalf("expected not-logged-in error, got %+v", evt)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("no event within timeout")
	}
}
