package repo

import (
	"errors"
	"path/filepath"
	"testing"

	"fruitlens/backend/app/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
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
	return gdb
}

func TestUserRepository_CreateDuplicate(t *testing.T) {
	users := NewUserRepository(newTestDB(t))

	first := &models.User{Username: "alice", PasswordHash: "h1", Role: models.RoleUser}
	if err := users.Create(first); err != nil {
		t.Fatalf("Create #1: %v", err)
	}
	if first.ID == 0 {
		t.Fatalf("expected assigned id, got 0")
	}

	err := users.Create(&models.User{Username: "alice", PasswordHash: "h2", Role: models.RoleUser})
	if !errors.Is(err, ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}

	// first account untouched
	got, err := users.FindByUsername("alice")
	if err != nil {
		t.Fatalf("FindByUsername: %v", err)
	}
	if got.ID != first.ID || got.PasswordHash != "h1" {
		t.Fatalf("first account altered: %+v", got)
	}
}

func TestUserRepository_UsernameCaseSensitiveAsStored(t *testing.T) {
	users := NewUserRepository(newTestDB(t))

	if err := users.Create(&models.User{Username: "Bob", PasswordHash: "h"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := users.Create(&models.User{Username: "bob", PasswordHash: "h"}); err != nil {
		t.Fatalf("expected distinct casing to be a distinct username, got %v", err)
	}
}

func TestUserRepository_DeleteCascades(t *testing.T) {
	gdb := newTestDB(t)
	users := NewUserRepository(gdb)
	images := NewImageRepository(gdb)

	u := &models.User{Username: "carol", PasswordHash: "h"}
	if err := users.Create(u); err != nil {
		t.Fatalf("Create: %v", err)
	}
	other := &models.User{Username: "dave", PasswordHash: "h"}
	if err := users.Create(other); err != nil {
		t.Fatalf("Create: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := images.Insert(u.ID, "/img/a.jpg", "Ripe"); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}
	if _, err := images.Insert(other.ID, "/img/b.jpg", "Unripe"); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if err := users.Delete(u.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := users.FindByID(u.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected user gone, got %v", err)
	}
	recs, err := images.ListByUser(u.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("expected cascade to remove images, got %d", len(recs))
	}

	// other user's records survive
	kept, err := images.ListByUser(other.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(kept) != 1 {
		t.Fatalf("expected 1 surviving record, got %d", len(kept))
	}
}

func TestImageRepository_InsertAndListOrdering(t *testing.T) {
	gdb := newTestDB(t)
	images := NewImageRepository(gdb)

	paths := []string{"/img/1.jpg", "/img/2.jpg", "/img/3.jpg"}
	labels := []string{"Ripe", "Unripe", "Overripe"}
	ids := make([]uint, 0, len(paths))
	for i := range paths {
		id, err := images.Insert(7, paths[i], labels[i])
		if err != nil {
			t.Fatalf("Insert #%d: %v", i, err)
		}
		ids = append(ids, id)
	}

	recs, err := images.ListByUser(7)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(recs) != len(paths) {
		t.Fatalf("expected %d records, got %d", len(paths), len(recs))
	}
	// most recent first; ids break ties within the same second
	for i := range recs {
		want := ids[len(ids)-1-i]
		if recs[i].ID != want {
			t.Errorf("recs[%d].ID = %d, want %d", i, recs[i].ID, want)
		}
		if recs[i].Timestamp == "" {
			t.Errorf("recs[%d] missing timestamp", i)
		}
	}
	// original pairs preserved
	seen := map[string]string{}
	for _, rec := range recs {
		seen[rec.ImagePath] = rec.Result
	}
	for i := range paths {
		if seen[paths[i]] != labels[i] {
			t.Errorf("pair %q=%q not preserved, got %q", paths[i], labels[i], seen[paths[i]])
		}
	}
}

func TestImageRepository_ListByUserEmpty(t *testing.T) {
	images := NewImageRepository(newTestDB(t))
	recs, err := images.ListByUser(99)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("expected empty history, got %d records", len(recs))
	}
}

func TestImageRepository_DeleteByID(t *testing.T) {
	images := NewImageRepository(newTestDB(t))
	id, err := images.Insert(1, "/img/x.jpg", "Ripe")
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := images.DeleteByID(id); err != nil {
		t.Fatalf("DeleteByID: %v", err)
	}
	recs, err := images.ListByUser(1)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("expected record deleted, got %d", len(recs))
	}
}
