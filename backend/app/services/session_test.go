package services

import (
	"errors"
	"testing"

	"fruitlens/backend/app/repo"
)

func TestSessionRequiresLogin(t *testing.T) {
	gdb := newTestDB(t)
	session := NewSession(NewImageService(repo.NewImageRepository(gdb), t.TempDir()))

	if _, err := session.RecordClassification("/img/a.jpg", "Ripe"); !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("RecordClassification: expected ErrNotLoggedIn, got %v", err)
	}
	if _, err := session.History(); !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("History: expected ErrNotLoggedIn, got %v", err)
	}
	if session.LoggedIn() {
		t.Fatalf("expected anonymous session")
	}
}

func TestSessionLogoutClearsIdentity(t *testing.T) {
	gdb := newTestDB(t)
	session := NewSession(NewImageService(repo.NewImageRepository(gdb), t.TempDir()))

	session.SetCurrentUser(1)
	if !session.LoggedIn() {
		t.Fatalf("expected authenticated session")
	}
	session.Clear()
	if _, err := session.History(); !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn after Clear, got %v", err)
	}
}

// End-to-end: register, login, classify, list history.
func TestSessionScenario(t *testing.T) {
	gdb := newTestDB(t)
	accounts := NewAccountService(repo.NewUserRepository(gdb), testAdminKey)
	images := NewImageService(repo.NewImageRepository(gdb), t.TempDir())
	session := NewSession(images)

	if err := accounts.Register("alice", "pw1", false); err != nil {
		t.Fatalf("Register: %v", err)
	}
	u, err := accounts.Login("alice", "pw1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if u.ID != 1 {
		t.Fatalf("expected first user id 1, got %d", u.ID)
	}

	session.SetCurrentUser(u.ID)
	imageID, err := session.RecordClassification("/img/a.jpg", "Ripe")
	if err != nil {
		t.Fatalf("RecordClassification: %v", err)
	}
	if imageID != 1 {
		t.Fatalf("expected first image id 1, got %d", imageID)
	}

	recs, err := session.History()
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	rec := recs[0]
	if rec.ID != 1 || rec.ImagePath != "/img/a.jpg" || rec.Result != "Ripe" || rec.Timestamp == "" {
		t.Fatalf("unexpected record: %+v", rec)
	}
}
