package services

import (
	"errors"
	"sync"

	"fruitlens/backend/app/models"
)

// ErrNotLoggedIn rejects image-record operations while the session is
// anonymous.
var ErrNotLoggedIn = errors.New("not logged in")

// Session binds an authenticated identity to image-record operations. It is
// an explicit value owned by the caller (one per interactive use), never
// process-global state. Safe for concurrent use; background watchers read it
// while the UI logs in and out.
type Session struct {
	images *ImageService

	mu     sync.RWMutex
	userID uint
	active bool
}

func NewSession(images *ImageService) *Session { return &Session{images: images} }

func (s *Session) SetCurrentUser(id uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = id
	s.active = true
}

func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = 0
	s.active = false
}

func (s *Session) CurrentUser() (uint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID, s.active
}

func (s *Session) LoggedIn() bool {
	_, ok := s.CurrentUser()
	return ok
}

// RecordClassification stores a label for an already-saved image file.
func (s *Session) RecordClassification(imagePath, label string) (uint, error) {
	uid, ok := s.CurrentUser()
	if !ok {
		return 0, ErrNotLoggedIn
	}
	return s.images.Record(uid, imagePath, label)
}

// History returns the session user's records, most recent first.
func (s *Session) History() ([]models.ImageRecord, error) {
	uid, ok := s.CurrentUser()
	if !ok {
		return nil, ErrNotLoggedIn
	}
	return s.images.HistoryFor(uid)
}
