package services

import (
	"errors"
	"strings"

	"fruitlens/backend/app/models"
	"fruitlens/backend/app/repo"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrReservedUsername   = errors.New("the username \"admin\" is reserved")
	ErrInvalidAdminKey    = errors.New("invalid admin key")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const reservedName = "admin"

type AccountService struct {
	users    *repo.UserRepository
	adminKey string
}

func NewAccountService(users *repo.UserRepository, adminKey string) *AccountService {
	return &AccountService{users: users, adminKey: adminKey}
}

// Register creates a regular account. The literal username "admin" is
// reserved in any case variant unless the call comes through the admin
// creation path.
func (s *AccountService) Register(username, password string, isAdminCreation bool) error {
	if strings.EqualFold(username, reservedName) && !isAdminCreation {
		return ErrReservedUsername
	}
	role := models.RoleUser
	if isAdminCreation {
		role = models.RoleAdmin
	}
	return s.createUser(username, password, role)
}

// CreateAdminUser is the only path that can mint the "admin" username. The
// key is a shared secret from configuration.
func (s *AccountService) CreateAdminUser(adminKey, username, password string) error {
	if adminKey != s.adminKey {
		return ErrInvalidAdminKey
	}
	return s.Register(username, password, true)
}

// CreateUser is the operator add-user path on the admin panel. It bypasses
// both the reserved-name check and the admin key.
func (s *AccountService) CreateUser(username, password, role string) error {
	if role == "" {
		role = models.RoleUser
	}
	return s.createUser(username, password, role)
}

func (s *AccountService) createUser(username, password, role string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.users.Create(&models.User{Username: username, PasswordHash: string(hash), Role: role}); err != nil {
		if errors.Is(err, repo.ErrDuplicateUsername) {
			return ErrUsernameTaken
		}
		return err
	}
	return nil
}

// Login returns the user on an exact credential match. Unknown username and
// wrong password are indistinguishable to the caller.
func (s *AccountService) Login(username, password string) (*models.User, error) {
	u, err := s.users.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *AccountService) ListUsers() ([]models.User, error) { return s.users.ListAll() }

func (s *AccountService) FindUser(id uint) (*models.User, error) { return s.users.FindByID(id) }

// UpdateUser overwrites the username and, when non-empty, the password.
func (s *AccountService) UpdateUser(id uint, username, password string) error {
	u, err := s.users.FindByID(id)
	if err != nil {
		return err
	}
	u.Username = username
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u.PasswordHash = string(hash)
	}
	if err := s.users.Update(u); err != nil {
		if errors.Is(err, repo.ErrDuplicateUsername) {
			return ErrUsernameTaken
		}
		return err
	}
	return nil
}

// DeleteUser removes the account and cascades to its image records.
func (s *AccountService) DeleteUser(id uint) error { return s.users.Delete(id) }
