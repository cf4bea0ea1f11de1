// Package auth owns accounts, login state, and role gating. The
// mechanism is deliberately small: a digest comparison plus a session
// file that carries the actor between CLI invocations.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/safar/shopcli/internal/models"
	"github.com/safar/shopcli/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrNotAuthorized      = errors.New("not authorized")
)

// User is the authenticated actor as the rest of the system sees it:
// a role tag plus the id of the linked customer or staff record.
type User struct {
	AccountID  int64
	Username   string
	Role       models.Role
	CustomerID int64
	StaffID    int64
}

type Service struct {
	storage *storage.Store
	logger  *slog.Logger
}

func NewService(st *storage.Store, logger *slog.Logger) *Service {
	return &Service{storage: st, logger: logger}
}

// Digest hashes a password for storage and comparison.
func Digest(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func (s *Service) Login(username, password string) (*User, error) {
	accounts, err := storage.Load[models.Account](s.storage, storage.CollectionAccounts)
	if err != nil {
		return nil, err
	}

	for _, acc := range accounts {
		if acc.Username != username || acc.PasswordDigest != Digest(password) {
			continue
		}
		sess := storage.Session{
			AccountID:  acc.ID,
			Username:   acc.Username,
			Role:       acc.Role,
			CustomerID: acc.CustomerID,
			StaffID:    acc.StaffID,
			LoggedInAt: time.Now(),
		}
		if err := s.storage.SaveSession(sess); err != nil {
			return nil, err
		}
		s.logger.Info("logged in", "username", acc.Username, "role", acc.Role)
		return userFromSession(&sess), nil
	}
	return nil, ErrInvalidCredentials
}

func (s *Service) Logout() error {
	if err := s.storage.ClearSession(); err != nil {
		return err
	}
	s.logger.Info("logged out")
	return nil
}

// CurrentUser reads the session. ErrNotLoggedIn when nobody is.
func (s *Service) CurrentUser() (*User, error) {
	sess, err := s.storage.LoadSession()
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrNotLoggedIn
	}
	return userFromSession(sess), nil
}

// RequireRole gates an operation to one role.
func (s *Service) RequireRole(role models.Role) (*User, error) {
	user, err := s.CurrentUser()
	if err != nil {
		return nil, err
	}
	if user.Role != role {
		return nil, fmt.Errorf("%s access required: %w", role, ErrNotAuthorized)
	}
	return user, nil
}

func userFromSession(sess *storage.Session) *User {
	return &User{
		AccountID:  sess.AccountID,
		Username:   sess.Username,
		Role:       sess.Role,
		CustomerID: sess.CustomerID,
		StaffID:    sess.StaffID,
	}
}
