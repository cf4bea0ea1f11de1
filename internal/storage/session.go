package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/safar/shopcli/internal/models"
)

const sessionFile = "session.json"

// Session is the logged-in actor carried between CLI invocations.
type Session struct {
	AccountID  int64       `json:"account_id"`
	Username   string      `json:"username"`
	Role       models.Role `json:"role"`
	CustomerID int64       `json:"customer_id,omitempty"`
	StaffID    int64       `json:"staff_id,omitempty"`
	LoggedInAt time.Time   `json:"logged_in_at"`
}

func (s *Store) sessionPath() string {
	return filepath.Join(s.dir, sessionFile)
}

func (s *Store) SaveSession(sess Session) error {
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(s.sessionPath(), data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// LoadSession returns nil without error when nobody is logged in.
func (s *Store) LoadSession() (*Session, error) {
	data, err := os.ReadFile(s.sessionPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if sess.AccountID == 0 {
		return nil, nil
	}
	return &sess, nil
}

func (s *Store) ClearSession() error {
	err := os.Remove(s.sessionPath())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
