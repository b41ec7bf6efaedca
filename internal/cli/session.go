package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/SscSPs/blood_desk_app/internal/client"
)

var (
	errNotLoggedIn    = errors.New("not logged in; run `blood-desk login`")
	errSessionExpired = errors.New("session expired; run `blood-desk login`")
)

func defaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "blood-desk", "session.json"), nil
}

// sessionStore persists the session between invocations.
type sessionStore struct {
	path string
}

func (s sessionStore) Load() (client.Session, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return client.Session{}, errNotLoggedIn
	}
	if err != nil {
		return client.Session{}, fmt.Errorf("read session: %w", err)
	}
	var sess client.Session
	if err := json.Unmarshal(raw, &sess); err != nil || sess.Token == "" {
		return client.Session{}, errNotLoggedIn
	}
	return sess, nil
}

func (s sessionStore) Save(sess client.Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	raw, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (s sessionStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
