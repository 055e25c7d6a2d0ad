// Package localstate persists the signed-in user's identity between
// runs so the login step can be skipped. It is the only local state
// the application keeps outside the gateway; it is cleared on logout
// or when the gateway reports the session expired.
package localstate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const fileName = "session.json"

// Session is the minimal identity record kept between runs.
type Session struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Save writes the sign-in record under dataDir.
func Save(dataDir string, s Session) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dataDir, fileName), raw, 0600); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Load returns the saved record, or nil when nobody is signed in.
func Load(dataDir string) (*Session, error) {
	raw, err := os.ReadFile(filepath.Join(dataDir, fileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("failed to parse session: %w", err)
	}
	return &s, nil
}

// Clear removes the record. Clearing an absent record is not an error.
func Clear(dataDir string) error {
	err := os.Remove(filepath.Join(dataDir, fileName))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
